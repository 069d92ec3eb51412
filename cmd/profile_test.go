package cmd

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"mliac/report"
)

func writeProfile(t *testing.T, dir, contents string) {
	t.Helper()

	if err := ioutil.WriteFile(filepath.Join(dir, ProfileFileName), []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write profile file: %v", err)
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	profile, err := LoadProfile(t.TempDir())
	if err != nil {
		t.Fatalf("LoadProfile returned error: %v", err)
	}

	if profile.Linker != "cc" {
		t.Errorf("default linker = %q, want \"cc\"", profile.Linker)
	}

	if profile.OutputPath != "" || profile.Verbose {
		t.Errorf("default profile = %+v, want zero output path and verbose off", *profile)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "[build]\noutput = \"prog\"\nlinker = \"clang\"\nverbose = true\n")

	profile, err := LoadProfile(dir)
	if err != nil {
		t.Fatalf("LoadProfile returned error: %v", err)
	}

	if profile.OutputPath != "prog" {
		t.Errorf("output path = %q, want \"prog\"", profile.OutputPath)
	}

	if profile.Linker != "clang" {
		t.Errorf("linker = %q, want \"clang\"", profile.Linker)
	}

	if !profile.Verbose {
		t.Error("verbose = false, want true")
	}
}

func TestLoadProfilePartial(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "[build]\noutput = \"prog\"\n")

	profile, err := LoadProfile(dir)
	if err != nil {
		t.Fatalf("LoadProfile returned error: %v", err)
	}

	// Unset keys keep their defaults.
	if profile.Linker != "cc" {
		t.Errorf("linker = %q, want \"cc\"", profile.Linker)
	}
}

func TestLoadProfileMalformed(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "[build\n")

	_, err := LoadProfile(dir)
	if err == nil {
		t.Fatal("LoadProfile succeeded on malformed TOML, want error")
	}

	ce, ok := err.(*report.CompileError)
	if !ok {
		t.Fatalf("LoadProfile error type = %T, want *report.CompileError", err)
	}

	if ce.Kind != report.ErrIO {
		t.Errorf("LoadProfile error kind = %s, want IO", ce.Kind.Label())
	}
}
