package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"mliac/report"
)

// ProfileFileName is the name of the optional build profile file looked up
// next to the source file.
const ProfileFileName = "mlia.toml"

// BuildProfile represents the build configuration of a compilation.
type BuildProfile struct {
	// The default output path for the executable.
	OutputPath string

	// The linker command used to produce the executable.
	Linker string

	// Whether to write the verbose compilation dump.
	Verbose bool
}

// tomlProfile represents a build profile as it is encoded in TOML.
type tomlProfile struct {
	Build struct {
		Output  string `toml:"output"`
		Linker  string `toml:"linker"`
		Verbose bool   `toml:"verbose"`
	} `toml:"build"`
}

// LoadProfile loads the build profile from the `mlia.toml` file in the given
// directory.  A missing file yields the default profile.
func LoadProfile(dir string) (*BuildProfile, error) {
	profile := &BuildProfile{Linker: "cc"}

	profilePath := filepath.Join(dir, ProfileFileName)
	buff, err := ioutil.ReadFile(profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return profile, nil
		}

		return nil, report.Raise(report.ErrIO, nil, "error reading profile file at `%s`: %s", profilePath, err)
	}

	tomlProf := &tomlProfile{}
	if err := toml.Unmarshal(buff, tomlProf); err != nil {
		return nil, report.Raise(report.ErrIO, nil, "error parsing profile file at `%s`: %s", profilePath, err)
	}

	if tomlProf.Build.Output != "" {
		profile.OutputPath = tomlProf.Build.Output
	}
	if tomlProf.Build.Linker != "" {
		profile.Linker = tomlProf.Build.Linker
	}
	profile.Verbose = tomlProf.Build.Verbose

	return profile, nil
}
