package report

import "fmt"

// TextSpan represents a range or "span" of source text.  It is used to specify
// erroneous or otherwise significant source text in an MLIA program.  Text
// spans are inclusive on both sides: the starting position is the position of
// the first character in the span and the ending position is the position of
// the last character in the span.  The line and column numbers are
// zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// -----------------------------------------------------------------------------

// ErrorKind enumerates the phases of compilation an error can originate from.
type ErrorKind int

const (
	ErrLexical        ErrorKind = iota // Malformed source characters or literals.
	ErrSyntax                          // Token stream rejected by the parser.
	ErrResolution                      // Reference to an unknown name or operator.
	ErrExhaustiveness                  // Match expression with uncovered cases.
	ErrCodegen                         // Failure while lowering to LLVM IR.
	ErrBackend                         // External assembler or linker failure.
	ErrIO                              // Failure reading input or writing output.
)

// Label returns the user-facing label for an error kind: eg. "Syntax" for
// ErrSyntax.  The display layer appends "Error" to it when printing.
func (ek ErrorKind) Label() string {
	switch ek {
	case ErrLexical:
		return "Lexical"
	case ErrSyntax:
		return "Syntax"
	case ErrResolution:
		return "Resolution"
	case ErrExhaustiveness:
		return "Exhaustiveness"
	case ErrCodegen:
		return "Codegen"
	case ErrBackend:
		return "Backend"
	default:
		return "IO"
	}
}

// -----------------------------------------------------------------------------

// CompileError is the error type produced by every phase of the compiler.  The
// driver stops at the first one raised.
type CompileError struct {
	// The phase the error originated from.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  May be nil for errors with no
	// meaningful source position (eg. backend failures).
	Span *TextSpan

	// The index of the offending token in the token stream.  It is -1 for
	// errors that did not originate from a specific token.
	TokenIndex int
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise creates a new compile error of the given kind over the given span.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{
		Kind:       kind,
		Message:    fmt.Sprintf(msg, args...),
		Span:       span,
		TokenIndex: -1,
	}
}

// RaiseToken creates a new compile error attributed to the token at index ndx
// in the token stream.
func RaiseToken(kind ErrorKind, ndx int, span *TextSpan, msg string, args ...interface{}) *CompileError {
	ce := Raise(kind, span, msg, args...)
	ce.TokenIndex = ndx
	return ce
}
