package syntax

import (
	"strconv"
	"strings"
	"unicode"

	"mliac/report"
)

// Lexer is responsible for tokenizing a source file.  It is a table-driven
// DFA: each input character is classified into a character class and the
// transition table maps the pair of current state and class to the next
// state.  A missing transition flushes the accumulated lexeme as a token and
// reprocesses the character from the start state.
type Lexer struct {
	src     string
	tokBuff *strings.Builder
	tokens  []*Token

	line, col           int
	startLine, startCol int
	endLine, endCol     int
}

// NewLexer creates a new lexer for the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:     src,
		tokBuff: &strings.Builder{},
	}
}

// Enumeration of lexer states.
const (
	stateStart           = iota // No lexeme in progress.
	stateDigit                  // Inside an integer literal.
	statePipeOrIdent            // Saw `|`: pipe or start of an identifier.
	stateAssignStart            // Saw `<`: may fuse into `<-`.
	stateAssignComplete         // Saw `<-`: assign unless the identifier continues.
	stateIdentifier             // Inside an identifier.
	stateArrowStart             // Saw `-`: arrow, signed literal, or identifier.
	stateArrowComplete          // Saw `->`: arrow unless the identifier continues.
	stateParenLOrComment        // Saw `(`: comment opener when followed by `*`.
	stateComment                // Inside a `(* ... *)` comment.
	stateCommentMayClose        // Saw `*` inside a comment.

	numStates
)

// Enumeration of character classes.
const (
	classDigit      = iota // 0-9
	classLowerAlpha        // a-z and Latin-1 lowercase letters
	classUpperAlpha        // A-Z and Latin-1 uppercase letters
	classLess              // <
	classGreater           // >
	classMinus             // -
	classPlus              // +
	classStar              // *
	classSlash             // /
	classEquals            // =
	classExclam            // !
	classPercent           // %
	classCaret             // ^
	classUnderscore        // _
	classPipe              // |
	classLParen            // (
	classRParen            // )
	classSemi              // ;
	classWhitespace        // any whitespace
	classPunct             // reserved punctuation: { } [ ] . :
	classAmpersand         // &

	numClasses
)

// Sentinel transition table cells: tNone flushes the pending lexeme and
// reprocesses the character from the start state; tBad is an immediate
// lexical error.
const (
	tNone = -1
	tBad  = -2
)

// stateTransitions maps [state][class] to the next state.
var stateTransitions = [numStates][numClasses]int8{
	// stateStart
	{1, 5, 5, 3, 5, 6, 5, 5, 5, 5, 5, 5, 5, 5, 2, 8, 0, 0, 0, tNone, 5},
	// stateDigit
	{1, tBad, tBad, tBad, tBad, tBad, tBad, tBad, tBad, tBad, tBad, tBad, tBad, tBad, tNone, tNone, tNone, tNone, tNone, tNone, tBad},
	// statePipeOrIdent
	{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, tNone, tNone, tNone, tNone, tNone, tNone, 5},
	// stateAssignStart
	{5, 5, 5, 5, 5, 4, 5, 5, 5, 5, 5, 5, 5, 5, tNone, tNone, tNone, tNone, tNone, tNone, 5},
	// stateAssignComplete
	{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, tNone, tNone, tNone, tNone, tNone, tNone, 5},
	// stateIdentifier
	{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, tNone, tNone, tNone, tNone, tNone, tNone, 5},
	// stateArrowStart
	{1, 5, 5, 5, 7, 5, 5, 5, 5, 5, 5, 5, 5, 5, tNone, tNone, tNone, tNone, tNone, tNone, 5},
	// stateArrowComplete
	{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, tNone, tNone, tNone, tNone, tNone, tNone, 5},
	// stateParenLOrComment
	{tNone, tNone, tNone, tNone, tNone, tNone, tNone, 9, tNone, tNone, tNone, tNone, tNone, tNone, tNone, tNone, tNone, tNone, tNone, tNone, tNone},
	// stateComment
	{9, 9, 9, 9, 9, 9, 9, 10, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9},
	// stateCommentMayClose
	{9, 9, 9, 9, 9, 9, 9, 10, 9, 9, 9, 9, 9, 9, 9, 9, 0, 9, 9, 9, 9},
}

// classifyChar returns the character class of c or -1 if c does not belong to
// the source alphabet.
func classifyChar(c rune) int {
	switch {
	case '0' <= c && c <= '9':
		return classDigit
	case 'a' <= c && c <= 'z', 0x00DF <= c && c <= 0x00F6, 0x00F8 <= c && c <= 0x00FF:
		return classLowerAlpha
	case 'A' <= c && c <= 'Z', 0x00C0 <= c && c <= 0x00D6, 0x00D8 <= c && c <= 0x00DE:
		return classUpperAlpha
	}

	switch c {
	case '<':
		return classLess
	case '>':
		return classGreater
	case '-':
		return classMinus
	case '+':
		return classPlus
	case '*':
		return classStar
	case '/':
		return classSlash
	case '=':
		return classEquals
	case '!':
		return classExclam
	case '%':
		return classPercent
	case '^':
		return classCaret
	case '_':
		return classUnderscore
	case '&':
		return classAmpersand
	case '|':
		return classPipe
	case '(':
		return classLParen
	case ')':
		return classRParen
	case ';':
		return classSemi
	case '{', '}', '[', ']', '.', ':':
		return classPunct
	}

	if unicode.IsSpace(c) {
		return classWhitespace
	}

	return -1
}

// isIdentifierChar returns whether c can continue an identifier.  It is used
// by the operator fusion check: `<-` and `->` only become Assign and Arrow
// tokens when the character after them cannot extend an identifier.
func isIdentifierChar(c rune) bool {
	switch classifyChar(c) {
	case classDigit, classLowerAlpha, classUpperAlpha, classLess, classGreater,
		classMinus, classPlus, classStar, classSlash, classEquals, classExclam,
		classPercent, classCaret, classUnderscore, classAmpersand, classPipe:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// Tokenize runs the DFA over the full source text and returns the token
// stream.  It stops at the first lexical error.
func (l *Lexer) Tokenize() ([]*Token, error) {
	chars := []rune(l.src)
	state := stateStart

	for ndx := 0; ndx < len(chars); {
		c := chars[ndx]
		next := rune(-1)
		if ndx+1 < len(chars) {
			next = chars[ndx+1]
		}

		class := classifyChar(c)
		if class < 0 {
			return nil, report.Raise(report.ErrLexical, l.hereSpan(), "unexpected character `%c`", c)
		}

		switch target := stateTransitions[state][class]; target {
		case tBad:
			return nil, report.Raise(report.ErrLexical, l.hereSpan(), "invalid character `%c` in integer literal", c)
		case tNone:
			// The start state can make no progress on this character so
			// reprocessing it would loop forever.
			if state == stateStart {
				return nil, report.Raise(report.ErrLexical, l.hereSpan(), "unexpected character `%c`", c)
			}

			if err := l.finalizeLexeme(state); err != nil {
				return nil, err
			}

			state = stateStart
		default:
			l.runTransitionAction(state, class, c, next)

			if c == '\n' {
				l.line++
				l.col = 0
			} else {
				l.col++
			}

			ndx++
			state = int(target)
		}
	}

	if state == stateComment || state == stateCommentMayClose {
		return nil, report.Raise(report.ErrLexical, l.hereSpan(), "unterminated comment")
	}

	if err := l.finalizeLexeme(state); err != nil {
		return nil, err
	}

	return l.tokens, nil
}

// runTransitionAction performs the side effect attached to the transition out
// of state on class: accumulating lexeme characters, emitting single
// character tokens, and fusing the two character operators.
func (l *Lexer) runTransitionAction(state, class int, c, next rune) {
	switch state {
	case stateStart:
		switch class {
		case classLParen:
			// `(` opens a comment when immediately followed by `*`.
			if next != '*' {
				l.emitHere(TOK_LPAREN, "(")
			}
		case classRParen:
			l.emitHere(TOK_RPAREN, ")")
		case classSemi:
			l.emitHere(TOK_SEMI, ";")
		case classWhitespace:
		default:
			l.appendChar(c)
		}
	case stateDigit:
		l.appendChar(c)
	case stateAssignStart:
		l.appendChar(c)
		if class == classMinus {
			l.maybeEmitFused(TOK_ASSIGN, "<-", next)
		}
	case stateArrowStart:
		l.appendChar(c)
		if class == classGreater {
			l.maybeEmitFused(TOK_ARROW, "->", next)
		}
	case stateParenLOrComment, stateComment, stateCommentMayClose:
		// Comment text is discarded.
	default:
		l.appendChar(c)
	}
}

// appendChar adds a character to the pending lexeme, recording the start
// position of the token when the lexeme begins.
func (l *Lexer) appendChar(c rune) {
	if l.tokBuff.Len() == 0 {
		l.startLine, l.startCol = l.line, l.col
	}

	l.endLine, l.endCol = l.line, l.col
	l.tokBuff.WriteRune(c)
}

// maybeEmitFused emits a fused two character operator token if the pending
// lexeme is exactly its spelling and the next character cannot extend it into
// an identifier.
func (l *Lexer) maybeEmitFused(kind int, spelling string, next rune) {
	if l.tokBuff.String() == spelling && !isIdentifierChar(next) {
		l.tokens = append(l.tokens, &Token{
			Kind:  kind,
			Value: spelling,
			Span:  l.lexemeSpan(),
		})
		l.tokBuff.Reset()
	}
}

// emitHere emits a single character token at the current position.
func (l *Lexer) emitHere(kind int, value string) {
	l.tokens = append(l.tokens, &Token{
		Kind:  kind,
		Value: value,
		Span:  l.hereSpan(),
	})
}

// finalizeLexeme flushes the pending lexeme as a token.  The state the DFA
// was in decides how the lexeme is interpreted.
func (l *Lexer) finalizeLexeme(state int) error {
	if l.tokBuff.Len() == 0 {
		return nil
	}

	lexeme := l.tokBuff.String()
	l.tokBuff.Reset()

	switch state {
	case stateDigit:
		if _, err := strconv.ParseInt(lexeme, 10, 64); err != nil {
			return report.Raise(report.ErrLexical, l.lexemeSpan(), "integer literal `%s` out of range", lexeme)
		}

		l.tokens = append(l.tokens, &Token{Kind: TOK_INTLIT, Value: lexeme, Span: l.lexemeSpan()})
	case statePipeOrIdent, stateAssignStart, stateAssignComplete,
		stateIdentifier, stateArrowStart, stateArrowComplete:

		kind, ok := keywords[lexeme]
		if !ok {
			kind = TOK_IDENT
		}

		l.tokens = append(l.tokens, &Token{Kind: kind, Value: lexeme, Span: l.lexemeSpan()})
	}

	return nil
}

func (l *Lexer) hereSpan() *report.TextSpan {
	return &report.TextSpan{StartLine: l.line, StartCol: l.col, EndLine: l.line, EndCol: l.col}
}

func (l *Lexer) lexemeSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.endLine,
		EndCol:    l.endCol,
	}
}
