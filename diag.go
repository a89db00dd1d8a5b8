// diag.go: structured diagnostics shared by the lexer, parser, and interpreter.
//
// Each pipeline stage returns its own ordered []Diag; nothing is printed from
// inside the core and nothing is dropped. The caller (see run.go and cmd/lox)
// merges the stage lists and decides how to render them.
package lox

import "fmt"

// Phase identifies which pipeline stage produced a diagnostic.
type Phase int

const (
	PhaseLexical Phase = iota
	PhaseSyntax
	PhaseRuntime
)

func (p Phase) String() string {
	switch p {
	case PhaseLexical:
		return "LEXICAL"
	case PhaseSyntax:
		return "PARSE"
	case PhaseRuntime:
		return "RUNTIME"
	default:
		return "UNKNOWN"
	}
}

// DiagKind enumerates every diagnostic the core can emit.
type DiagKind int

const (
	// Lexical
	UnexpectedCharacter DiagKind = iota
	UnterminatedString

	// Syntax
	ExpectExpression
	ExpectRightParen
	ExpectRightBrace
	ExpectSemicolon
	ExpectIdentifier
	InvalidAssignmentTarget
	NestingTooDeep

	// Runtime
	TypeMismatchUnary
	TypeMismatchBinary
	UndefinedVariable
)

// Diag is a single structured diagnostic. Line is 1-based; Lexeme carries the
// offending token or character when there is one. A syntax diagnostic anchored
// at end of input has an empty Lexeme.
type Diag struct {
	Phase  Phase
	Kind   DiagKind
	Line   int
	Lexeme string
}

// Error renders a one-line header, e.g.
//
//	PARSE ERROR at line 3: expect ';' after statement, got ")"
func (d Diag) Error() string {
	return fmt.Sprintf("%s ERROR at line %d: %s", d.Phase, d.Line, d.Message())
}

// Message is the human text without the phase/line header.
func (d Diag) Message() string {
	switch d.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("unexpected character: %q", d.Lexeme)
	case UnterminatedString:
		return "string was not terminated"
	case ExpectExpression:
		return "expect expression" + d.gotSuffix()
	case ExpectRightParen:
		return "expect ')' after expression" + d.gotSuffix()
	case ExpectRightBrace:
		return "expect '}' after block" + d.gotSuffix()
	case ExpectSemicolon:
		return "expect ';' after statement" + d.gotSuffix()
	case ExpectIdentifier:
		return "expect variable name" + d.gotSuffix()
	case InvalidAssignmentTarget:
		return "invalid assignment target"
	case NestingTooDeep:
		return "expression nesting too deep"
	case TypeMismatchUnary:
		return fmt.Sprintf("operand of %q must be a number", d.Lexeme)
	case TypeMismatchBinary:
		return fmt.Sprintf("invalid operand types for %q", d.Lexeme)
	case UndefinedVariable:
		return fmt.Sprintf("undefined variable: %s", d.Lexeme)
	default:
		return "unknown diagnostic"
	}
}

func (d Diag) gotSuffix() string {
	if d.Lexeme == "" {
		return ""
	}
	return fmt.Sprintf(", got %q", d.Lexeme)
}

// IsIncomplete reports whether every diagnostic in the list describes source
// that merely ended in the middle of a construct: a syntax error anchored at
// end of input, or a string still waiting for its closing quote. REPLs use
// this to prompt for a continuation line instead of reporting an error.
func IsIncomplete(diags []Diag) bool {
	if len(diags) == 0 {
		return false
	}
	for _, d := range diags {
		switch {
		case d.Kind == UnterminatedString:
		case d.Phase == PhaseSyntax && d.Lexeme == "" && d.Kind != NestingTooDeep:
		default:
			return false
		}
	}
	return true
}
