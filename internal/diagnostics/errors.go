package diagnostics

import (
	"fmt"
	"strings"

	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

type ParseErrorKind int

const (
	NO_VIABLE_ALT ParseErrorKind = iota
	MISMATCHED_TOKEN
)

// Raised by the parser when no production matches (NO_VIABLE_ALT) or when a
// production requires a specific token (MISMATCHED_TOKEN).
type ParseError struct {
	Kind     ParseErrorKind
	Pos      token.Pos
	Found    string
	Expected []string
	Rule     string
	// Extra location hint, e.g. where an unterminated block was opened
	Context string
}

func (err *ParseError) Error() string {
	prefix := fmt.Sprintf("%s:%d:%d: ", err.Pos.Filename, err.Pos.Line, err.Pos.Column)
	switch err.Kind {
	case MISMATCHED_TOKEN:
		message := fmt.Sprintf("expected %s, not %s", strings.Join(err.Expected, " or "), err.Found)
		if err.Context != "" {
			message += " (" + err.Context + ")"
		}
		return prefix + message
	default:
		if err.Rule != "" {
			return prefix + fmt.Sprintf("unexpected %s while parsing %s", err.Found, err.Rule)
		}
		return prefix + fmt.Sprintf("unexpected %s", err.Found)
	}
}

// A production matched syntactically but one of its guards did not hold.
// Never triggers backtracking.
type PredicateError struct {
	Pos     token.Pos
	Rule    string
	Message string
}

func (err *PredicateError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", err.Pos.Filename, err.Pos.Line, err.Pos.Column, err.Message)
}
