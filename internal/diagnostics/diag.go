package diagnostics

import (
	"fmt"

	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

type DiagKind int

const (
	SYNTAX DiagKind = iota
	SEMANTIC_PREDICATE
	LEXICAL
)

func (kind DiagKind) String() string {
	switch kind {
	case SYNTAX:
		return "syntax error"
	case SEMANTIC_PREDICATE:
		return "semantic error"
	case LEXICAL:
		return "lexical error"
	}
	return "unknown"
}

type Diag struct {
	Kind    DiagKind
	Pos     token.Pos
	Message string
}

func NewDiag(kind DiagKind, pos token.Pos, format string, args ...any) Diag {
	return Diag{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf("%s:%d:%d: %s", pos.Filename, pos.Line, pos.Column, fmt.Sprintf(format, args...)),
	}
}
