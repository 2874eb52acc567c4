package emitter

import (
	"strings"

	"github.com/huandu/xstrings"

	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

var visibilities = map[string]bool{"public": true, "protected": true, "private": true}

// Text to write for a node's own token, after the enabled rewrites.
func (e *Emitter) rewrite(id ast.NodeID) string {
	text := e.tree.Text(id)
	switch e.tree.Kind(id) {
	case ast.KIND_BUILTIN_TYPE:
		if e.flags.ColorDatatype && e.tree.Tok(id).Kind == token.COLOR {
			return "int"
		}
	case ast.KIND_WEBCOLOR_LITERAL:
		if e.flags.WebColors {
			return WebColor(text)
		}
	case ast.KIND_DOUBLE_LITERAL:
		if e.flags.SubstituteFloats {
			return FloatLiteral(text)
		}
	}
	return text
}

// #FF00AA -> 0xffFF00AA
func WebColor(lexeme string) string {
	return "0xff" + strings.TrimPrefix(lexeme, "#")
}

// 1.5 -> 1.5f. A literal spelled with a d suffix asked for a double and is
// left alone.
func FloatLiteral(lexeme string) string {
	if strings.HasSuffix(lexeme, "d") || strings.HasSuffix(lexeme, "D") {
		return lexeme
	}
	return lexeme + "f"
}

// int -> PApplet.toInt
func CastHelper(prefix, typeName string) string {
	return prefix + xstrings.FirstRuneToUpper(typeName)
}

func (e *Emitter) hasVisibility(def ast.NodeID) bool {
	mods := e.tree.ChildOfKind(def, ast.KIND_MODIFIERS)
	for _, mod := range e.tree.Children(mods) {
		if visibilities[e.tree.Text(mod)] {
			return true
		}
	}
	return false
}
