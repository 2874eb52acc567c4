// Package emitter writes a parsed sketch back out as text. Tokens come from
// the tree, everything else (whitespace, comments, directives and the
// punctuation the tree does not keep) comes back from the hidden channel in
// between, so the output matches the input except where a rewrite applies.
package emitter

import (
	"fmt"
	"strings"

	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/hidden"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

type Emitter struct {
	tree   *ast.Tree
	hidden *hidden.Channel
	flags  config.Flags

	out strings.Builder

	lines  LineMap
	line   int
	mapped bool
}

func New(tree *ast.Tree, channel *hidden.Channel, flags config.Flags) *Emitter {
	return &Emitter{tree: tree, hidden: channel, flags: flags, line: 1}
}

// Writes the tree below root, then whatever is left in the channel. An
// emitter is good for one pass: the channel is drained by it.
func (e *Emitter) Emit(root ast.NodeID) (string, error) {
	if err := e.print(root); err != nil {
		return "", err
	}
	if end := e.hidden.MaxKey() + 1; end > e.hidden.Low() {
		if err := e.flushBefore(end); err != nil {
			return "", err
		}
	}
	return e.out.String(), nil
}

func (e *Emitter) LineMap() *LineMap { return &e.lines }

func (e *Emitter) print(id ast.NodeID) error {
	node := e.tree.Get(id)
	if node == nil || node.Dup {
		return nil
	}

	switch node.Kind {
	// the `;` is in the channel
	case ast.KIND_SEMI, ast.KIND_EMPTY_STAT, ast.KIND_EMPTY_FIELD:
		return nil

	case ast.KIND_CLASS_DEF, ast.KIND_INTERFACE_DEF:
		children := e.tree.Children(id)
		if len(children) > 0 {
			if err := e.print(children[0]); err != nil {
				return err
			}
			children = children[1:]
		}
		if err := e.printOwn(id); err != nil {
			return err
		}
		return e.printAll(children)

	case ast.KIND_METHOD_DEF:
		if e.flags.PublicMethods && !e.hasVisibility(id) {
			if err := e.synthesize(id, "public "); err != nil {
				return err
			}
		}
		return e.printChildren(id)

	case ast.KIND_CONSTRUCTOR_CAST:
		if !e.flags.EnhancedCasting {
			return e.printChildren(id)
		}
		target := e.tree.FirstChild(e.tree.FirstChild(id))
		helper := CastHelper(e.flags.CastHelperPrefix, e.tree.Text(target))
		if err := e.printToken(target, helper); err != nil {
			return err
		}
		return e.print(e.tree.Child(id, 1))

	case ast.KIND_BINARY_EXPR, ast.KIND_ASSIGN_EXPR, ast.KIND_INSTANCEOF,
		ast.KIND_TERNARY_EXPR, ast.KIND_DOT, ast.KIND_ARROW:
		children := e.tree.Children(id)
		if len(children) == 0 {
			return e.printOwn(id)
		}
		if err := e.print(children[0]); err != nil {
			return err
		}
		if err := e.printOwn(id); err != nil {
			return err
		}
		return e.printAll(children[1:])

	case ast.KIND_POSTFIX_EXPR:
		if err := e.printChildren(id); err != nil {
			return err
		}
		return e.printOwn(id)
	}

	if node.Tok == nil {
		return e.printChildren(id)
	}
	if err := e.printOwn(id); err != nil {
		return err
	}
	return e.printChildren(id)
}

func (e *Emitter) printChildren(id ast.NodeID) error {
	for child := e.tree.FirstChild(id); child != ast.NoNode; child = e.tree.NextSibling(child) {
		if err := e.print(child); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) printAll(ids []ast.NodeID) error {
	for _, id := range ids {
		if err := e.print(id); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) printOwn(id ast.NodeID) error {
	if e.tree.Tok(id) == nil {
		return nil
	}
	return e.printToken(id, e.rewrite(id))
}

// Writes text in place of the token of id, after the trivia before it.
func (e *Emitter) printToken(id ast.NodeID, text string) error {
	tok := e.tree.Tok(id)
	if err := e.flushBefore(tok.Seq + 1); err != nil {
		return err
	}
	e.write(text, tok)
	return nil
}

// Writes text right in front of the first token below id, after the
// trivia leading to it.
func (e *Emitter) synthesize(id ast.NodeID, text string) error {
	if first := e.firstSeq(id); first > 0 {
		if err := e.flushBefore(first + 1); err != nil {
			return err
		}
	}
	e.write(text, nil)
	return nil
}

func (e *Emitter) firstSeq(id ast.NodeID) int {
	node := e.tree.Get(id)
	if node == nil || node.Dup {
		return 0
	}
	first := 0
	if node.Tok != nil {
		first = node.Tok.Seq
	}
	for child := e.tree.FirstChild(id); child != ast.NoNode; child = e.tree.NextSibling(child) {
		if seq := e.firstSeq(child); seq > 0 && (first == 0 || seq < first) {
			first = seq
		}
	}
	return first
}

// A synthesized text may already have flushed up to seq.
func (e *Emitter) flushBefore(seq int) error {
	if seq == e.hidden.Low() {
		return nil
	}
	items, err := e.hidden.ExtractBefore(seq)
	if err != nil {
		return fmt.Errorf("emitting token %d: %w", seq-1, err)
	}
	for _, item := range items {
		e.write(item, nil)
	}
	return nil
}

func (e *Emitter) write(text string, tok *token.Token) {
	if tok != nil && !e.mapped {
		e.lines.set(e.line, Origin{Tag: tok.Pos.Filename, Line: tok.Pos.Line})
		e.mapped = true
	}
	e.out.WriteString(text)
	if n := strings.Count(text, "\n"); n > 0 {
		e.line += n
		e.mapped = false
	}
}
