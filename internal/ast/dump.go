package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func (tree *Tree) Dump(w io.Writer, root NodeID) error {
	return tree.dump(w, root, 0)
}

func (tree *Tree) dump(w io.Writer, id NodeID, depth int) error {
	node := tree.Get(id)
	if node == nil {
		return nil
	}
	line := strings.Repeat("  ", depth) + node.Kind.String()
	if node.Text != "" {
		line += " " + strconv.Quote(node.Text)
	}
	if node.Dup {
		line += " (dup)"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for child := node.first; child != NoNode; child = tree.NextSibling(child) {
		if err := tree.dump(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Parse tree as a YAML document, one mapping per node.
func (tree *Tree) ToYAML(root NodeID) *yaml.Node {
	node := tree.Get(root)
	if node == nil {
		return &yaml.Node{Kind: yaml.MappingNode}
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	addScalar := func(key, value string, tag string) {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: tag},
		)
	}

	addScalar("kind", node.Kind.String(), "!!str")
	if node.Text != "" {
		addScalar("text", node.Text, "!!str")
	}
	if node.Tok != nil {
		addScalar("pos", fmt.Sprintf("%s:%d:%d", node.Tok.Pos.Filename, node.Tok.Pos.Line, node.Tok.Pos.Column), "!!str")
	}
	if node.Dup {
		addScalar("dup", "true", "!!bool")
	}

	if node.first != NoNode {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for child := node.first; child != NoNode; child = tree.NextSibling(child) {
			children.Content = append(children.Content, tree.ToYAML(child))
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "children"},
			children,
		)
	}
	return mapping
}

func (tree *Tree) WriteYAML(w io.Writer, root NodeID) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(tree.ToYAML(root)); err != nil {
		return err
	}
	return encoder.Close()
}

// Compact one-line rendering, e.g. (BINARY_EXPR:+ IDENT:a INT_LITERAL:1).
// Dup nodes are marked with a trailing '*'.
func (tree *Tree) SExpr(id NodeID) string {
	node := tree.Get(id)
	if node == nil {
		return "<nil>"
	}
	label := node.Kind.String()
	if node.Text != "" {
		label += ":" + node.Text
	}
	if node.Dup {
		label += "*"
	}
	if node.first == NoNode {
		return label
	}
	var sb strings.Builder
	sb.WriteString("(" + label)
	for child := node.first; child != NoNode; child = tree.NextSibling(child) {
		sb.WriteString(" " + tree.SExpr(child))
	}
	sb.WriteString(")")
	return sb.String()
}
