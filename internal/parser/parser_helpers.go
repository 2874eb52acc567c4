package parser

import (
	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/diagnostics"
	"github.com/HicaroD/sketchpp/internal/hidden"
	"github.com/HicaroD/sketchpp/internal/lexer"
)

const defaultFilename = "test.pde"

// Useful for testing
func NewFromSource(src string, flags config.Flags) (*Parser, *diagnostics.Collector) {
	collector := diagnostics.NewSilent()
	lex := lexer.New(defaultFilename, []byte(src), collector, LexerOptions(flags))
	stream := lexer.NewStream(hidden.New(), lex)
	return New(stream, collector, flags), collector
}

// Useful for testing
func ParseProgramFrom(src string, flags config.Flags) (*Program, *diagnostics.Collector, error) {
	parser, collector := NewFromSource(src, flags)
	program, err := parser.ParseProgram()
	return program, collector, err
}

// Useful for testing
func ParseExprFrom(expr string, flags config.Flags) (*ast.Tree, ast.NodeID, error) {
	parser, collector := NewFromSource(expr, flags)
	node, err := parser.parseExpression()
	if err != nil {
		return nil, ast.NoNode, err
	}
	if collector.HasErrors() {
		return parser.tree, node, diagnostics.ErrCompilerErrorFound
	}
	return parser.tree, node, nil
}

// Useful for testing
func ParseStatementFrom(stmt string, flags config.Flags) (*ast.Tree, ast.NodeID, error) {
	parser, collector := NewFromSource(stmt, flags)
	block := parser.tree.Make(ast.KIND_SLIST, "")
	if err := parser.parseBlockStatement(block); err != nil {
		return nil, ast.NoNode, err
	}
	if collector.HasErrors() {
		return parser.tree, block, diagnostics.ErrCompilerErrorFound
	}
	return parser.tree, block, nil
}
