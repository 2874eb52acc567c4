package testutil

import (
	"github.com/HicaroD/sketchpp/internal/diagnostics"
	"github.com/HicaroD/sketchpp/internal/hidden"
	"github.com/HicaroD/sketchpp/internal/lexer"
)

const DefaultFilename = "test.pde"

// Every lexer option on
var AllOptions = lexer.Options{ColorDatatype: true, WebColors: true}

func NewLexer(src []byte, filename string) *lexer.Lexer {
	lex, _ := NewLexerWithCollector(src, filename, AllOptions)
	return lex
}

func NewLexerWithCollector(src []byte, filename string, opts lexer.Options) (*lexer.Lexer, *diagnostics.Collector) {
	if filename == "" {
		filename = DefaultFilename
	}
	collector := diagnostics.NewSilent()
	return lexer.New(filename, src, collector, opts), collector
}

// Stream over a single source, trivia in a fresh channel
func NewStream(src string, filename string, opts lexer.Options) (*lexer.Stream, *diagnostics.Collector) {
	lex, collector := NewLexerWithCollector([]byte(src), filename, opts)
	return lexer.NewStream(hidden.New(), lex), collector
}
