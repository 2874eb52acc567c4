package lexer

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/HicaroD/sketchpp/internal/diagnostics"
	"github.com/HicaroD/sketchpp/internal/hidden"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

type tokenKindTest struct {
	lexeme string
	kind   token.Kind
}

var allFlags = Options{ColorDatatype: true, WebColors: true}

func TestTokenKinds(t *testing.T) {
	filename := "test.pde"

	tests := []*tokenKindTest{
		{"\n", token.NEWLINE},
		{"  \t", token.WHITESPACE},
		{"// comment", token.LINE_COMMENT},
		{"/* block\n comment */", token.BLOCK_COMMENT},
		{"#include <Servo.h>", token.DIRECTIVE},
		{"#define LED \\\n 13", token.DIRECTIVE},

		{"class", token.CLASS},
		{"public", token.PUBLIC},
		{"void", token.VOID},
		{"color", token.COLOR},
		{"instanceof", token.INSTANCEOF},
		{"const", token.CONST},
		{"unsigned", token.ID},
		{"setup", token.ID},
		{"_x$1", token.ID},

		{"42", token.INT_LITERAL},
		{"0x1F", token.INT_LITERAL},
		{"42L", token.LONG_LITERAL},
		{"1.5", token.DOUBLE_LITERAL},
		{".5", token.DOUBLE_LITERAL},
		{"1e10", token.DOUBLE_LITERAL},
		{"2.5E-3", token.DOUBLE_LITERAL},
		{"1.5f", token.FLOAT_LITERAL},
		{"3F", token.FLOAT_LITERAL},
		{"1.5d", token.DOUBLE_LITERAL},
		{"'a'", token.CHAR_LITERAL},
		{"'\\n'", token.CHAR_LITERAL},
		{"\"hi \\\"there\\\"\"", token.STRING_LITERAL},
		{"#FF00AA", token.WEBCOLOR_LITERAL},
		{"#FF00A", token.WEBCOLOR_LITERAL},

		{"(", token.OPEN_PAREN},
		{")", token.CLOSE_PAREN},
		{"{", token.OPEN_CURLY},
		{"}", token.CLOSE_CURLY},
		{"[", token.OPEN_BRACKET},
		{"]", token.CLOSE_BRACKET},
		{";", token.SEMICOLON},
		{",", token.COMMA},
		{".", token.DOT},
		{"...", token.DOT_DOT_DOT},
		{"->", token.ARROW},
		{":", token.COLON},
		{"::", token.COLON_COLON},
		{"?", token.QUESTION},
		{"=", token.EQUAL},
		{"==", token.EQUAL_EQUAL},
		{"!=", token.BANG_EQUAL},
		{"!", token.BANG},
		{"~", token.TILDE},
		{">", token.GREATER},
		{">=", token.GREATER_EQ},
		{"<", token.LESS},
		{"<=", token.LESS_EQ},
		{"+", token.PLUS},
		{"++", token.PLUS_PLUS},
		{"-", token.MINUS},
		{"--", token.MINUS_MINUS},
		{"*", token.STAR},
		{"/", token.SLASH},
		{"%", token.PERCENT},
		{"&", token.AMPERSAND},
		{"&&", token.AND_AND},
		{"|", token.PIPE},
		{"||", token.OR_OR},
		{"^", token.CARET},
		{"<<", token.SHIFT_LEFT},
		{">>", token.SHIFT_RIGHT},
		{">>>", token.USHIFT_RIGHT},
		{"+=", token.PLUS_EQUAL},
		{"<<=", token.SHIFT_LEFT_EQUAL},
		{">>>=", token.USHIFT_RIGHT_EQUAL},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("TestTokenKinds('%s')", test.lexeme), func(t *testing.T) {
			lex := New(filename, []byte(test.lexeme), diagnostics.NewSilent(), allFlags)
			tokens, err := lex.Tokenize()
			if err != nil {
				t.Fatal(err)
			}
			if len(tokens) != 2 {
				t.Fatalf("expected 2 tokens (including EOF), got %d: %v", len(tokens), tokens)
			}
			if tokens[0].Kind != test.kind {
				t.Errorf("expected %s, got %s", test.kind, tokens[0].Kind)
			}
			if string(tokens[0].Lexeme) != test.lexeme {
				t.Errorf("expected lexeme %q, got %q", test.lexeme, tokens[0].Lexeme)
			}
		})
	}
}

func TestFlagsGateSketchTokens(t *testing.T) {
	collector := diagnostics.NewSilent()
	lex := New("test.pde", []byte("color c = #FF00AA;"), collector, Options{})
	tokens, err := lex.Tokenize()
	if err == nil {
		t.Fatalf("expected '#' in the middle of a line to be invalid without web colors")
	}
	if tokens[0].Kind != token.ID {
		t.Errorf("expected 'color' to be an identifier, got %s", tokens[0].Kind)
	}
	if collector.Count(diagnostics.LEXICAL) != 1 {
		t.Errorf("expected 1 lexical diagnostic, got %d", collector.Count(diagnostics.LEXICAL))
	}
}

func TestDirectiveVersusWebColor(t *testing.T) {
	tests := []struct {
		input string
		kinds []token.Kind
	}{
		{"#define X 1\n", []token.Kind{token.DIRECTIVE, token.NEWLINE}},
		{"  #ifdef X\n", []token.Kind{token.WHITESPACE, token.DIRECTIVE, token.NEWLINE}},
		{"#FFFFFF\n", []token.Kind{token.WEBCOLOR_LITERAL, token.NEWLINE}},
		{"x #abc", []token.Kind{token.ID, token.WHITESPACE, token.WEBCOLOR_LITERAL}},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("TestDirectiveVersusWebColor('%s')", test.input), func(t *testing.T) {
			lex := New("test.pde", []byte(test.input), diagnostics.NewSilent(), allFlags)
			tokens, err := lex.Tokenize()
			if err != nil {
				t.Fatal(err)
			}
			var kinds []token.Kind
			for _, tok := range tokens[:len(tokens)-1] {
				kinds = append(kinds, tok.Kind)
			}
			if !reflect.DeepEqual(kinds, test.kinds) {
				t.Errorf("expected %v, got %v", test.kinds, kinds)
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	src := "int a;\n  a = 2;"
	lex := New("pos.pde", []byte(src), diagnostics.NewSilent(), allFlags)
	tokens, err := lex.Tokenize()
	if err != nil {
		t.Fatal(err)
	}

	expected := map[string]token.Pos{
		"int": {Filename: "pos.pde", Line: 1, Column: 1},
		"2":   {Filename: "pos.pde", Line: 2, Column: 7},
	}
	for _, tok := range tokens {
		if pos, ok := expected[string(tok.Lexeme)]; ok {
			if !reflect.DeepEqual(pos, tok.Pos) {
				t.Errorf("expected position %s for %q, got %s", pos, tok.Lexeme, tok.Pos)
			}
		}
	}
}

func TestUnterminatedLiterals(t *testing.T) {
	tests := []string{"\"abc\nx", "'a", "/* never closed"}
	for _, input := range tests {
		t.Run(fmt.Sprintf("TestUnterminatedLiterals('%s')", input), func(t *testing.T) {
			collector := diagnostics.NewSilent()
			lex := New("test.pde", []byte(input), collector, allFlags)
			_, _ = lex.Tokenize()
			if collector.Count(diagnostics.LEXICAL) == 0 {
				t.Errorf("expected a lexical diagnostic")
			}
		})
	}
}

func TestNulIsNotEndOfInput(t *testing.T) {
	src := "x = 1;\x00\ny = 2;\n"
	collector := diagnostics.NewSilent()
	lex := New("test.pde", []byte(src), collector, allFlags)
	tokens, err := lex.Tokenize()
	if err != diagnostics.ErrCompilerErrorFound {
		t.Errorf("expected ErrCompilerErrorFound, got %v", err)
	}
	if collector.Count(diagnostics.LEXICAL) != 1 {
		t.Errorf("expected 1 lexical diagnostic, got %d", collector.Count(diagnostics.LEXICAL))
	}

	var rebuilt strings.Builder
	var nul *token.Token
	for _, tok := range tokens {
		rebuilt.Write(tok.Lexeme)
		if tok.Kind == token.INVALID {
			nul = tok
		}
	}
	if rebuilt.String() != src {
		t.Errorf("expected %q, got %q", src, rebuilt.String())
	}
	if nul == nil || string(nul.Lexeme) != "\x00" || nul.Pos.Line != 1 || nul.Pos.Column != 7 {
		t.Errorf("expected the NUL byte as an invalid token at 1:7, got %v", nul)
	}
	if last := tokens[len(tokens)-1]; last.Kind != token.EOF || last.Pos.Line != 3 {
		t.Errorf("expected EOF on line 3, got %v", last)
	}
}

func TestStreamSeparatesTrivia(t *testing.T) {
	src := "// setup\nvoid setup() {\n  x = 1; /* one */\n}\n"
	channel := hidden.New()
	lex := New("test.pde", []byte(src), diagnostics.NewSilent(), allFlags)
	stream := NewStream(channel, lex)

	var rebuilt strings.Builder
	for _, tok := range stream.Tokens {
		if tok.Kind.IsTrivia() {
			t.Fatalf("trivia %s leaked into the stream", tok)
		}
		items, err := channel.ExtractBefore(tok.Seq + 1)
		if err != nil {
			t.Fatal(err)
		}
		for _, item := range items {
			rebuilt.WriteString(item)
		}
		rebuilt.Write(tok.Lexeme)
	}
	if rebuilt.String() != src {
		t.Errorf("expected %q, got %q", src, rebuilt.String())
	}

	for i, tok := range stream.Tokens {
		if tok.Seq != i+1 {
			t.Errorf("expected seq %d, got %d for %s", i+1, tok.Seq, tok)
		}
	}
	if stream.EOF().Kind != token.EOF {
		t.Errorf("expected stream to end with EOF")
	}
}

func TestStreamKeepsSourceTags(t *testing.T) {
	channel := hidden.New()
	first := New("main.pde", []byte("int a;\n"), diagnostics.NewSilent(), allFlags)
	second := New("tab2.pde", []byte("int b;\n"), diagnostics.NewSilent(), allFlags)
	stream := NewStream(channel, first, second)

	if len(stream.Tokens) != 7 {
		t.Fatalf("expected 7 tokens, got %d", len(stream.Tokens))
	}
	if stream.Tokens[0].Pos.Filename != "main.pde" {
		t.Errorf("expected main.pde, got %s", stream.Tokens[0].Pos.Filename)
	}
	if stream.Tokens[3].Pos.Filename != "tab2.pde" || stream.Tokens[3].Pos.Line != 1 {
		t.Errorf("expected tab2.pde:1, got %s", stream.Tokens[3].Pos)
	}
}
