package preproc

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/diagnostics"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
	"github.com/HicaroD/sketchpp/internal/logging"
	"github.com/HicaroD/sketchpp/internal/parser"
)

func run(t *testing.T, cfg *config.Config, src string) *Result {
	t.Helper()
	result, err := New(cfg, logging.Nop()).Run("Blink", Source{Tag: "blink.pde", Bytes: []byte(src)})
	require.NoError(t, err)
	return result
}

func wiring() *config.Config {
	cfg := config.Default()
	cfg.Dialect = config.WIRING
	return cfg
}

func TestProcessingWrappers(t *testing.T) {
	tests := []struct {
		input     string
		mode      parser.Mode
		className string
		expected  string
	}{
		{
			"x = 1;\ny = 2;\n",
			parser.STATEMENT_LIST,
			"Blink",
			"public class Blink extends PApplet { public void setup() { x = 1;\ny = 2;\nnoLoop();\n}\n}\n",
		},
		{
			"void setup() {\n  size(100, 100);\n}\n",
			parser.FUNCTION_BASED,
			"Blink",
			"public class Blink extends PApplet { public void setup() {\n  size(100, 100);\n}\n}\n",
		},
		{
			"package p; import q.*; public class C {}",
			parser.FULL,
			"C",
			"package p; import q.*; public class C {}\n",
		},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result := run(t, config.Default(), test.input)
			assert.Equal(t, test.mode, result.Mode)
			assert.Equal(t, test.className, result.ClassName)
			assert.Equal(t, test.expected, result.Text)
			assert.Zero(t, result.HeaderLines)
			assert.Zero(t, result.PrototypeCount)
		})
	}
}

func TestExtraImports(t *testing.T) {
	cfg := config.Default()
	cfg.ExtraImports = []string{"java.util.*", "processing.core.*"}
	result := run(t, cfg, "void draw() {}\n")
	assert.Equal(t,
		"import java.util.*; import processing.core.*; public class Blink extends PApplet { public void draw() {}\n}\n",
		result.Text)
}

func TestDefaultClassName(t *testing.T) {
	result, err := New(config.Default(), nil).Run("", Source{Tag: "a.pde", Bytes: []byte("void draw() {}\n")})
	require.NoError(t, err)
	assert.Equal(t, DefaultClassName, result.ClassName)
}

func TestWiringPrototypes(t *testing.T) {
	src := "int add(int a, int b) {\n  return a + b;\n}\nvoid setup() {\n  add(1, 2);\n}\n"
	result := run(t, wiring(), src)

	expected := "#include \"WProgram.h\"\nint add(int a, int b);\n" + src + "void loop() {}\n"
	assert.Equal(t, expected, result.Text)
	assert.Equal(t, 2, result.HeaderLines)
	assert.Equal(t, 1, result.PrototypeCount)
	assert.Empty(t, result.ClassName)

	origin, ok := result.LineMap.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "blink.pde", origin.Tag)
	assert.Equal(t, 1, origin.Line)

	_, ok = result.LineMap.Lookup(1)
	assert.False(t, ok)
}

func TestWiringPrototypeSelection(t *testing.T) {
	src := "void f();\nvoid f() {}\nint g(int x) { return x; }\nint g(int x) { return x; }\nvoid loop() {}\n"

	result := run(t, wiring(), src)
	require.Len(t, result.Prototypes, 1)
	assert.Equal(t, "int g(int x);", result.Prototypes[0].String())
	assert.Equal(t, "#include \"WProgram.h\"\nint g(int x);\n"+src+"void setup() {}\n", result.Text)

	cfg := wiring()
	cfg.SkipPrototypes = []string{"g", "setup", "loop"}
	result = run(t, cfg, src)
	assert.Empty(t, result.Prototypes)
	assert.Equal(t, 1, result.HeaderLines)
}

func TestWiringStatementList(t *testing.T) {
	cfg := wiring()
	cfg.Header = "#include <Arduino.h>"
	cfg.ExtraImports = []string{"Servo.h"}
	result := run(t, cfg, "pinMode(13, OUTPUT);\n")

	assert.Equal(t, parser.STATEMENT_LIST, result.Mode)
	assert.Equal(t,
		"#include <Arduino.h>\n#include \"Servo.h\"\nvoid setup() { pinMode(13, OUTPUT);\n}\nvoid loop() {}\n",
		result.Text)
	assert.Equal(t, 2, result.HeaderLines)
}

func TestWiringKeepsMethodsAsWritten(t *testing.T) {
	result := run(t, wiring(), "void setup() {}\nvoid loop() {}\n")
	assert.Equal(t, "#include \"WProgram.h\"\nvoid setup() {}\nvoid loop() {}\n", result.Text)
}

func TestWiringPlainCpp(t *testing.T) {
	src := "int helper(int);\n" +
		"struct point { int x; };\n" +
		"int kr(a, b)\nint a;\nchar *b;\n{\n  return a;\n}\n" +
		"void setup() {\n  helper(kr(1, 0));\n}\n" +
		"int helper(int x) {\n  return x;\n}\n"
	result := run(t, wiring(), src)

	assert.Equal(t, parser.FUNCTION_BASED, result.Mode)
	assert.Empty(t, result.Diags)
	require.Len(t, result.Prototypes, 1)
	assert.True(t, result.Prototypes[0].KR)
	assert.Equal(t, []string{"kr", "setup", "helper"}, result.Symbols.Functions)
	assert.Equal(t, "#include \"WProgram.h\"\nint kr(int a, char *b);\n"+src+"void loop() {}\n", result.Text)
	assert.Equal(t, 2, result.HeaderLines)

	origin, ok := result.LineMap.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, "blink.pde", origin.Tag)
	assert.Equal(t, 3, origin.Line)

	report, err := New(wiring(), logging.Nop()).RoundTrip(Source{Tag: "w.ino", Bytes: []byte(src)})
	require.NoError(t, err)
	assert.True(t, report.Identical, report.Diff)
}

func TestWiringPlainCppStillReportsLexicalErrors(t *testing.T) {
	result, err := New(wiring(), logging.Nop()).Run("W",
		Source{Tag: "w.ino", Bytes: []byte("int helper(int);\nchar *s = \"open;\n")})
	assert.ErrorIs(t, err, diagnostics.ErrCompilerErrorFound)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Diags)
	for _, diag := range result.Diags {
		assert.Equal(t, diagnostics.LEXICAL, diag.Kind)
	}
}

func TestSeveralSources(t *testing.T) {
	result, err := New(config.Default(), logging.Nop()).Run("Tabs",
		Source{Tag: "a.pde", Bytes: []byte("void setup() {}")},
		Source{Tag: "b.pde", Bytes: []byte("void draw() {}\n")},
	)
	require.NoError(t, err)
	assert.Equal(t,
		"public class Tabs extends PApplet { public void setup() {}\npublic void draw() {}\n}\n",
		result.Text)

	origin, ok := result.LineMap.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "b.pde", origin.Tag)
	assert.Equal(t, 1, origin.Line)
}

func TestDiagnosticsAreReturned(t *testing.T) {
	pp := New(config.Default(), logging.Nop())
	result, err := pp.Run("Broken", Source{Tag: "broken.pde", Bytes: []byte("void setup() {\n  int x = ;\n}\n")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostics.ErrCompilerErrorFound))
	require.NotNil(t, result)
	require.NotEmpty(t, result.Diags)
	assert.Equal(t, 2, result.Diags[0].Pos.Line)
	assert.Empty(t, result.Text)
}

func TestCollectorFactory(t *testing.T) {
	pp := New(config.Default(), logging.Nop())
	var collectors []*diagnostics.Collector
	pp.NewCollector = func() *diagnostics.Collector {
		collector := diagnostics.NewSilent()
		collectors = append(collectors, collector)
		return collector
	}

	_, err := pp.Run("A", Source{Tag: "a.pde", Bytes: []byte("}\n")})
	require.Error(t, err)
	require.Len(t, collectors, 1)
	assert.True(t, collectors[0].HasErrors())
}

func TestParseTreeOutput(t *testing.T) {
	cfg := config.Default()
	result := run(t, cfg, "void draw() {}\n")
	assert.Nil(t, result.ParseTree)

	cfg.Flags.OutputParseTree = true
	result = run(t, cfg, "void draw() {}\n")
	assert.Contains(t, string(result.ParseTree), "kind: ROOT")
	assert.Contains(t, string(result.ParseTree), "kind: METHOD_DEF")
}

func TestDecodeSource(t *testing.T) {
	text, label, err := DecodeSource([]byte("\xef\xbb\xbfx = 1;\n"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1;\n", text)
	assert.Equal(t, "UTF-8", label)

	text, label, err = DecodeSource([]byte("// caf\xe9 cr\xe8me\nx = 1;\n"))
	require.NoError(t, err)
	assert.NotEqual(t, "UTF-8", label)
	assert.True(t, utf8.ValidString(text))
	assert.Contains(t, text, "x = 1;")
}

func TestCharsetIsRecorded(t *testing.T) {
	result := run(t, config.Default(), "void draw() {}\n")
	assert.Equal(t, map[string]string{"blink.pde": "UTF-8"}, result.Charsets)
}

func TestSubstituteUnicode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"caf\u00e9", "caf\\u00e9"},
		{"a\u00a0b", "a b"},
		{"\U0001F600", "\\ud83d\\ude00"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, substituteUnicode(test.input))
	}

	cfg := config.Default()
	cfg.Flags.SubstituteUnicode = true
	result := run(t, cfg, "String s = \"\u00e9\";\n")
	assert.Contains(t, result.Text, "String s = \"\\u00e9\";")
}

func TestTrailingNewline(t *testing.T) {
	assert.Equal(t, "", ensureTrailingNewline(""))
	assert.Equal(t, "a\n", ensureTrailingNewline("a"))
	assert.Equal(t, "a\n", ensureTrailingNewline("a\n"))
}

func TestRoundTrip(t *testing.T) {
	pp := New(config.Default(), logging.Nop())
	report, err := pp.RoundTrip(
		Source{Tag: "a.pde", Bytes: []byte("color c = #FF00AA;\nvoid setup() {\n  float f = 1.5; // half\n}")},
		Source{Tag: "b.pde", Bytes: []byte("void draw() { int i = int(2.5); }\n")},
	)
	require.NoError(t, err)
	assert.True(t, report.Identical, report.Diff)
	assert.Empty(t, report.Diff)
	assert.Equal(t, report.Expected, report.Got)
	assert.Equal(t, "color c = #FF00AA;\nvoid setup() {\n  float f = 1.5; // half\n}\nvoid draw() { int i = int(2.5); }\n", report.Got)
}

func TestRoundTripReportsDiagnostics(t *testing.T) {
	pp := New(config.Default(), logging.Nop())
	_, err := pp.RoundTrip(Source{Tag: "a.pde", Bytes: []byte("void setup() {\n")})
	assert.ErrorIs(t, err, diagnostics.ErrCompilerErrorFound)
}

func TestNulByteIsReported(t *testing.T) {
	src := Source{Tag: "a.pde", Bytes: []byte("x = 1;\x00\ny = 2;\n")}
	pp := New(config.Default(), logging.Nop())

	result, err := pp.Run("Nul", src)
	assert.ErrorIs(t, err, diagnostics.ErrCompilerErrorFound)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Diags)
	assert.Equal(t, diagnostics.LEXICAL, result.Diags[0].Kind)
	assert.Equal(t, 1, result.Diags[0].Pos.Line)
	assert.Equal(t, 7, result.Diags[0].Pos.Column)

	_, err = pp.RoundTrip(src)
	assert.ErrorIs(t, err, diagnostics.ErrCompilerErrorFound)
}

func TestTokensKeepTrivia(t *testing.T) {
	pp := New(config.Default(), logging.Nop())
	tokens, diags, err := pp.Tokens(Source{Tag: "a.pde", Bytes: []byte("int a; // c\n")})
	require.NoError(t, err)
	assert.Empty(t, diags)

	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.INT, token.WHITESPACE, token.ID, token.SEMICOLON, token.WHITESPACE,
		token.LINE_COMMENT, token.NEWLINE, token.EOF,
	}, kinds)
}
