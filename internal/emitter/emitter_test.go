package emitter

import (
	"fmt"
	"testing"

	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/parser"
)

func emit(t *testing.T, src string, flags config.Flags) (string, *Emitter) {
	t.Helper()
	p, collector := parser.NewFromSource(src, flags)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v %v", err, collector.Diags)
	}
	e := New(program.Tree, p.Hidden(), flags)
	out, err := e.Emit(program.Root)
	if err != nil {
		t.Fatalf("emit error: %v", err)
	}
	if left := p.Hidden().Len(); left != 0 {
		t.Fatalf("expected the hidden channel to be drained, %d items left", left)
	}
	return out, e
}

func TestRoundTripWithRewritesOff(t *testing.T) {
	tests := []string{
		"",
		"// only a comment",
		"x = 1;\ny = 2;\n",
		"// comment\nint x = 1;\nvoid setup() {\n  size(100, 100); /* c */\n}\n",
		"package p;\nimport q.*;\npublic class C {\n  int[] a = {1, 2,};\n}\n",
		"void draw() {\n  for (int i = 0; i < 10; i++) {\n    if (i % 2 == 0) continue; else x += i;\n  }\n" +
			"  float f = (float) x / 2.5;\n  String s = a ? \"y\" : \"n\";\n}\n",
		"class Ball {\n  float x, y;\n  Ball(float x) { this.x = x; }\n  void move() { x++; }\n}\nvoid setup() {}\n",
		"#include <foo.h>\nint a;\nvoid loop() {\n  switch (a) {\n    case 1: a--; break;\n    default: a = -a;\n  }\n" +
			"  do { a <<= 1; } while (a < 100);\n" +
			"  try { a = b[0]; } catch (Exception e) { } finally { }\n}\n",
		"void f()\t{ ;; Object o = new Object() { public String toString() { return \"o\"; } }; }\n",
		"int[] v = new int[3];\nouter: for (;;) { break outer; }\nboolean b = o instanceof String;\n",
		"unsigned long t = 0;\nvoid loop() {\n  char *p = &buf[0];\n  t = millis();\n}\n",
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestRoundTrip('%s')", test), func(t *testing.T) {
			out, _ := emit(t, test, config.Verbatim())
			if out != test {
				t.Errorf("expected %q, got %q", test, out)
			}
		})
	}
}

func TestRewrites(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"color c = #FF00AA;\n", "int c = 0xffFF00AA;\n"},
		{"color c = color(255, 0, 0);\n", "int c = color(255, 0, 0);\n"},
		{"float f = 1.5;\n", "float f = 1.5f;\n"},
		{"double d = 1.5d;\nfloat g = 2f;\n", "double d = 1.5d;\nfloat g = 2f;\n"},
		{"int i = int(2.5);\n", "int i = PApplet.toInt(2.5f);\n"},
		{"float x = float(\"3\");\n", "float x = PApplet.toFloat(\"3\");\n"},
		{"int n = int (c) + 1;\n", "int n = PApplet.toInt (c) + 1;\n"},
		{
			"void setup() {\n}\nprivate void helper() {}\nstatic void tick() {}\n",
			"public void setup() {\n}\nprivate void helper() {}\npublic static void tick() {}\n",
		},
		{"  // lead\n  void setup() {}\n", "  // lead\n  public void setup() {}\n"},
		{
			"void draw() {}\nclass A {\n  protected void f() {}\n  int g() { return 0; }\n}\n",
			"public void draw() {}\nclass A {\n  protected void f() {}\n  public int g() { return 0; }\n}\n",
		},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestRewrites('%s')", test.input), func(t *testing.T) {
			out, _ := emit(t, test.input, config.Default().Flags)
			if out != test.expected {
				t.Errorf("expected %q, got %q", test.expected, out)
			}
		})
	}
}

func TestEachRewriteHasItsOwnFlag(t *testing.T) {
	flags := config.Verbatim()
	flags.WebColors = true
	out, _ := emit(t, "color c = #FF00AA;\nfloat f = 1.5;\n", flags)
	expected := "color c = 0xffFF00AA;\nfloat f = 1.5;\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}

	flags = config.Verbatim()
	flags.CastHelperPrefix = "Convert.to"
	flags.EnhancedCasting = true
	out, _ = emit(t, "int i = int(x);\n", flags)
	expected = "int i = Convert.toInt(x);\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestLineMap(t *testing.T) {
	_, e := emit(t, "int a;\n\n  int b;\n// c\n", config.Default().Flags)
	lines := e.LineMap()

	tests := []struct {
		outLine  int
		srcLine  int
		expected bool
	}{
		{1, 1, true},
		{2, 0, false},
		{3, 3, true},
		{4, 0, false},
	}
	for _, test := range tests {
		origin, ok := lines.Lookup(test.outLine)
		if ok != test.expected {
			t.Errorf("line %d: expected mapped=%v, got %v", test.outLine, test.expected, ok)
			continue
		}
		if ok && (origin.Line != test.srcLine || origin.Tag != "test.pde") {
			t.Errorf("line %d: expected test.pde:%d, got %s:%d", test.outLine, test.srcLine, origin.Tag, origin.Line)
		}
	}

	lines.Prepend(2)
	if origin, ok := lines.Lookup(3); !ok || origin.Line != 1 {
		t.Errorf("expected line 3 to map to source line 1 after prepending, got %v", origin)
	}
}

func TestLineMapAppend(t *testing.T) {
	lines := &LineMap{}
	lines.Append("a.ino", 2)
	lines.Append("b.ino", 1)
	lines.Prepend(1)

	if lines.Len() != 4 {
		t.Fatalf("expected 4 lines, got %d", lines.Len())
	}
	if _, ok := lines.Lookup(1); ok {
		t.Errorf("expected the header line to have no origin")
	}
	if origin, ok := lines.Lookup(3); !ok || origin != (Origin{Tag: "a.ino", Line: 2}) {
		t.Errorf("expected a.ino:2, got %v", origin)
	}
	if origin, ok := lines.Lookup(4); !ok || origin != (Origin{Tag: "b.ino", Line: 1}) {
		t.Errorf("expected b.ino:1, got %v", origin)
	}
}

func TestHelpers(t *testing.T) {
	if got := WebColor("#00ff00"); got != "0xff00ff00" {
		t.Errorf("expected 0xff00ff00, got %s", got)
	}
	if got := FloatLiteral("1e3"); got != "1e3f" {
		t.Errorf("expected 1e3f, got %s", got)
	}
	if got := CastHelper("PApplet.to", "boolean"); got != "PApplet.toBoolean" {
		t.Errorf("expected PApplet.toBoolean, got %s", got)
	}
}
