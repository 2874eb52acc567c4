package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/diagnostics"
)

var defaultFlags = config.Default().Flags

func TestExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * 2", "(BINARY_EXPR:+ IDENT:a (BINARY_EXPR:* IDENT:b INT_LITERAL:2))"},
		{"a - b - c", "(BINARY_EXPR:- (BINARY_EXPR:- IDENT:a IDENT:b) IDENT:c)"},
		{"x = y = 3", "(ASSIGN_EXPR:= IDENT:x (ASSIGN_EXPR:= IDENT:y INT_LITERAL:3))"},
		{"x += 1", "(ASSIGN_EXPR:+= IDENT:x INT_LITERAL:1)"},
		{"a ? b : c", "(TERNARY_EXPR:? IDENT:a IDENT:b IDENT:c)"},
		{"a && b || c", "(BINARY_EXPR:|| (BINARY_EXPR:&& IDENT:a IDENT:b) IDENT:c)"},
		{"(int) x", "(TYPECAST (TYPE BUILTIN_TYPE:int) IDENT:x)"},
		{"(float)(a + b)", "(TYPECAST (TYPE BUILTIN_TYPE:float) (PAREN_EXPR (BINARY_EXPR:+ IDENT:a IDENT:b)))"},
		{"(Foo) bar", "(TYPECAST (TYPE IDENT:Foo) IDENT:bar)"},
		{"(a) - b", "(BINARY_EXPR:- (PAREN_EXPR IDENT:a) IDENT:b)"},
		{"int(x)", "(CONSTRUCTOR_CAST (TYPE BUILTIN_TYPE:int) IDENT:x)"},
		{"float(\"1.5\")", "(CONSTRUCTOR_CAST (TYPE BUILTIN_TYPE:float) STRING_LITERAL:\"1.5\")"},
		{
			"foo.bar(1, 2)[0]++",
			"(POSTFIX_EXPR:++ (INDEX_OP (METHOD_CALL (DOT:. IDENT:foo IDENT:bar) (ELIST INT_LITERAL:1 INT_LITERAL:2)) INT_LITERAL:0))",
		},
		{"p->x", "(ARROW:-> IDENT:p IDENT:x)"},
		{"-*p", "(UNARY_EXPR:- (UNARY_EXPR:* IDENT:p))"},
		{"!done", "(UNARY_EXPR:! IDENT:done)"},
		{"#FF0000", "WEBCOLOR_LITERAL:#FF0000"},
		{"color(255)", "(METHOD_CALL IDENT:color (ELIST INT_LITERAL:255))"},
		{"new int[5]", "(NEW:new (TYPE BUILTIN_TYPE:int) (ARRAY_DECLARATOR:[] INT_LITERAL:5))"},
		{"new Foo(1)", "(NEW:new (TYPE IDENT:Foo) (ELIST INT_LITERAL:1))"},
		{"a instanceof Foo", "(INSTANCEOF:instanceof IDENT:a (TYPE IDENT:Foo))"},
		{"1.5 * 2.0f", "(BINARY_EXPR:* DOUBLE_LITERAL:1.5 FLOAT_LITERAL:2.0f)"},
		{"this.x", "(DOT:. THIS:this IDENT:x)"},
		{"null", "NULL_LITERAL:null"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestExpressions('%s')", test.input), func(t *testing.T) {
			tree, node, err := ParseExprFrom(test.input, defaultFlags)
			if err != nil {
				t.Fatal(err)
			}
			got := tree.SExpr(node)
			if got != test.expected {
				t.Errorf("expected %s, got %s", test.expected, got)
			}
		})
	}
}

func TestConstructorCastNeedsFlag(t *testing.T) {
	flags := defaultFlags
	flags.EnhancedCasting = false
	_, _, err := ParseExprFrom("int(x)", flags)
	if err == nil {
		t.Errorf("expected int(x) to be rejected without enhanced casting")
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x++;", "(SLIST (EXPR_STAT (POSTFIX_EXPR:++ IDENT:x)))"},
		{"int x = 3;", "(SLIST (VARIABLE_DEF MODIFIERS (TYPE BUILTIN_TYPE:int) IDENT:x (INITIALIZER:= INT_LITERAL:3)))"},
		{
			"int a, b = 2;",
			"(SLIST (VARIABLE_DEF MODIFIERS (TYPE BUILTIN_TYPE:int) IDENT:a) " +
				"(VARIABLE_DEF MODIFIERS* (TYPE* BUILTIN_TYPE:int*) IDENT:b (INITIALIZER:= INT_LITERAL:2)))",
		},
		{"final float f;", "(SLIST (VARIABLE_DEF (MODIFIERS MODIFIER:final) (TYPE BUILTIN_TYPE:float) IDENT:f))"},
		{"color c = #00FF00;", "(SLIST (VARIABLE_DEF MODIFIERS (TYPE BUILTIN_TYPE:color) IDENT:c (INITIALIZER:= WEBCOLOR_LITERAL:#00FF00)))"},
		{"int[] xs = {1, 2};", "(SLIST (VARIABLE_DEF MODIFIERS (TYPE BUILTIN_TYPE:int ARRAY_DECLARATOR:[]) IDENT:xs (INITIALIZER:= (ARRAY_INIT INT_LITERAL:1 INT_LITERAL:2))))"},
		{"int a[5];", "(SLIST (VARIABLE_DEF MODIFIERS (TYPE BUILTIN_TYPE:int) IDENT:a (ARRAY_DECLARATOR:[] INT_LITERAL:5)))"},
		{"unsigned long n;", "(SLIST (VARIABLE_DEF MODIFIERS (TYPE TYPE_PREFIX:unsigned BUILTIN_TYPE:long) IDENT:n))"},
		{"char *s;", "(SLIST (VARIABLE_DEF MODIFIERS (TYPE BUILTIN_TYPE:char) POINTER:* IDENT:s))"},
		{"foo(1);", "(SLIST (EXPR_STAT (METHOD_CALL IDENT:foo (ELIST INT_LITERAL:1))))"},
		{"if (a) b(); else c();", "(SLIST (IF:if IDENT:a (EXPR_STAT (METHOD_CALL IDENT:b ELIST)) (ELSE:else (EXPR_STAT (METHOD_CALL IDENT:c ELIST)))))"},
		{"while (x) {}", "(SLIST (WHILE:while IDENT:x SLIST))"},
		{
			"for (int i = 0; i < n; i++) {}",
			"(SLIST (FOR:for (FOR_INIT (VARIABLE_DEF MODIFIERS (TYPE BUILTIN_TYPE:int) IDENT:i (INITIALIZER:= INT_LITERAL:0))) " +
				"(FOR_CONDITION (BINARY_EXPR:< IDENT:i IDENT:n)) (FOR_ITERATOR (ELIST (POSTFIX_EXPR:++ IDENT:i))) SLIST))",
		},
		{"for (;;) ;", "(SLIST (FOR:for FOR_INIT FOR_CONDITION FOR_ITERATOR SEMI:;))"},
		{"do x--; while (x > 0);", "(SLIST (DO:do (EXPR_STAT (POSTFIX_EXPR:-- IDENT:x)) (DO_WHILE_COND:while (BINARY_EXPR:> IDENT:x INT_LITERAL:0))))"},
		{
			"switch (k) { case 1: case 2: f(); break; default: g(); }",
			"(SLIST (SWITCH:switch IDENT:k (CASE_GROUP (CASE:case INT_LITERAL:1) (CASE:case INT_LITERAL:2) " +
				"(EXPR_STAT (METHOD_CALL IDENT:f ELIST)) BREAK:break) (CASE_GROUP DEFAULT:default (EXPR_STAT (METHOD_CALL IDENT:g ELIST)))))",
		},
		{"return;", "(SLIST RETURN:return)"},
		{"outer: while (true) break outer;", "(SLIST (LABELED_STAT IDENT:outer (WHILE:while BOOL_LITERAL:true (BREAK:break IDENT:outer))))"},
		{
			"try { f(); } catch (Exception e) {} finally {}",
			"(SLIST (TRY:try (SLIST (EXPR_STAT (METHOD_CALL IDENT:f ELIST))) " +
				"(CATCH:catch (PARAMETER_DEF MODIFIERS (TYPE IDENT:Exception) IDENT:e) SLIST) (FINALLY:finally SLIST)))",
		},
		{"String s = \"hi\";", "(SLIST (VARIABLE_DEF MODIFIERS (TYPE IDENT:String) IDENT:s (INITIALIZER:= STRING_LITERAL:\"hi\")))"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestStatements('%s')", test.input), func(t *testing.T) {
			tree, block, err := ParseStatementFrom(test.input, defaultFlags)
			if err != nil {
				t.Fatal(err)
			}
			got := tree.SExpr(block)
			if got != test.expected {
				t.Errorf("expected %s, got %s", test.expected, got)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"import java.util.*;\nclass A {}\n", FULL},
		{"package sketches;\nclass A {}\n", FULL},
		{"public class Foo {\n  void draw() {}\n}\n", FULL},
		{"int x = 1;\nvoid setup() {\n  size(200, 200);\n}\n", FUNCTION_BASED},
		{"void draw() {}\n", FUNCTION_BASED},
		{"final int N = 3;\nfloat speed;\nvoid loop() {}\nint helper() { return N; }\n", FUNCTION_BASED},
		{"size(200, 200);\nbackground(0);\n", STATEMENT_LIST},
		{"int x = 1;\nline(0, 0, x, x);\n", STATEMENT_LIST},
		{"// just a comment\n", STATEMENT_LIST},
		{"", STATEMENT_LIST},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestClassification('%s')", test.input), func(t *testing.T) {
			program, collector, err := ParseProgramFrom(test.input, defaultFlags)
			if err != nil {
				t.Fatalf("unexpected error: %v %v", err, collector.Diags)
			}
			if program.Mode != test.expected {
				t.Errorf("expected %s, got %s", test.expected, program.Mode)
			}
		})
	}
}

func TestClassificationFailure(t *testing.T) {
	program, collector, err := ParseProgramFrom("}\n", defaultFlags)
	if err != diagnostics.ErrCompilerErrorFound {
		t.Fatalf("expected ErrCompilerErrorFound, got %v", err)
	}
	if program.Mode != MODE_NONE {
		t.Errorf("expected NONE, got %s", program.Mode)
	}
	if collector.Count(diagnostics.SYNTAX) != 1 {
		t.Errorf("expected 1 syntax error, got %d", collector.Count(diagnostics.SYNTAX))
	}
}

func TestFunctionBasedTree(t *testing.T) {
	src := "int x, y;\nvoid setup() {\n  x = 1;\n}\n"
	program, _, err := ParseProgramFrom(src, defaultFlags)
	if err != nil {
		t.Fatal(err)
	}
	tree := program.Tree
	children := tree.Children(program.Root)
	if len(children) != 3 {
		t.Fatalf("expected 3 top-level nodes, got %d", len(children))
	}
	if tree.Kind(children[1]) != ast.KIND_VARIABLE_DEF {
		t.Errorf("expected VARIABLE_DEF, got %s", tree.Kind(children[1]))
	}
	if !tree.Get(tree.ChildOfKind(children[1], ast.KIND_TYPE)).Dup {
		t.Errorf("expected the second declarator to carry a copied type")
	}

	method := children[2]
	expected := "(METHOD_DEF MODIFIERS (TYPE BUILTIN_TYPE:void) IDENT:setup PARAMETERS " +
		"(SLIST (EXPR_STAT (ASSIGN_EXPR:= IDENT:x INT_LITERAL:1))))"
	if got := tree.SExpr(method); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestFullProgramTree(t *testing.T) {
	src := "import a.b.*;\npublic class Foo extends Bar implements Runnable {\n  Foo() {}\n  public void run() {}\n}\n"
	program, _, err := ParseProgramFrom(src, defaultFlags)
	if err != nil {
		t.Fatal(err)
	}
	tree := program.Tree
	children := tree.Children(program.Root)
	if len(children) != 2 {
		t.Fatalf("expected import and class, got %d nodes", len(children))
	}

	expectedImport := "(IMPORT:import (DOT:. (DOT:. IDENT:a IDENT:b) STAR:*))"
	if got := tree.SExpr(children[0]); got != expectedImport {
		t.Errorf("expected %s, got %s", expectedImport, got)
	}

	class := children[1]
	if tree.Kind(class) != ast.KIND_CLASS_DEF {
		t.Fatalf("expected CLASS_DEF, got %s", tree.Kind(class))
	}
	members := tree.Children(tree.ChildOfKind(class, ast.KIND_OBJBLOCK))
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if tree.Kind(members[0]) != ast.KIND_CTOR_DEF || tree.Kind(members[1]) != ast.KIND_METHOD_DEF {
		t.Errorf("expected CTOR_DEF and METHOD_DEF, got %s and %s", tree.Kind(members[0]), tree.Kind(members[1]))
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		input      string
		predicates int
	}{
		{"int c = #FF00AA;\n", 0},
		{"int c = #FFF;\n", 1},
		{"int c = #FF00AA00;\n", 1},
		{"int i = int(\"12\");\n", 0},
		{"float f = float(\"1.5\");\n", 0},
		{"boolean b = boolean(\"true\");\n", 1},
		{"char c = char(\"a\");\n", 1},
		{"char c = char(65);\n", 0},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestPredicates('%s')", test.input), func(t *testing.T) {
			_, collector, _ := ParseProgramFrom(test.input, defaultFlags)
			if got := collector.Count(diagnostics.SEMANTIC_PREDICATE); got != test.predicates {
				t.Errorf("expected %d predicate failures, got %d: %v", test.predicates, got, collector.Diags)
			}
			if got := collector.Count(diagnostics.SYNTAX); got != 0 {
				t.Errorf("expected no syntax errors, got %v", collector.Diags)
			}
		})
	}
}

func TestUnterminatedBlock(t *testing.T) {
	src := "void setup() {\n  int x = 1;\n"
	program, collector, err := ParseProgramFrom(src, defaultFlags)
	if err != diagnostics.ErrCompilerErrorFound {
		t.Fatalf("expected ErrCompilerErrorFound, got %v", err)
	}
	if program.Mode != FUNCTION_BASED {
		t.Errorf("expected FUNCTION-BASED, got %s", program.Mode)
	}
	if len(collector.Diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(collector.Diags), collector.Diags)
	}
	diag := collector.Diags[0]
	if diag.Pos.Line != 3 || diag.Pos.Column != 1 {
		t.Errorf("expected error at 3:1, got %d:%d", diag.Pos.Line, diag.Pos.Column)
	}
	if !strings.Contains(diag.Message, "line 1, column 14") {
		t.Errorf("expected the opening brace location in %q", diag.Message)
	}
}

func TestRecoveryReportsEveryError(t *testing.T) {
	src := "void setup() {\n  x = ;\n  y = 2\n}\nvoid draw() {}\n"
	program, collector, err := ParseProgramFrom(src, defaultFlags)
	if err != diagnostics.ErrCompilerErrorFound {
		t.Fatalf("expected ErrCompilerErrorFound, got %v", err)
	}
	if got := collector.Count(diagnostics.SYNTAX); got != 2 {
		t.Fatalf("expected 2 syntax errors, got %d: %v", got, collector.Diags)
	}
	first, second := collector.Diags[0], collector.Diags[1]
	if first.Pos.Line != 2 || first.Pos.Column != 7 {
		t.Errorf("expected first error at 2:7, got %d:%d", first.Pos.Line, first.Pos.Column)
	}
	if second.Pos.Line != 4 || second.Pos.Column != 1 {
		t.Errorf("expected second error at 4:1, got %d:%d", second.Pos.Line, second.Pos.Column)
	}

	// draw() is still parsed after recovering
	children := program.Tree.Children(program.Root)
	if len(children) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(children))
	}
}

func TestTrialsLeaveNoTrace(t *testing.T) {
	// the declaration and cast trials fail here before the real parse
	parser, collector := NewFromSource("(a) - b;\n", defaultFlags)
	program, err := parser.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v %v", err, collector.Diags)
	}
	if parser.cursor.depth() != 0 {
		t.Errorf("expected every mark to be rewound, %d left", parser.cursor.depth())
	}
	expected := "(ROOT (EXPR_STAT (BINARY_EXPR:- (PAREN_EXPR IDENT:a) IDENT:b)))"
	if got := program.Tree.SExpr(program.Root); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
	// three trivia items plus ( ) and ; copied exactly once
	if got := parser.Hidden().Len(); got != 6 {
		t.Errorf("expected 6 hidden items, got %d", got)
	}
}
