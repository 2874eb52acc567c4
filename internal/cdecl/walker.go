package cdecl

import (
	"strings"

	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

type Prototype struct {
	Name string
	// Declaration specifiers, "int" when the definition leaves them out
	Return string
	// Parameter list with its parentheses
	Params string
	// Pointers, name and suffixes: "*name(int a)"
	Declarator string
	Pos        token.Pos
	// Defined inside another function body
	Nested bool
	// Rewritten from an old-style definition
	KR bool
	// Found in a declaration rather than a definition
	Declared bool
}

func (proto Prototype) String() string {
	return proto.Return + " " + proto.Declarator + ";"
}

type walker struct {
	tree   *ast.Tree
	protos []Prototype
}

// Collects the function signatures below root, in source order. The tree is
// not modified.
func Walk(tree *ast.Tree, root ast.NodeID) []Prototype {
	w := &walker{tree: tree}
	w.walk(root, 0)
	return w.protos
}

func (w *walker) walk(id ast.NodeID, depth int) {
	tree := w.tree
	switch tree.Kind(id) {
	case ast.KIND_C_FUNCTION_DEF:
		if proto, ok := w.definition(id); ok {
			proto.Nested = depth > 0
			w.protos = append(w.protos, proto)
		}
		w.walk(tree.ChildOfKind(id, ast.KIND_C_COMPOUND), depth+1)

	case ast.KIND_C_DECLARATION:
		specs := tree.ChildOfKind(id, ast.KIND_C_DECL_SPECS)
		if hasSpecifier(tree, specs, "typedef") {
			return
		}
		for _, init := range tree.Children(id) {
			if tree.Kind(init) != ast.KIND_C_INIT_DECL {
				continue
			}
			declarator := tree.FirstChild(init)
			name, tok, list, ok := functionParts(tree, declarator)
			if !ok {
				continue
			}
			w.protos = append(w.protos, Prototype{
				Name:       name,
				Return:     returnType(tree, specs),
				Params:     tree.Text(list),
				Declarator: tree.Text(declarator),
				Pos:        tok.Pos,
				Nested:     depth > 0,
				Declared:   true,
			})
		}

	default:
		for _, child := range tree.Children(id) {
			w.walk(child, depth)
		}
	}
}

func (w *walker) definition(def ast.NodeID) (Prototype, bool) {
	tree := w.tree
	specs := tree.ChildOfKind(def, ast.KIND_C_DECL_SPECS)
	declarator := tree.ChildOfKind(def, ast.KIND_C_DECLARATOR)
	name, tok, list, ok := functionParts(tree, declarator)
	if !ok {
		return Prototype{}, false
	}

	proto := Prototype{
		Name:       name,
		Return:     returnType(tree, specs),
		Params:     tree.Text(list),
		Declarator: tree.Text(declarator),
		Pos:        tok.Pos,
	}
	if tree.Kind(list) == ast.KIND_C_IDENT_LIST {
		proto.KR = true
		proto.Params = w.krParams(def, list)
		text := proto.Declarator
		if at := strings.LastIndex(text, tree.Text(list)); at >= 0 {
			proto.Declarator = text[:at] + proto.Params + text[at+len(tree.Text(list)):]
		}
	}
	return proto, true
}

// Builds a parameter list from the names of an old-style definition and the
// declarations following it. Undeclared parameters are int.
func (w *walker) krParams(def, list ast.NodeID) string {
	tree := w.tree
	declared := make(map[string]string)
	for _, decl := range tree.Children(def) {
		if tree.Kind(decl) != ast.KIND_C_DECLARATION {
			continue
		}
		specs := tree.Text(tree.ChildOfKind(decl, ast.KIND_C_DECL_SPECS))
		for _, init := range tree.Children(decl) {
			if tree.Kind(init) != ast.KIND_C_INIT_DECL {
				continue
			}
			declarator := tree.FirstChild(init)
			declared[declaratorName(tree, declarator)] = specs + " " + tree.Text(declarator)
		}
	}

	var params []string
	for _, ident := range tree.Children(list) {
		name := tree.Text(ident)
		if param, ok := declared[name]; ok {
			params = append(params, param)
		} else {
			params = append(params, "int "+name)
		}
	}
	return "(" + strings.Join(params, ", ") + ")"
}

func returnType(tree *ast.Tree, specs ast.NodeID) string {
	if text := tree.Text(specs); text != "" {
		return text
	}
	return "int"
}

// Reports whether decl declares a function, and its name and parameters.
// A parenthesized declarator counts when what it wraps is itself a
// function, as in int (*handler(int sig))(int); pointers to functions
// do not.
func functionParts(tree *ast.Tree, decl ast.NodeID) (string, *token.Token, ast.NodeID, bool) {
	children := tree.Children(decl)
	i := 0
	for i < len(children) && tree.Kind(children[i]) == ast.KIND_C_POINTER {
		i++
	}
	if i == len(children) {
		return "", nil, ast.NoNode, false
	}

	head := children[i]
	switch tree.Kind(head) {
	case ast.KIND_IDENT:
		if i+1 < len(children) {
			list := children[i+1]
			switch tree.Kind(list) {
			case ast.KIND_C_PARAM_LIST, ast.KIND_C_IDENT_LIST:
				return tree.Text(head), tree.Tok(head), list, true
			}
		}
	case ast.KIND_C_DECLARATOR:
		return functionParts(tree, head)
	}
	return "", nil, ast.NoNode, false
}
