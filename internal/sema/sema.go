// Package sema builds the symbol table of a parsed sketch and resolves the
// identifiers used in expressions. It does no type checking.
package sema

import (
	"fmt"

	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/parser"
	"github.com/HicaroD/sketchpp/internal/symtab"
)

type phase int

const (
	DEFINE phase = iota
	RESOLVE
)

type Info struct {
	Symbols *symtab.Table[ast.NodeID]
	// Identifier use -> node defining it
	Uses map[ast.NodeID]ast.NodeID
	// Identifiers with no definition in the sketch, e.g. library calls
	Unresolved []ast.NodeID
	// Methods defined at the top level, in source order
	Functions []string
	// Name of the first class defined, if any
	FirstClass string
}

type sema struct {
	tree *ast.Tree
	mode parser.Mode
	info *Info

	phase  phase
	blocks int
}

func New(tree *ast.Tree, mode parser.Mode) *sema {
	return &sema{
		tree: tree,
		mode: mode,
		info: &Info{
			Symbols: symtab.New[ast.NodeID](),
			Uses:    make(map[ast.NodeID]ast.NodeID),
		},
	}
}

// Defines every declaration first, then resolves uses, so that members can
// be used before the line declaring them.
func (s *sema) Check(root ast.NodeID) *Info {
	s.phase = DEFINE
	s.blocks = 0
	s.visit(root, ast.NoNode)

	s.phase = RESOLVE
	s.blocks = 0
	s.visit(root, ast.NoNode)
	return s.info
}

func (s *sema) visit(id, parent ast.NodeID) {
	tree := s.tree

	switch tree.Kind(id) {
	case ast.KIND_SEMI:
		if s.phase == DEFINE {
			tree.SetKind(id, s.emptyKind(parent))
		}

	case ast.KIND_CLASS_DEF, ast.KIND_INTERFACE_DEF:
		name := s.nameOf(id)
		s.define(name, id)
		if s.phase == DEFINE && s.info.FirstClass == "" {
			s.info.FirstClass = name
		}
		s.scoped(name, func() {
			s.visit(tree.ChildOfKind(id, ast.KIND_OBJBLOCK), id)
		})

	case ast.KIND_METHOD_DEF, ast.KIND_CTOR_DEF:
		name := s.nameOf(id)
		s.define(name, id)
		if s.phase == DEFINE && tree.Kind(id) == ast.KIND_METHOD_DEF && s.info.Symbols.Depth() == 0 {
			s.info.Functions = append(s.info.Functions, name)
		}
		s.scoped(name, func() {
			s.visit(tree.ChildOfKind(id, ast.KIND_PARAMETERS), id)
			s.visit(tree.ChildOfKind(id, ast.KIND_SLIST), id)
		})

	case ast.KIND_PARAMETER_DEF:
		s.define(s.nameOf(id), id)

	case ast.KIND_VARIABLE_DEF:
		s.define(s.nameOf(id), id)
		for _, child := range tree.Children(id) {
			switch tree.Kind(child) {
			case ast.KIND_ARRAY_DECLARATOR, ast.KIND_INITIALIZER:
				s.visit(child, id)
			}
		}

	case ast.KIND_SLIST, ast.KIND_FOR, ast.KIND_CATCH:
		s.scoped(s.nextBlock(), func() { s.visitChildren(id) })

	case ast.KIND_NEW:
		for _, child := range tree.Children(id) {
			switch tree.Kind(child) {
			case ast.KIND_TYPE:
			case ast.KIND_OBJBLOCK:
				// anonymous class body
				s.scoped(s.nextBlock(), func() { s.visit(child, id) })
			default:
				s.visit(child, id)
			}
		}

	case ast.KIND_IDENT:
		if s.phase == RESOLVE {
			s.resolve(id)
		}

	// only the left side is a use, the member is looked up in its type
	case ast.KIND_DOT, ast.KIND_ARROW, ast.KIND_INSTANCEOF:
		s.visit(tree.FirstChild(id), id)

	case ast.KIND_TYPECAST, ast.KIND_CONSTRUCTOR_CAST:
		s.visit(tree.Child(id, 1), id)

	case ast.KIND_LABELED_STAT:
		s.visit(tree.Child(id, 1), id)

	// names in these are types, labels or packages, not variables
	case ast.KIND_TYPE, ast.KIND_MODIFIERS, ast.KIND_BREAK, ast.KIND_CONTINUE,
		ast.KIND_PACKAGE_DEF, ast.KIND_IMPORT, ast.KIND_EXTENDS_CLAUSE,
		ast.KIND_IMPLEMENTS_CLAUSE, ast.KIND_THROWS:

	default:
		s.visitChildren(id)
	}
}

func (s *sema) visitChildren(id ast.NodeID) {
	for child := s.tree.FirstChild(id); child != ast.NoNode; child = s.tree.NextSibling(child) {
		s.visit(child, id)
	}
}

func (s *sema) scoped(name string, body func()) {
	s.info.Symbols.PushScope(name)
	body()
	s.info.Symbols.PopScope()
}

// Anonymous scopes get the same names in both phases.
func (s *sema) nextBlock() string {
	s.blocks++
	return fmt.Sprintf("{%d}", s.blocks)
}

func (s *sema) define(name string, id ast.NodeID) {
	if s.phase != DEFINE || name == "" {
		return
	}
	s.info.Symbols.Add(name, id)
}

func (s *sema) resolve(id ast.NodeID) {
	def, ok := s.info.Symbols.LookupNameInCurrentScope(s.tree.Text(id))
	if !ok {
		s.info.Unresolved = append(s.info.Unresolved, id)
		return
	}
	s.info.Uses[id] = def
}

func (s *sema) nameOf(def ast.NodeID) string {
	return s.tree.Text(s.tree.ChildOfKind(def, ast.KIND_IDENT))
}

// A lone `;` among class members or top-level fields is an empty field,
// anywhere else an empty statement.
func (s *sema) emptyKind(parent ast.NodeID) ast.NodeKind {
	switch s.tree.Kind(parent) {
	case ast.KIND_OBJBLOCK:
		return ast.KIND_EMPTY_FIELD
	case ast.KIND_ROOT:
		if s.mode != parser.STATEMENT_LIST {
			return ast.KIND_EMPTY_FIELD
		}
	}
	return ast.KIND_EMPTY_STAT
}
