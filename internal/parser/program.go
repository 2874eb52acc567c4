package parser

import (
	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/diagnostics"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

// Shape of a sketch, decided before anything is parsed for real.
type Mode int

const (
	// Neither alternative matched
	MODE_NONE Mode = iota
	// A complete compilation unit: package, imports and classes
	FULL
	// Fields and methods, at least one of them a void function
	FUNCTION_BASED
	// Bare statements
	STATEMENT_LIST
)

func (mode Mode) String() string {
	switch mode {
	case FULL:
		return "FULL"
	case FUNCTION_BASED:
		return "FUNCTION-BASED"
	case STATEMENT_LIST:
		return "STATEMENT-LIST"
	}
	return "NONE"
}

type Program struct {
	Root ast.NodeID
	Mode Mode
	Tree *ast.Tree
}

// Classifies the sketch and parses it. The returned program is never nil,
// even when errors were reported; ErrCompilerErrorFound signals them.
func (p *Parser) ParseProgram() (*Program, error) {
	root := p.tree.Make(ast.KIND_ROOT, "")
	program := &Program{Root: root, Tree: p.tree}

	switch {
	case p.speculate(p.fullProgramPrefix):
		program.Mode = FULL
		p.parseCompilationUnit(root)
	case p.speculate(p.activeProgramPrefix):
		program.Mode = FUNCTION_BASED
		p.parseActiveProgram(root)
	case p.nextIs(token.EOF) || p.canStartStatement(p.la(1)):
		program.Mode = STATEMENT_LIST
		p.parseStaticProgram(root)
	default:
		p.report(p.noViableAlt("program"))
		return program, diagnostics.ErrCompilerErrorFound
	}

	if p.collector.HasErrors() {
		return program, diagnostics.ErrCompilerErrorFound
	}
	return program, nil
}

// Classification trials

func (p *Parser) fullProgramPrefix() error {
	switch p.la(1) {
	case token.PACKAGE, token.IMPORT:
		p.cursor.skip()
		return nil
	case token.PUBLIC:
		p.cursor.skip()
		return p.match(token.CLASS)
	}
	return p.noViableAlt("compilation unit")
}

// Any number of fields followed by `void name(`. The loop stops as soon as
// `void IDENT` is next so the function itself is left for the match below.
func (p *Parser) activeProgramPrefix() error {
	for !(p.la(1) == token.VOID && p.la(2) == token.ID) {
		if !p.canStartField(p.la(1)) {
			break
		}
		if err := p.parsePossiblyEmptyField(ast.NoNode); err != nil {
			return err
		}
	}
	if err := p.match(token.VOID); err != nil {
		return err
	}
	if err := p.match(token.ID); err != nil {
		return err
	}
	return p.match(token.OPEN_PAREN)
}

// Program bodies

func (p *Parser) parseCompilationUnit(root ast.NodeID) {
	if p.nextIs(token.PACKAGE) {
		start := p.cursor.offset
		pkg, err := p.parsePackageDef()
		if err != nil {
			p.recover(err, start, syncTopLevel)
		} else {
			p.tree.AddChild(root, pkg)
		}
	}

	for p.nextIs(token.IMPORT) {
		start := p.cursor.offset
		imp, err := p.parseImport()
		if err != nil {
			p.recover(err, start, syncTopLevel)
			continue
		}
		p.tree.AddChild(root, imp)
	}

	for !p.nextIs(token.EOF) {
		start := p.cursor.offset
		if err := p.parseTypeDefinition(root); err != nil {
			p.recover(err, start, syncTopLevel)
		}
	}
}

func (p *Parser) parseActiveProgram(root ast.NodeID) {
	for !p.nextIs(token.EOF) {
		start := p.cursor.offset
		if err := p.parsePossiblyEmptyField(root); err != nil {
			p.recover(err, start, syncMember)
		}
	}
}

func (p *Parser) parseStaticProgram(root ast.NodeID) {
	for !p.nextIs(token.EOF) {
		start := p.cursor.offset
		if err := p.parseBlockStatement(root); err != nil {
			p.recover(err, start, syncStatement)
		}
	}
}

// package a.b.c;
func (p *Parser) parsePackageDef() (ast.NodeID, error) {
	pkg := p.advanceNode(ast.KIND_PACKAGE_DEF)
	name, err := p.parseQualifiedName()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(pkg, name)
	return pkg, p.match(token.SEMICOLON)
}

// import a.b.C; or import a.b.*;
func (p *Parser) parseImport() (ast.NodeID, error) {
	imp := p.advanceNode(ast.KIND_IMPORT)

	name, err := p.matchNode(token.ID, ast.KIND_IDENT)
	if err != nil {
		return ast.NoNode, err
	}
	for p.nextIs(token.DOT) {
		dot := p.advanceNode(ast.KIND_DOT)
		p.tree.AddChild(dot, name)

		var member ast.NodeID
		if p.nextIs(token.STAR) {
			member = p.advanceNode(ast.KIND_STAR)
		} else {
			member, err = p.matchNode(token.ID, ast.KIND_IDENT)
			if err != nil {
				return ast.NoNode, err
			}
		}
		p.tree.AddChild(dot, member)
		name = dot
		if p.tree.Kind(member) == ast.KIND_STAR {
			break
		}
	}
	p.tree.AddChild(imp, name)
	return imp, p.match(token.SEMICOLON)
}

func (p *Parser) parseTypeDefinition(parent ast.NodeID) error {
	if p.nextIs(token.SEMICOLON) {
		p.tree.AddChild(parent, p.parseSemi())
		return nil
	}
	mods, err := p.parseModifiers()
	if err != nil {
		return err
	}
	var def ast.NodeID
	switch p.la(1) {
	case token.CLASS:
		def, err = p.parseClassDef(mods)
	case token.INTERFACE:
		def, err = p.parseInterfaceDef(mods)
	default:
		return p.mismatch(token.CLASS, token.INTERFACE)
	}
	if err != nil {
		return err
	}
	p.tree.AddChild(parent, def)
	return nil
}

// A lone `;`. The token is copied; the node only marks where it was.
func (p *Parser) parseSemi() ast.NodeID {
	tok := p.cursor.next()
	p.copyToken(tok)
	return p.tree.FromToken(ast.KIND_SEMI, tok)
}

func (p *Parser) canStartField(kind token.Kind) bool {
	switch kind {
	case token.ID, token.CLASS, token.INTERFACE, token.SEMICOLON, token.OPEN_CURLY:
		return true
	}
	return kind.IsModifier() || kind.IsBuiltinType()
}

func (p *Parser) canStartStatement(kind token.Kind) bool {
	switch kind {
	case token.OPEN_CURLY, token.SEMICOLON, token.IF, token.FOR, token.WHILE,
		token.DO, token.SWITCH, token.BREAK, token.CONTINUE, token.RETURN,
		token.THROW, token.TRY, token.CLASS, token.INTERFACE:
		return true
	}
	if kind.IsModifier() || kind.IsBuiltinType() {
		return true
	}
	return canStartExpression(kind)
}
