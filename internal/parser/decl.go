package parser

import (
	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

func (p *Parser) parsePossiblyEmptyField(parent ast.NodeID) error {
	if p.nextIs(token.SEMICOLON) {
		p.tree.AddChild(parent, p.parseSemi())
		return nil
	}
	return p.parseField(parent)
}

// Class member or, in a function-based sketch, a top-level declaration.
// Variable declarations with several declarators add one node per
// declarator to parent.
func (p *Parser) parseField(parent ast.NodeID) error {
	switch {
	case p.la(1) == token.STATIC && p.la(2) == token.OPEN_CURLY:
		init := p.advanceNode(ast.KIND_STATIC_INIT)
		body, err := p.parseBlock()
		if err != nil {
			return err
		}
		p.tree.AddChild(init, body)
		p.tree.AddChild(parent, init)
		return nil
	case p.nextIs(token.OPEN_CURLY):
		init := p.tree.Make(ast.KIND_INSTANCE_INIT, "")
		body, err := p.parseBlock()
		if err != nil {
			return err
		}
		p.tree.AddChild(init, body)
		p.tree.AddChild(parent, init)
		return nil
	}

	mods, err := p.parseModifiers()
	if err != nil {
		return err
	}

	switch {
	case p.nextIs(token.CLASS):
		def, err := p.parseClassDef(mods)
		if err != nil {
			return err
		}
		p.tree.AddChild(parent, def)
		return nil
	case p.nextIs(token.INTERFACE):
		def, err := p.parseInterfaceDef(mods)
		if err != nil {
			return err
		}
		p.tree.AddChild(parent, def)
		return nil
	case p.la(1) == token.ID && p.la(2) == token.OPEN_PAREN:
		def, err := p.parseConstructorDef(mods)
		if err != nil {
			return err
		}
		p.tree.AddChild(parent, def)
		return nil
	}

	typ, err := p.parseTypeSpec(false)
	if err != nil {
		return err
	}
	pointers := p.parsePointers()
	name, err := p.matchNode(token.ID, ast.KIND_IDENT)
	if err != nil {
		return err
	}

	if p.nextIs(token.OPEN_PAREN) {
		def, err := p.parseMethodDef(mods, typ, pointers, name)
		if err != nil {
			return err
		}
		p.tree.AddChild(parent, def)
		return nil
	}

	if err := p.parseVariableDefs(parent, mods, typ, pointers, name); err != nil {
		return err
	}
	return p.match(token.SEMICOLON)
}

func (p *Parser) parseModifiers() (ast.NodeID, error) {
	mods := p.tree.Make(ast.KIND_MODIFIERS, "")
	for p.la(1).IsModifier() {
		// synchronized (lock) { ... } is a statement
		if p.la(1) == token.SYNCHRONIZED && p.la(2) == token.OPEN_PAREN {
			break
		}
		p.tree.AddChild(mods, p.advanceNode(ast.KIND_MODIFIER))
	}
	return mods, nil
}

// Builtin or class type, optionally followed by `[]` pairs. Pointer and
// reference markers are only part of the type in casts; in declarations
// they belong to the declarator.
func (p *Parser) parseTypeSpec(allowPointer bool) (ast.NodeID, error) {
	typ := p.tree.Make(ast.KIND_TYPE, "")

	if (p.nextIsLexeme("unsigned") || p.nextIsLexeme("signed")) && p.la(2).IsBuiltinType() {
		p.tree.AddChild(typ, p.advanceNode(ast.KIND_TYPE_PREFIX))
	}

	switch {
	case p.la(1).IsBuiltinType():
		first := p.peek().Kind
		p.tree.AddChild(typ, p.advanceNode(ast.KIND_BUILTIN_TYPE))
		// long long, long int, short int
		if (first == token.LONG || first == token.SHORT) && (p.nextIs(token.INT) || p.nextIs(token.LONG)) {
			p.tree.AddChild(typ, p.advanceNode(ast.KIND_BUILTIN_TYPE))
		}
	case p.nextIs(token.ID):
		name, err := p.parseQualifiedName()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(typ, name)
	default:
		return ast.NoNode, p.noViableAlt("type")
	}

	for p.la(1) == token.OPEN_BRACKET && p.la(2) == token.CLOSE_BRACKET {
		dims := p.tree.Make(ast.KIND_ARRAY_DECLARATOR, "[]")
		p.skip()
		p.skip()
		p.tree.AddChild(typ, dims)
	}

	if allowPointer {
		for _, pointer := range p.parsePointers() {
			p.tree.AddChild(typ, pointer)
		}
	}
	return typ, nil
}

func (p *Parser) parsePointers() []ast.NodeID {
	var pointers []ast.NodeID
	for p.nextIs(token.STAR) || p.nextIs(token.AMPERSAND) {
		pointers = append(pointers, p.advanceNode(ast.KIND_POINTER))
	}
	return pointers
}

func (p *Parser) parseQualifiedName() (ast.NodeID, error) {
	name, err := p.matchNode(token.ID, ast.KIND_IDENT)
	if err != nil {
		return ast.NoNode, err
	}
	for p.la(1) == token.DOT && p.la(2) == token.ID {
		dot := p.advanceNode(ast.KIND_DOT)
		member := p.advanceNode(ast.KIND_IDENT)
		p.tree.AddChild(dot, name)
		p.tree.AddChild(dot, member)
		name = dot
	}
	return name, nil
}

// Classes and interfaces

func (p *Parser) parseClassDef(mods ast.NodeID) (ast.NodeID, error) {
	def := p.advanceNode(ast.KIND_CLASS_DEF)
	p.tree.AddChild(def, mods)

	name, err := p.matchNode(token.ID, ast.KIND_IDENT)
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(def, name)

	if p.nextIs(token.EXTENDS) {
		extends := p.advanceNode(ast.KIND_EXTENDS_CLAUSE)
		super, err := p.parseQualifiedName()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(extends, super)
		p.tree.AddChild(def, extends)
	}

	if p.nextIs(token.IMPLEMENTS) {
		implements := p.advanceNode(ast.KIND_IMPLEMENTS_CLAUSE)
		if err := p.parseNameList(implements); err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(def, implements)
	}

	body, err := p.parseClassBlock()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(def, body)
	return def, nil
}

func (p *Parser) parseInterfaceDef(mods ast.NodeID) (ast.NodeID, error) {
	def := p.advanceNode(ast.KIND_INTERFACE_DEF)
	p.tree.AddChild(def, mods)

	name, err := p.matchNode(token.ID, ast.KIND_IDENT)
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(def, name)

	if p.nextIs(token.EXTENDS) {
		extends := p.advanceNode(ast.KIND_EXTENDS_CLAUSE)
		if err := p.parseNameList(extends); err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(def, extends)
	}

	body, err := p.parseClassBlock()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(def, body)
	return def, nil
}

// a.B, C, D
func (p *Parser) parseNameList(parent ast.NodeID) error {
	for {
		name, err := p.parseQualifiedName()
		if err != nil {
			return err
		}
		p.tree.AddChild(parent, name)
		if !p.nextIs(token.COMMA) {
			return nil
		}
		p.skip()
	}
}

func (p *Parser) parseClassBlock() (ast.NodeID, error) {
	block := p.tree.Make(ast.KIND_OBJBLOCK, "")
	open := p.peek()
	if err := p.match(token.OPEN_CURLY); err != nil {
		return ast.NoNode, err
	}
	for !p.nextIs(token.CLOSE_CURLY) && !p.nextIs(token.EOF) {
		start := p.cursor.offset
		if err := p.parsePossiblyEmptyField(block); err != nil {
			if err := p.recover(err, start, syncMember); err != nil {
				return ast.NoNode, err
			}
		}
	}
	return block, p.closeBrace(open)
}

// Methods and constructors

func (p *Parser) parseMethodDef(mods, typ ast.NodeID, pointers []ast.NodeID, name ast.NodeID) (ast.NodeID, error) {
	def := p.tree.Make(ast.KIND_METHOD_DEF, "")
	p.tree.AddChild(def, mods)
	p.tree.AddChild(def, typ)
	for _, pointer := range pointers {
		p.tree.AddChild(def, pointer)
	}
	p.tree.AddChild(def, name)

	params, err := p.parseParameters()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(def, params)

	// int foo()[] is still legal Java
	for p.la(1) == token.OPEN_BRACKET && p.la(2) == token.CLOSE_BRACKET {
		dims := p.tree.Make(ast.KIND_ARRAY_DECLARATOR, "[]")
		p.skip()
		p.skip()
		p.tree.AddChild(def, dims)
	}

	if err := p.parseMethodTail(def); err != nil {
		return ast.NoNode, err
	}
	return def, nil
}

func (p *Parser) parseConstructorDef(mods ast.NodeID) (ast.NodeID, error) {
	def := p.tree.Make(ast.KIND_CTOR_DEF, "")
	p.tree.AddChild(def, mods)
	p.tree.AddChild(def, p.advanceNode(ast.KIND_IDENT))

	params, err := p.parseParameters()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(def, params)

	if err := p.parseMethodTail(def); err != nil {
		return ast.NoNode, err
	}
	return def, nil
}

// throws clause and body, or `;` for abstract and interface methods
func (p *Parser) parseMethodTail(def ast.NodeID) error {
	if p.nextIs(token.THROWS) {
		throws := p.advanceNode(ast.KIND_THROWS)
		if err := p.parseNameList(throws); err != nil {
			return err
		}
		p.tree.AddChild(def, throws)
	}

	if p.nextIs(token.SEMICOLON) {
		p.skip()
		return nil
	}
	body, err := p.parseBlock()
	if err != nil {
		return err
	}
	p.tree.AddChild(def, body)
	return nil
}

func (p *Parser) parseParameters() (ast.NodeID, error) {
	params := p.tree.Make(ast.KIND_PARAMETERS, "")
	if err := p.match(token.OPEN_PAREN); err != nil {
		return ast.NoNode, err
	}

	// f(void)
	if p.la(1) == token.VOID && p.la(2) == token.CLOSE_PAREN {
		param := p.tree.Make(ast.KIND_PARAMETER_DEF, "")
		typ := p.tree.Make(ast.KIND_TYPE, "")
		p.tree.AddChild(typ, p.advanceNode(ast.KIND_BUILTIN_TYPE))
		p.tree.AddChild(param, typ)
		p.tree.AddChild(params, param)
	}

	for !p.nextIs(token.CLOSE_PAREN) {
		param, err := p.parseParameterDef()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(params, param)
		if !p.nextIs(token.COMMA) {
			break
		}
		p.skip()
	}

	if err := p.match(token.CLOSE_PAREN); err != nil {
		return ast.NoNode, err
	}
	return params, nil
}

func (p *Parser) parseParameterDef() (ast.NodeID, error) {
	param := p.tree.Make(ast.KIND_PARAMETER_DEF, "")

	mods, err := p.parseModifiers()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(param, mods)

	typ, err := p.parseTypeSpec(false)
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(param, typ)

	// varargs
	if p.nextIs(token.DOT_DOT_DOT) {
		p.skip()
	}
	for _, pointer := range p.parsePointers() {
		p.tree.AddChild(param, pointer)
	}

	name, err := p.matchNode(token.ID, ast.KIND_IDENT)
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(param, name)

	if err := p.parseDeclaratorBrackets(param); err != nil {
		return ast.NoNode, err
	}
	return param, nil
}

// Variables

// One VARIABLE_DEF per declarator. Every declarator after the first gets
// its own copy of the modifiers and the type.
func (p *Parser) parseVariableDefs(parent, mods, typ ast.NodeID, pointers []ast.NodeID, name ast.NodeID) error {
	def, err := p.parseVariableDeclarator(mods, typ, pointers, name)
	if err != nil {
		return err
	}
	p.tree.AddChild(parent, def)

	for p.nextIs(token.COMMA) {
		p.skip()
		pointers := p.parsePointers()
		name, err := p.matchNode(token.ID, ast.KIND_IDENT)
		if err != nil {
			return err
		}
		def, err := p.parseVariableDeclarator(p.tree.Dup(mods), p.tree.Dup(typ), pointers, name)
		if err != nil {
			return err
		}
		p.tree.AddChild(parent, def)
	}
	return nil
}

func (p *Parser) parseVariableDeclarator(mods, typ ast.NodeID, pointers []ast.NodeID, name ast.NodeID) (ast.NodeID, error) {
	def := p.tree.Make(ast.KIND_VARIABLE_DEF, "")
	p.tree.AddChild(def, mods)
	p.tree.AddChild(def, typ)
	for _, pointer := range pointers {
		p.tree.AddChild(def, pointer)
	}
	p.tree.AddChild(def, name)

	if err := p.parseDeclaratorBrackets(def); err != nil {
		return ast.NoNode, err
	}

	if p.nextIs(token.EQUAL) {
		init := p.advanceNode(ast.KIND_INITIALIZER)
		value, err := p.parseVariableInitializer()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(init, value)
		p.tree.AddChild(def, init)
	}
	return def, nil
}

// a[] or the C form a[5]
func (p *Parser) parseDeclaratorBrackets(def ast.NodeID) error {
	for p.nextIs(token.OPEN_BRACKET) {
		dims := p.tree.Make(ast.KIND_ARRAY_DECLARATOR, "[]")
		p.skip()
		if !p.nextIs(token.CLOSE_BRACKET) {
			size, err := p.parseExpression()
			if err != nil {
				return err
			}
			p.tree.AddChild(dims, size)
		}
		if err := p.match(token.CLOSE_BRACKET); err != nil {
			return err
		}
		p.tree.AddChild(def, dims)
	}
	return nil
}

func (p *Parser) parseVariableInitializer() (ast.NodeID, error) {
	if p.nextIs(token.OPEN_CURLY) {
		return p.parseArrayInit()
	}
	return p.parseExpression()
}

// {1, 2, {3, 4},}
func (p *Parser) parseArrayInit() (ast.NodeID, error) {
	init := p.tree.Make(ast.KIND_ARRAY_INIT, "")
	open := p.peek()
	if err := p.match(token.OPEN_CURLY); err != nil {
		return ast.NoNode, err
	}
	for !p.nextIs(token.CLOSE_CURLY) && !p.nextIs(token.EOF) {
		value, err := p.parseVariableInitializer()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(init, value)
		if !p.nextIs(token.COMMA) {
			break
		}
		p.skip()
	}
	return init, p.closeBrace(open)
}

// Local declarations: modifiers, type, declarators. No trailing `;`.
func (p *Parser) parseLocalVariableDecl(parent ast.NodeID) error {
	mods, err := p.parseModifiers()
	if err != nil {
		return err
	}
	typ, err := p.parseTypeSpec(false)
	if err != nil {
		return err
	}
	pointers := p.parsePointers()
	name, err := p.matchNode(token.ID, ast.KIND_IDENT)
	if err != nil {
		return err
	}
	return p.parseVariableDefs(parent, mods, typ, pointers, name)
}

// Trial: does a local declaration start here?
func (p *Parser) declarationPrefix() error {
	if _, err := p.parseModifiers(); err != nil {
		return err
	}
	if _, err := p.parseTypeSpec(false); err != nil {
		return err
	}
	p.parsePointers()
	_, err := p.matchNode(token.ID, ast.KIND_IDENT)
	return err
}
