package parser

import (
	"slices"

	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

// Binary operators from the loosest to the tightest binding level
var binaryLevels = [][]token.Kind{
	{token.OR_OR},
	{token.AND_AND},
	{token.PIPE},
	{token.CARET},
	{token.AMPERSAND},
	{token.EQUAL_EQUAL, token.BANG_EQUAL},
	{token.LESS, token.GREATER, token.LESS_EQ, token.GREATER_EQ},
	{token.SHIFT_LEFT, token.SHIFT_RIGHT, token.USHIFT_RIGHT},
	{token.PLUS, token.MINUS},
	{token.STAR, token.SLASH, token.PERCENT},
}

// instanceof binds like the relational operators
const relationalLevel = 6

// Targets a string can be converted to with a constructor cast
var stringCastTargets = map[token.Kind]bool{
	token.BYTE:   true,
	token.DOUBLE: true,
	token.FLOAT:  true,
	token.INT:    true,
	token.LONG:   true,
	token.SHORT:  true,
}

var literalKinds = map[token.Kind]ast.NodeKind{
	token.INT_LITERAL:    ast.KIND_INT_LITERAL,
	token.LONG_LITERAL:   ast.KIND_LONG_LITERAL,
	token.FLOAT_LITERAL:  ast.KIND_FLOAT_LITERAL,
	token.DOUBLE_LITERAL: ast.KIND_DOUBLE_LITERAL,
	token.CHAR_LITERAL:   ast.KIND_CHAR_LITERAL,
	token.STRING_LITERAL: ast.KIND_STRING_LITERAL,
}

func canStartExpression(kind token.Kind) bool {
	switch kind {
	case token.ID, token.THIS, token.SUPER, token.NEW, token.TRUE, token.FALSE,
		token.NULL, token.OPEN_PAREN, token.PLUS, token.MINUS, token.PLUS_PLUS,
		token.MINUS_MINUS, token.BANG, token.TILDE, token.STAR, token.AMPERSAND:
		return true
	}
	return kind.IsLiteral() || kind.IsBuiltinType()
}

// What may follow `(SomeClass)` for it to be a cast rather than a
// parenthesized name
func canStartCastOperand(kind token.Kind) bool {
	switch kind {
	case token.ID, token.THIS, token.SUPER, token.NEW, token.TRUE, token.FALSE,
		token.NULL, token.OPEN_PAREN, token.BANG, token.TILDE:
		return true
	}
	return kind.IsLiteral() || kind.IsBuiltinType()
}

func (p *Parser) parseExpression() (ast.NodeID, error) {
	return p.parseAssignment()
}

func (p *Parser) parseExpressionList() (ast.NodeID, error) {
	list := p.tree.Make(ast.KIND_ELIST, "")
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(list, expr)
		if !p.nextIs(token.COMMA) {
			return list, nil
		}
		p.skip()
	}
}

// Right associative
func (p *Parser) parseAssignment() (ast.NodeID, error) {
	lhs, err := p.parseConditional()
	if err != nil {
		return ast.NoNode, err
	}
	if !p.la(1).IsAssignment() {
		return lhs, nil
	}
	assign := p.advanceNode(ast.KIND_ASSIGN_EXPR)
	rhs, err := p.parseAssignment()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(assign, lhs)
	p.tree.AddChild(assign, rhs)
	return assign, nil
}

func (p *Parser) parseConditional() (ast.NodeID, error) {
	cond, err := p.parseBinary(0)
	if err != nil {
		return ast.NoNode, err
	}
	if !p.nextIs(token.QUESTION) {
		return cond, nil
	}

	ternary := p.advanceNode(ast.KIND_TERNARY_EXPR)
	then, err := p.parseAssignment()
	if err != nil {
		return ast.NoNode, err
	}
	if err := p.match(token.COLON); err != nil {
		return ast.NoNode, err
	}
	otherwise, err := p.parseConditional()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(ternary, cond)
	p.tree.AddChild(ternary, then)
	p.tree.AddChild(ternary, otherwise)
	return ternary, nil
}

func (p *Parser) parseBinary(level int) (ast.NodeID, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}

	left, err := p.parseBinary(level + 1)
	if err != nil {
		return ast.NoNode, err
	}

	for {
		kind := p.la(1)

		if kind == token.INSTANCEOF && level == relationalLevel {
			op := p.advanceNode(ast.KIND_INSTANCEOF)
			typ, err := p.parseTypeSpec(false)
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(op, left)
			p.tree.AddChild(op, typ)
			left = op
			continue
		}

		if !slices.Contains(binaryLevels[level], kind) {
			return left, nil
		}
		op := p.advanceNode(ast.KIND_BINARY_EXPR)
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(op, left)
		p.tree.AddChild(op, right)
		left = op
	}
}

func (p *Parser) parseUnary() (ast.NodeID, error) {
	switch p.la(1) {
	case token.PLUS, token.MINUS, token.PLUS_PLUS, token.MINUS_MINUS,
		token.BANG, token.TILDE, token.STAR, token.AMPERSAND:
		op := p.advanceNode(ast.KIND_UNARY_EXPR)
		operand, err := p.parseUnary()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(op, operand)
		return op, nil
	case token.OPEN_PAREN:
		if p.speculate(p.castPrefix) {
			return p.parseCast()
		}
	}
	return p.parsePostfix()
}

// Trial: `(type)` followed by something that can be cast. Builtin types
// accept any operand; class types must not be followed by + or - so that
// `(a) - b` stays a subtraction.
func (p *Parser) castPrefix() error {
	if err := p.match(token.OPEN_PAREN); err != nil {
		return err
	}
	builtin := p.la(1).IsBuiltinType() || p.nextIsLexeme("unsigned") || p.nextIsLexeme("signed")
	if _, err := p.parseTypeSpec(true); err != nil {
		return err
	}
	if err := p.match(token.CLOSE_PAREN); err != nil {
		return err
	}
	if builtin && canStartExpression(p.la(1)) {
		return nil
	}
	if canStartCastOperand(p.la(1)) {
		return nil
	}
	return p.noViableAlt("cast")
}

func (p *Parser) parseCast() (ast.NodeID, error) {
	cast := p.tree.Make(ast.KIND_TYPECAST, "")
	if err := p.match(token.OPEN_PAREN); err != nil {
		return ast.NoNode, err
	}
	typ, err := p.parseTypeSpec(true)
	if err != nil {
		return ast.NoNode, err
	}
	if err := p.match(token.CLOSE_PAREN); err != nil {
		return ast.NoNode, err
	}
	operand, err := p.parseUnary()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(cast, typ)
	p.tree.AddChild(cast, operand)
	return cast, nil
}

func (p *Parser) parsePostfix() (ast.NodeID, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return ast.NoNode, err
	}

	for {
		switch p.la(1) {
		case token.DOT:
			dot := p.advanceNode(ast.KIND_DOT)
			var member ast.NodeID
			switch p.la(1) {
			case token.ID:
				member = p.advanceNode(ast.KIND_IDENT)
			case token.THIS:
				member = p.advanceNode(ast.KIND_THIS)
			case token.SUPER:
				member = p.advanceNode(ast.KIND_SUPER)
			case token.CLASS:
				member = p.advanceNode(ast.KIND_CLASS_KEYWORD)
			default:
				return ast.NoNode, p.mismatch(token.ID)
			}
			p.tree.AddChild(dot, expr)
			p.tree.AddChild(dot, member)
			expr = dot
		case token.ARROW:
			arrow := p.advanceNode(ast.KIND_ARROW)
			member, err := p.matchNode(token.ID, ast.KIND_IDENT)
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(arrow, expr)
			p.tree.AddChild(arrow, member)
			expr = arrow
		case token.OPEN_PAREN:
			call := p.tree.Make(ast.KIND_METHOD_CALL, "")
			args, err := p.parseArguments()
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(call, expr)
			p.tree.AddChild(call, args)
			expr = call
		case token.OPEN_BRACKET:
			index := p.tree.Make(ast.KIND_INDEX_OP, "")
			p.skip()
			at, err := p.parseExpression()
			if err != nil {
				return ast.NoNode, err
			}
			if err := p.match(token.CLOSE_BRACKET); err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(index, expr)
			p.tree.AddChild(index, at)
			expr = index
		case token.PLUS_PLUS, token.MINUS_MINUS:
			op := p.advanceNode(ast.KIND_POSTFIX_EXPR)
			p.tree.AddChild(op, expr)
			expr = op
		default:
			return expr, nil
		}
	}
}

// (a, b, c); the parentheses and commas are copied
func (p *Parser) parseArguments() (ast.NodeID, error) {
	args := p.tree.Make(ast.KIND_ELIST, "")
	if err := p.match(token.OPEN_PAREN); err != nil {
		return ast.NoNode, err
	}
	for !p.nextIs(token.CLOSE_PAREN) {
		arg, err := p.parseExpression()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(args, arg)
		if !p.nextIs(token.COMMA) {
			break
		}
		p.skip()
	}
	return args, p.match(token.CLOSE_PAREN)
}

func (p *Parser) parsePrimary() (ast.NodeID, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.ID:
		return p.advanceNode(ast.KIND_IDENT), nil
	case token.THIS:
		return p.advanceNode(ast.KIND_THIS), nil
	case token.SUPER:
		return p.advanceNode(ast.KIND_SUPER), nil
	case token.TRUE, token.FALSE:
		return p.advanceNode(ast.KIND_BOOL_LITERAL), nil
	case token.NULL:
		return p.advanceNode(ast.KIND_NULL_LITERAL), nil
	case token.WEBCOLOR_LITERAL:
		literal := p.advanceNode(ast.KIND_WEBCOLOR_LITERAL)
		p.predicate(isWebColor(tok.Lexeme), tok, "webcolor",
			"web color %s must have exactly six hexadecimal digits", tok.Text())
		return literal, nil
	case token.OPEN_PAREN:
		paren := p.tree.Make(ast.KIND_PAREN_EXPR, "")
		p.skip()
		expr, err := p.parseExpression()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(paren, expr)
		return paren, p.match(token.CLOSE_PAREN)
	case token.NEW:
		return p.parseNew()
	case token.COLOR:
		// color(r, g, b) is a call, not a cast
		if p.la(2) == token.OPEN_PAREN {
			return p.advanceNode(ast.KIND_IDENT), nil
		}
	}

	if kind, ok := literalKinds[tok.Kind]; ok {
		return p.advanceNode(kind), nil
	}

	if tok.Kind.IsBuiltinType() {
		if p.flags.EnhancedCasting && p.la(2) == token.OPEN_PAREN && p.speculate(p.constructorCastPrefix) {
			return p.parseConstructorCast()
		}
		// int.class, int[].class
		if p.la(2) == token.DOT || p.la(2) == token.OPEN_BRACKET {
			return p.parseTypeSpec(false)
		}
	}

	return ast.NoNode, p.noViableAlt("expression")
}

func isWebColor(lexeme []byte) bool {
	// '#' plus six digits
	return len(lexeme) == 7
}

// Trial: `int(`, `float(` ...
func (p *Parser) constructorCastPrefix() error {
	switch p.la(1) {
	case token.BOOLEAN, token.BYTE, token.CHAR, token.SHORT, token.INT,
		token.LONG, token.FLOAT, token.DOUBLE:
		p.cursor.skip()
	default:
		return p.noViableAlt("constructor cast")
	}
	return p.match(token.OPEN_PAREN)
}

// int(x) becomes a call to a conversion helper when emitted.
func (p *Parser) parseConstructorCast() (ast.NodeID, error) {
	cast := p.tree.Make(ast.KIND_CONSTRUCTOR_CAST, "")
	target := p.peek()

	typ := p.tree.Make(ast.KIND_TYPE, "")
	p.tree.AddChild(typ, p.advanceNode(ast.KIND_BUILTIN_TYPE))

	if err := p.match(token.OPEN_PAREN); err != nil {
		return ast.NoNode, err
	}
	arg, err := p.parseExpression()
	if err != nil {
		return ast.NoNode, err
	}
	if err := p.match(token.CLOSE_PAREN); err != nil {
		return ast.NoNode, err
	}

	if p.tree.Kind(arg) == ast.KIND_STRING_LITERAL {
		p.predicate(stringCastTargets[target.Kind], target, "constructor cast",
			"a string cannot be converted with %s()", target.Text())
	}

	p.tree.AddChild(cast, typ)
	p.tree.AddChild(cast, arg)
	return cast, nil
}

func (p *Parser) parseNew() (ast.NodeID, error) {
	expr := p.advanceNode(ast.KIND_NEW)
	typ, err := p.parseTypeSpec(false)
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(expr, typ)

	switch p.la(1) {
	case token.OPEN_PAREN:
		args, err := p.parseArguments()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(expr, args)
		// anonymous class
		if p.nextIs(token.OPEN_CURLY) {
			body, err := p.parseClassBlock()
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(expr, body)
		}
	case token.OPEN_BRACKET:
		for p.nextIs(token.OPEN_BRACKET) {
			dims := p.tree.Make(ast.KIND_ARRAY_DECLARATOR, "[]")
			p.skip()
			if !p.nextIs(token.CLOSE_BRACKET) {
				size, err := p.parseExpression()
				if err != nil {
					return ast.NoNode, err
				}
				p.tree.AddChild(dims, size)
			}
			if err := p.match(token.CLOSE_BRACKET); err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(expr, dims)
		}
		if p.nextIs(token.OPEN_CURLY) {
			init, err := p.parseArrayInit()
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(expr, init)
		}
	case token.OPEN_CURLY:
		// new int[] {1, 2}
		init, err := p.parseArrayInit()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(expr, init)
	default:
		return ast.NoNode, p.mismatch(token.OPEN_PAREN, token.OPEN_BRACKET)
	}
	return expr, nil
}
