package parser

import (
	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

func (p *Parser) parseBlock() (ast.NodeID, error) {
	block := p.tree.Make(ast.KIND_SLIST, "")
	open := p.peek()
	if err := p.match(token.OPEN_CURLY); err != nil {
		return ast.NoNode, err
	}
	for !p.nextIs(token.CLOSE_CURLY) && !p.nextIs(token.EOF) {
		start := p.cursor.offset
		if err := p.parseBlockStatement(block); err != nil {
			if err := p.recover(err, start, syncStatement); err != nil {
				return ast.NoNode, err
			}
		}
	}
	return block, p.closeBrace(open)
}

// Statement, local class or local variable declaration. Declarations add
// one node per declarator to parent.
func (p *Parser) parseBlockStatement(parent ast.NodeID) error {
	switch {
	case p.la(1) == token.SYNCHRONIZED && p.la(2) == token.OPEN_PAREN:
	case p.isClassDefAhead():
		mods, err := p.parseModifiers()
		if err != nil {
			return err
		}
		var def ast.NodeID
		if p.nextIs(token.CLASS) {
			def, err = p.parseClassDef(mods)
		} else {
			def, err = p.parseInterfaceDef(mods)
		}
		if err != nil {
			return err
		}
		p.tree.AddChild(parent, def)
		return nil
	case p.speculate(p.declarationPrefix):
		if err := p.parseLocalVariableDecl(parent); err != nil {
			return err
		}
		return p.match(token.SEMICOLON)
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return err
	}
	p.tree.AddChild(parent, stmt)
	return nil
}

func (p *Parser) isClassDefAhead() bool {
	n := 1
	for p.la(n).IsModifier() {
		n++
	}
	return p.la(n) == token.CLASS || p.la(n) == token.INTERFACE
}

func (p *Parser) parseStatement() (ast.NodeID, error) {
	switch p.la(1) {
	case token.OPEN_CURLY:
		return p.parseBlock()
	case token.SEMICOLON:
		return p.parseSemi(), nil
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		stmt := p.advanceNode(ast.KIND_WHILE)
		return p.parseConditionAndBody(stmt)
	case token.DO:
		return p.parseDoWhile()
	case token.SWITCH:
		return p.parseSwitch()
	case token.BREAK, token.CONTINUE:
		kind := ast.KIND_BREAK
		if p.nextIs(token.CONTINUE) {
			kind = ast.KIND_CONTINUE
		}
		stmt := p.advanceNode(kind)
		if p.nextIs(token.ID) {
			p.tree.AddChild(stmt, p.advanceNode(ast.KIND_IDENT))
		}
		return stmt, p.match(token.SEMICOLON)
	case token.RETURN:
		stmt := p.advanceNode(ast.KIND_RETURN)
		if !p.nextIs(token.SEMICOLON) {
			value, err := p.parseExpression()
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(stmt, value)
		}
		return stmt, p.match(token.SEMICOLON)
	case token.THROW:
		stmt := p.advanceNode(ast.KIND_THROW)
		value, err := p.parseExpression()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(stmt, value)
		return stmt, p.match(token.SEMICOLON)
	case token.TRY:
		return p.parseTry()
	case token.SYNCHRONIZED:
		stmt := p.advanceNode(ast.KIND_SYNCHRONIZED)
		lock, err := p.parseParenCondition()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(stmt, lock)
		body, err := p.parseBlock()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(stmt, body)
		return stmt, nil
	}

	if p.la(1) == token.ID && p.la(2) == token.COLON {
		labeled := p.tree.Make(ast.KIND_LABELED_STAT, "")
		p.tree.AddChild(labeled, p.advanceNode(ast.KIND_IDENT))
		p.skip()
		stmt, err := p.parseStatement()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(labeled, stmt)
		return labeled, nil
	}

	if !canStartExpression(p.la(1)) {
		return ast.NoNode, p.noViableAlt("statement")
	}
	stmt := p.tree.Make(ast.KIND_EXPR_STAT, "")
	expr, err := p.parseExpression()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(stmt, expr)
	return stmt, p.match(token.SEMICOLON)
}

// ( expr ); the parentheses are copied
func (p *Parser) parseParenCondition() (ast.NodeID, error) {
	if err := p.match(token.OPEN_PAREN); err != nil {
		return ast.NoNode, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return ast.NoNode, err
	}
	return cond, p.match(token.CLOSE_PAREN)
}

func (p *Parser) parseConditionAndBody(stmt ast.NodeID) (ast.NodeID, error) {
	cond, err := p.parseParenCondition()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(stmt, cond)

	body, err := p.parseStatement()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(stmt, body)
	return stmt, nil
}

func (p *Parser) parseIf() (ast.NodeID, error) {
	stmt := p.advanceNode(ast.KIND_IF)
	if _, err := p.parseConditionAndBody(stmt); err != nil {
		return ast.NoNode, err
	}
	// the else binds to the nearest if
	if p.nextIs(token.ELSE) {
		elseNode := p.advanceNode(ast.KIND_ELSE)
		body, err := p.parseStatement()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(elseNode, body)
		p.tree.AddChild(stmt, elseNode)
	}
	return stmt, nil
}

func (p *Parser) parseFor() (ast.NodeID, error) {
	stmt := p.advanceNode(ast.KIND_FOR)
	if err := p.match(token.OPEN_PAREN); err != nil {
		return ast.NoNode, err
	}

	init := p.tree.Make(ast.KIND_FOR_INIT, "")
	if !p.nextIs(token.SEMICOLON) {
		if p.speculate(p.declarationPrefix) {
			if err := p.parseLocalVariableDecl(init); err != nil {
				return ast.NoNode, err
			}
		} else {
			list, err := p.parseExpressionList()
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(init, list)
		}
	}
	p.tree.AddChild(stmt, init)
	if err := p.match(token.SEMICOLON); err != nil {
		return ast.NoNode, err
	}

	cond := p.tree.Make(ast.KIND_FOR_CONDITION, "")
	if !p.nextIs(token.SEMICOLON) {
		expr, err := p.parseExpression()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(cond, expr)
	}
	p.tree.AddChild(stmt, cond)
	if err := p.match(token.SEMICOLON); err != nil {
		return ast.NoNode, err
	}

	iter := p.tree.Make(ast.KIND_FOR_ITERATOR, "")
	if !p.nextIs(token.CLOSE_PAREN) {
		list, err := p.parseExpressionList()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(iter, list)
	}
	p.tree.AddChild(stmt, iter)
	if err := p.match(token.CLOSE_PAREN); err != nil {
		return ast.NoNode, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(stmt, body)
	return stmt, nil
}

func (p *Parser) parseDoWhile() (ast.NodeID, error) {
	stmt := p.advanceNode(ast.KIND_DO)
	body, err := p.parseStatement()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(stmt, body)

	whileNode, err := p.matchNode(token.WHILE, ast.KIND_DO_WHILE_COND)
	if err != nil {
		return ast.NoNode, err
	}
	cond, err := p.parseParenCondition()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(whileNode, cond)
	p.tree.AddChild(stmt, whileNode)
	return stmt, p.match(token.SEMICOLON)
}

func (p *Parser) parseSwitch() (ast.NodeID, error) {
	stmt := p.advanceNode(ast.KIND_SWITCH)
	value, err := p.parseParenCondition()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(stmt, value)

	open := p.peek()
	if err := p.match(token.OPEN_CURLY); err != nil {
		return ast.NoNode, err
	}
	for !p.nextIs(token.CLOSE_CURLY) && !p.nextIs(token.EOF) {
		group, err := p.parseCaseGroup()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(stmt, group)
	}
	return stmt, p.closeBrace(open)
}

func (p *Parser) parseCaseGroup() (ast.NodeID, error) {
	group := p.tree.Make(ast.KIND_CASE_GROUP, "")
	for p.nextIs(token.CASE) || p.nextIs(token.DEFAULT) {
		if p.nextIs(token.DEFAULT) {
			p.tree.AddChild(group, p.advanceNode(ast.KIND_DEFAULT))
		} else {
			label := p.advanceNode(ast.KIND_CASE)
			value, err := p.parseExpression()
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(label, value)
			p.tree.AddChild(group, label)
		}
		if err := p.match(token.COLON); err != nil {
			return ast.NoNode, err
		}
	}
	if p.tree.FirstChild(group) == ast.NoNode {
		return ast.NoNode, p.mismatch(token.CASE, token.DEFAULT)
	}

	for !p.nextIs(token.CASE) && !p.nextIs(token.DEFAULT) &&
		!p.nextIs(token.CLOSE_CURLY) && !p.nextIs(token.EOF) {
		start := p.cursor.offset
		if err := p.parseBlockStatement(group); err != nil {
			if err := p.recover(err, start, syncStatement); err != nil {
				return ast.NoNode, err
			}
		}
	}
	return group, nil
}

func (p *Parser) parseTry() (ast.NodeID, error) {
	stmt := p.advanceNode(ast.KIND_TRY)
	body, err := p.parseBlock()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(stmt, body)

	handlers := 0
	for p.nextIs(token.CATCH) {
		catch := p.advanceNode(ast.KIND_CATCH)
		if err := p.match(token.OPEN_PAREN); err != nil {
			return ast.NoNode, err
		}
		param, err := p.parseParameterDef()
		if err != nil {
			return ast.NoNode, err
		}
		if err := p.match(token.CLOSE_PAREN); err != nil {
			return ast.NoNode, err
		}
		handler, err := p.parseBlock()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(catch, param)
		p.tree.AddChild(catch, handler)
		p.tree.AddChild(stmt, catch)
		handlers++
	}

	if p.nextIs(token.FINALLY) {
		finally := p.advanceNode(ast.KIND_FINALLY)
		block, err := p.parseBlock()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(finally, block)
		p.tree.AddChild(stmt, finally)
		handlers++
	}

	if handlers == 0 {
		return ast.NoNode, p.mismatch(token.CATCH, token.FINALLY)
	}
	return stmt, nil
}
