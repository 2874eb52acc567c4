// Package cdecl parses the declarations of a wiring sketch with a C
// declaration grammar and reports the function signatures it finds, so the
// preprocessor can emit forward declarations for them.
package cdecl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
	"github.com/HicaroD/sketchpp/internal/symtab"
)

// Never reported: a declaration that does not match is skipped.
var errNoMatch = errors.New("cdecl: no matching declaration")

var storageClasses = map[string]bool{
	"typedef": true, "extern": true, "static": true, "auto": true,
	"register": true, "inline": true,
}

var qualifiers = map[string]bool{
	"const": true, "volatile": true, "restrict": true,
}

var baseTypes = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"_Bool": true, "boolean": true, "byte": true,
}

type Parser struct {
	tokens []*token.Token
	pos    int
	tree   *ast.Tree

	// typedef names, scoped like the declarations introducing them
	typedefs  *symtab.Table[bool]
	guessing  int
	compounds int
}

// tokens must end with EOF, as lexer.Stream builds them.
func New(tokens []*token.Token) *Parser {
	return &Parser{
		tokens:   tokens,
		tree:     ast.NewTree(),
		typedefs: symtab.New[bool](),
	}
}

func (p *Parser) Tree() *ast.Tree { return p.tree }

func (p *Parser) Typedefs() *symtab.Table[bool] { return p.typedefs }

func (p *Parser) ParseTranslationUnit() ast.NodeID {
	unit := p.tree.Make(ast.KIND_C_TRANSLATION_UNIT, "")
	for !p.nextIs(token.EOF) {
		if p.nextIs(token.SEMICOLON) {
			p.advance()
			continue
		}
		start := p.pos
		item, err := p.parseExternal()
		if err != nil {
			p.pos = start
			p.skipDeclaration()
			continue
		}
		p.tree.AddChild(unit, item)
	}
	return unit
}

// Lookahead

func (p *Parser) lt(n int) *token.Token {
	index := p.pos + n - 1
	if index >= len(p.tokens) {
		index = len(p.tokens) - 1
	}
	return p.tokens[index]
}

func (p *Parser) peek() *token.Token { return p.lt(1) }

func (p *Parser) nextIs(kind token.Kind) bool { return p.peek().Kind == kind }

func (p *Parser) advance() *token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) advanceNode(kind ast.NodeKind) ast.NodeID {
	return p.tree.FromToken(kind, p.advance())
}

func (p *Parser) expect(kind token.Kind) error {
	if !p.nextIs(kind) {
		return errNoMatch
	}
	p.advance()
	return nil
}

func (p *Parser) speculate(rule func() error) bool {
	start := p.pos
	cp := p.tree.Mark()
	p.guessing++

	err := rule()

	p.guessing--
	p.tree.Restore(cp)
	p.pos = start
	return err == nil
}

// Node text is the source of its token range, with a single space wherever
// two tokens were not adjacent.
func (p *Parser) spell(id ast.NodeID, start int) {
	var sb strings.Builder
	for i := start; i < p.pos; i++ {
		tok := p.tokens[i]
		if i > start && !adjacent(p.tokens[i-1], tok) {
			sb.WriteByte(' ')
		}
		sb.Write(tok.Lexeme)
	}
	p.tree.SetText(id, sb.String())
}

func adjacent(a, b *token.Token) bool {
	return a.Pos.Filename == b.Pos.Filename && a.Pos.Line == b.Pos.Line &&
		a.Pos.Column+len(a.Lexeme) == b.Pos.Column
}

// Recovery

// Skips to the end of the current declaration: through the next `;`, or
// through a balanced `{ ... }` block.
func (p *Parser) skipDeclaration() {
	for !p.nextIs(token.EOF) {
		switch p.advance().Kind {
		case token.SEMICOLON, token.CLOSE_CURLY:
			return
		case token.OPEN_CURLY:
			p.skipBalanced(token.OPEN_CURLY, token.CLOSE_CURLY)
			return
		}
	}
}

// The opening token was already consumed.
func (p *Parser) skipBalanced(open, close token.Kind) {
	depth := 1
	for depth > 0 && !p.nextIs(token.EOF) {
		switch p.advance().Kind {
		case open:
			depth++
		case close:
			depth--
		}
	}
}

// Skips an initializer or bit width up to the `,` or `;` ending it.
func (p *Parser) skipExpression() {
	depth := 0
	for !p.nextIs(token.EOF) {
		switch p.peek().Kind {
		case token.OPEN_PAREN, token.OPEN_CURLY, token.OPEN_BRACKET:
			depth++
		case token.CLOSE_PAREN, token.CLOSE_CURLY, token.CLOSE_BRACKET:
			if depth == 0 {
				return
			}
			depth--
		case token.COMMA, token.SEMICOLON:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

// Declarations

// Declaration or function definition, at file scope or nested in a body.
func (p *Parser) parseExternal() (ast.NodeID, error) {
	start := p.pos
	specs, sawType, err := p.parseDeclSpecifiers()
	if err != nil {
		return ast.NoNode, err
	}

	if p.nextIs(token.SEMICOLON) {
		if p.tree.FirstChild(specs) == ast.NoNode {
			return ast.NoNode, errNoMatch
		}
		p.advance()
		decl := p.tree.Make(ast.KIND_C_DECLARATION, "")
		p.tree.AddChild(decl, specs)
		p.spell(decl, start)
		return decl, nil
	}

	declarator, err := p.parseDeclarator(false)
	if err != nil {
		return ast.NoNode, err
	}

	if _, _, list, ok := functionParts(p.tree, declarator); ok {
		kr := p.tree.Kind(list) == ast.KIND_C_IDENT_LIST
		if p.nextIs(token.OPEN_CURLY) || (kr && p.startsDeclaration()) {
			return p.parseFunctionDef(start, specs, declarator)
		}
	}

	// only function definitions may leave the type out
	if !sawType {
		return ast.NoNode, errNoMatch
	}
	return p.parseDeclarationRest(start, specs, declarator)
}

func (p *Parser) parseDeclaration() (ast.NodeID, error) {
	start := p.pos
	specs, sawType, err := p.parseDeclSpecifiers()
	if err != nil {
		return ast.NoNode, err
	}
	if !sawType {
		return ast.NoNode, errNoMatch
	}
	declarator, err := p.parseDeclarator(false)
	if err != nil {
		return ast.NoNode, err
	}
	return p.parseDeclarationRest(start, specs, declarator)
}

func (p *Parser) parseDeclarationRest(start int, specs, first ast.NodeID) (ast.NodeID, error) {
	decl := p.tree.Make(ast.KIND_C_DECLARATION, "")
	p.tree.AddChild(decl, specs)

	declarator := first
	for {
		initStart := p.pos
		init := p.tree.Make(ast.KIND_C_INIT_DECL, "")
		p.tree.AddChild(init, declarator)
		// `= value`, or `: width` in a struct
		if p.nextIs(token.EQUAL) || p.nextIs(token.COLON) {
			value := p.tree.Make(ast.KIND_C_INITIALIZER, "")
			p.advance()
			valueStart := p.pos
			p.skipExpression()
			p.spell(value, valueStart)
			p.tree.AddChild(init, value)
		}
		p.spell(init, initStart)
		p.tree.AddChild(decl, init)

		if !p.nextIs(token.COMMA) {
			break
		}
		p.advance()
		var err error
		declarator, err = p.parseDeclarator(false)
		if err != nil {
			return ast.NoNode, err
		}
	}

	if err := p.expect(token.SEMICOLON); err != nil {
		return ast.NoNode, err
	}
	p.spell(decl, start)

	if p.guessing == 0 && hasSpecifier(p.tree, specs, "typedef") {
		for _, init := range p.tree.Children(decl) {
			if p.tree.Kind(init) != ast.KIND_C_INIT_DECL {
				continue
			}
			if name := declaratorName(p.tree, p.tree.FirstChild(init)); name != "" {
				p.typedefs.Add(name, true)
			}
		}
	}
	return decl, nil
}

func (p *Parser) parseFunctionDef(start int, specs, declarator ast.NodeID) (ast.NodeID, error) {
	def := p.tree.Make(ast.KIND_C_FUNCTION_DEF, "")
	p.tree.AddChild(def, specs)
	p.tree.AddChild(def, declarator)

	// K&R parameter declarations
	for !p.nextIs(token.OPEN_CURLY) && !p.nextIs(token.EOF) {
		decl, err := p.parseDeclaration()
		if err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(def, decl)
	}
	p.spell(def, start)

	name, _, _, _ := functionParts(p.tree, declarator)
	p.typedefs.PushScope(name)
	body, err := p.parseCompound()
	p.typedefs.PopScope()
	if err != nil {
		return ast.NoNode, err
	}
	p.tree.AddChild(def, body)
	return def, nil
}

// A body: nested blocks, declarations and function definitions are
// parsed, every other token is skipped.
func (p *Parser) parseCompound() (ast.NodeID, error) {
	compound := p.tree.Make(ast.KIND_C_COMPOUND, "")
	start := p.pos
	if err := p.expect(token.OPEN_CURLY); err != nil {
		return ast.NoNode, err
	}

	p.compounds++
	p.typedefs.PushScope(fmt.Sprintf("{%d}", p.compounds))
	defer p.typedefs.PopScope()

	for !p.nextIs(token.CLOSE_CURLY) && !p.nextIs(token.EOF) {
		switch {
		case p.nextIs(token.OPEN_CURLY):
			inner, err := p.parseCompound()
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(compound, inner)
		case p.speculate(func() error { _, err := p.parseExternal(); return err }):
			item, err := p.parseExternal()
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(compound, item)
		default:
			p.advance()
		}
	}

	if err := p.expect(token.CLOSE_CURLY); err != nil {
		return ast.NoNode, err
	}
	p.spell(compound, start)
	return compound, nil
}

// Does a declaration start at the next token?
func (p *Parser) startsDeclaration() bool {
	text := p.peek().Text()
	if storageClasses[text] || qualifiers[text] || baseTypes[text] {
		return true
	}
	if text == "struct" || text == "union" || text == "enum" {
		return true
	}
	return p.nextIs(token.ID) && p.isTypedefName(1)
}

func (p *Parser) isTypedefName(n int) bool {
	tok := p.lt(n)
	if tok.Kind != token.ID {
		return false
	}
	if _, ok := p.typedefs.LookupNameInCurrentScope(tok.Text()); ok {
		return true
	}
	// unknown type names: String s, Servo *s, Print &out
	switch p.lt(n + 1).Kind {
	case token.ID, token.STAR, token.AMPERSAND:
		return true
	}
	return false
}

func (p *Parser) parseDeclSpecifiers() (ast.NodeID, bool, error) {
	specs := p.tree.Make(ast.KIND_C_DECL_SPECS, "")
	start := p.pos
	sawType := false

	for {
		tok := p.peek()
		if tok.Kind != token.ID && !tok.Kind.IsKeyword() {
			break
		}
		text := tok.Text()

		var spec ast.NodeID
		switch {
		case storageClasses[text] || qualifiers[text]:
			spec = p.advanceNode(ast.KIND_C_SPECIFIER)
		case baseTypes[text]:
			spec = p.advanceNode(ast.KIND_C_SPECIFIER)
			sawType = true
		case text == "struct" || text == "union":
			var err error
			if spec, err = p.parseStruct(); err != nil {
				return ast.NoNode, false, err
			}
			sawType = true
		case text == "enum":
			var err error
			if spec, err = p.parseEnum(); err != nil {
				return ast.NoNode, false, err
			}
			sawType = true
		case !sawType && p.isTypedefName(1):
			spec = p.advanceNode(ast.KIND_C_TYPEDEF_NAME)
			sawType = true
		}
		if spec == ast.NoNode {
			break
		}
		p.tree.AddChild(specs, spec)
	}

	p.spell(specs, start)
	return specs, sawType, nil
}

func (p *Parser) parseStruct() (ast.NodeID, error) {
	start := p.pos
	node := p.advanceNode(ast.KIND_C_STRUCT)
	hasTag := false
	if p.nextIs(token.ID) {
		p.tree.AddChild(node, p.advanceNode(ast.KIND_IDENT))
		hasTag = true
	}

	if p.nextIs(token.OPEN_CURLY) {
		p.advance()
		p.compounds++
		p.typedefs.PushScope(fmt.Sprintf("struct{%d}", p.compounds))
		for !p.nextIs(token.CLOSE_CURLY) && !p.nextIs(token.EOF) {
			memberStart := p.pos
			member, err := p.parseDeclaration()
			if err != nil {
				p.pos = memberStart
				p.skipDeclaration()
				continue
			}
			p.tree.AddChild(node, member)
		}
		p.typedefs.PopScope()
		if err := p.expect(token.CLOSE_CURLY); err != nil {
			return ast.NoNode, err
		}
	} else if !hasTag {
		return ast.NoNode, errNoMatch
	}

	p.spell(node, start)
	return node, nil
}

func (p *Parser) parseEnum() (ast.NodeID, error) {
	start := p.pos
	node := p.advanceNode(ast.KIND_C_ENUM)
	hasTag := false
	if p.nextIs(token.ID) {
		p.tree.AddChild(node, p.advanceNode(ast.KIND_IDENT))
		hasTag = true
	}

	if p.nextIs(token.OPEN_CURLY) {
		p.advance()
		for !p.nextIs(token.CLOSE_CURLY) && !p.nextIs(token.EOF) {
			if !p.nextIs(token.ID) {
				return ast.NoNode, errNoMatch
			}
			p.tree.AddChild(node, p.advanceNode(ast.KIND_C_ENUMERATOR))
			if p.nextIs(token.EQUAL) {
				p.advance()
				p.skipExpression()
			}
			if !p.nextIs(token.COMMA) {
				break
			}
			p.advance()
		}
		if err := p.expect(token.CLOSE_CURLY); err != nil {
			return ast.NoNode, err
		}
	} else if !hasTag {
		return ast.NoNode, errNoMatch
	}

	p.spell(node, start)
	return node, nil
}

// Declarators

// Pointer chain, then a name or a parenthesized declarator, then array and
// function suffixes. An abstract declarator may have no name.
func (p *Parser) parseDeclarator(abstract bool) (ast.NodeID, error) {
	decl := p.tree.Make(ast.KIND_C_DECLARATOR, "")
	start := p.pos

	for p.nextIs(token.STAR) || p.nextIs(token.AMPERSAND) {
		pointer := p.advanceNode(ast.KIND_C_POINTER)
		for qualifiers[p.peek().Text()] {
			p.tree.AddChild(pointer, p.advanceNode(ast.KIND_C_SPECIFIER))
		}
		p.tree.AddChild(decl, pointer)
	}

	switch {
	case p.nextIs(token.ID):
		p.tree.AddChild(decl, p.advanceNode(ast.KIND_IDENT))
	case p.nextIs(token.OPEN_PAREN) && p.isParenDeclarator(abstract):
		p.advance()
		inner, err := p.parseDeclarator(abstract)
		if err != nil {
			return ast.NoNode, err
		}
		if err := p.expect(token.CLOSE_PAREN); err != nil {
			return ast.NoNode, err
		}
		p.tree.AddChild(decl, inner)
	case abstract:
	default:
		return ast.NoNode, errNoMatch
	}

	for {
		switch {
		case p.nextIs(token.OPEN_BRACKET):
			suffix := p.tree.Make(ast.KIND_C_ARRAY_SUFFIX, "")
			suffixStart := p.pos
			p.advance()
			p.skipBalanced(token.OPEN_BRACKET, token.CLOSE_BRACKET)
			p.spell(suffix, suffixStart)
			p.tree.AddChild(decl, suffix)
			continue
		case p.nextIs(token.OPEN_PAREN):
			params, err := p.parseParamList()
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(decl, params)
			continue
		}
		break
	}

	p.spell(decl, start)
	return decl, nil
}

func (p *Parser) isParenDeclarator(abstract bool) bool {
	switch p.lt(2).Kind {
	case token.STAR, token.AMPERSAND:
		return true
	case token.OPEN_PAREN, token.OPEN_BRACKET:
		return !abstract
	case token.ID:
		if abstract {
			return false
		}
		return !baseTypes[p.lt(2).Text()] && !p.isTypedefName(2)
	}
	return false
}

func (p *Parser) parseParamList() (ast.NodeID, error) {
	start := p.pos
	p.advance()

	if p.nextIs(token.CLOSE_PAREN) {
		p.advance()
		list := p.tree.Make(ast.KIND_C_PARAM_LIST, "")
		p.spell(list, start)
		return list, nil
	}

	// K&R: f(a, b)
	if p.nextIs(token.ID) && !p.startsDeclaration() &&
		(p.lt(2).Kind == token.COMMA || p.lt(2).Kind == token.CLOSE_PAREN) {
		list := p.tree.Make(ast.KIND_C_IDENT_LIST, "")
		for {
			if !p.nextIs(token.ID) {
				return ast.NoNode, errNoMatch
			}
			p.tree.AddChild(list, p.advanceNode(ast.KIND_IDENT))
			if !p.nextIs(token.COMMA) {
				break
			}
			p.advance()
		}
		if err := p.expect(token.CLOSE_PAREN); err != nil {
			return ast.NoNode, err
		}
		p.spell(list, start)
		return list, nil
	}

	list := p.tree.Make(ast.KIND_C_PARAM_LIST, "")
	for {
		if p.nextIs(token.DOT_DOT_DOT) {
			p.tree.AddChild(list, p.advanceNode(ast.KIND_C_ELLIPSIS))
			break
		}

		paramStart := p.pos
		param := p.tree.Make(ast.KIND_C_PARAM_DECL, "")
		specs, sawType, err := p.parseDeclSpecifiers()
		if err != nil {
			return ast.NoNode, err
		}
		if !sawType {
			return ast.NoNode, errNoMatch
		}
		p.tree.AddChild(param, specs)

		if !p.nextIs(token.COMMA) && !p.nextIs(token.CLOSE_PAREN) {
			declarator, err := p.parseDeclarator(true)
			if err != nil {
				return ast.NoNode, err
			}
			p.tree.AddChild(param, declarator)
		}
		p.spell(param, paramStart)
		p.tree.AddChild(list, param)

		if !p.nextIs(token.COMMA) {
			break
		}
		p.advance()
	}

	if err := p.expect(token.CLOSE_PAREN); err != nil {
		return ast.NoNode, err
	}
	p.spell(list, start)
	return list, nil
}

func hasSpecifier(tree *ast.Tree, specs ast.NodeID, text string) bool {
	for _, spec := range tree.Children(specs) {
		if tree.Kind(spec) == ast.KIND_C_SPECIFIER && tree.Text(spec) == text {
			return true
		}
	}
	return false
}

// Name introduced by a declarator, "" for abstract ones.
func declaratorName(tree *ast.Tree, decl ast.NodeID) string {
	for _, child := range tree.Children(decl) {
		switch tree.Kind(child) {
		case ast.KIND_IDENT:
			return tree.Text(child)
		case ast.KIND_C_DECLARATOR:
			return declaratorName(tree, child)
		}
	}
	return ""
}
