package parser

import (
	"fmt"

	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/diagnostics"
	"github.com/HicaroD/sketchpp/internal/hidden"
	"github.com/HicaroD/sketchpp/internal/lexer"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

type Parser struct {
	collector *diagnostics.Collector
	flags     config.Flags

	cursor *cursor
	tree   *ast.Tree
	hidden *hidden.Channel

	// Depth of nested trial parses. While positive nothing is reported,
	// nothing is copied into the hidden channel and errors unwind the trial.
	guessing int

	lastReported *token.Pos
}

func New(stream *lexer.Stream, collector *diagnostics.Collector, flags config.Flags) *Parser {
	parser := new(Parser)
	parser.collector = collector
	parser.flags = flags
	parser.cursor = newCursor(stream.Tokens)
	parser.tree = ast.NewTree()
	parser.hidden = stream.Hidden
	return parser
}

// Lexer options matching the parser flags
func LexerOptions(flags config.Flags) lexer.Options {
	return lexer.Options{ColorDatatype: flags.ColorDatatype, WebColors: flags.WebColors}
}

func (p *Parser) Tree() *ast.Tree { return p.tree }

func (p *Parser) Hidden() *hidden.Channel { return p.hidden }

// Lookahead

func (p *Parser) peek() *token.Token { return p.cursor.peek() }

func (p *Parser) lt(n int) *token.Token { return p.cursor.peekN(n) }

func (p *Parser) la(n int) token.Kind { return p.cursor.peekN(n).Kind }

func (p *Parser) nextIs(kind token.Kind) bool { return p.cursor.nextIs(kind) }

func (p *Parser) nextIsLexeme(lexeme string) bool {
	tok := p.peek()
	return tok.Kind == token.ID && string(tok.Lexeme) == lexeme
}

// Consumption

// Consumes the next token. Its text is not represented by any node, so it
// is copied into the hidden channel under its own sequence number.
func (p *Parser) skip() *token.Token {
	tok := p.cursor.next()
	p.copyToken(tok)
	return tok
}

func (p *Parser) copyToken(tok *token.Token) {
	if p.guessing > 0 || tok.Kind == token.EOF {
		return
	}
	p.hidden.Record(tok.Text(), tok.Seq)
}

// Consumes the next token if it is of the expected kind and copies it.
func (p *Parser) match(kind token.Kind) error {
	if !p.nextIs(kind) {
		return p.mismatch(kind)
	}
	p.skip()
	return nil
}

// Consumes the next token if it is of the expected kind and turns it into a
// node.
func (p *Parser) matchNode(kind token.Kind, nodeKind ast.NodeKind) (ast.NodeID, error) {
	if !p.nextIs(kind) {
		return ast.NoNode, p.mismatch(kind)
	}
	return p.advanceNode(nodeKind), nil
}

// Turns the next token into a node regardless of its kind.
func (p *Parser) advanceNode(nodeKind ast.NodeKind) ast.NodeID {
	tok := p.cursor.next()
	return p.tree.FromToken(nodeKind, tok)
}

// Consumes the `}` closing the block opened by open.
func (p *Parser) closeBrace(open *token.Token) error {
	if p.nextIs(token.CLOSE_CURLY) {
		p.skip()
		return nil
	}
	err := p.mismatch(token.CLOSE_CURLY)
	err.Context = fmt.Sprintf("unterminated block opened at line %d, column %d", open.Pos.Line, open.Pos.Column)
	return err
}

// Errors

func (p *Parser) mismatch(expected ...token.Kind) *diagnostics.ParseError {
	tok := p.peek()
	names := make([]string, len(expected))
	for i, kind := range expected {
		names[i] = kind.String()
	}
	return &diagnostics.ParseError{
		Kind:     diagnostics.MISMATCHED_TOKEN,
		Pos:      tok.Pos,
		Found:    tok.Name(),
		Expected: names,
	}
}

func (p *Parser) noViableAlt(rule string) error {
	tok := p.peek()
	return &diagnostics.ParseError{
		Kind:  diagnostics.NO_VIABLE_ALT,
		Pos:   tok.Pos,
		Found: tok.Name(),
		Rule:  rule,
	}
}

// Semantic predicates are only evaluated once the parser committed to an
// alternative. A failed one is reported but parsing goes on.
func (p *Parser) predicate(ok bool, tok *token.Token, rule, format string, args ...any) {
	if ok || p.guessing > 0 {
		return
	}
	p.report(&diagnostics.PredicateError{
		Pos:     tok.Pos,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	})
}

// Several errors at the same token are reported once.
func (p *Parser) report(err error) {
	if p.guessing > 0 {
		return
	}
	if parseErr, ok := err.(*diagnostics.ParseError); ok {
		if p.lastReported != nil && *p.lastReported == parseErr.Pos {
			return
		}
		pos := parseErr.Pos
		p.lastReported = &pos
	}
	p.collector.ReportError(err)
}

// Speculation

// Runs rule as a trial parse and reports whether it matched. The input
// position and the tree are rewound either way.
func (p *Parser) speculate(rule func() error) bool {
	m := p.cursor.mark()
	cp := p.tree.Mark()
	p.guessing++

	err := rule()

	p.guessing--
	p.tree.Restore(cp)
	p.cursor.rewind(m)
	return err == nil
}

// Recovery

type syncSet func(kind token.Kind) bool

// Reports err and skips input until a token of the sync set. Skipped tokens
// are copied so the output keeps them. start is the cursor offset where the
// failed rule began; if nothing was consumed since then one token is
// skipped unconditionally. During a trial the error is handed back instead
// so the trial fails.
func (p *Parser) recover(err error, start int, sync syncSet) error {
	if p.guessing > 0 {
		return err
	}
	p.report(err)

	if p.nextIs(token.EOF) {
		return nil
	}
	if p.cursor.offset == start {
		if p.skip().Kind == token.SEMICOLON {
			return nil
		}
	}
	for !p.nextIs(token.EOF) {
		kind := p.la(1)
		if kind == token.SEMICOLON {
			p.skip()
			return nil
		}
		if sync(kind) {
			return nil
		}
		p.skip()
	}
	return nil
}

func syncStatement(kind token.Kind) bool {
	switch kind {
	case token.CLOSE_CURLY, token.IF, token.FOR, token.WHILE, token.DO,
		token.SWITCH, token.RETURN, token.BREAK, token.CONTINUE, token.THROW,
		token.TRY:
		return true
	}
	return false
}

func syncMember(kind token.Kind) bool {
	if kind == token.CLOSE_CURLY || kind == token.CLASS || kind == token.INTERFACE {
		return true
	}
	return kind.IsModifier() || kind.IsBuiltinType()
}

func syncTopLevel(kind token.Kind) bool {
	return kind == token.CLASS || kind == token.INTERFACE || kind == token.IMPORT || kind.IsModifier()
}
