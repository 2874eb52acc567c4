package lexer

import (
	"github.com/HicaroD/sketchpp/internal/diagnostics"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

type Options struct {
	// `color` becomes a keyword instead of an identifier
	ColorDatatype bool
	// `#` followed by hex digits becomes a web color literal
	WebColors bool
}

type Lexer struct {
	Collector *diagnostics.Collector
	Opts      Options

	src    []byte
	offset int
	pos    token.Pos

	// only blanks were seen since the last newline
	lineStart bool
}

func New(filename string, src []byte, collector *diagnostics.Collector, opts Options) *Lexer {
	lexer := new(Lexer)

	lexer.Collector = collector
	lexer.Opts = opts
	lexer.pos = token.NewPosition(filename, 1, 1)
	lexer.src = src
	lexer.offset = 0
	lexer.lineStart = true

	return lexer
}

// Returns the next token, trivia included.
func (lex *Lexer) Next() *token.Token {
	tok := &token.Token{}
	tok.Kind = token.INVALID

	if lex.atEnd() {
		lex.consumeTokenNoLex(tok, token.EOF)
		return tok
	}

	lex.getToken(tok, lex.peekChar())
	switch tok.Kind {
	case token.NEWLINE:
		lex.lineStart = true
	case token.WHITESPACE, token.BLOCK_COMMENT:
	default:
		lex.lineStart = false
	}
	return tok
}

// Useful for testing
func (lex *Lexer) Tokenize() ([]*token.Token, error) {
	var tokens []*token.Token
	invalid := false
	for {
		tok := lex.Next()
		if tok.Kind == token.INVALID {
			invalid = true
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	if invalid {
		return tokens, diagnostics.ErrCompilerErrorFound
	}
	return tokens, nil
}

func (lex *Lexer) getToken(tok *token.Token, ch byte) {
	switch ch {
	case '\n':
		lex.consumeToken(tok, token.NEWLINE, 1)
	case ' ', '\t', '\r', '\f', '\v':
		lex.getWhitespace(tok)
	case '/':
		switch lex.peekAt(1) {
		case '/':
			lex.getLineComment(tok)
		case '*':
			lex.getBlockComment(tok)
		case '=':
			lex.consumeToken(tok, token.SLASH_EQUAL, 2)
		default:
			lex.consumeToken(tok, token.SLASH, 1)
		}
	case '#':
		lex.getSharp(tok)
	case '"':
		lex.getQuoted(tok, '"', token.STRING_LITERAL)
	case '\'':
		lex.getQuoted(tok, '\'', token.CHAR_LITERAL)
	case '(':
		lex.consumeToken(tok, token.OPEN_PAREN, 1)
	case ')':
		lex.consumeToken(tok, token.CLOSE_PAREN, 1)
	case '{':
		lex.consumeToken(tok, token.OPEN_CURLY, 1)
	case '}':
		lex.consumeToken(tok, token.CLOSE_CURLY, 1)
	case '[':
		lex.consumeToken(tok, token.OPEN_BRACKET, 1)
	case ']':
		lex.consumeToken(tok, token.CLOSE_BRACKET, 1)
	case ';':
		lex.consumeToken(tok, token.SEMICOLON, 1)
	case ',':
		lex.consumeToken(tok, token.COMMA, 1)
	case '?':
		lex.consumeToken(tok, token.QUESTION, 1)
	case '@':
		lex.consumeToken(tok, token.AT, 1)
	case '~':
		lex.consumeToken(tok, token.TILDE, 1)
	case '.':
		switch {
		case isDigit(lex.peekAt(1)):
			lex.getNumber(tok)
		case lex.peekAt(1) == '.' && lex.peekAt(2) == '.':
			lex.consumeToken(tok, token.DOT_DOT_DOT, 3)
		default:
			lex.consumeToken(tok, token.DOT, 1)
		}
	case ':':
		lex.pickOperator(tok, token.COLON, map[string]token.Kind{"::": token.COLON_COLON})
	case '=':
		lex.pickOperator(tok, token.EQUAL, map[string]token.Kind{"==": token.EQUAL_EQUAL})
	case '!':
		lex.pickOperator(tok, token.BANG, map[string]token.Kind{"!=": token.BANG_EQUAL})
	case '+':
		lex.pickOperator(tok, token.PLUS, map[string]token.Kind{"++": token.PLUS_PLUS, "+=": token.PLUS_EQUAL})
	case '-':
		lex.pickOperator(tok, token.MINUS, map[string]token.Kind{"--": token.MINUS_MINUS, "-=": token.MINUS_EQUAL, "->": token.ARROW})
	case '*':
		lex.pickOperator(tok, token.STAR, map[string]token.Kind{"*=": token.STAR_EQUAL})
	case '%':
		lex.pickOperator(tok, token.PERCENT, map[string]token.Kind{"%=": token.PERCENT_EQUAL})
	case '^':
		lex.pickOperator(tok, token.CARET, map[string]token.Kind{"^=": token.CARET_EQUAL})
	case '&':
		lex.pickOperator(tok, token.AMPERSAND, map[string]token.Kind{"&&": token.AND_AND, "&=": token.AMPERSAND_EQUAL})
	case '|':
		lex.pickOperator(tok, token.PIPE, map[string]token.Kind{"||": token.OR_OR, "|=": token.PIPE_EQUAL})
	case '<':
		lex.pickOperator(tok, token.LESS, map[string]token.Kind{
			"<=": token.LESS_EQ, "<<": token.SHIFT_LEFT, "<<=": token.SHIFT_LEFT_EQUAL,
		})
	case '>':
		lex.pickOperator(tok, token.GREATER, map[string]token.Kind{
			">=": token.GREATER_EQ, ">>": token.SHIFT_RIGHT, ">>=": token.SHIFT_RIGHT_EQUAL,
			">>>": token.USHIFT_RIGHT, ">>>=": token.USHIFT_RIGHT_EQUAL,
		})
	default:
		switch {
		case isDigit(ch):
			lex.getNumber(tok)
		case isIdentStart(ch):
			lex.getIdentOrKeyword(tok)
		default:
			lex.consumeToken(tok, token.INVALID, 1)
			lex.reportLexical(tok.Pos, "invalid character %q", string(tok.Lexeme))
		}
	}
}

// Longest match among the operators starting with the current character.
func (lex *Lexer) pickOperator(tok *token.Token, single token.Kind, longer map[string]token.Kind) {
	best, bestLen := single, 1
	for text, kind := range longer {
		if len(text) > bestLen && lex.hasPrefix(text) {
			best, bestLen = kind, len(text)
		}
	}
	lex.consumeToken(tok, best, bestLen)
}

func (lex *Lexer) getWhitespace(tok *token.Token) {
	tok.Pos = lex.pos
	start := lex.offset
	lex.readWhile(func(ch byte) bool {
		return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'
	})
	tok.Kind = token.WHITESPACE
	tok.Lexeme = lex.src[start:lex.offset]
}

func (lex *Lexer) getLineComment(tok *token.Token) {
	tok.Pos = lex.pos
	start := lex.offset
	lex.readWhile(func(ch byte) bool { return ch != '\n' })
	tok.Kind = token.LINE_COMMENT
	tok.Lexeme = lex.src[start:lex.offset]
}

func (lex *Lexer) getBlockComment(tok *token.Token) {
	tok.Pos = lex.pos
	start := lex.offset
	lex.nextChar()
	lex.nextChar()
	for {
		if lex.atEnd() {
			lex.reportLexical(tok.Pos, "unterminated block comment")
			break
		}
		if lex.peekChar() == '*' && lex.peekAt(1) == '/' {
			lex.nextChar()
			lex.nextChar()
			break
		}
		lex.nextChar()
	}
	tok.Kind = token.BLOCK_COMMENT
	tok.Lexeme = lex.src[start:lex.offset]
}

// '#' starts a web color (#FF00AA) when enabled and followed by hex digits
// only, otherwise a preprocessor line when it is the first thing on its
// line.
func (lex *Lexer) getSharp(tok *token.Token) {
	tok.Pos = lex.pos
	start := lex.offset

	if lex.Opts.WebColors {
		end := lex.offset + 1
		allHex := true
		for end < len(lex.src) && isIdentPart(lex.src[end]) {
			if !isHexDigit(lex.src[end]) {
				allHex = false
			}
			end++
		}
		if end > lex.offset+1 && allHex {
			for lex.offset < end {
				lex.nextChar()
			}
			tok.Kind = token.WEBCOLOR_LITERAL
			tok.Lexeme = lex.src[start:lex.offset]
			return
		}
	}

	if !lex.lineStart {
		lex.consumeToken(tok, token.INVALID, 1)
		lex.reportLexical(tok.Pos, "unexpected '#' in the middle of a line")
		return
	}

	for {
		ch := lex.peekChar()
		if lex.atEnd() || ch == '\n' {
			break
		}
		if ch == '\\' && lex.peekAt(1) == '\n' {
			lex.nextChar()
		} else if ch == '\\' && lex.peekAt(1) == '\r' && lex.peekAt(2) == '\n' {
			lex.nextChar()
			lex.nextChar()
		}
		lex.nextChar()
	}
	tok.Kind = token.DIRECTIVE
	tok.Lexeme = lex.src[start:lex.offset]
}

func (lex *Lexer) getQuoted(tok *token.Token, quote byte, kind token.Kind) {
	tok.Pos = lex.pos
	start := lex.offset
	lex.nextChar()
	for {
		ch := lex.peekChar()
		if lex.atEnd() || ch == '\n' {
			tok.Kind = token.INVALID
			tok.Lexeme = lex.src[start:lex.offset]
			lex.reportLexical(tok.Pos, "unterminated %s", kind)
			return
		}
		lex.nextChar()
		if ch == '\\' {
			if !lex.atEnd() && lex.peekChar() != '\n' {
				lex.nextChar()
			}
			continue
		}
		if ch == quote {
			break
		}
	}
	tok.Kind = kind
	tok.Lexeme = lex.src[start:lex.offset]
}

func (lex *Lexer) getNumber(tok *token.Token) {
	tok.Pos = lex.pos
	start := lex.offset
	kind := token.INT_LITERAL

	if lex.peekChar() == '0' && (lex.peekAt(1) == 'x' || lex.peekAt(1) == 'X') {
		lex.nextChar()
		lex.nextChar()
		lex.readWhile(isHexDigit)
	} else {
		lex.readWhile(isDigit)
		if lex.peekChar() == '.' && lex.peekAt(1) != '.' && !isIdentStart(lex.peekAt(1)) {
			kind = token.DOUBLE_LITERAL
			lex.nextChar()
			lex.readWhile(isDigit)
		}
		if ch := lex.peekChar(); ch == 'e' || ch == 'E' {
			sign := lex.peekAt(1)
			if isDigit(sign) || ((sign == '+' || sign == '-') && isDigit(lex.peekAt(2))) {
				kind = token.DOUBLE_LITERAL
				lex.nextChar()
				if sign == '+' || sign == '-' {
					lex.nextChar()
				}
				lex.readWhile(isDigit)
			}
		}
	}

	switch lex.peekChar() {
	case 'l', 'L':
		if kind == token.INT_LITERAL {
			kind = token.LONG_LITERAL
			lex.nextChar()
		}
	case 'f', 'F':
		kind = token.FLOAT_LITERAL
		lex.nextChar()
	case 'd', 'D':
		kind = token.DOUBLE_LITERAL
		lex.nextChar()
	}

	tok.Kind = kind
	tok.Lexeme = lex.src[start:lex.offset]

	if isIdentPart(lex.peekChar()) {
		lex.readWhile(isIdentPart)
		tok.Kind = token.INVALID
		tok.Lexeme = lex.src[start:lex.offset]
		lex.reportLexical(tok.Pos, "invalid numeric literal %q", string(tok.Lexeme))
	}
}

func (lex *Lexer) getIdentOrKeyword(tok *token.Token) {
	tok.Pos = lex.pos
	start := lex.offset
	lex.readWhile(isIdentPart)
	tok.Lexeme = lex.src[start:lex.offset]

	kind, ok := token.KEYWORDS[string(tok.Lexeme)]
	if !ok || (kind == token.COLOR && !lex.Opts.ColorDatatype) {
		kind = token.ID
	}
	tok.Kind = kind
}

func (lex *Lexer) reportLexical(pos token.Pos, format string, args ...any) {
	if lex.Collector == nil {
		return
	}
	lex.Collector.ReportAndSave(diagnostics.NewDiag(diagnostics.LEXICAL, pos, format, args...))
}

func (lex *Lexer) consumeToken(tok *token.Token, kind token.Kind, length int) {
	tok.Pos = lex.pos
	start := lex.offset
	for i := 0; i < length; i++ {
		lex.nextChar()
	}
	tok.Kind = kind
	tok.Lexeme = lex.src[start:lex.offset]
}

func (lex *Lexer) consumeTokenNoLex(tok *token.Token, kind token.Kind) {
	tok.Pos = lex.pos
	tok.Kind = kind
	tok.Lexeme = nil
}

func (lex *Lexer) hasPrefix(text string) bool {
	if lex.offset+len(text) > len(lex.src) {
		return false
	}
	return string(lex.src[lex.offset:lex.offset+len(text)]) == text
}

func (lex *Lexer) readWhile(isValid func(byte) bool) {
	for {
		if lex.atEnd() || !isValid(lex.peekChar()) {
			break
		}
		lex.nextChar()
	}
}

func (lex *Lexer) peekChar() byte {
	return lex.peekAt(0)
}

func (lex *Lexer) atEnd() bool {
	return lex.offset >= len(lex.src)
}

// Past the end of input this is 0, which a NUL byte in the source also is:
// atEnd tells them apart.
func (lex *Lexer) peekAt(n int) byte {
	if lex.offset+n >= len(lex.src) {
		return 0
	}
	return lex.src[lex.offset+n]
}

func (lex *Lexer) nextChar() byte {
	character := lex.peekChar()
	if !lex.atEnd() {
		lex.offset++
		lex.pos.Move(character)
	}
	return character
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// Bytes of multi-byte UTF-8 sequences are accepted as identifier characters.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
