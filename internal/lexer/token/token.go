package token

import "fmt"

type Token struct {
	Lexeme []byte
	Kind   Kind
	Pos    Pos
	// Position of the token among the significant tokens of a stream,
	// starting at 1. Trivia tokens keep zero.
	Seq int
}

func New(lexeme []byte, kind Kind, position Pos) *Token {
	return &Token{Lexeme: lexeme, Kind: kind, Pos: position}
}

func (token *Token) Text() string { return string(token.Lexeme) }

func (token *Token) Name() string {
	switch token.Kind {
	case ID, INVALID, DIRECTIVE:
		return string(token.Lexeme)
	}
	if token.Kind.IsLiteral() {
		return string(token.Lexeme)
	}
	return token.Kind.String()
}

func (token *Token) String() string {
	return fmt.Sprintf("%s | %s | %s", string(token.Lexeme), token.Kind, token.Pos)
}
