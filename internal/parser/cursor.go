package parser

import (
	"fmt"

	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

// Position inside the materialized token buffer. Marks form a stack and
// must be rewound in LIFO order.
type cursor struct {
	offset int
	tokens []*token.Token
	marks  []int
}

func newCursor(tokens []*token.Token) *cursor {
	return &cursor{offset: 0, tokens: tokens}
}

func (cursor *cursor) peek() *token.Token {
	return cursor.peekN(1)
}

// 1-based lookahead, clamped to the trailing EOF
func (cursor *cursor) peekN(n int) *token.Token {
	index := cursor.offset + n - 1
	if index >= len(cursor.tokens) {
		index = len(cursor.tokens) - 1
	}
	return cursor.tokens[index]
}

func (cursor *cursor) next() *token.Token {
	token := cursor.peek()
	if !cursor.isAtEnd() {
		cursor.offset++
	}
	return token
}

func (cursor *cursor) skip() {
	cursor.next()
}

func (cursor *cursor) nextIs(expectedKind token.Kind) bool {
	return cursor.peek().Kind == expectedKind
}

// The last token is always EOF and is never consumed.
func (cursor *cursor) isAtEnd() bool {
	return cursor.offset >= len(cursor.tokens)-1
}

func (cursor *cursor) mark() int {
	cursor.marks = append(cursor.marks, cursor.offset)
	return len(cursor.marks) - 1
}

func (cursor *cursor) rewind(m int) {
	if m != len(cursor.marks)-1 {
		panic(fmt.Sprintf("parser: rewind of mark %d out of order (top is %d)", m, len(cursor.marks)-1))
	}
	cursor.offset = cursor.marks[m]
	cursor.marks = cursor.marks[:m]
}

func (cursor *cursor) depth() int { return len(cursor.marks) }
