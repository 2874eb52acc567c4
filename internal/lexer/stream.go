package lexer

import (
	"github.com/HicaroD/sketchpp/internal/hidden"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
)

// Significant tokens of one or more sources, materialized so the parser can
// mark and rewind freely. Trivia goes to the hidden channel keyed by the
// sequence number of the token that follows it.
type Stream struct {
	Tokens []*token.Token
	Hidden *hidden.Channel

	trivia int
}

func NewStream(channel *hidden.Channel, lexers ...*Lexer) *Stream {
	stream := &Stream{Hidden: channel}

	var last *token.Token
	for _, lex := range lexers {
		for {
			tok := lex.Next()
			if tok.Kind == token.EOF {
				last = tok
				break
			}
			nextSeq := len(stream.Tokens) + 1
			if tok.Kind.IsTrivia() {
				channel.Record(string(tok.Lexeme), nextSeq)
				stream.trivia++
				continue
			}
			tok.Seq = nextSeq
			stream.Tokens = append(stream.Tokens, tok)
		}
	}

	if last == nil {
		last = &token.Token{Kind: token.EOF}
	}
	last.Seq = len(stream.Tokens) + 1
	stream.Tokens = append(stream.Tokens, last)
	return stream
}

func (stream *Stream) EOF() *token.Token {
	return stream.Tokens[len(stream.Tokens)-1]
}

// Number of trivia tokens recorded into the hidden channel
func (stream *Stream) TriviaCount() int {
	return stream.trivia
}
