package preproc

import (
	"github.com/pkg/errors"

	"github.com/HicaroD/sketchpp/internal/diagnostics"
	"github.com/HicaroD/sketchpp/internal/lexer"
	"github.com/HicaroD/sketchpp/internal/lexer/token"
	"github.com/HicaroD/sketchpp/internal/parser"
)

// Every token of src as the lexer sees it, trivia included and EOF last.
// Lexical errors are reported and also returned as ErrCompilerErrorFound.
func (pp *Preprocessor) Tokens(src Source) ([]*token.Token, []diagnostics.Diag, error) {
	text, _, err := DecodeSource(src.Bytes)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", src.Tag)
	}
	flags := pp.Flags()
	if flags.SubstituteUnicode {
		text = substituteUnicode(text)
	}

	collector := pp.collector()
	lex := lexer.New(src.Tag, []byte(text), collector, parser.LexerOptions(flags))
	tokens, err := lex.Tokenize()
	if err == nil && collector.HasErrors() {
		err = diagnostics.ErrCompilerErrorFound
	}
	return tokens, collector.Diags, err
}
