package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrCompilerErrorFound = errors.New("compiler error found")
)

type Collector struct {
	Diags []Diag

	// Where reported diagnostics are printed. Nil keeps them silent.
	Out io.Writer
	// Optional formatting applied before printing, the CLI uses it for
	// colors.
	Format func(Diag) string
}

func New() *Collector {
	return &Collector{
		Diags: nil,
		Out:   os.Stderr,
	}
}

func NewSilent() *Collector {
	return &Collector{}
}

func (collector *Collector) ReportAndSave(diag Diag) {
	if collector.Out != nil {
		message := diag.Message
		if collector.Format != nil {
			message = collector.Format(diag)
		}
		fmt.Fprintln(collector.Out, message)
	}
	collector.Diags = append(collector.Diags, diag)
}

// Reports an error produced by the parser or one of the semantic
// predicates, choosing the diagnostic kind from the error type.
func (collector *Collector) ReportError(err error) {
	var parseErr *ParseError
	var predErr *PredicateError
	switch {
	case errors.As(err, &predErr):
		collector.ReportAndSave(Diag{Kind: SEMANTIC_PREDICATE, Pos: predErr.Pos, Message: predErr.Error()})
	case errors.As(err, &parseErr):
		collector.ReportAndSave(Diag{Kind: SYNTAX, Pos: parseErr.Pos, Message: parseErr.Error()})
	default:
		collector.ReportAndSave(Diag{Kind: SYNTAX, Message: err.Error()})
	}
}

func (collector *Collector) HasErrors() bool {
	return len(collector.Diags) > 0
}

func (collector *Collector) Count(kind DiagKind) int {
	count := 0
	for _, diag := range collector.Diags {
		if diag.Kind == kind {
			count++
		}
	}
	return count
}
