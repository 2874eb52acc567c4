// Package preproc runs the whole pipeline on a sketch: decoding, lexing,
// classification and parsing, the symbol pass, prototype synthesis,
// emission and the dialect wrapper.
package preproc

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/HicaroD/sketchpp/internal/ast"
	"github.com/HicaroD/sketchpp/internal/cdecl"
	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/diagnostics"
	"github.com/HicaroD/sketchpp/internal/emitter"
	"github.com/HicaroD/sketchpp/internal/hidden"
	"github.com/HicaroD/sketchpp/internal/lexer"
	"github.com/HicaroD/sketchpp/internal/parser"
	"github.com/HicaroD/sketchpp/internal/sema"
	"github.com/HicaroD/sketchpp/internal/symtab"
)

const DefaultClassName = "Sketch"

type Result struct {
	Text string
	Mode parser.Mode
	// Class the output defines: the wrapper class, or the first class of a
	// full program
	ClassName string
	// Synthesized forward declarations, in source order
	Prototypes []cdecl.Prototype
	// Prototypes written into the header
	PrototypeCount int
	// Lines the wrapper added in front of the program
	HeaderLines int
	LineMap     *emitter.LineMap

	Tree    *ast.Tree
	Root    ast.NodeID
	Symbols *sema.Info
	Diags   []diagnostics.Diag
	// YAML parse tree, only with output_parse_tree
	ParseTree []byte
	// Detected charset per source tag
	Charsets map[string]string
}

type Preprocessor struct {
	cfg    *config.Config
	logger *zap.Logger

	// Collector for one run. Silent when nil.
	NewCollector func() *diagnostics.Collector
}

func New(cfg *config.Config, logger *zap.Logger) *Preprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Preprocessor{cfg: cfg, logger: logger}
}

func (pp *Preprocessor) Config() *config.Config { return pp.cfg }

// Flags in effect for the configured dialect. Wiring output is C++: methods
// are functions there and get no visibility.
func (pp *Preprocessor) Flags() config.Flags {
	flags := pp.cfg.Flags
	if pp.cfg.Dialect == config.WIRING {
		flags.PublicMethods = false
	}
	return flags
}

// Preprocesses sources as one sketch called name. On diagnostics the
// result still carries them, and ErrCompilerErrorFound is returned.
func (pp *Preprocessor) Run(name string, sources ...Source) (*Result, error) {
	if name == "" {
		name = DefaultClassName
	}
	flags := pp.Flags()
	result, body, err := pp.translate(flags, flags, sources)
	if err != nil {
		return result, err
	}

	header, footer := pp.wrap(result, name)
	result.Text = header + body + footer
	result.HeaderLines = countLines(header)
	result.LineMap.Prepend(result.HeaderLines)

	pp.logger.Debug("preprocessed",
		zap.String("name", name),
		zap.Stringer("mode", result.Mode),
		zap.Int("prototypes", result.PrototypeCount),
		zap.Int("headerLines", result.HeaderLines),
	)
	return result, nil
}

// A decoded source, as the lexer reads it
type sourceText struct {
	tag  string
	text string
}

// Everything but the wrapper. Returns the emitted program text. Sources are
// read and parsed with flags; rewrites only decides what the emitter
// changes.
func (pp *Preprocessor) translate(flags, rewrites config.Flags, sources []Source) (*Result, string, error) {
	result := &Result{Charsets: make(map[string]string)}
	collector := pp.collector()

	channel := hidden.New()
	lexers := make([]*lexer.Lexer, 0, len(sources))
	texts := make([]sourceText, 0, len(sources))
	for _, src := range sources {
		text, label, err := DecodeSource(src.Bytes)
		if err != nil {
			return result, "", errors.Wrapf(err, "reading %s", src.Tag)
		}
		result.Charsets[src.Tag] = label
		pp.logger.Debug("decoded source", zap.String("tag", src.Tag), zap.String("charset", label))

		text = ensureTrailingNewline(text)
		if flags.SubstituteUnicode {
			text = substituteUnicode(text)
		}
		texts = append(texts, sourceText{tag: src.Tag, text: text})
		lexers = append(lexers, lexer.New(src.Tag, []byte(text), collector, parser.LexerOptions(flags)))
	}

	stream := lexer.NewStream(channel, lexers...)
	pp.logger.Debug("tokenized",
		zap.Int("tokens", len(stream.Tokens)),
		zap.Int("trivia", stream.TriviaCount()),
	)

	// A wiring sketch the sketch grammar rejects may still be valid C++,
	// so its syntax errors are held back until that is ruled out.
	wiring := pp.cfg.Dialect == config.WIRING
	parseCollector := collector
	if wiring {
		parseCollector = diagnostics.NewSilent()
	}

	p := parser.New(stream, parseCollector, flags)
	program, err := p.ParseProgram()
	if err == nil && collector.HasErrors() {
		err = diagnostics.ErrCompilerErrorFound
	}
	if err != nil && wiring && !collector.HasErrors() {
		pp.logger.Debug("not a sketch program, keeping the C++ as written",
			zap.Int("syntax", parseCollector.Count(diagnostics.SYNTAX)),
		)
		return pp.translateC(flags, result, stream, texts)
	}

	result.Tree = program.Tree
	result.Root = program.Root
	result.Mode = program.Mode
	result.Diags = collector.Diags
	if err != nil {
		pp.logger.Debug("parse failed",
			zap.Int("syntax", parseCollector.Count(diagnostics.SYNTAX)),
			zap.Int("semantic", parseCollector.Count(diagnostics.SEMANTIC_PREDICATE)),
			zap.Int("lexical", collector.Count(diagnostics.LEXICAL)),
		)
		return result, "", err
	}
	pp.logger.Debug("classified", zap.Stringer("mode", program.Mode))

	result.Symbols = sema.New(program.Tree, program.Mode).Check(program.Root)
	result.Prototypes = pp.prototypes(stream)

	if flags.OutputParseTree {
		if result.ParseTree, err = parseTreeYAML(program.Tree, program.Root); err != nil {
			return result, "", err
		}
	}

	e := emitter.New(program.Tree, channel, rewrites)
	body, err := e.Emit(program.Root)
	if err != nil {
		return result, "", errors.Wrap(err, "emitting")
	}
	result.LineMap = e.LineMap()
	return result, body, nil
}

// Wiring sketches written in plain C++ (unnamed parameters, old-style
// definitions, structs) go out as they came in. Only the C declaration pass
// runs on them: it finds the prototypes and the functions defined, and
// decides the mode.
func (pp *Preprocessor) translateC(flags config.Flags, result *Result, stream *lexer.Stream, texts []sourceText) (*Result, string, error) {
	cp := cdecl.New(stream.Tokens)
	root := cp.ParseTranslationUnit()
	found := cdecl.Walk(cp.Tree(), root)

	result.Tree = cp.Tree()
	result.Root = root
	result.Mode = parser.STATEMENT_LIST
	result.Symbols = &sema.Info{
		Symbols: symtab.New[ast.NodeID](),
		Uses:    make(map[ast.NodeID]ast.NodeID),
	}
	for _, proto := range found {
		if proto.Declared || proto.Nested {
			continue
		}
		result.Mode = parser.FUNCTION_BASED
		result.Symbols.Functions = append(result.Symbols.Functions, proto.Name)
	}
	result.Prototypes = pp.selectPrototypes(found)
	pp.logger.Debug("classified", zap.Stringer("mode", result.Mode))

	if flags.OutputParseTree {
		var err error
		if result.ParseTree, err = parseTreeYAML(result.Tree, root); err != nil {
			return result, "", err
		}
	}

	var body strings.Builder
	result.LineMap = &emitter.LineMap{}
	for _, src := range texts {
		body.WriteString(src.text)
		result.LineMap.Append(src.tag, countLines(src.text))
	}
	return result, body.String(), nil
}

func parseTreeYAML(tree *ast.Tree, root ast.NodeID) ([]byte, error) {
	var buf bytes.Buffer
	if err := tree.WriteYAML(&buf, root); err != nil {
		return nil, errors.Wrap(err, "writing parse tree")
	}
	return buf.Bytes(), nil
}

func (pp *Preprocessor) collector() *diagnostics.Collector {
	if pp.NewCollector != nil {
		return pp.NewCollector()
	}
	return diagnostics.NewSilent()
}

// Function definitions that need a forward declaration: not already
// declared, not nested, not skipped by the configuration.
func (pp *Preprocessor) prototypes(stream *lexer.Stream) []cdecl.Prototype {
	cp := cdecl.New(stream.Tokens)
	root := cp.ParseTranslationUnit()
	return pp.selectPrototypes(cdecl.Walk(cp.Tree(), root))
}

func (pp *Preprocessor) selectPrototypes(found []cdecl.Prototype) []cdecl.Prototype {
	declared := make(map[string]bool)
	for _, proto := range found {
		if proto.Declared {
			declared[proto.Name] = true
		}
	}

	var selected []cdecl.Prototype
	seen := make(map[string]bool)
	for _, proto := range found {
		if proto.Declared || proto.Nested || declared[proto.Name] || pp.cfg.SkipsPrototype(proto.Name) {
			continue
		}
		if text := proto.String(); !seen[text] {
			seen[text] = true
			selected = append(selected, proto)
		}
	}
	pp.logger.Debug("prototypes", zap.Int("found", len(found)), zap.Int("selected", len(selected)))
	return selected
}

func countLines(text string) int {
	return bytes.Count([]byte(text), []byte("\n"))
}
