package preproc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/parser"
)

// Text placed before and after the emitted program. Headers that share a
// line with the program do not end in a newline, so only the lines they
// complete shift the line map.
func (pp *Preprocessor) wrap(result *Result, name string) (string, string) {
	if pp.cfg.Dialect == config.WIRING {
		return pp.wrapWiring(result)
	}
	return pp.wrapProcessing(result, name)
}

func (pp *Preprocessor) wrapProcessing(result *Result, name string) (string, string) {
	if result.Mode == parser.FULL {
		result.ClassName = result.Symbols.FirstClass
		return "", ""
	}
	result.ClassName = name

	var header strings.Builder
	for _, imp := range pp.cfg.ExtraImports {
		fmt.Fprintf(&header, "import %s; ", imp)
	}
	fmt.Fprintf(&header, "public class %s extends PApplet { ", name)

	if result.Mode == parser.STATEMENT_LIST {
		header.WriteString("public void setup() { ")
		return header.String(), "noLoop();\n}\n}\n"
	}
	return header.String(), "}\n"
}

func (pp *Preprocessor) wrapWiring(result *Result) (string, string) {
	var header strings.Builder
	header.WriteString(pp.cfg.Header)
	header.WriteByte('\n')
	for _, imp := range pp.cfg.ExtraImports {
		fmt.Fprintf(&header, "#include \"%s\"\n", imp)
	}
	for _, proto := range result.Prototypes {
		header.WriteString(proto.String())
		header.WriteByte('\n')
	}
	result.PrototypeCount = len(result.Prototypes)

	var footer strings.Builder
	if result.Mode == parser.STATEMENT_LIST {
		header.WriteString("void setup() { ")
		footer.WriteString("}\n")
		footer.WriteString("void loop() {}\n")
		return header.String(), footer.String()
	}

	functions := result.Symbols.Functions
	if !slices.Contains(functions, "setup") {
		footer.WriteString("void setup() {}\n")
	}
	if !slices.Contains(functions, "loop") {
		footer.WriteString("void loop() {}\n")
	}
	return header.String(), footer.String()
}
