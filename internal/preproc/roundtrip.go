package preproc

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/HicaroD/sketchpp/internal/config"
)

type RoundTripReport struct {
	Identical bool
	Expected  string
	Got       string
	// Colored diff of Expected against Got, empty when identical
	Diff string
}

// Preprocesses sources with no wrapper and every rewrite off, and checks the
// output is the input, byte for byte. Sources are still parsed with the
// configured flags, so sketches using colors or casts can be checked.
func (pp *Preprocessor) RoundTrip(sources ...Source) (*RoundTripReport, error) {
	var expected strings.Builder
	for _, src := range sources {
		text, _, err := DecodeSource(src.Bytes)
		if err != nil {
			return nil, err
		}
		expected.WriteString(ensureTrailingNewline(text))
	}

	flags := pp.Flags()
	flags.SubstituteUnicode = false
	flags.OutputParseTree = false
	_, got, err := pp.translate(flags, verbatimFlags(flags), sources)
	if err != nil {
		return nil, err
	}

	report := &RoundTripReport{Expected: expected.String(), Got: got}
	report.Identical = report.Expected == report.Got
	if !report.Identical {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(report.Expected, report.Got, false)
		report.Diff = dmp.DiffPrettyText(dmp.DiffCleanupSemantic(diffs))
	}
	return report, nil
}

func verbatimFlags(flags config.Flags) config.Flags {
	verbatim := config.Verbatim()
	verbatim.CastHelperPrefix = flags.CastHelperPrefix
	return verbatim
}
