package preproc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// One input file. Tag names it in positions and diagnostics.
type Source struct {
	Tag   string
	Bytes []byte
}

var utf8BOM = []byte{'\xef', '\xbb', '\xbf'}

// Converts content to UTF-8 and returns it with the name of the charset it
// was detected as. A leading byte order mark is dropped.
func DecodeSource(content []byte) (string, string, error) {
	label, err := detectEncoding(content)
	if err != nil {
		return "", "", errors.Wrap(err, "detecting charset")
	}
	if label == "UTF-8" {
		return string(removeBOM(content)), label, nil
	}

	encoding, _ := charset.Lookup(label)
	if encoding == nil {
		return "", label, errors.Errorf("unknown encoding %s", label)
	}
	result, _, err := transform.Bytes(encoding.NewDecoder(), content)
	if err != nil {
		return "", label, errors.Wrapf(err, "decoding %s", label)
	}
	return string(removeBOM(result)), label, nil
}

func removeBOM(content []byte) []byte {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):]
	}
	return content
}

func detectEncoding(content []byte) (string, error) {
	if utf8.Valid(content) {
		return "UTF-8", nil
	}

	// the detector needs a kilobyte or so to be reliable
	detectContent := content
	if len(content) < 1024 {
		times := 1024/len(content) + 1
		detectContent = bytes.Repeat(content, times)
	}

	result, err := chardet.NewTextDetector().DetectBest(detectContent)
	if err != nil {
		return "", err
	}
	return result.Charset, nil
}

func ensureTrailingNewline(text string) string {
	if text != "" && !strings.HasSuffix(text, "\n") {
		return text + "\n"
	}
	return text
}

// Non-ASCII characters become \uXXXX escapes, one per UTF-16 unit. A
// non-breaking space becomes a plain space.
func substituteUnicode(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r < utf8.RuneSelf:
			sb.WriteRune(r)
		case r == '\u00a0':
			sb.WriteByte(' ')
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, "\\u%04x\\u%04x", hi, lo)
		default:
			fmt.Fprintf(&sb, "\\u%04x", r)
		}
	}
	return sb.String()
}
