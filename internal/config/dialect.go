package config

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDialect = errors.New("unknown dialect")

// Output flavour: how the preprocessed program is wrapped for the
// downstream compiler.
type Dialect int

const (
	PROCESSING Dialect = iota
	WIRING
)

func (d Dialect) String() string {
	switch d {
	case PROCESSING:
		return "processing"
	case WIRING:
		return "wiring"
	}
	return "unknown"
}

func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "processing", "":
		return PROCESSING, nil
	case "wiring", "arduino":
		return WIRING, nil
	}
	return PROCESSING, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Dialect) UnmarshalText(text []byte) error {
	parsed, err := ParseDialect(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
