package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DefaultCastHelperPrefix = "PApplet.to"
	DefaultWiringHeader     = `#include "WProgram.h"`
)

// Flags consulted while parsing and emitting. Each rewrite flag gates one
// rewrite rule and, where there is one, the matching semantic predicate.
type Flags struct {
	ColorDatatype    bool `toml:"color_datatype"`
	WebColors        bool `toml:"web_colors"`
	EnhancedCasting  bool `toml:"enhanced_casting"`
	SubstituteFloats bool `toml:"substitute_floats"`
	PublicMethods    bool `toml:"public_methods"`

	SubstituteUnicode bool `toml:"substitute_unicode"`
	OutputParseTree   bool `toml:"output_parse_tree"`

	CastHelperPrefix string `toml:"cast_helper_prefix"`
}

type Config struct {
	Dialect Dialect `toml:"dialect"`
	Flags   Flags   `toml:"flags"`

	// First line of wiring output
	Header string `toml:"header"`
	// Imports added on top of processing output
	ExtraImports []string `toml:"extra_imports"`
	// Functions that never get a synthesized prototype
	SkipPrototypes []string `toml:"skip_prototypes"`
	// File name patterns of sketch files inside a directory
	SketchPatterns []string `toml:"sketch_patterns"`
}

// Every rewrite on, as the historical preprocessor shipped it.
func Default() *Config {
	cfg := &Config{
		Dialect: PROCESSING,
		Flags: Flags{
			ColorDatatype:    true,
			WebColors:        true,
			EnhancedCasting:  true,
			SubstituteFloats: true,
			PublicMethods:    true,
		},
	}
	cfg.applyDefaults()
	return cfg
}

// All rewrites off: the output must be the input, byte for byte.
func Verbatim() Flags {
	return Flags{CastHelperPrefix: DefaultCastHelperPrefix}
}

// Reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Decode(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.Flags.CastHelperPrefix == "" {
		c.Flags.CastHelperPrefix = DefaultCastHelperPrefix
	}
	if c.Header == "" {
		c.Header = DefaultWiringHeader
	}
	if c.SkipPrototypes == nil {
		c.SkipPrototypes = []string{"setup", "loop"}
	}
	if len(c.SketchPatterns) == 0 {
		c.SketchPatterns = []string{"*.pde", "*.ino"}
	}
}

func (c *Config) Validate() error {
	if c.Dialect != PROCESSING && c.Dialect != WIRING {
		return fmt.Errorf("%w: %d", ErrUnknownDialect, int(c.Dialect))
	}
	return nil
}

func (c *Config) SkipsPrototype(name string) bool {
	for _, skipped := range c.SkipPrototypes {
		if skipped == name {
			return true
		}
	}
	return false
}

func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
