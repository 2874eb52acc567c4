package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/preproc"
)

// Command line switches for the rewrite flags. Only the ones given on the
// command line override the configuration file.
var flagSwitches = []struct {
	name  string
	usage string
	field func(*config.Flags) *bool
}{
	{"color-datatype", "rewrite the color type to int", func(f *config.Flags) *bool { return &f.ColorDatatype }},
	{"web-colors", "rewrite #RRGGBB literals to 0xffRRGGBB", func(f *config.Flags) *bool { return &f.WebColors }},
	{"enhanced-casting", "rewrite int(x) casts to helper calls", func(f *config.Flags) *bool { return &f.EnhancedCasting }},
	{"substitute-floats", "suffix double literals with f", func(f *config.Flags) *bool { return &f.SubstituteFloats }},
	{"public-methods", "make methods without visibility public", func(f *config.Flags) *bool { return &f.PublicMethods }},
	{"substitute-unicode", "escape non-ASCII characters", func(f *config.Flags) *bool { return &f.SubstituteUnicode }},
	{"parse-tree", "write the parse tree as YAML", func(f *config.Flags) *bool { return &f.OutputParseTree }},
}

func addFlagSwitches(cmd *cobra.Command) {
	defaults := config.Default().Flags
	for _, sw := range flagSwitches {
		cmd.PersistentFlags().Bool(sw.name, *sw.field(&defaults), sw.usage)
	}
}

// Configuration file, then --dialect and the rewrite switches on top.
func loadConfig(cmd *cobra.Command, logger *zap.Logger) (*config.Config, error) {
	path := cfgFile
	if path == "" {
		setup, err := config.SetupConfigFile()
		if err != nil {
			logger.Warn("using default configuration", zap.Error(err))
		}
		path = setup
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", zap.String("path", path), zap.Stringer("dialect", cfg.Dialect))

	if dialectName != "" {
		dialect, err := config.ParseDialect(dialectName)
		if err != nil {
			return nil, err
		}
		cfg.Dialect = dialect
	}

	flags := cmd.Flags()
	for _, sw := range flagSwitches {
		if !flags.Changed(sw.name) {
			continue
		}
		value, err := flags.GetBool(sw.name)
		if err != nil {
			return nil, err
		}
		*sw.field(&cfg.Flags) = value
	}
	return cfg, nil
}

type sketchMatcher []glob.Glob

func newSketchMatcher(patterns []string) (sketchMatcher, error) {
	matcher := make(sketchMatcher, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid sketch pattern %q", pattern)
		}
		matcher = append(matcher, g)
	}
	return matcher, nil
}

func (m sketchMatcher) Match(name string) bool {
	for _, g := range m {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Sketch files named by paths: files as given, directories expanded to the
// files matching the sketch patterns, sorted by name.
func discoverSketch(cfg *config.Config, paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	matcher, err := newSketchMatcher(cfg.SketchPatterns)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrap(err, "no such file or directory")
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		var found []string
		for _, entry := range entries {
			if !entry.IsDir() && matcher.Match(entry.Name()) {
				found = append(found, filepath.Join(path, entry.Name()))
			}
		}
		if len(found) == 0 {
			return nil, errors.Errorf("no sketch files in %s", path)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

func readSources(files []string) ([]preproc.Source, int, error) {
	sources := make([]preproc.Source, 0, len(files))
	total := 0
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "reading %s", file)
		}
		total += len(content)
		sources = append(sources, preproc.Source{Tag: file, Bytes: content})
	}
	return sources, total, nil
}

// Sketch name from the first path: a directory's name, or a file's name
// without its extension.
func sketchName(paths []string) string {
	path := "."
	if len(paths) > 0 {
		path = paths[0]
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	name := filepath.Base(path)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return identifier(name)
}

// Class names must be identifiers: anything else becomes '_'.
func identifier(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z'):
			sb.WriteRune(r)
		case '0' <= r && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return preproc.DefaultClassName
	}
	return sb.String()
}
