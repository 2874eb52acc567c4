package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/logging"
	"github.com/HicaroD/sketchpp/internal/preproc"
)

var errRoundTripMismatch = errors.New("output differs from input")

var (
	cfgFile     string
	verbose     bool
	dialectName string
	noColor     bool

	outputPath     string
	sketchNameFlag string
)

var rootCmd = &cobra.Command{
	Use:   "sketchpp",
	Short: "Preprocess Processing and Wiring sketches",
	Long: `sketchpp turns a sketch into a program the downstream compiler accepts.

It classifies the sketch (full program, function based or a plain list of
statements), applies the enabled rewrites while keeping every comment and
blank, wraps the result for the chosen dialect and, for wiring, adds the
function prototypes C++ needs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: config.toml in the config directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dialectName, "dialect", "", "output dialect: processing or wiring")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "never color diagnostics")
	addFlagSwitches(rootCmd)

	preprocessCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the result to this file instead of stdout")
	preprocessCmd.Flags().StringVar(&sketchNameFlag, "name", "", "class name of the sketch (default: derived from the first path)")

	rootCmd.AddCommand(preprocessCmd, classifyCmd, prototypesCmd, tokensCmd, treeCmd,
		symbolsCmd, roundtripCmd, envCmd, watchCmd, replCmd)
}

// What every command needs: a logger, the configuration and a
// preprocessor reporting to stderr.
type app struct {
	logger *zap.Logger
	cfg    *config.Config
	pp     *preproc.Preprocessor
}

func newApp(cmd *cobra.Command) (*app, error) {
	logger, err := logging.New(verbose)
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return nil, err
	}
	pp := preproc.New(cfg, logger)
	pp.NewCollector = newCollector
	return &app{logger: logger, cfg: cfg, pp: pp}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// Reads the sketch named by paths and preprocesses it
func (a *app) run(paths []string, name string) (*preproc.Result, int, error) {
	files, err := discoverSketch(a.cfg, paths)
	if err != nil {
		return nil, 0, err
	}
	sources, size, err := readSources(files)
	if err != nil {
		return nil, 0, err
	}
	if name == "" {
		name = sketchName(paths)
	}
	a.logger.Debug("sketch", zap.String("name", name), zap.Strings("files", files), zap.Int("bytes", size))

	result, err := a.pp.Run(name, sources...)
	if err != nil {
		a.logger.Debug("preprocessing failed", zap.Error(err))
		return result, size, err
	}
	return result, size, nil
}

var preprocessCmd = &cobra.Command{
	Use:   "preprocess [paths...]",
	Short: "Preprocess a sketch: files, or a directory of sketch files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		result, size, err := a.run(args, sketchNameFlag)
		if err != nil {
			return err
		}
		if err := writeOutput(outputPath, []byte(result.Text)); err != nil {
			return err
		}
		if result.ParseTree != nil {
			if err := writeParseTree(outputPath, result.ParseTree); err != nil {
				return err
			}
		}

		if outputPath != "" {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s, %s, %d prototypes, %d header lines\n",
				result.ClassName, humanize.Bytes(uint64(size)), humanize.Bytes(uint64(len(result.Text))),
				result.Mode, result.PrototypeCount, result.HeaderLines)
		}
		return nil
	},
}

func writeOutput(path string, content []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Next to the output file, or on stderr when the output goes to stdout
func writeParseTree(outputPath string, tree []byte) error {
	if outputPath == "" {
		_, err := os.Stderr.Write(tree)
		return err
	}
	return writeOutput(outputPath+".tree.yaml", tree)
}

var classifyCmd = &cobra.Command{
	Use:   "classify [paths...]",
	Short: "Print the kind of program a sketch is",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		result, _, err := a.run(args, "")
		if err != nil {
			return err
		}
		fmt.Println(result.Mode)
		return nil
	},
}

var prototypesCmd = &cobra.Command{
	Use:   "prototypes [paths...]",
	Short: "Print the prototypes synthesized for the functions of a sketch",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		result, _, err := a.run(args, "")
		if err != nil {
			return err
		}
		for _, proto := range result.Prototypes {
			if verbose {
				fmt.Printf("%s:%d: ", proto.Pos.Filename, proto.Pos.Line)
			}
			fmt.Println(proto.String())
		}
		return nil
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens <path>",
	Short: "Print every token of a file, comments and blanks included",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		sources, _, err := readSources(args)
		if err != nil {
			return err
		}
		tokens, _, err := a.pp.Tokens(sources[0])

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, tok := range tokens {
			fmt.Fprintf(w, "%d:%d\t%s\t%q\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Lexeme)
		}
		if flushErr := w.Flush(); flushErr != nil {
			return flushErr
		}
		return err
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree <path>",
	Short: "Print the parse tree of a sketch as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		result, _, err := a.run(args, "")
		if err != nil {
			return err
		}
		return result.Tree.WriteYAML(os.Stdout, result.Root)
	},
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols <path>",
	Short: "Print the symbol table of a sketch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		result, _, err := a.run(args, "")
		if err != nil {
			return err
		}
		return printSymbols(os.Stdout, result)
	},
}

func printSymbols(out io.Writer, result *preproc.Result) error {
	tree := result.Tree
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, entry := range result.Symbols.Symbols.Entries() {
		pos := ""
		if tok := tree.Tok(entry.Value); tok != nil {
			pos = fmt.Sprintf("%d:%d", tok.Pos.Line, tok.Pos.Column)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Name, tree.Kind(entry.Value), pos)
	}
	if len(result.Symbols.Unresolved) > 0 {
		fmt.Fprintf(w, "\n%d unresolved identifiers\n", len(result.Symbols.Unresolved))
	}
	return w.Flush()
}

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <path>",
	Short: "Check that a sketch comes out unchanged with every rewrite off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		files, err := discoverSketch(a.cfg, args)
		if err != nil {
			return err
		}
		sources, _, err := readSources(files)
		if err != nil {
			return err
		}
		report, err := a.pp.RoundTrip(sources...)
		if err != nil {
			return err
		}
		if !report.Identical {
			fmt.Println(report.Diff)
			return errRoundTripMismatch
		}
		a.logger.Debug("round trip identical", zap.Int("bytes", len(report.Got)))
		return nil
	},
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the configuration directory and the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		fmt.Printf("SKETCHPP_CONFIG_DIR='%s'\n", dir)
		if cfgFile != "" {
			fmt.Printf("SKETCHPP_CONFIG='%s'\n", cfgFile)
		}
		fmt.Println()
		return a.cfg.Encode(os.Stdout)
	},
}
