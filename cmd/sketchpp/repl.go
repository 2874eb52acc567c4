package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/preproc"
)

const (
	promptMain  = "sketch> "
	promptCont  = "   ...> "
	historyFile = "history"
	replTag     = "<repl>"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Preprocess fragments typed at a prompt, a blank line ends each one",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return a.repl()
	},
}

func (a *app) repl() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if dir, err := config.ConfigDir(); err == nil {
		histPath = filepath.Join(dir, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Printf("sketchpp %s, :quit to exit\n", a.cfg.Dialect)
	for {
		fragment, ok := readFragment(ln)
		if !ok {
			fmt.Println()
			return nil
		}

		switch strings.TrimSpace(fragment) {
		case "":
			continue
		case ":quit":
			return nil
		}

		result, err := a.pp.Run("Repl", preproc.Source{Tag: replTag, Bytes: []byte(fragment)})
		if err != nil {
			if result == nil {
				fmt.Fprintln(os.Stderr, err)
			}
			continue
		}
		a.logger.Debug("fragment", zap.Stringer("mode", result.Mode))
		fmt.Print(result.Text)
		ln.AppendHistory(strings.ReplaceAll(fragment, "\n", " "))
	}
}

// Lines up to the first blank one. A line starting with ':' is a command on
// its own.
func readFragment(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return b.String(), b.Len() > 0
		}
		if err != nil {
			return "", false
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if strings.TrimSpace(line) == "" {
			return b.String(), true
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
