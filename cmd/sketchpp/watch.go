package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Preprocess a sketch directory again every time one of its files changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return a.watch(ctx, args[0])
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "write the result to this file instead of stdout")
}

func (a *app) watch(ctx context.Context, dir string) error {
	matcher, err := newSketchMatcher(a.cfg.SketchPatterns)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}

	a.preprocessOnce(dir)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSketchChange(matcher, event, watchOutput) {
				continue
			}
			a.logger.Debug("sketch changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			a.preprocessOnce(dir)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("watching sketch", zap.String("dir", dir), zap.Error(err))
		case <-ctx.Done():
			return nil
		}
	}
}

// Writes to the output file are not changes to the sketch, even when the
// output lives in the sketch directory and matches a sketch pattern.
func isSketchChange(matcher sketchMatcher, event fsnotify.Event, output string) bool {
	if event.Op == fsnotify.Chmod || !matcher.Match(filepath.Base(event.Name)) {
		return false
	}
	return output == "" || !samePath(event.Name, output)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// Failures are reported and the watch goes on
func (a *app) preprocessOnce(dir string) {
	result, _, err := a.run([]string{dir}, "")
	if err != nil {
		if result == nil {
			a.logger.Error("preprocessing", zap.String("dir", dir), zap.Error(err))
		}
		return
	}
	if err := writeOutput(watchOutput, []byte(result.Text)); err != nil {
		a.logger.Error("writing output", zap.Error(err))
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", result.ClassName, result.Mode)
}
