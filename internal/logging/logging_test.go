package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		verbose bool
		debug   bool
	}{
		{verbose: true, debug: true},
		{verbose: false, debug: false},
	}

	for _, test := range tests {
		logger, err := New(test.verbose)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := logger.Core().Enabled(zapcore.DebugLevel); got != test.debug {
			t.Errorf("verbose=%v: expected debug enabled %v, got %v", test.verbose, test.debug, got)
		}
		if !logger.Core().Enabled(zapcore.WarnLevel) {
			t.Errorf("verbose=%v: expected warnings to be enabled", test.verbose)
		}
	}
}
