// Package logging builds the zap loggers used by the driver and the CLI.
// Diagnostics about the sketch are not logged: they go through the
// diagnostics collector.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Console logger on stderr. Verbose enables debug output with caller
// information, otherwise only warnings and errors are shown.
func New(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Sampling = nil
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = !verbose
	return cfg.Build()
}

// Useful for testing
func Nop() *zap.Logger {
	return zap.NewNop()
}
