package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/HicaroD/sketchpp/internal/diagnostics"
)

func main() {
	err := Execute()
	if err == nil {
		return
	}
	// diagnostics and diffs are already on screen
	switch errors.Cause(err) {
	case diagnostics.ErrCompilerErrorFound, errRoundTripMismatch:
	default:
		fmt.Fprintf(os.Stderr, "sketchpp: %v\n", err)
	}
	os.Exit(1)
}
