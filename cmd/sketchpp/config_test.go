package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HicaroD/sketchpp/internal/config"
	"github.com/HicaroD/sketchpp/internal/logging"
)

func TestIdentifier(t *testing.T) {
	tests := map[string]string{
		"Blink":      "Blink",
		"my-sketch":  "my_sketch",
		"2d_shapes":  "_2d_shapes",
		"sketch 01":  "sketch_01",
		"":           "Sketch",
		"$ok_Name42": "$ok_Name42",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, identifier(input), input)
	}
}

func TestDiscoverSketch(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pde", "a.pde", "notes.txt", "servo.ino"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("void setup() {}\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "data.pde"), 0755))

	files, err := discoverSketch(config.Default(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.pde"),
		filepath.Join(dir, "b.pde"),
		filepath.Join(dir, "servo.ino"),
	}, files)

	single := filepath.Join(dir, "notes.txt")
	files, err = discoverSketch(config.Default(), []string{single})
	require.NoError(t, err)
	assert.Equal(t, []string{single}, files)

	_, err = discoverSketch(config.Default(), []string{filepath.Join(dir, "missing.pde")})
	assert.Error(t, err)

	empty := t.TempDir()
	_, err = discoverSketch(config.Default(), []string{empty})
	assert.Error(t, err)
}

func TestSketchName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Bouncing-Ball")
	require.NoError(t, os.Mkdir(dir, 0755))
	file := filepath.Join(dir, "ball.pde")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	assert.Equal(t, "Bouncing_Ball", sketchName([]string{dir}))
	assert.Equal(t, "ball", sketchName([]string{file}))
}

func TestLoadConfigAppliesSwitches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("dialect = \"wiring\"\n[flags]\nweb_colors = false\n"), 0644))

	cmd := &cobra.Command{Use: "test"}
	addFlagSwitches(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--substitute-floats=false", "--substitute-unicode"}))

	cfgFile, dialectName = path, ""
	defer func() { cfgFile = "" }()

	cfg, err := loadConfig(cmd, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, config.WIRING, cfg.Dialect)
	assert.False(t, cfg.Flags.WebColors)
	assert.False(t, cfg.Flags.SubstituteFloats)
	assert.True(t, cfg.Flags.SubstituteUnicode)
	assert.True(t, cfg.Flags.ColorDatatype)

	dialectName = "processing"
	defer func() { dialectName = "" }()
	cfg, err = loadConfig(cmd, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, config.PROCESSING, cfg.Dialect)
}
