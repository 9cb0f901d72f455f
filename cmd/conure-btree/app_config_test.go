package main

import (
	"bytes"
	"flag"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEffectiveConfigFromFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conure.yaml")
	require.NoError(t, os.WriteFile(path, []byte("degree: 5\nlog_level: debug\ncolor: true\n"), 0o644))

	cfg, err := LoadEffectiveConfig([]string{"-config", path, "-degree", "3", "-check", "-seed", "7", "-http-addr", "127.0.0.1:8081"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Degree)
	assert.True(t, cfg.CheckInvariants)
	assert.True(t, cfg.Color)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7, cfg.Seed)
	assert.Equal(t, defaultPrompt, cfg.Prompt)
	assert.Equal(t, "127.0.0.1:8081", cfg.HTTPAddr)
}

func TestLoadEffectiveConfigColorOff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conure.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: true\n"), 0o644))

	cfg, err := LoadEffectiveConfig([]string{"-config", path, "-color=false"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, cfg.Color)
}

func TestLoadEffectiveConfigInvalid(t *testing.T) {
	_, err := LoadEffectiveConfig([]string{"-degree", "1"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "degree must be at least 2")

	_, err = LoadEffectiveConfig([]string{"-degree", strconv.Itoa(math.MaxInt)}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = LoadEffectiveConfig([]string{"-log-level", "loud"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log level")

	_, err = LoadEffectiveConfig([]string{"-degree", "many"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLoadEffectiveConfigHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := LoadEffectiveConfig([]string{"-h"}, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "-degree")
}
