package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dasa.cc/minxr/xr"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(fmt.Errorf("build: %w", xr.ErrExtensionMissing)))
	assert.Equal(t, -1, exitCode(errors.New("boom")))
	assert.Equal(t, -1, exitCode(xr.ErrNoViews))
}

func TestExtensionsSim(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"extensions", "--sim"})
	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "XR_EXT_debug_utils"))
	assert.True(t, strings.HasPrefix(lines[1], xr.OpenGLExtension))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("MINXR_WIDTH", "640")
	t.Setenv("MINXR_GRID", "3")
	t.Setenv("MINXR_LOG_LEVEL", "debug")

	root := newRootCmd()
	assert.Equal(t, "640", root.Flags().Lookup("width").DefValue)
	assert.Equal(t, "768", root.Flags().Lookup("height").DefValue)
	assert.Equal(t, "3", root.Flags().Lookup("grid").DefValue)
	assert.Equal(t, "debug", root.PersistentFlags().Lookup("log-level").DefValue)
}

func TestEnvInvalid(t *testing.T) {
	t.Setenv("MINXR_GRID", "many")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"extensions", "--sim"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session config")
}
