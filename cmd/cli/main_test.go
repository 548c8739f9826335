package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/specialistvlad/profilegrid/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_Help(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when help is requested")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"resolve", "--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, cli.CodeUsage, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
