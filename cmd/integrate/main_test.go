package main

import (
	"bytes"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcserestipy/integrate/pkg/host"
	"github.com/qcserestipy/integrate/pkg/integrate"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1_000_000_000, cfg.N)
	assert.Equal(t, 0.0, cfg.A)
	assert.Equal(t, 1.0, cfg.B)
	assert.Equal(t, host.Available(), cfg.Workers)
	assert.Equal(t, integrate.StrategyPool, cfg.Strategy)
	assert.Equal(t, integrate.DefaultTasksPerWorker, cfg.Tasks)
	assert.False(t, cfg.Sweep)
}

func TestParseFlagsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative n", []string{"-n", "-1"}},
		{"unknown strategy", []string{"-strategy", "omp"}},
		{"unknown flag", []string{"-threads", "4"}},
		{"NaN bound", []string{"-a", "NaN"}},
		{"zero tasks", []string{"-tasks", "0"}},
		{"too many tasks", []string{"-tasks", "1000000000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}

	_, err := parseFlags([]string{"-strategy", "omp"}, io.Discard)
	assert.ErrorIs(t, err, integrate.ErrUnknownStrategy)

	_, err = parseFlags([]string{"-h"}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestRunReport(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{"-n", "100000", "-workers", "3", "-strategy", "errgroup"}, &stdout, io.Discard)
	require.NoError(t, err)

	lines := strings.Split(stdout.String(), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "n:         100000", lines[0])
	assert.Equal(t, "Result:    3.14159(seq) 3.14159 (par)", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Time:      "))
	assert.True(t, strings.HasSuffix(lines[2], " ms (par)"))
	assert.True(t, strings.HasPrefix(lines[3], "Speedup:   "))
	assert.Empty(t, lines[4])
	assert.Empty(t, lines[5])
}

func TestRunSweep(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{"-n", "1000", "-sweep", "-strategy", "interleaved"}, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(stdout.String(), "Width: "))
}

func TestRunRejectsBadFlags(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{"-strategy", "nope"}, &stdout, io.Discard)
	assert.Error(t, err)
	assert.Empty(t, stdout.String())
}
