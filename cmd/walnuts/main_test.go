package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/walnuts/internal/config"
	"github.com/san-kum/walnuts/internal/storage"
)

func resolve(t *testing.T, flags []string, args ...string) (*config.Config, error) {
	t.Helper()
	cmd := newSampleCmd()
	require.NoError(t, cmd.ParseFlags(flags))
	return resolveConfig(cmd, args)
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolve(t, nil, "funnel")
	require.NoError(t, err)

	want := config.DefaultConfig()
	want.Target = "funnel"
	assert.Equal(t, want, cfg)
}

func TestResolveConfigPresetThenFlags(t *testing.T) {
	cfg, err := resolve(t, []string{"--preset", "tight", "--max-error", "0.05"}, "funnel")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Dim)
	assert.Equal(t, 14, cfg.MaxHalvings)
	assert.Equal(t, 0.05, cfg.MaxError)
}

func TestResolveConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	yaml := "target: banana\ndim: 3\ndt: 0.25\nseed: 11\ninit: [0.1, 0.2, 0.3]\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := resolve(t, []string{"--config", path, "--dt", "0.5"})
	require.NoError(t, err)
	assert.Equal(t, "banana", cfg.Target)
	assert.Equal(t, 3, cfg.Dim)
	assert.Equal(t, 0.5, cfg.Dt)
	assert.Equal(t, int64(11), cfg.Seed)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, cfg.Init)

	// Changing the dimension drops an initial position that no longer fits.
	cfg, err = resolve(t, []string{"--config", path, "--dim", "2"})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Dim)
	assert.Nil(t, cfg.Init)
}

func TestResolveConfigErrors(t *testing.T) {
	_, err := resolve(t, []string{"--preset", "nope"}, "gaussian")
	assert.ErrorContains(t, err, "unknown preset")

	_, err = resolve(t, []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "failed to load config")

	_, err = resolve(t, []string{"--dt", "-1"}, "gaussian")
	var verr *config.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "dt", verr.Field)
}

func TestSampleCommand(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	svg := filepath.Join(dir, "scatter.svg")
	root.SetArgs([]string{"sample", "gaussian", "--n", "25", "--seed", "3", "--save", "--data", dir, "--svg", svg})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "COORD")
	assert.Contains(t, out.String(), "walnuts_transitions_total")
	assert.Contains(t, out.String(), "saved: gaussian_")

	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 25, runs[0].Stats.Transitions)
	assert.Len(t, runs[0].Summaries, 2)
}

func TestSampleCommandUnknownTarget(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"sample", "nope", "--n", "1"})
	assert.Error(t, root.Execute())
}

func TestSweepCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"sweep", "gaussian", "--n", "20", "--seed", "1",
		"--dts", "0.2,0.4", "--max-errors", "0.1", "--workers", "2"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "ESS/GRAD")
	assert.Contains(t, out.String(), "best: dt=")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	scenario := "name: quick\nsteps:\n  - name: a\n    transitions: 10\n    replicates: 2\n    save: true\n"
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"batch", path, "--data", filepath.Join(dir, "runs")})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "replicate spread")
	runs, err := storage.New(filepath.Join(dir, "runs")).List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestTargetsCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"targets"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "banana\ncorrelated\ndoublewell\nfunnel\ngaussian\nnan\n", out.String())
}
