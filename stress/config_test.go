package stress

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stress.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `threads: 3
iterations: 500
timeoutms: 25
workloads: [counter, channel]
debug: thread,sync
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	want := &Config{
		Threads:    3,
		Iterations: 500,
		TimeoutMs:  25,
		Workloads:  []string{"counter", "channel"},
		Debug:      "thread,sync",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, "threads: 2\nspin: true\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{TimeoutMs: -1}
	require.NoError(t, cfg.Validate())
	want := &Config{
		Threads:    DefaultThreads,
		Iterations: DefaultIterations,
		TimeoutMs:  DefaultTimeoutMs,
		Workloads:  WorkloadNames(),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateUnknownWorkload(t *testing.T) {
	cfg := &Config{Workloads: []string{"counter", "spinlock"}}
	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownWorkload))
}

func TestValidateDefaultsOmittedTimeout(t *testing.T) {
	path := writeConfig(t, "threads: 2\nworkloads: [timedwait]\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Zero(t, cfg.TimeoutMs)
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultTimeoutMs, cfg.TimeoutMs)

	flagCfg := &Config{Threads: 2, Workloads: []string{"timedwait"}}
	require.NoError(t, flagCfg.Validate())
	if diff := cmp.Diff(flagCfg, cfg); diff != "" {
		t.Fatalf("file and flag defaults differ (-flags +file):\n%s", diff)
	}
}
