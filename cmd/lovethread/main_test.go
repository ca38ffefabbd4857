package main

import (
	"bytes"
	stdos "os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "lovethread dev")
	require.Contains(t, out, "cond backend")
}

func TestStressFlags(t *testing.T) {
	out, err := runCmd(t, "stress", "--threads", "2", "--iterations", "100",
		"--timeout-ms", "10", "--workload", "counter,timedwait")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "counter"))
	require.True(t, strings.HasSuffix(lines[0], "ok"))
	require.True(t, strings.HasPrefix(lines[1], "timedwait"))
	require.Contains(t, lines[0], "locks=200 timeouts=0")
	require.Contains(t, lines[1], "locks=2 timeouts=1")
}

func TestStressConfigFileWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "threads: 2\niterations: 100\ntimeoutms: 10\nworkloads: [counter, signal]\n"
	require.NoError(t, stdos.WriteFile(path, []byte(body), 0644))

	out, err := runCmd(t, "stress", "--config", path, "--workload", "channel")
	require.NoError(t, err)
	require.Contains(t, out, "channel")
	require.NotContains(t, out, "signal")
}

func TestStressUnknownWorkload(t *testing.T) {
	_, err := runCmd(t, "stress", "--workload", "nope")
	require.Error(t, err)
}
