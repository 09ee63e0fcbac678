package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return stdout.String(), err
}

func TestRunCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"mensaje":"ok","datos":{"id":1}}`))
	}))
	defer srv.Close()

	scenarios := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(scenarios, []byte(`
scenarios:
  - {name: product, group: products, method: GET, path: /products/1, expect_status: 200, expect_keys: [mensaje, datos], fixture: product-1.json}
  - {name: created, group: products, method: POST, path: /products, body: {title: x}, expect_status: 201, fixture: new-product.json}
`), 0o644))
	out := filepath.Join(t.TempDir(), "fixtures")

	stdout, err := execute(t, "run", "--base-url", srv.URL, "--out", out, "--scenarios", scenarios)

	require.Error(t, err, "the POST scenario expects 201")
	assert.Contains(t, err.Error(), "1 scenario(s) failed")
	assert.Contains(t, stdout, "PASS")
	assert.Contains(t, stdout, "FAIL")
	assert.Contains(t, stdout, "1 passed, 1 failed")

	_, statErr := os.Stat(filepath.Join(out, "product-1.json"))
	assert.NoError(t, statErr)
}

func TestRunCommand_BadScenarioFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "run", "--scenarios", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	stdout, err := execute(t, "load",
		"--base-url", srv.URL,
		"--users", "2",
		"--duration", "200ms",
		"--min-wait", "1ms",
		"--max-wait", "2ms")

	require.NoError(t, err)
	assert.Contains(t, stdout, "TASK")
	assert.Contains(t, stdout, "total")
	assert.Contains(t, stdout, "req/s")
}

func TestLoadCommand_InvalidUsers(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "load", "--base-url", "http://localhost:1", "--users", "0", "--duration", "1s")
	assert.Error(t, err)
}

func TestLoadCommand_InterruptedStillReports(t *testing.T) {
	t.Chdir(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	stdout, err := executeContext(t, ctx, "load",
		"--base-url", "http://localhost:1",
		"--users", "2",
		"--duration", "1m")

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.Contains(t, stdout, "TASK")
	assert.Contains(t, stdout, "total")
}

func TestRunCommand_Interrupted(t *testing.T) {
	t.Chdir(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout, err := executeContext(t, ctx, "run",
		"--base-url", "http://localhost:1",
		"--out", filepath.Join(t.TempDir(), "fixtures"))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "interrupted")
	assert.Contains(t, stdout, "0 passed, 0 failed")
}
