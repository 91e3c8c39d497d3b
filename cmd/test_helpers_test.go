package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	consts "github.com/earlab/aiprobe/internal/shared/constants"
)

// setupTestAppContext installs a minimal AppContext with a throwaway
// results dir and returns a restore func.
func setupTestAppContext(t *testing.T) func() {
	t.Helper()

	original := globalAppContext

	resultsDir := filepath.Join(t.TempDir(), "results")
	if err := os.MkdirAll(resultsDir, consts.DefaultDirPerm); err != nil {
		t.Fatalf("failed to create results directory: %v", err)
	}

	globalAppContext = &AppContext{
		Config:     newCLIConfig(),
		APIKey:     "sk-proj-test0000000000000000000abcd",
		ResultsDir: resultsDir,
	}

	return func() {
		globalAppContext = original
	}
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	original := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = original }()

	fn()

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close pipe writer: %v", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return string(out)
}
