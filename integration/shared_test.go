//go:build integration || database

// Package integration contains integration tests for dailyq.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Database tests need Docker: go test -tags database ./integration
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedDailyqPath holds the path to a shared dailyq binary built once for all tests.
	sharedDailyqPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// sampleToday is the reference date every sample log is written against.
const sampleToday = "2024-02-03"

// sampleLog answers two questions on the two days before sampleToday.
const sampleLog = `2024/02/01|Did I exercise?|1
2024/02/01|Did I read?|1
2024/02/02|Did I exercise?|0
2024/02/02|Did I read?|1
`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getDailyqBinary returns the path to the dailyq binary, building it once if needed.
func getDailyqBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "dailyq-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		dailyqPath := filepath.Join(tempDir, "dailyq")
		buildCmd := exec.Command("go", "build", "-o", dailyqPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build dailyq: %v", err))
		}

		sharedDailyqPath = dailyqPath
	})

	return sharedDailyqPath
}

// writeSampleLog writes sampleLog into a temp dir and returns its path.
func writeSampleLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))
	return path
}

// runDailyq runs the binary from a temp dir and returns its stdout.
// A temp HOME keeps the default SQLite history file out of the real home.
func runDailyq(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getDailyqBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "HOME="+cmd.Dir)
	cmd.Env = append(cmd.Env, env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Logf("Command failed: %s\nStderr: %s", cmd.String(), stderr.String())
		return stdout.String(), err
	}
	return stdout.String(), nil
}
