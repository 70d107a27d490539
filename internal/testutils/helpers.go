package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupDefinitions creates a temporary directory holding the given schema
// definition files (name -> content) and returns its absolute path.
// It fails the test immediately on error.
func SetupDefinitions(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()

	// t.TempDir usually returns an absolute path already; ensuring it is safe.
	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		err := os.WriteFile(filepath.Join(absPath, name), []byte(content), 0o644)
		require.NoError(t, err, "Failed to write definition file %s", name)
	}

	return absPath
}
