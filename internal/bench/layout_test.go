package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestScanSweep(t *testing.T) {
	root := t.TempDir()

	// Lexicographic order would put j-10 before j-9 and test_0.5 before test_0.45.
	for _, leaf := range []string{"j-9", "j-10", "j-0.5"} {
		for _, th := range []string{"test_0.5.txt", "test_0.45.txt", "test_0.05.txt"} {
			touch(t, filepath.Join(root, leaf, th))
		}
	}
	touch(t, filepath.Join(root, "j-9", "notes.md"))
	touch(t, filepath.Join(root, "manifest.json"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "plots"), 0o755))

	dirs, err := ScanSweep(root, nil)
	require.NoError(t, err)

	wantLeaf := []float64{0.5, 9, 10}
	require.Len(t, dirs, len(wantLeaf))
	for i, d := range dirs {
		assert.Equal(t, wantLeaf[i], d.LeafWeight)
		assert.Equal(t, []float64{0.05, 0.45, 0.5}, d.Thresholds())
	}
}

func TestScanSweep_Missing(t *testing.T) {
	_, err := ScanSweep(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}
