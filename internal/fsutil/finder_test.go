package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.yaml", "a.json", "nested/c.hcl", "notes.txt"} {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	files, err := FindFilesByExtension(root, ".yaml", ".json", ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.json"),
		filepath.Join(root, "b.yaml"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root) })
}
