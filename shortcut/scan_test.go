package shortcut

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"game.url", "OTHER.URL", "readme.txt", "image.ico"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.url"), 0o755))

	paths, err := Scan(dir)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "game.url"),
		filepath.Join(dir, "OTHER.URL"),
	}, paths)
}

func TestScan_EmptyDirectory(t *testing.T) {
	paths, err := Scan(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Error(t, err)
}
