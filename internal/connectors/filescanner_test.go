package connectors

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	write("a.csv", "id,v\n1,2\n")
	write("b.CSV", "id,v\n1,2\n1,2\n1,2\n")
	write("notes.txt", "hello")
	write(filepath.Join("sub", "c.csv"), "id\n1\n")
	return root
}

func names(files []FileMeta) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Base(f.Path)
	}
	return out
}

func TestDiscoverFilesNonRecursive(t *testing.T) {
	files, err := DiscoverFiles(makeTree(t), "csv", DiscoveryOptions{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.csv", "b.CSV"}, names(files))
	for _, f := range files {
		assert.Greater(t, f.Size, int64(0))
		assert.False(t, f.Modified.IsZero())
	}
}

func TestDiscoverFilesRecursive(t *testing.T) {
	files, err := DiscoverFiles(makeTree(t), ".csv", DiscoveryOptions{Recursive: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.csv", "b.CSV", "c.csv"}, names(files))
}

func TestDiscoverFilesSizeFilters(t *testing.T) {
	root := makeTree(t)

	files, err := DiscoverFiles(root, "csv", DiscoveryOptions{MinSize: 15})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.CSV"}, names(files))

	files, err = DiscoverFiles(root, "csv", DiscoveryOptions{MaxSize: 15})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv"}, names(files))
}

func TestDiscoverFilesModifiedFilters(t *testing.T) {
	root := makeTree(t)
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "a.csv"), old, old))

	files, err := DiscoverFiles(root, "csv", DiscoveryOptions{
		ModifiedAfter: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.CSV"}, names(files))

	files, err = DiscoverFiles(root, "csv", DiscoveryOptions{
		ModifiedBefore: time.Now().Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv"}, names(files))
}

func TestDiscoverFilesNoMatches(t *testing.T) {
	files, err := DiscoverFiles(makeTree(t), "xlsx", DiscoveryOptions{})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverFilesInputErrors(t *testing.T) {
	root := makeTree(t)

	_, err := DiscoverFiles("", "csv", DiscoveryOptions{})
	assert.Error(t, err)

	_, err = DiscoverFiles(filepath.Join(root, "missing"), "csv", DiscoveryOptions{})
	assert.Error(t, err)

	_, err = DiscoverFiles(filepath.Join(root, "a.csv"), "csv", DiscoveryOptions{})
	assert.Error(t, err)

	_, err = DiscoverFiles(root, "", DiscoveryOptions{})
	assert.Error(t, err)
}
