package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestUnzipExtractsTree(t *testing.T) {
	zp := writeZip(t, map[string]string{
		"photos.yaml":   "photos: []",
		"img/a.png":     "aaaa",
		"../escape.txt": "nope",
	})
	dest := filepath.Join(t.TempDir(), "out")

	got, err := Unzip(zp, dest)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	data, err := os.ReadFile(filepath.Join(dest, "img", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "aaaa", string(data))
	_, err = os.Stat(filepath.Join(filepath.Dir(dest), "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestUnzipReusesExtractedFiles(t *testing.T) {
	zp := writeZip(t, map[string]string{"a.txt": "1234"})
	dest := t.TempDir()
	_, err := Unzip(zp, dest)
	require.NoError(t, err)

	marker := filepath.Join(dest, "a.txt")
	require.NoError(t, os.WriteFile(marker, []byte("abcd"), 0644))
	got, err := Unzip(zp, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{marker}, got)
	data, _ := os.ReadFile(marker)
	assert.Equal(t, "abcd", string(data))
}

func TestUnzipMissingArchive(t *testing.T) {
	_, err := Unzip(filepath.Join(t.TempDir(), "none.zip"), t.TempDir())
	require.Error(t, err)
}
