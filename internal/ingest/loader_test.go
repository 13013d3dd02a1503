package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTextFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.txt"), []byte("Breakfast is at 7."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spa.TXT"), []byte("The spa opens at 9."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644))

	loader := NewLoader(dir)
	documents, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, documents, 2)

	contents := []string{documents[0].Content, documents[1].Content}
	assert.Contains(t, contents, "Breakfast is at 7.")
	assert.Contains(t, contents, "The spa opens at 9.")
	for _, doc := range documents {
		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.Path)
	}
}

func TestLoadSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.txt"), []byte("content"), 0o644))

	documents, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Len(t, documents, 1)
}

func TestLoadMissingDir(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing")).Load()
	require.ErrorIs(t, err, ErrNoDocuments)
}

func TestLoadEmptyDir(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load()
	require.ErrorIs(t, err, ErrNoDocuments)
}

func TestLoadSkipsUnreadablePDF(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.txt"), []byte("content"), 0o644))

	documents, err := NewLoader(dir).Load()
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, "content", documents[0].Content)
}

func TestDocumentIDsAreStable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.txt"), []byte("content"), 0o644))

	first, err := NewLoader(dir).Load()
	require.NoError(t, err)
	second, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
}
