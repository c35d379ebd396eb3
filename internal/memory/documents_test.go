package memory

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "rows.csv")
	require.NoError(t, os.WriteFile(csv, []byte("a,b\n1,2\n"), 0o644))

	docs, err := LoadDocuments(context.Background(), []string{
		"https://raw.githubusercontent.com/pytorch/torchtune/main/docs/source/tutorials/chat.rst",
		csv,
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "num-0", docs[0].DocumentID)
	assert.Equal(t, "text/plain", docs[0].MimeType)
	assert.Contains(t, docs[0].Content, "chat.rst")

	assert.Equal(t, "num-1", docs[1].DocumentID)
	assert.Equal(t, "text/csv", docs[1].MimeType)
	assert.Equal(t, "data:text/csv;base64,"+base64.StdEncoding.EncodeToString([]byte("a,b\n1,2\n")), docs[1].Content)
	assert.Equal(t, "rows.csv", docs[1].Metadata["source"])
}

func TestLoadDocumentsMissingFile(t *testing.T) {
	_, err := LoadDocuments(context.Background(), []string{filepath.Join(t.TempDir(), "nope.txt")})
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorContains(t, err, "file not found")
}

func TestDataURLFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# hi"), 0o644))

	u, err := DataURLFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data:text/plain;base64,"+base64.StdEncoding.EncodeToString([]byte("# hi")), u)
}

func TestAttachmentFromSource(t *testing.T) {
	a, err := AttachmentFromSource("https://arxiv.org/pdf/2407.21783", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", a.MimeType)
	assert.Equal(t, "https://arxiv.org/pdf/2407.21783", a.Content)

	_, err = AttachmentFromSource(filepath.Join(t.TempDir(), "missing"), "")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestNewVectorBank(t *testing.T) {
	b := NewVectorBank("docs", "")
	assert.Equal(t, "docs", b.MemoryBankID)
	assert.Equal(t, DefaultEmbeddingModel, b.Params.EmbeddingModel)
	assert.Equal(t, "vector", b.Params.MemoryBankType)
	assert.Equal(t, 512, b.Params.ChunkSizeInTokens)
}
