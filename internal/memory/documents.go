// Package memory prepares documents for insertion into a server-side
// memory bank.
package memory

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// Bank defaults used by the memory commands.
const (
	DefaultEmbeddingModel = "all-MiniLM-L6-v2"
	DefaultChunkSize      = 512
	DefaultOverlapSize    = 64
)

// maxParallelLoads bounds concurrent file reads.
const maxParallelLoads = 8

// ErrFileNotFound is returned for local sources that do not exist.
var ErrFileNotFound = errors.New("file not found")

// NewVectorBank returns a vector bank registration with the default
// chunking parameters.
func NewVectorBank(bankID, embeddingModel string) schema.MemoryBank {
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	return schema.MemoryBank{
		MemoryBankID: bankID,
		Params: schema.MemoryBankParams{
			MemoryBankType:      schema.MemoryBankVector,
			EmbeddingModel:      embeddingModel,
			ChunkSizeInTokens:   DefaultChunkSize,
			OverlapSizeInTokens: DefaultOverlapSize,
		},
	}
}

// IsURL reports whether source is an http(s) URL rather than a local path.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// LoadDocuments turns sources into documents in input order. URLs are passed
// through for the server to fetch; local files are inlined as data URLs.
// Document ids are num-<index>.
func LoadDocuments(ctx context.Context, sources []string) ([]schema.Document, error) {
	docs := make([]schema.Document, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, src := range sources {
		id := fmt.Sprintf("num-%d", i)
		if IsURL(src) {
			docs[i] = schema.Document{
				DocumentID: id,
				Content:    src,
				MimeType:   "text/plain",
				Metadata:   map[string]any{},
			}
			continue
		}
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dataURL, mimeType, err := dataURL(src)
			if err != nil {
				return err
			}
			docs[i] = schema.Document{
				DocumentID: id,
				Content:    dataURL,
				MimeType:   mimeType,
				Metadata:   map[string]any{"source": filepath.Base(src)},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// DataURLFromFile encodes a local file as data:<mime>;base64,<content>.
func DataURLFromFile(path string) (string, error) {
	u, _, err := dataURL(path)
	return u, err
}

// AttachmentFromSource returns a turn attachment for a URL or local file.
func AttachmentFromSource(source, mimeType string) (schema.Attachment, error) {
	if IsURL(source) {
		if mimeType == "" {
			mimeType = "text/plain"
		}
		return schema.Attachment{Content: source, MimeType: mimeType}, nil
	}
	u, guessed, err := dataURL(source)
	if err != nil {
		return schema.Attachment{}, err
	}
	if mimeType == "" {
		mimeType = guessed
	}
	return schema.Attachment{Content: u, MimeType: mimeType}, nil
}

func dataURL(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	mimeType := guessMimeType(path)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), mimeType, nil
}

// textTypes covers document extensions the system MIME table may lack.
var textTypes = map[string]string{
	".txt":  "text/plain",
	".md":   "text/plain",
	".rst":  "text/plain",
	".csv":  "text/csv",
	".tsv":  "text/tab-separated-values",
	".json": "application/json",
	".pdf":  "application/pdf",
}

// guessMimeType maps a file extension to a MIME type without parameters.
func guessMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := textTypes[ext]; ok {
		return t
	}
	t := mime.TypeByExtension(ext)
	if t == "" {
		return "application/octet-stream"
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return t
}
