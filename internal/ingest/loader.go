package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"

	"concierge/internal/domain"
)

// ErrNoDocuments is returned when the guide folder is missing or contains no
// loadable documents. The service cannot serve without a baseline corpus.
var ErrNoDocuments = errors.New("no guide documents found")

// Loader reads guest guide documents from a directory. PDF content is
// extracted page by page; plain text files are read verbatim.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load enumerates recognized documents and returns their extracted text.
// A per-file extraction failure is logged and the file skipped; only an
// empty result set fails the batch.
func (l *Loader) Load() ([]domain.Document, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoDocuments, "guide folder %s does not exist", l.dir)
		}
		return nil, errors.Wrapf(err, "unable to read guide folder %s", l.dir)
	}

	var documents []domain.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(l.dir, name)
		var content string
		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdf":
			content, err = extractPDFText(path)
		case ".txt":
			var data []byte
			data, err = os.ReadFile(path)
			content = string(data)
		default:
			continue
		}
		if err != nil {
			slog.Error("failed to load document, skipping", "file", name, "error", err)
			continue
		}
		documents = append(documents, domain.Document{
			ID:      hashString(name),
			Path:    path,
			Content: content,
		})
		slog.Info("loaded document", "file", name, "chars", len(content))
	}
	if len(documents) == 0 {
		return nil, errors.Wrapf(ErrNoDocuments, "no PDF or text files in %s", l.dir)
	}
	return documents, nil
}

// extractPDFText concatenates the plain text of every page.
func extractPDFText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", errors.Wrap(err, "failed to stat file")
	}
	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return "", errors.Wrap(err, "failed to create PDF reader")
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", errors.Wrapf(err, "failed to extract text from page %d", i)
		}
		builder.WriteString(content)
		builder.WriteString("\n\n")
	}
	return builder.String(), nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
