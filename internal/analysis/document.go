package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxDocumentSize caps how much of a document is read.
const MaxDocumentSize = 10 << 20

var (
	ErrUnsupportedDocument = errors.New("unsupported document type")
	ErrInvalidEncoding     = errors.New("document is not valid UTF-8")
	ErrDocumentTooLarge    = errors.New("document is too large")
)

var documentExtensions = map[string]bool{
	".txt": true,
	".csv": true,
	".md":  true,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadDocument reads a plain text document named name. Only .txt, .csv and
// .md files are accepted.
func ReadDocument(r io.Reader, name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !documentExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDocument, ext)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return "", ErrDocumentTooLarge
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}
