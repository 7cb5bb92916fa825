// Package resume holds the candidate resume uploaded before the interview
// and extracts plain text from PDF uploads.
package resume

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
)

// Store keeps the latest extracted resume text. Sessions snapshot it when
// they start, so an upload mid-interview does not change a running prompt.
type Store struct {
	mu   sync.RWMutex
	text string
}

func (s *Store) Set(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// ExtractPDF pulls the plain text out of a PDF document. It returns an error
// when the document cannot be parsed or contains no extractable text.
func ExtractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, reader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return text, nil
}
