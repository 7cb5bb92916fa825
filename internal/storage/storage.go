// Package storage provides feedback-artifact persistence backends.
package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/supabase-community/supabase-go"
)

// Local writes artifacts into a directory on disk.
type Local struct {
	Dir string
}

func (l Local) Save(name string, data []byte) error {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(l.Dir, name), data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// Supabase uploads artifacts to a Supabase storage bucket.
type Supabase struct {
	client *supabase.Client
	bucket string
}

func NewSupabase(url, serviceRoleKey, bucket string) (*Supabase, error) {
	client, err := supabase.NewClient(url, serviceRoleKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: create supabase client: %w", err)
	}
	return &Supabase{client: client, bucket: bucket}, nil
}

func (s *Supabase) Save(name string, data []byte) error {
	if _, err := s.client.Storage.UploadFile(s.bucket, name, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("storage: upload %s: %w", name, err)
	}
	return nil
}
