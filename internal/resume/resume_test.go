package resume

import (
	"sync"
	"testing"
)

func TestStoreSetGet(t *testing.T) {
	var s Store
	if got := s.Get(); got != "" {
		t.Fatalf("expected empty store, got %q", got)
	}
	s.Set("five years of Go experience")
	if got := s.Get(); got != "five years of Go experience" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set("resume")
		}()
		go func() {
			defer wg.Done()
			_ = s.Get()
		}()
	}
	wg.Wait()
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	if _, err := ExtractPDF([]byte("not a pdf")); err == nil {
		t.Fatal("expected error for non-PDF input")
	}
}
