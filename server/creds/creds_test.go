package creds

import (
	"path/filepath"
	"testing"
)

func TestFileStoreLifecycle(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "gemini_api_key"))

	if got, err := s.Get(); err != nil || got != "" {
		t.Fatalf("fresh store should be empty, got %q err %v", got, err)
	}
	if err := s.Set("  sk-test-123  \n"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := s.Get(); got != "sk-test-123" {
		t.Fatalf("expected trimmed key, got %q", got)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got, _ := s.Get(); got != "" {
		t.Fatalf("cleared store should be empty, got %q", got)
	}
	// Clearing twice is a no-op, not an error.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestFileStoreSetBlankClears(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "gemini_api_key"))
	if err := s.Set("abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("   "); err != nil {
		t.Fatalf("Set blank: %v", err)
	}
	if got, _ := s.Get(); got != "" {
		t.Fatalf("blank Set should clear, got %q", got)
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore("initial")
	if got, _ := s.Get(); got != "initial" {
		t.Fatalf("got %q", got)
	}
	_ = s.Set("next")
	if got, _ := s.Get(); got != "next" {
		t.Fatalf("got %q", got)
	}
	_ = s.Clear()
	if got, _ := s.Get(); got != "" {
		t.Fatalf("got %q", got)
	}
}
