// Package creds owns the single persisted secret: the user's Gemini
// API key. The store is injected wherever the key is read so tests can
// swap in a memory double.
package creds

import (
	"os"
	"strings"
	"sync"
)

// Store is the credential slot. Get returns "" when unconfigured.
type Store interface {
	Get() (string, error)
	Set(key string) error
	Clear() error
}

// FileStore keeps the raw key in a single file, written atomically
// (tmp file + rename). Absence of the file is the unconfigured state.
type FileStore struct {
	Path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (s *FileStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileStore) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.Path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(key); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemStore is the in-process double used by tests and by deployments
// that inject the key through the environment.
type MemStore struct {
	mu  sync.Mutex
	key string
}

func NewMemStore(key string) *MemStore { return &MemStore{key: strings.TrimSpace(key)} }

func (s *MemStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, nil
}

func (s *MemStore) Set(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = strings.TrimSpace(key)
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	return nil
}
