package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/kjk/common/atomicfile"
)

// FileStore is a Store persisted as a single JSON document on disk.
// The whole document is loaded at open and rewritten atomically
// (write-to-temp, then rename) on every mutation, so a crash mid-write
// never leaves a half-written store behind.
type FileStore struct {
	path string

	mu    sync.Mutex
	items map[string]string
	order []string
}

// fileImage is the on-disk shape. Keys are kept separately so
// enumeration order survives the round-trip through a JSON object.
type fileImage struct {
	Keys  []string          `json:"keys"`
	Items map[string]string `json:"items"`
}

// OpenFileStore loads the store at path, creating an empty one if the
// file does not exist yet.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, items: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var img fileImage
	if err := json.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	for _, k := range img.Keys {
		if v, ok := img.Items[k]; ok {
			s.items[k] = v
			s.order = append(s.order, k)
		}
	}
	return s, nil
}

// flush rewrites the backing file. Caller must hold s.mu.
func (s *FileStore) flush() error {
	data, err := json.Marshal(fileImage{Keys: s.order, Items: s.items})
	if err != nil {
		return fmt.Errorf("failed to marshal store file: %w", err)
	}

	f, err := atomicfile.New(s.path)
	if err != nil {
		return fmt.Errorf("failed to open store file: %w", err)
	}
	defer f.RemoveIfNotClosed()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to commit store file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.items[key]
	s.items[key] = value
	if !existed {
		s.order = append(s.order, key)
	}
	if err := s.flush(); err != nil {
		// roll back the in-memory image so it matches the file
		if existed {
			s.items[key] = prev
		} else {
			delete(s.items, key)
			s.order = s.order[:len(s.order)-1]
		}
		return err
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return s.flush()
}

func (s *FileStore) Key(ctx context.Context, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.order) {
		return "", ErrNotFound
	}
	return s.order[index], nil
}

func (s *FileStore) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order), nil
}
