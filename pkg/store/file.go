package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/wordcloud/pkg/result"
)

// FileStore stores layouts as JSON files in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based layout store.
// If baseDir is empty, defaults to ~/.local/share/wordcloud/layouts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "wordcloud", "layouts")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) layoutPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, l result.Layout) (string, error) {
	l = stamp(l)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := result.WriteFile(l, s.layoutPath(l.ID)); err != nil {
		return "", fmt.Errorf("write layout file: %w", err)
	}
	return l.ID, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (result.Layout, error) {
	if !validID(id) {
		return result.Layout{}, ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, err := result.ReadFile(s.layoutPath(id))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return result.Layout{}, ErrNotFound
		}
		return result.Layout{}, fmt.Errorf("read layout file: %w", err)
	}
	return l, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]result.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}
	var out []result.Layout
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if !validID(strings.TrimSuffix(entry.Name(), ".json")) {
			continue
		}
		l, err := result.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		out = append(out, l)
	}
	sortNewestFirst(out)
	return out[:min(len(out), limitOrDefault(limit))], nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.layoutPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove layout file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for layout files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
