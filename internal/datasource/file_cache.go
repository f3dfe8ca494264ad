package datasource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCacheMiss is returned when no cached document exists
var ErrCacheMiss = errors.New("cache miss")

// FileCache stores one JSON document per athlete in a flat directory
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir
func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

// Path returns the cache file for a compacted athlete name
func (c *FileCache) Path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Read returns the cached document or ErrCacheMiss
func (c *FileCache) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(c.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return data, nil
}

// Write replaces the cached document for key
func (c *FileCache) Write(key string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Rename(tmpName, c.Path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Remove deletes the cached document for key; a missing file is not an error
func (c *FileCache) Remove(key string) error {
	if err := os.Remove(c.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// Check creates the cache directory if needed and confirms it is a directory
func (c *FileCache) Check() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	info, err := os.Stat(c.dir)
	if err != nil {
		return fmt.Errorf("failed to stat cache dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cache path %s is not a directory", c.dir)
	}
	return nil
}
