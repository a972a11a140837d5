// Package boundary serves region boundary documents from disk.
package boundary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
)

// FileLoader implements ports.BoundaryLoader over a directory of GeoJSON
// files. Only keys present in the region map can be loaded.
type FileLoader struct {
	dir   string
	files map[string]string
}

func NewFileLoader(dir string, files map[string]string) *FileLoader {
	return &FileLoader{dir: dir, files: files}
}

// LoadBoundary reads the document registered for key.
func (l *FileLoader) LoadBoundary(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, ok := l.files[key]
	if !ok || name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("region %q: %w", key, ports.ErrNotFound)
	}
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("region %q file %s: %w", key, name, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read region %q: %w", key, err)
	}
	return data, nil
}

// Keys lists the configured region keys in order.
func (l *FileLoader) Keys() []string {
	keys := make([]string, 0, len(l.files))
	for k := range l.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
