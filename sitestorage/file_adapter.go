package sitestorage

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/indyavik/theme-1-multi-site/common"
)

// FileAdapter is a file-based Adapter storing one file per key under a
// directory. Keys are base64-encoded into file names so the key alphabet is
// unrestricted.
type FileAdapter struct {
	dir   string
	mutex sync.RWMutex
}

const fileExt = ".json"

// NewFileAdapter creates a FileAdapter rooted at dir, creating the
// directory when missing.
func NewFileAdapter(dir string) (*FileAdapter, error) {
	if dir == "" {
		return nil, errors.New("directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory %s", dir)
	}
	return &FileAdapter{dir: dir}, nil
}

func (a *FileAdapter) filePath(key string) string {
	name := base64.URLEncoding.EncodeToString([]byte(key))
	return filepath.Join(a.dir, name+fileExt)
}

// Put stores data under key.
func (a *FileAdapter) Put(ctx context.Context, key string, data []byte) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err := os.WriteFile(a.filePath(key), data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", key)
	}
	return nil
}

// Get returns the data stored under key.
func (a *FileAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	data, err := os.ReadFile(a.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to read %s", key)
	}
	return data, nil
}

// Delete removes key.
func (a *FileAdapter) Delete(ctx context.Context, key string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err := os.Remove(a.filePath(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete %s", key)
	}
	return nil
}

// List returns all stored keys.
func (a *FileAdapter) List(ctx context.Context) ([]string, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", a.dir)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		raw, err := base64.URLEncoding.DecodeString(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		keys = append(keys, string(raw))
	}
	return keys, nil
}
