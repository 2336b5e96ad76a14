package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"nlterm/pkg/logging"

	"github.com/bytedance/sonic"
	"github.com/fsnotify/fsnotify"
)

const storageSubsystem = "Storage"

// DefaultFileName is the name of the store document inside the data directory.
const DefaultFileName = "storage.json"

// FileStore is a Store persisted as one JSON object on disk.
type FileStore struct {
	path string

	mu   sync.RWMutex
	data map[string]string
}

// OpenFileStore opens (or lazily creates) the store document at path.
// The parent directory is created if needed. A malformed document is
// treated as empty.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory for %s: %w", path, err)
	}
	fs := &FileStore{
		path: path,
		data: make(map[string]string),
	}
	if err := fs.Reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Path returns the document path.
func (f *FileStore) Path() string {
	return f.path
}

// Get implements Store.
func (f *FileStore) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok
}

// Set implements Store.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.persistLocked()
}

// Delete implements Store.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.persistLocked()
}

// Keys returns the stored keys in sorted order.
func (f *FileStore) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return sortedKeys(f.data)
}

// Reload replaces the in-memory view with the document on disk.
// Only unexpected I/O errors are returned; a missing or malformed
// document reloads as empty.
func (f *FileStore) Reload() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.replace(make(map[string]string))
			return nil
		}
		return fmt.Errorf("failed to read storage file %s: %w", f.path, err)
	}

	data := make(map[string]string)
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &data); err != nil {
			logging.Warn(storageSubsystem, "Ignoring malformed storage file %s: %v", f.path, err)
			data = make(map[string]string)
		}
	}
	f.replace(data)
	return nil
}

func (f *FileStore) replace(data map[string]string) {
	f.mu.Lock()
	f.data = data
	f.mu.Unlock()
}

// persistLocked writes the document through a temp file and rename so
// readers in other processes never observe a partial write.
func (f *FileStore) persistLocked() error {
	raw, err := sonic.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("failed to encode storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".storage-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp storage file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp storage file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace storage file %s: %w", f.path, err)
	}
	return nil
}

// Watch reloads the store whenever another process rewrites the document.
// It blocks until ctx is cancelled.
func (f *FileStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create storage watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: atomic renames replace the file's inode.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(f.path), err)
	}

	target := filepath.Clean(f.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				if err := f.Reload(); err != nil {
					logging.Warn(storageSubsystem, "Reload after %s failed: %v", event.Op, err)
				} else {
					logging.Debug(storageSubsystem, "Reloaded %s after %s", f.path, event.Op)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn(storageSubsystem, "Storage watcher error: %v", err)
		}
	}
}
