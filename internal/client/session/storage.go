package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// authFileName is the fixed key under which the auth blob is persisted.
const authFileName = "auth.json"

// FileStorage persists the auth context as a JSON blob on disk. It is
// the durable half of the session: the in-memory Store holds the live
// value, this file survives restarts.
type FileStorage struct {
	path string
}

// NewFileStorage stores the blob at the given path. An empty path
// resolves to <user config dir>/shopctl/auth.json.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(base, "shopctl", authFileName)
	}
	return &FileStorage{path: path}, nil
}

// Path returns the blob location.
func (f *FileStorage) Path() string {
	return f.path
}

// Load reads the persisted context. The second return reports whether a
// blob existed; absence is not an error.
func (f *FileStorage) Load() (Context, bool, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Context{}, false, nil
		}
		return Context{}, false, err
	}

	var ctx Context
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return Context{}, false, err
	}
	return ctx, true, nil
}

// Save writes the context blob, creating parent directories as needed.
func (f *FileStorage) Save(ctx Context) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(ctx)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}

// Remove deletes the blob entirely. Removing an absent blob is a no-op,
// so logout stays idempotent.
func (f *FileStorage) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
