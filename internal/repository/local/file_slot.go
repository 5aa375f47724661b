package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fitbuilder/server/internal/repository"

	"go.uber.org/multierr"
)

var _ repository.CASSlot = (*FileSlot)(nil)

// FileSlot stores each key as <dir>/<key>.json. Writes go to a temp file
// that is renamed into place, so readers never see a partial blob.
type FileSlot struct {
	dir string
	mu  sync.Mutex
}

func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{dir: dir}
}

func (f *FileSlot) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileSlot) Load(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(key)
}

func (f *FileSlot) Store(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store(key, data)
}

// CompareAndSwap is atomic with respect to this FileSlot only; other
// processes writing the same file are not detected.
func (f *FileSlot) CompareAndSwap(_ context.Context, key string, old, next []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, found, err := f.load(key)
	if err != nil {
		return false, err
	}
	if old == nil {
		if found {
			return false, nil
		}
	} else if !found || !bytes.Equal(current, old) {
		return false, nil
	}
	if err := f.store(key, next); err != nil {
		return false, err
	}
	return true, nil
}

func (f *FileSlot) load(key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileSlot) store(key string, data []byte) (err error) {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, writeErr := tmp.Write(data)
	err = multierr.Combine(writeErr, tmp.Sync(), tmp.Close())
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}
