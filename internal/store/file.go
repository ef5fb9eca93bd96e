package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKV keeps one <key>.json file per key under Dir.
type FileKV struct {
	Dir string
}

func NewFileKV(dir string) (*FileKV, error) {
	dir = filepath.Clean(strings.TrimSpace(dir))
	if dir == "" || dir == "." {
		return nil, errors.New("file backend: empty dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileKV{Dir: dir}, nil
}

func (f *FileKV) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("file backend: invalid key %q", key)
	}
	return filepath.Join(f.Dir, key+".json"), nil
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	return atomicWriteFile(f.Dir, key+".*.tmp", p, value, 0o600)
}

func (f *FileKV) Close() error { return nil }
