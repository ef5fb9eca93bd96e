package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store is the local state directory: sqlite database, file backend data and
// TUI state all live under Dir.
type Store struct {
	Dir string
}

func DefaultStore() (Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: dir}, nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) SQLitePath() string {
	return filepath.Join(s.Dir, "quicknotes.sqlite")
}

func (s Store) DataDir() string {
	return filepath.Join(s.Dir, "data")
}

func ConfigDir() (string, error) {
	// Override keeps tests away from ~/.quicknotes.
	if v := strings.TrimSpace(os.Getenv("QUICKNOTES_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".quicknotes"), nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
