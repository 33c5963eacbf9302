package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Local stores documents below a directory of an afero filesystem
type Local struct {
	fs  afero.Fs
	dir string
}

// NewLocal creates the directory if needed and returns a Local store
func NewLocal(fs afero.Fs, dir string) (*Local, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive directory is required")
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &Local{fs: fs, dir: dir}, nil
}

func (l *Local) path(key string) string {
	return filepath.Join(l.dir, filepath.FromSlash(key))
}

// Put writes data atomically via a temporary file and rename
func (l *Local) Put(ctx context.Context, key string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := l.path(key)
	if err := l.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", key, err)
	}

	tmp := path + ".part"
	if err := afero.WriteFile(l.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := l.fs.Rename(tmp, path); err != nil {
		_ = l.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Exists reports whether a file for key is present
func (l *Local) Exists(_ context.Context, key string) (bool, error) {
	_, err := l.fs.Stat(l.path(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Location returns the file path for key
func (l *Local) Location(key string) string {
	return l.path(key)
}
