// Package fsutil holds the filesystem primitives shared by the bootstrap steps.
// Everything works on a [billy.Filesystem] so tests can run against memfs.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Exists reports whether path exists. Errors other than "not exist" are returned as is.
func Exists(fs billy.Filesystem, path string) (bool, error) {
	_, err := fs.Stat(path)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
}

// AnyExists returns the first of paths that exists, or "".
func AnyExists(fs billy.Filesystem, paths ...string) (string, error) {
	for _, path := range paths {
		ok, err := Exists(fs, path)
		if err != nil {
			return "", err
		}

		if ok {
			return path, nil
		}
	}

	return "", nil
}

// IsEmptyDir reports whether dir is absent or holds nothing but dotfiles such as .gitkeep or
// .DS_Store.
func IsEmptyDir(fs billy.Filesystem, dir string) (bool, error) {
	items, err := fs.ReadDir(dir)

	switch {
	case errors.Is(err, os.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to list %q: %w", dir, err)
	}

	for _, item := range items {
		if !strings.HasPrefix(item.Name(), ".") {
			return false, nil
		}
	}

	return true, nil
}

// WriteFileAtomic writes data to path through a temp file in the same directory and a rename, so
// readers never observe a half-written file.
func WriteFileAtomic(fs billy.Filesystem, path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := util.TempFile(fs, filepath.Dir(path), ".nodestarter-tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temp file next to %q: %w", path, err)
	}

	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = fs.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to write temp file %q: %w", tmpPath, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file %q: %w", tmpPath, err)
	}

	if chmodder, ok := fs.(billy.Change); ok {
		if err = chmodder.Chmod(tmpPath, perm); err != nil {
			return fmt.Errorf("failed to set permissions on %q: %w", tmpPath, err)
		}
	}

	if err = fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %q into place: %w", tmpPath, err)
	}

	return nil
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(fs billy.Filesystem, path string, data []byte, perm os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create the parent directory of %q: %w", path, err)
	}

	if err := util.WriteFile(fs, path, data, perm); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}

	return nil
}
