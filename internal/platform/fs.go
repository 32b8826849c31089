// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/juju/utils/v4"
	jujufs "github.com/juju/utils/v4/fs"
)

// ErrNotSymlink is returned by Symlink when the link location is occupied by
// something other than a symlink. keyman never clobbers a real key file.
var ErrNotSymlink = errors.New("link location exists and is not a symlink")

// Filesystem is the set of primitives the registry needs from the OS. Tests
// swap in wrappers that inject failures.
type Filesystem interface {
	// Exists reports whether anything (file, dir or dangling symlink) is at path.
	Exists(path string) bool
	// IsRegularFile reports whether path resolves to a regular file.
	IsRegularFile(path string) bool
	MkdirAll(path string) error
	ReadFile(path string) ([]byte, error)
	// WriteFileAtomic replaces path with data without leaving a torn file behind.
	WriteFileAtomic(path string, data []byte) error
	// Copy copies the file at src to dst. dst must not exist yet.
	Copy(src, dst string) error
	// Remove deletes path. A missing path is not an error.
	Remove(path string) error
	// Symlink points link at target, replacing a previous symlink.
	Symlink(target, link string) error
}

// OS implements Filesystem on the real operating system.
type OS struct{}

var _ Filesystem = OS{}

const (
	dirPerm    os.FileMode = 0o700
	recordPerm os.FileMode = 0o600
)

func (OS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (OS) IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (OS) MkdirAll(path string) error {
	return os.MkdirAll(path, dirPerm)
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OS) WriteFileAtomic(path string, data []byte) error {
	return utils.AtomicWriteFile(path, data, recordPerm)
}

// Copy follows symlinks at src so the managed copy always holds the key
// material itself. File mode is preserved. The data is staged in a temporary
// file next to dst and renamed into place, so dst either holds the whole key
// or does not exist.
func (OS) Copy(src, dst string) error {
	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", dst, err)
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s: %w", dst, fs.ErrExist)
	}

	staged, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return err
	}
	tmp := staged.Name()
	staged.Close()
	// fs.Copy wants a destination that does not exist yet
	if err := os.Remove(tmp); err != nil {
		return err
	}

	if err := jujufs.Copy(resolved, tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (OS) Remove(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Symlink creates the directory holding link if needed. An existing symlink
// is removed first; any other file in the way fails with ErrNotSymlink.
func (OS) Symlink(target, link string) error {
	if err := os.MkdirAll(filepath.Dir(link), dirPerm); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", link, err)
	}
	info, err := os.Lstat(link)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		if err := os.Remove(link); err != nil {
			return fmt.Errorf("could not remove previous link %s: %w", link, err)
		}
	case err == nil:
		return fmt.Errorf("%s: %w", link, ErrNotSymlink)
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	return os.Symlink(target, link)
}
