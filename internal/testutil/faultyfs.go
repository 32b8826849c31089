// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package testutil

import "github.com/toeirei/keyman/internal/platform"

// FaultyFS wraps a Filesystem and returns the configured error from the
// matching operation instead of delegating. Nil errors delegate. Calls counts
// every delegated or failed call by operation name.
type FaultyFS struct {
	platform.Filesystem

	CopyErr    error
	RemoveErr  error
	WriteErr   error
	SymlinkErr error
	MkdirErr   error

	// PartialCopy makes a failing Copy leave the first half of src at dst.
	PartialCopy bool

	Calls map[string]int
}

// NewFaultyFS wraps the real OS filesystem.
func NewFaultyFS() *FaultyFS {
	return &FaultyFS{Filesystem: platform.OS{}, Calls: map[string]int{}}
}

func (f *FaultyFS) count(op string) {
	if f.Calls == nil {
		f.Calls = map[string]int{}
	}
	f.Calls[op]++
}

func (f *FaultyFS) Copy(src, dst string) error {
	f.count("copy")
	if f.CopyErr != nil {
		if f.PartialCopy {
			if data, err := f.Filesystem.ReadFile(src); err == nil {
				_ = f.Filesystem.WriteFileAtomic(dst, data[:len(data)/2])
			}
		}
		return f.CopyErr
	}
	return f.Filesystem.Copy(src, dst)
}

func (f *FaultyFS) Remove(path string) error {
	f.count("remove")
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	return f.Filesystem.Remove(path)
}

func (f *FaultyFS) WriteFileAtomic(path string, data []byte) error {
	f.count("write")
	if f.WriteErr != nil {
		return f.WriteErr
	}
	return f.Filesystem.WriteFileAtomic(path, data)
}

func (f *FaultyFS) Symlink(target, link string) error {
	f.count("symlink")
	if f.SymlinkErr != nil {
		return f.SymlinkErr
	}
	return f.Filesystem.Symlink(target, link)
}

func (f *FaultyFS) MkdirAll(path string) error {
	f.count("mkdir")
	if f.MkdirErr != nil {
		return f.MkdirErr
	}
	return f.Filesystem.MkdirAll(path)
}
