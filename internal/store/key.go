// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"fmt"

	"github.com/toeirei/keyman/internal/logging"
	"github.com/toeirei/keyman/internal/platform"
)

// Key is one managed SSH key pair. Empty path fields mean "not set".
type Key struct {
	Name string

	// OriginalPath is the private key file given when the key was added. It
	// is kept so the managed copy can be restored if it goes missing.
	OriginalPath string

	// PrivateKeyPath is the managed copy. It never changes once assigned,
	// renaming a key does not move its files.
	PrivateKeyPath string

	// PublicKeyPath is reserved; nothing populates it yet.
	PublicKeyPath string
}

// Materialized reports whether the managed copy is in place.
func (k Key) Materialized(fsys platform.Filesystem) bool {
	return k.PrivateKeyPath != "" && fsys.Exists(k.PrivateKeyPath)
}

// materialize copies the original file into managed storage unless the
// managed copy already exists.
func (k Key) materialize(fsys platform.Filesystem) error {
	if k.Materialized(fsys) {
		return nil
	}
	if k.PrivateKeyPath == "" {
		return fmt.Errorf("%w: key %q has no storage path", ErrMaterializeFailed, k.Name)
	}
	if k.OriginalPath == "" || !fsys.Exists(k.OriginalPath) {
		return fmt.Errorf("%w: original file for key %q is missing (%s)", ErrMaterializeFailed, k.Name, k.OriginalPath)
	}
	if err := fsys.Copy(k.OriginalPath, k.PrivateKeyPath); err != nil {
		// a torn copy must not pass for a materialized key on the next save
		if rmErr := fsys.Remove(k.PrivateKeyPath); rmErr != nil {
			logging.Warnf("could not remove partial copy %s: %v", k.PrivateKeyPath, rmErr)
		}
		return fmt.Errorf("%w: %s -> %s: %w", ErrMaterializeFailed, k.OriginalPath, k.PrivateKeyPath, err)
	}
	return nil
}

// erase removes the managed files. Files that are already gone are fine.
func (k Key) erase(fsys platform.Filesystem) error {
	for _, path := range []string{k.PrivateKeyPath, k.PublicKeyPath} {
		if path == "" {
			continue
		}
		if err := fsys.Remove(path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDeleteFailed, path, err)
		}
	}
	return nil
}

func (k Key) claims(path string) bool {
	return path != "" && (k.PrivateKeyPath == path || k.PublicKeyPath == path)
}
