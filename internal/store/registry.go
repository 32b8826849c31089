// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toeirei/keyman/internal/logging"
	"github.com/toeirei/keyman/internal/platform"
)

// Registry is the set of named keys plus the active-key pointer. It is not
// safe for concurrent use, and nothing guards two processes saving at once.
type Registry struct {
	layout  platform.Layout
	fsys    platform.Filesystem
	keys    map[string]*Key
	active  string
	journal journal
}

// New returns an empty registry for layout.
func New(layout platform.Layout, fsys platform.Filesystem) *Registry {
	return &Registry{
		layout: layout,
		fsys:   fsys,
		keys:   make(map[string]*Key),
	}
}

// Load reads the registry record at layout.RecordPath. A missing record
// yields an empty registry; an unreadable one is ErrLoadFailed.
func Load(layout platform.Layout, fsys platform.Filesystem) (*Registry, error) {
	r := New(layout, fsys)
	if !fsys.Exists(layout.RecordPath) {
		logging.Debugf("no registry at %s, starting empty", layout.RecordPath)
		return r, nil
	}

	data, err := fsys.ReadFile(layout.RecordPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	keys, active, err := decodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", layout.RecordPath, err)
	}
	r.keys = keys
	r.active = active
	logging.Debugf("loaded %d keys from %s", len(keys), layout.RecordPath)
	return r, nil
}

// Layout returns the paths this registry works with.
func (r *Registry) Layout() platform.Layout {
	return r.layout
}

// List returns every key sorted by name.
func (r *Registry) List() []Key {
	keys := make([]Key, 0, len(r.keys))
	for _, k := range r.keys {
		keys = append(keys, *k)
	}
	slices.SortFunc(keys, func(a, b Key) int { return strings.Compare(a.Name, b.Name) })
	return keys
}

// Get returns the key called name.
func (r *Registry) Get(name string) (Key, error) {
	k, ok := r.keys[name]
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return *k, nil
}

// GetActive returns the active key, if any.
func (r *Registry) GetActive() (Key, bool) {
	if r.active == "" {
		return Key{}, false
	}
	k, ok := r.keys[r.active]
	if !ok {
		return Key{}, false
	}
	return *k, true
}

// Pending returns keys removed this session whose files are not erased yet.
func (r *Registry) Pending() []Key {
	return r.journal.pending()
}

// Materialized reports whether the key called name has its managed copy in
// place. Unknown names report false.
func (r *Registry) Materialized(name string) bool {
	k, ok := r.keys[name]
	return ok && k.Materialized(r.fsys)
}

// Add registers the private key at sourcePath. When name is empty the file
// stem is used, falling back to the first free key<N>. The file is copied
// into managed storage by the next Save, not here.
func (r *Registry) Add(sourcePath, name string) (Key, error) {
	if !r.fsys.IsRegularFile(sourcePath) {
		return Key{}, fmt.Errorf("%w: %s", ErrInvalidSource, sourcePath)
	}
	original, err := filepath.Abs(sourcePath)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %s: %w", ErrInvalidSource, sourcePath, err)
	}

	if name == "" {
		name = fileStem(sourcePath)
	}
	if name == "" {
		name = r.nextDefaultName()
	}
	if err := validateName(name); err != nil {
		return Key{}, err
	}
	if _, exists := r.keys[name]; exists {
		return Key{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	k := &Key{
		Name:           name,
		OriginalPath:   original,
		PrivateKeyPath: r.storagePathFor(name),
	}
	r.keys[name] = k
	logging.Debugf("added key %q from %s (storage %s)", name, original, k.PrivateKeyPath)
	return *k, nil
}

// Use makes name the active key and links it into the SSH directory right
// away. A key that has not been copied into storage yet is copied first.
// The new active pointer is only durable after Save.
func (r *Registry) Use(name string) (Key, error) {
	k, ok := r.keys[name]
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	previous := r.active
	r.active = name
	if err := r.link(*k); err != nil {
		r.active = previous
		return Key{}, err
	}
	logging.Debugf("using key %q, linked %s -> %s", name, r.layout.LinkPath, k.PrivateKeyPath)
	return *k, nil
}

func (r *Registry) link(k Key) error {
	if k.PrivateKeyPath == "" {
		return fmt.Errorf("%w: key %q has no storage path", ErrLinkFailed, k.Name)
	}
	if err := k.materialize(r.fsys); err != nil {
		return err
	}
	if err := r.fsys.Symlink(k.PrivateKeyPath, r.layout.LinkPath); err != nil {
		return fmt.Errorf("%w: %w", ErrLinkFailed, err)
	}
	return nil
}

// Rename changes a key's name. Files stay where they are and the active
// pointer follows the key. Renaming onto another existing key is refused.
func (r *Registry) Rename(oldName, newName string) (Key, error) {
	k, ok := r.keys[oldName]
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrNotFound, oldName)
	}
	if oldName == newName {
		return *k, nil
	}
	if err := validateName(newName); err != nil {
		return Key{}, err
	}
	if _, exists := r.keys[newName]; exists {
		return Key{}, fmt.Errorf("%w: %q", ErrDuplicateName, newName)
	}

	delete(r.keys, oldName)
	k.Name = newName
	r.keys[newName] = k
	if r.active == oldName {
		r.active = newName
	}
	logging.Debugf("renamed key %q to %q", oldName, newName)
	return *k, nil
}

// Remove drops a key from the registry and clears the active pointer if it
// was the active key. Its files are erased by the next Save.
func (r *Registry) Remove(name string) (Key, error) {
	k, ok := r.keys[name]
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(r.keys, name)
	if r.active == name {
		r.active = ""
	}
	r.journal.markForDeletion(*k)
	logging.Debugf("removed key %q, %s pending deletion", name, k.PrivateKeyPath)
	return *k, nil
}

// Save writes the registry record and then applies pending filesystem
// effects: missing managed copies are made and removed keys are erased. It
// stops at the first failure. Deletions that did not happen stay pending,
// so calling Save again retries them.
func (r *Registry) Save() (string, error) {
	for _, dir := range []string{r.layout.AppDir, r.layout.KeysDir} {
		if err := r.fsys.MkdirAll(dir); err != nil {
			return "", fmt.Errorf("%w: %w", ErrPersistFailed, err)
		}
	}

	data, err := encodeRecord(r.keys, r.active)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	if err := r.fsys.WriteFileAtomic(r.layout.RecordPath, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	for _, e := range r.journal.plan(r.List()) {
		if err := e.apply(r.fsys); err != nil {
			logging.Debugf("%s of key %q failed: %v", e.kind, e.key.Name, err)
			return "", err
		}
		if e.kind == eraseEffect {
			r.journal.settle()
		}
		logging.Debugf("%s of key %q done", e.kind, e.key.Name)
	}
	return r.layout.RecordPath, nil
}

// nextDefaultName probes key<N> upward from the current key count.
func (r *Registry) nextDefaultName() string {
	for n := len(r.keys); ; n++ {
		name := fmt.Sprintf("key%d", n)
		if _, exists := r.keys[name]; !exists {
			return name
		}
	}
}

// storagePathFor returns the managed path for a new key. A rename keeps the
// old path, so the natural path may belong to another key (or a removed key
// not erased yet); a numeric suffix keeps every key's material separate.
func (r *Registry) storagePathFor(name string) string {
	base := r.layout.ManagedPath(name)
	path := base
	for i := 1; r.pathClaimed(path); i++ {
		path = fmt.Sprintf("%s-%d", base, i)
	}
	return path
}

func (r *Registry) pathClaimed(path string) bool {
	for _, k := range r.keys {
		if k.claims(path) {
			return true
		}
	}
	return r.journal.claims(path) || r.fsys.Exists(path)
}

// fileStem is the base name without its final extension. Dotfiles such as
// ".work" keep their full name.
func fileStem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	if strings.HasPrefix(base, ".") && strings.Count(base, ".") == 1 {
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
