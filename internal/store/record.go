// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"encoding/json"
	"fmt"

	"github.com/toeirei/keyman/internal/logging"
)

// registryRecord is the on-disk shape of keys.json. Absent optional values
// are written as null.
type registryRecord struct {
	ActiveKeyName *string              `json:"activeKeyName"`
	KeysByName    map[string]keyRecord `json:"keysByName"`
}

type keyRecord struct {
	OriginalPath   *string `json:"originalPath"`
	PrivateKeyPath *string `json:"privateKeyPath"`
	PublicKeyPath  *string `json:"publicKeyPath"`
	Name           string  `json:"name"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newKeyRecord(k Key) keyRecord {
	return keyRecord{
		OriginalPath:   optional(k.OriginalPath),
		PrivateKeyPath: optional(k.PrivateKeyPath),
		PublicKeyPath:  optional(k.PublicKeyPath),
		Name:           k.Name,
	}
}

func (kr keyRecord) key() Key {
	return Key{
		Name:           kr.Name,
		OriginalPath:   deref(kr.OriginalPath),
		PrivateKeyPath: deref(kr.PrivateKeyPath),
		PublicKeyPath:  deref(kr.PublicKeyPath),
	}
}

// encodeRecord serialises the live keys and the active pointer. Pending
// deletions are never part of the record.
func encodeRecord(keys map[string]*Key, active string) ([]byte, error) {
	rec := registryRecord{
		ActiveKeyName: optional(active),
		KeysByName:    make(map[string]keyRecord, len(keys)),
	}
	for name, k := range keys {
		rec.KeysByName[name] = newKeyRecord(*k)
	}
	return json.MarshalIndent(rec, "", "  ")
}

// decodeRecord parses keys.json. The map key wins over a disagreeing name
// field and a dangling active pointer is dropped, both with a warning.
func decodeRecord(data []byte) (map[string]*Key, string, error) {
	var rec registryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	keys := make(map[string]*Key, len(rec.KeysByName))
	for name, kr := range rec.KeysByName {
		k := kr.key()
		if k.Name != name {
			logging.Warnf("record entry %q carries name %q, using %q", name, k.Name, name)
			k.Name = name
		}
		keys[name] = &k
	}

	active := deref(rec.ActiveKeyName)
	if _, ok := keys[active]; active != "" && !ok {
		logging.Warnf("active key %q is not in the registry, clearing it", active)
		active = ""
	}
	return keys, active, nil
}
