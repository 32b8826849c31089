// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package store is the key registry: named keys, the active-key pointer and
// the keys.json record that persists them.
//
// Mutations only touch memory, with one exception: Use links the chosen key
// into the SSH directory immediately. Everything else that touches the disk
// (copying a key into managed storage, erasing a removed key) waits for
// Save, which writes the record first and then works through the pending
// effects. A key moves through these states:
//
//	declared      added, not copied yet
//	materialized  copy present in managed storage (Save, or Use)
//	linked        target of the SSH directory link (Use)
//	pending       removed, files still on disk (Remove)
//	erased        files gone (Save)
package store
