// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import "github.com/juju/errors"

// Failure kinds returned by the registry. Returned errors wrap exactly one of
// these together with the underlying cause; match them with errors.Is.
const (
	// ErrInvalidSource is returned by Add when the source is not a regular file.
	ErrInvalidSource = errors.ConstError("invalid path to private key")

	// ErrInvalidName is returned when a key name is empty or cannot be used
	// as a file name inside managed storage.
	ErrInvalidName = errors.ConstError("invalid key name")

	// ErrDuplicateName is returned when a key with the requested name exists.
	ErrDuplicateName = errors.ConstError("key with that name already exists")

	// ErrNotFound is returned when no key has the requested name.
	ErrNotFound = errors.ConstError("key not found")

	// ErrMaterializeFailed is returned when a key could not be copied into
	// managed storage.
	ErrMaterializeFailed = errors.ConstError("could not copy key into storage")

	// ErrLinkFailed is returned when the active key link could not be created.
	ErrLinkFailed = errors.ConstError("could not link key")

	// ErrPersistFailed is returned when the registry record could not be written.
	ErrPersistFailed = errors.ConstError("could not save key registry")

	// ErrDeleteFailed is returned when a removed key's files could not be erased.
	ErrDeleteFailed = errors.ConstError("could not delete key files")

	// ErrLoadFailed is returned when an existing registry record cannot be read.
	ErrLoadFailed = errors.ConstError("could not load key registry")
)
