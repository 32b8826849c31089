// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds fixtures shared by package tests: real OpenSSH key
// files, a temporary home layout and a filesystem that fails on demand.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/toeirei/keyman/internal/platform"
	"github.com/toeirei/keyman/internal/sshkey"
)

// WriteKeyFile writes a freshly generated unencrypted ed25519 private key to
// dir/name with mode 0600 and returns its path.
func WriteKeyFile(t testing.TB, dir, name string) string {
	t.Helper()
	_, priv, err := sshkey.GenerateEd25519(name+"@test", "")
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, priv, 0o600); err != nil {
		t.Fatalf("write key %s: %v", path, err)
	}
	return path
}

// TempLayout returns a layout rooted in a fresh temporary home directory.
func TempLayout(t testing.TB) platform.Layout {
	t.Helper()
	return platform.NewLayout(t.TempDir(), "", "")
}
