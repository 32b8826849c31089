// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

func TestGenerateEd25519_ParsesBack(t *testing.T) {
	pub, priv, err := GenerateEd25519("test-comment", "")
	if err != nil {
		t.Fatalf("GenerateEd25519 failed: %v", err)
	}

	pk, comment, _, _, err := ssh.ParseAuthorizedKey(pub)
	if err != nil {
		t.Fatalf("ParseAuthorizedKey failed: %v", err)
	}
	if comment != "test-comment" {
		t.Errorf("unexpected comment: got %q want %q", comment, "test-comment")
	}

	info, err := Inspect(priv)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Encrypted {
		t.Fatal("unencrypted key reported as encrypted")
	}
	if info.Algorithm != ssh.KeyAlgoED25519 {
		t.Fatalf("unexpected algorithm %q", info.Algorithm)
	}
	if info.Fingerprint != ssh.FingerprintSHA256(pk) {
		t.Fatalf("fingerprint mismatch: %q vs %q", info.Fingerprint, ssh.FingerprintSHA256(pk))
	}
}

func TestInspect_EncryptedKeyKeepsFingerprint(t *testing.T) {
	pub, priv, err := GenerateEd25519("enc", "test-passphrase")
	if err != nil {
		t.Fatalf("GenerateEd25519 with passphrase failed: %v", err)
	}
	pk, _, _, _, err := ssh.ParseAuthorizedKey(pub)
	if err != nil {
		t.Fatalf("ParseAuthorizedKey failed: %v", err)
	}

	info, err := Inspect(priv)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if !info.Encrypted {
		t.Fatal("expected encrypted key to be reported as encrypted")
	}
	if info.Fingerprint != ssh.FingerprintSHA256(pk) {
		t.Fatalf("expected fingerprint %q, got %q", ssh.FingerprintSHA256(pk), info.Fingerprint)
	}
}

func TestInspectFile_RejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := InspectFile(path)
	if err == nil || !strings.Contains(err.Error(), "not a private key") {
		t.Fatalf("expected a not-a-private-key error, got %v", err)
	}
}

func TestInspectFile_MissingFile(t *testing.T) {
	if _, err := InspectFile(filepath.Join(t.TempDir(), "missing")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
