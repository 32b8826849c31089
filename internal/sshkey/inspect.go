// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshkey reads just enough of a private key file to describe it. It
// never asks for passphrases: encrypted keys are reported as such, with their
// fingerprint when the file format exposes the public half.
package sshkey

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// Info describes a private key file.
type Info struct {
	Algorithm   string
	Fingerprint string
	Encrypted   bool
}

// Inspect parses PEM or OpenSSH private key bytes.
func Inspect(data []byte) (Info, error) {
	signer, err := ssh.ParsePrivateKey(data)
	if err == nil {
		pub := signer.PublicKey()
		return Info{Algorithm: pub.Type(), Fingerprint: ssh.FingerprintSHA256(pub)}, nil
	}

	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) {
		info := Info{Encrypted: true}
		if missing.PublicKey != nil {
			info.Algorithm = missing.PublicKey.Type()
			info.Fingerprint = ssh.FingerprintSHA256(missing.PublicKey)
		}
		return info, nil
	}
	return Info{}, fmt.Errorf("not a private key: %w", err)
}

// InspectFile reads and inspects the private key at path.
func InspectFile(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, err
	}
	return Inspect(data)
}
