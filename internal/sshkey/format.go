// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// MarshalEd25519PrivateKey converts an ed25519 private key to a PEM block in
// the OpenSSH private key format. A non-empty passphrase encrypts the block.
func MarshalEd25519PrivateKey(key ed25519.PrivateKey, comment, passphrase string) (*pem.Block, error) {
	var (
		block *pem.Block
		err   error
	)
	if passphrase == "" {
		block, err = ssh.MarshalPrivateKey(key, comment)
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(key, comment, []byte(passphrase))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ed25519 private key: %w", err)
	}
	return block, nil
}

// GenerateEd25519 creates a fresh ed25519 key pair and returns the public key
// in authorized_keys form and the private key as OpenSSH PEM.
func GenerateEd25519(comment, passphrase string) (public, private []byte, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert public key: %w", err)
	}
	block, err := MarshalEd25519PrivateKey(priv, comment, passphrase)
	if err != nil {
		return nil, nil, err
	}
	return ssh.MarshalAuthorizedKey(sshPub), pem.EncodeToMemory(block), nil
}
