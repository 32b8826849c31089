// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package platform resolves where keyman keeps its files and provides the
// filesystem primitives the key registry is built on: copying key material into
// managed storage, writing the registry record and linking the active key into
// the SSH directory.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// DefaultAppName names the per-user application directory (~/.keyman).
	DefaultAppName = "keyman"
	// DefaultLinkName is the file name SSH tooling reads the active key from.
	DefaultLinkName = "id_rsa"
	// RecordFileName is the name of the registry record inside the app directory.
	RecordFileName = "keys.json"
	keysDirName    = "keys"
	sshDirName     = ".ssh"
)

// homeEnv returns the environment variable the login session sets for the
// user's profile directory on this platform.
func homeEnv() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

// HomeDir returns the user's home directory from the platform's profile
// environment variable. The login process always sets it, so an empty value
// means the environment is broken and HomeDir panics.
func HomeDir() string {
	name := homeEnv()
	home := os.Getenv(name)
	if home == "" {
		panic("$" + name + " environment not set")
	}
	return home
}

// Layout is the set of paths keyman reads and writes. It is resolved once at
// startup and handed to the registry.
type Layout struct {
	Home       string
	AppDir     string
	KeysDir    string
	RecordPath string
	SSHDir     string
	LinkPath   string
}

// NewLayout derives the full layout from a home directory. Empty appName or
// linkName fall back to DefaultAppName and DefaultLinkName.
func NewLayout(home, appName, linkName string) Layout {
	if appName == "" {
		appName = DefaultAppName
	}
	if linkName == "" {
		linkName = DefaultLinkName
	}
	appDir := filepath.Join(home, "."+appName)
	sshDir := filepath.Join(home, sshDirName)
	return Layout{
		Home:       home,
		AppDir:     appDir,
		KeysDir:    filepath.Join(appDir, keysDirName),
		RecordPath: filepath.Join(appDir, RecordFileName),
		SSHDir:     sshDir,
		LinkPath:   filepath.Join(sshDir, linkName),
	}
}

// ManagedPath is where a key with the given storage name lives inside managed storage.
func (l Layout) ManagedPath(name string) string {
	return filepath.Join(l.KeysDir, name)
}
