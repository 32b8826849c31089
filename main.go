// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for keyman.
//
// Usage:
//
//	go run . <command> [flags]
//	./keyman <command> [flags]
//
// See --help for the available commands.
package main

import (
	"os"

	"github.com/toeirei/keyman/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
