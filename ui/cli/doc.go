// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the keyman command line using Cobra. Commands are
// thin: they load the key registry, call one registry operation, save, and
// print a translated message.
package cli
