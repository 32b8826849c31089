// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"slices"

	"github.com/toeirei/keyman/internal/platform"
)

type effectKind int

const (
	materializeEffect effectKind = iota
	eraseEffect
)

func (k effectKind) String() string {
	if k == eraseEffect {
		return "erase"
	}
	return "materialize"
}

// effect is one filesystem change Save still has to make.
type effect struct {
	kind effectKind
	key  Key
}

func (e effect) apply(fsys platform.Filesystem) error {
	if e.kind == eraseEffect {
		return e.key.erase(fsys)
	}
	return e.key.materialize(fsys)
}

// journal records destructive effects requested during this session. It is
// never persisted; entries leave it only once their files are gone.
type journal struct {
	deletions []Key
}

func (j *journal) markForDeletion(k Key) {
	j.deletions = append(j.deletions, k)
}

// settle drops the oldest deletion after it has been applied.
func (j *journal) settle() {
	if len(j.deletions) > 0 {
		j.deletions = j.deletions[1:]
	}
}

func (j *journal) pending() []Key {
	return slices.Clone(j.deletions)
}

func (j *journal) claims(path string) bool {
	return slices.ContainsFunc(j.deletions, func(k Key) bool { return k.claims(path) })
}

// plan orders the effects for a save: every live key is materialized first,
// then pending deletions are erased oldest first. Materializing a key whose
// copy already exists is a no-op.
func (j *journal) plan(live []Key) []effect {
	effects := make([]effect, 0, len(live)+len(j.deletions))
	for _, k := range live {
		effects = append(effects, effect{kind: materializeEffect, key: k})
	}
	for _, k := range j.deletions {
		effects = append(effects, effect{kind: eraseEffect, key: k})
	}
	return effects
}
