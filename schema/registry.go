// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package schema

import "sync"

// ConstraintValidator checks one constraint's value against a scalar value
// of the owning kind, returning a human-readable failure reason (empty
// string means success).
type ConstraintValidator func(constraint ConstraintValue, value any) (failReason string)

// KindEntry is what the Type Registry (C5) stores per scalar kind: a
// value-shape predicate, its constraint table, and constraint-name aliases.
// It has no value-coercion step: values are checked as they are, never
// converted.
//
// Grounded on idol/compiler/compiler.go's builtinTypes map, generalized
// from a name->wire-type lookup to a name->behavior-bundle one.
type KindEntry struct {
	Name        string
	Shape       func(value any) bool
	Constraints map[string]ConstraintValidator
	// Aliases map alternate constraint spellings to their canonical name
	// (e.g. "min_length" and "min" both resolve to "min" for str).
	Aliases map[string]string
}

// Registry is the process-wide Type Registry (§4.4, §5's shared-resource
// policy): built-ins installed once, read-only thereafter. The zero value
// is not ready for use; call NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	kinds   map[string]*KindEntry
	sealed  bool
}

// NewRegistry returns a Registry pre-populated with the built-in scalar
// kinds and their constraints (§4.4's "Constraints recognized" table).
func NewRegistry() *Registry {
	r := &Registry{kinds: make(map[string]*KindEntry)}
	registerBuiltins(r)
	return r
}

// Register installs a new scalar kind. It panics if called after Seal, per
// §5's "extensions installed only during initialization" policy.
func (r *Registry) Register(entry *KindEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		panic("schema: Registry.Register called after Seal")
	}
	r.kinds[entry.Name] = entry
}

// Seal marks the registry read-only. Parses performed through a sealed
// registry are safe for concurrent use; Register after Seal panics.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Lookup returns the KindEntry for name, if registered.
func (r *Registry) Lookup(name string) (*KindEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.kinds[name]
	return e, ok
}

// CanonicalConstraintName resolves an alias to its canonical spelling for
// kind, or returns name unchanged if kind has no such alias.
func (r *Registry) CanonicalConstraintName(kind, name string) string {
	e, ok := r.Lookup(kind)
	if !ok {
		return name
	}
	if canon, ok := e.Aliases[name]; ok {
		return canon
	}
	return name
}

// Default is the process-wide registry used when callers don't supply
// their own (the common case). It is sealed at package init, matching
// §5's "initialized once with built-ins before first schema parse".
var Default = func() *Registry {
	r := NewRegistry()
	r.Seal()
	return r
}()
