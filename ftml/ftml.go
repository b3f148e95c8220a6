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

// Package ftml is the root orchestration package: it wires the tokenizer
// (C1), document parser and comment attacher (C2/C3), schema parser and
// type registry (C4/C5), validator (C6), reconciler (C7), and serializer
// (C8) behind a single Load/Dump surface, threading a Config record
// through every stage per §5's "configuration record carrying strict-mode,
// apply-defaults, indent-size, and inline threshold".
//
// Grounded on idol/compiler/compiler.go's top-level Compile entry point,
// which performs the same kind of single-call orchestration over its own
// parse-then-compile pipeline.
package ftml

import (
	"github.com/DarrenHaba/ftml/ast"
	"github.com/DarrenHaba/ftml/reconcile"
	"github.com/DarrenHaba/ftml/schema"
	"github.com/DarrenHaba/ftml/serialize"
	"github.com/DarrenHaba/ftml/validate"
	"github.com/DarrenHaba/ftml/value"
)

// Position re-exports the shared Position type (ast.Position is itself a
// token.Position alias) so callers of DiagnosticSink never need to import
// the lower layers directly.
type Position = ast.Position

// Document is a loaded FTML document: the host-facing, mutable value tree
// plus enough of the original parse to reconcile comments back in at Dump
// time.
type Document struct {
	Root *value.Mapping

	orig *ast.Document
	cfg  *Config
}

// Get resolves the dotted/bracket-indexed path notation of §4.5 against
// d's value tree (SPEC_FULL.md's "supplemented features": a read accessor
// alongside Load/Dump).
func (d *Document) Get(path string) (value.Value, bool) {
	return value.Get(d.Root, path)
}

// Validate re-runs C6 over d's current value tree, for a host that has
// mutated the tree after Load and wants to check it again before Dump.
// apply_defaults defaults to false here (§6.4's "false on dump"), since by
// this point the tree is host-owned and defaulting is normally a load-time
// concern; pass WithApplyDefaults(true) to override.
func (d *Document) Validate(typ schema.Type, opts ...Option) []error {
	cfg := *d.cfg
	cfg.applyDefaults = false
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	vopts := validate.Options{
		Strict:        cfg.strict,
		ApplyDefaults: cfg.applyDefaults,
		Registry:      cfg.registryOrDefault(),
	}
	return validate.Validate(d.Root, typ, vopts)
}

// Load parses src as FTML data (C1-C3), optionally gates it on
// §6.2's version check, and builds a Document wrapping the resulting value
// tree. If typ is non-nil, the value tree is additionally validated (C6)
// against it and defaults are applied according to cfg.
//
// Returned errors are parse errors, a *VersionError, or []*validate.Error
// joined into the slice; callers should treat any non-empty return as
// failure per §7's propagation policy. Parse and version errors return a
// nil Document; validation errors return the loaded Document alongside them
// (C6 never short-circuits siblings).
func Load(src []byte, typ schema.Type, opts ...Option) (*Document, []error) {
	cfg := NewConfig(opts...)

	if cfg.checkVersion {
		skeleton, errs := ast.Parse(src, false)
		if len(errs) != 0 {
			return nil, errs
		}
		if verr := checkDocVersion(skeleton); verr != nil {
			return nil, []error{verr}
		}
	}

	doc, errs := ast.Parse(src, cfg.preserveComments)
	if len(errs) != 0 {
		return nil, errs
	}

	if cfg.sink != nil {
		if kv, ok := doc.Items.Get("ftml_encoding"); ok {
			if sc, ok := kv.Value.(*ast.Scalar); ok && sc.Kind == ast.ScalarString {
				cfg.sink.Warnf(kv.Pos, "document declares ftml_encoding=%q; re-decode as %q and reload if this text was not already read as that encoding", sc.Str, normalizeEncoding(sc.Str))
			}
		}
	}

	root := value.NewMapping()
	doc.Items.Each(func(kv *ast.KeyValue) bool {
		root.Set(kv.Key, value.FromAST(kv.Value))
		return true
	})

	out := &Document{Root: root, orig: doc, cfg: cfg}

	if typ != nil {
		vopts := validate.Options{
			Strict:        cfg.strict,
			ApplyDefaults: applyDefaultsForLoad(cfg),
			Registry:      cfg.registryOrDefault(),
		}
		if verrs := validate.Validate(out.Root, typ, vopts); len(verrs) != 0 {
			return out, verrs
		}
	}

	return out, nil
}

// LoadString is a convenience wrapper over Load for callers holding a
// string rather than a []byte (SPEC_FULL.md's "supplemented features").
func LoadString(src string, typ schema.Type, opts ...Option) (*Document, []error) {
	return Load([]byte(src), typ, opts...)
}

// Dump reconciles d's (possibly mutated) value tree against its original
// AST (C7) and serializes the result (C8). Defaults to apply_defaults=false
// per §6.4's "default true on load, false on dump", so a round-tripped,
// unvalidated Dump never injects values the host didn't set.
func Dump(d *Document, opts ...Option) (string, []error) {
	cfg := d.cfg
	if len(opts) != 0 {
		merged := *d.cfg
		for _, opt := range opts {
			opt.apply(&merged)
		}
		cfg = &merged
	}

	newDoc, errs := reconcile.Reconcile(d.Root, d.orig)

	sopts := serialize.Options{IndentSpaces: cfg.indentSpaces, InlineThreshold: cfg.inlineThreshold}
	text, serrs := serialize.Serialize(newDoc, sopts)

	all := make([]error, 0, len(errs)+len(serrs))
	all = append(all, errs...)
	all = append(all, serrs...)
	if len(all) == 0 {
		all = nil
	}
	return text, all
}

// DumpString is an alias of Dump kept for symmetry with LoadString; Dump
// already returns a string, so this simply forwards.
func DumpString(d *Document, opts ...Option) (string, []error) {
	return Dump(d, opts...)
}

// applyDefaultsForLoad resolves the apply_defaults default: true unless
// WithApplyDefaults was explicitly called (§6.4).
func applyDefaultsForLoad(cfg *Config) bool {
	if cfg.applyDefaultsSet {
		return cfg.applyDefaults
	}
	return true
}

// checkDocVersion implements §6.2's gate: looks up the reserved root key
// ftml_version on a comment-free skeleton parse (so the gate runs, per
// §7, "before comment attachment"), and compares it against ParserVersion.
// Absence of the key implies compatibility.
func checkDocVersion(skeleton *ast.Document) *VersionError {
	kv, ok := skeleton.Items.Get("ftml_version")
	if !ok {
		return nil
	}
	sc, ok := kv.Value.(*ast.Scalar)
	if !ok || sc.Kind != ast.ScalarString {
		return errVersionNonString()
	}
	doc, perr := parseDocVersion(sc.Str)
	if perr != nil {
		return perr
	}
	parser, perr := parseDocVersion(ParserVersion)
	if perr != nil {
		// ParserVersion is a package constant under this package's own
		// control; a malformed constant is a programming error, not a
		// document error, but there is no sensible response other than
		// to surface it the same way.
		return perr
	}
	if !checkVersionCompat(doc, parser) {
		return errVersionIncompatible(sc.Str, ParserVersion)
	}
	return nil
}
