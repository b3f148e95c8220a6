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

// Package value defines the host-facing, mutable value tree that sits
// between a parsed document and the validator (C6): the host obtains one
// of these from a Document, may mutate it freely, and hands it back for
// validation and, at dump time, reconciliation (C7) against the original
// AST.
//
// Split out from package ftml so that validate and reconcile can import it
// without creating a cycle back through the ftml orchestration package.
package value

import (
	"strconv"

	"github.com/DarrenHaba/ftml/ast"
)

// Kind identifies which concrete shape a Value holds.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindNull
	KindMapping
	KindSequence
)

// Value is the sum type host code reads and mutates: a scalar, a Mapping,
// or a Sequence.
type Value interface {
	Kind() Kind
	// Source returns the AST node this value was loaded from, or nil if
	// it was constructed fresh by the host (§4.6: "If the value has been
	// replaced by a fresh mapping/sequence without a back-reference,
	// build a plain AST node and do not carry comments into it").
	Source() ast.Value
}

// Scalar is a leaf value.
type Scalar struct {
	K    Kind
	Str  string
	Int  int64
	Flt  float64
	Bool bool
	Src  ast.Value
}

func (s *Scalar) Kind() Kind      { return s.K }
func (s *Scalar) Source() ast.Value { return s.Src }

// NewString, NewInt, NewFloat, NewBool, and Null construct detached
// scalars (Source() == nil) for host code building fresh values.
func NewString(s string) *Scalar { return &Scalar{K: KindString, Str: s} }
func NewInt(i int64) *Scalar     { return &Scalar{K: KindInt, Int: i} }
func NewFloat(f float64) *Scalar { return &Scalar{K: KindFloat, Flt: f} }
func NewBool(b bool) *Scalar     { return &Scalar{K: KindBool, Bool: b} }
func Null() *Scalar              { return &Scalar{K: KindNull} }

// Mapping is an ordered key->Value mapping (I1: unique keys).
type Mapping struct {
	order []string
	items map[string]Value
	Src   ast.Value
}

func (*Mapping) Kind() Kind          { return KindMapping }
func (m *Mapping) Source() ast.Value { return m.Src }

// NewMapping returns an empty, detached Mapping.
func NewMapping() *Mapping {
	return &Mapping{items: make(map[string]Value)}
}

// Set inserts or overwrites the value for key, preserving first-insertion
// position in iteration order.
func (m *Mapping) Set(key string, v Value) {
	if _, exists := m.items[key]; !exists {
		m.order = append(m.order, key)
	}
	m.items[key] = v
}

// Get returns the value for key, if present.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Delete removes key, if present.
func (m *Mapping) Delete(key string) {
	if _, exists := m.items[key]; !exists {
		return
	}
	delete(m.items, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of entries.
func (m *Mapping) Len() int { return len(m.order) }

// Each calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (m *Mapping) Each(fn func(key string, v Value) bool) {
	for _, k := range m.order {
		if !fn(k, m.items[k]) {
			return
		}
	}
}

// Sequence is an ordered list of values.
type Sequence struct {
	Items []Value
	Src   ast.Value
}

func (*Sequence) Kind() Kind          { return KindSequence }
func (s *Sequence) Source() ast.Value { return s.Src }

// NewSequence returns a detached Sequence wrapping items.
func NewSequence(items ...Value) *Sequence {
	return &Sequence{Items: items}
}

// FromAST deep-copies an ast.Value into a detached-but-sourced Value tree,
// setting Source() to the corresponding AST node throughout. Used when the
// host first loads a document, and by the validator (§4.5 rule 1) to
// inject a field's default AST literal into the value tree.
func FromAST(v ast.Value) Value {
	switch n := v.(type) {
	case *ast.Scalar:
		s := &Scalar{Src: n}
		switch n.Kind {
		case ast.ScalarString:
			s.K, s.Str = KindString, n.Str
		case ast.ScalarInt:
			s.K, s.Int = KindInt, n.Int
		case ast.ScalarFloat:
			s.K, s.Flt = KindFloat, n.Flt
		case ast.ScalarBool:
			s.K, s.Bool = KindBool, n.Bool
		case ast.ScalarNull:
			s.K = KindNull
		}
		return s
	case *ast.Object:
		m := &Mapping{items: make(map[string]Value), Src: n}
		n.Fields.Each(func(kv *ast.KeyValue) bool {
			m.Set(kv.Key, FromAST(kv.Value))
			return true
		})
		return m
	case *ast.List:
		seq := &Sequence{Src: n}
		for _, item := range n.Items {
			seq.Items = append(seq.Items, FromAST(item))
		}
		return seq
	}
	return nil
}

// Get resolves a dotted/bracket-indexed path against v, supplementing §4.5's
// path notation with a read accessor for host code (SPEC_FULL.md's
// "supplemented features": a convenience Get alongside Load/Dump).
func Get(v Value, path string) (Value, bool) {
	cur := v
	for _, seg := range splitPath(path) {
		if seg.index >= 0 {
			seq, ok := cur.(*Sequence)
			if !ok || seg.index >= len(seq.Items) {
				return nil, false
			}
			cur = seq.Items[seg.index]
			continue
		}
		m, ok := cur.(*Mapping)
		if !ok {
			return nil, false
		}
		next, ok := m.Get(seg.key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

type pathSeg struct {
	key   string
	index int
}

// splitPath parses the dotted/bracket path notation of §4.5 ("users[0].email").
func splitPath(path string) []pathSeg {
	var out []pathSeg
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			i++
		case '[':
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			n := 0
			for _, c := range path[i+1 : j] {
				n = n*10 + int(c-'0')
			}
			out = append(out, pathSeg{index: n})
			i = j + 1
		case '"':
			q, err := strconv.QuotedPrefix(path[i:])
			if err != nil {
				return append(out, pathSeg{key: path[i:], index: -1})
			}
			key, _ := strconv.Unquote(q)
			out = append(out, pathSeg{key: key, index: -1})
			i += len(q)
		default:
			j := i
			for j < len(path) && path[j] != '.' && path[j] != '[' {
				j++
			}
			out = append(out, pathSeg{key: path[i:j], index: -1})
			i = j
		}
	}
	return out
}
