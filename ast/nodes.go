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

// Package ast defines the comment-preserving syntax tree produced by the
// document parser (C2) and comment attacher (C3), and consumed read-only
// by the validator (C6), the reconciler (C7), and the serializer (C8).
//
// Grounded on idol/syntax/syntax_nodes.go's node-per-variant shape, adapted
// from a declaration-tree IDL to FTML's value tree (§3 of the format
// specification).
package ast

import "github.com/DarrenHaba/ftml/token"

// Position is a 1-based (line, column) source location.
type Position = token.Position

// CommentKind distinguishes the three comment markers recognized by the
// tokenizer (§3).
type CommentKind uint8

const (
	CommentPlain CommentKind = iota
	CommentOuterDoc
	CommentInnerDoc
)

func (k CommentKind) String() string {
	switch k {
	case CommentPlain:
		return "//"
	case CommentOuterDoc:
		return "///"
	case CommentInnerDoc:
		return "//!"
	default:
		return "//?"
	}
}

// Comment is a single comment line, with its full raw text (including the
// marker) preserved for exact re-emission by the serializer.
type Comment struct {
	Kind CommentKind
	Text string
	Pos  Position
}

func commentKindOf(k token.Kind) CommentKind {
	switch k {
	case token.OUTER_DOC:
		return CommentOuterDoc
	case token.INNER_DOC:
		return CommentInnerDoc
	default:
		return CommentPlain
	}
}

// ScalarKind identifies the underlying type of a Scalar value (§3).
type ScalarKind uint8

const (
	ScalarString ScalarKind = iota
	ScalarInt
	ScalarFloat
	ScalarBool
	ScalarNull
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarString:
		return "string"
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "bool"
	case ScalarNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is the sum type of document values: Scalar, Object, or List
// (§3). The interface is closed to this package.
type Value interface {
	Position() Position
	tokRange() (int, int)
}

// Scalar is a leaf value: a string, integer, float, boolean, or null.
type Scalar struct {
	Kind ScalarKind
	Str  string
	Int  int64
	Flt  float64
	Bool bool

	LeadingComments []Comment
	InlineComment   *Comment

	Pos Position

	tokIdx int
}

var _ Value = (*Scalar)(nil)

func (s *Scalar) Position() Position      { return s.Pos }
func (s *Scalar) tokRange() (int, int)    { return s.tokIdx, s.tokIdx }

// Object is an ordered mapping value, either the document root's items or
// a nested `{...}` value.
type Object struct {
	Fields *Fields

	InnerDocComments []Comment
	InlineComment    *Comment
	InlineCommentEnd []Comment
	LeadingComments  []Comment

	Pos      Position // position of '{'
	ClosePos Position // position of '}'

	openTokIdx, closeTokIdx int
}

var _ Value = (*Object)(nil)

func (o *Object) Position() Position   { return o.Pos }
func (o *Object) tokRange() (int, int) { return o.openTokIdx, o.closeTokIdx }

// List is an ordered sequence value.
type List struct {
	Items []Value

	InnerDocComments []Comment
	InlineComment    *Comment
	InlineCommentEnd []Comment
	LeadingComments  []Comment

	Pos      Position // position of '['
	ClosePos Position // position of ']'

	openTokIdx, closeTokIdx int
}

var _ Value = (*List)(nil)

func (l *List) Position() Position   { return l.Pos }
func (l *List) tokRange() (int, int) { return l.openTokIdx, l.closeTokIdx }

// KeyValue is one `key = value` entry, at document root or inside an
// Object.
type KeyValue struct {
	Key       string
	KeyQuoted bool
	Value     Value

	LeadingComments  []Comment
	InlineComment    *Comment
	OuterDocComments []Comment

	Pos Position // position of the key token

	keyTokIdx, endTokIdx int
}

// Fields is an ordered mapping from key to KeyValue, used by both Document
// and Object (I1: keys are unique within their scope).
type Fields struct {
	order []string
	items map[string]*KeyValue
}

// NewFields returns an empty, ready-to-use Fields.
func NewFields() *Fields {
	return &Fields{items: make(map[string]*KeyValue)}
}

// Set inserts kv, or reports false if kv.Key is already present (I1).
func (f *Fields) Set(kv *KeyValue) bool {
	if _, exists := f.items[kv.Key]; exists {
		return false
	}
	f.order = append(f.order, kv.Key)
	f.items[kv.Key] = kv
	return true
}

// Replace overwrites the KeyValue stored for an existing key, preserving
// its position in insertion order; a key not yet present is appended.
func (f *Fields) Replace(kv *KeyValue) {
	if _, exists := f.items[kv.Key]; !exists {
		f.Set(kv)
		return
	}
	f.items[kv.Key] = kv
}

// Delete removes key, if present.
func (f *Fields) Delete(key string) {
	if _, exists := f.items[key]; !exists {
		return
	}
	delete(f.items, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Get returns the KeyValue for key, if present.
func (f *Fields) Get(key string) (*KeyValue, bool) {
	kv, ok := f.items[key]
	return kv, ok
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	return len(f.order)
}

// Each calls fn for every KeyValue in insertion order, stopping early if
// fn returns false.
func (f *Fields) Each(fn func(*KeyValue) bool) {
	for _, k := range f.order {
		if !fn(f.items[k]) {
			return
		}
	}
}

// Document is the root of a parsed FTML document.
type Document struct {
	Items *Fields

	LeadingComments          []Comment
	InlineComment            *Comment
	InnerDocComments         []Comment
	TrailingLeadingComments []Comment
}
