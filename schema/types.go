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

// Package schema parses FTML schema text (C4) into an immutable tree of
// type descriptors (C5) and holds the process-wide Type Registry that the
// validator consults for value-shape predicates and constraint checks.
//
// Grounded on idol/compiler/compiler.go's builtinTypes map and
// declaration-by-declaration compile-function shape, adapted from a
// declaration compiler to a type-expression parser layered over the same
// token package the document parser uses (§4.4).
package schema

import "github.com/DarrenHaba/ftml/ast"

// Type is the sum type of parsed type descriptors: *Scalar, *Union, *List,
// or *Object (§4.3's "Type descriptor variants").
type Type interface {
	typeNode()
}

// Scalar is a leaf type: one of the registry's registered kinds, with its
// parsed constraints.
type Scalar struct {
	Kind        string
	Constraints map[string]ConstraintValue
}

func (*Scalar) typeNode() {}

// Union is an ordered list of alternative types, tried in source order by
// the validator (§4.5 rule 3).
type Union struct {
	Alternatives []Type
}

func (*Union) typeNode() {}

// List is a sequence type. ElemType is nil for an unconstrained `[]`.
type List struct {
	ElemType    Type
	Constraints map[string]ConstraintValue
}

func (*List) typeNode() {}

// Object is a mapping type, either enumerated (named fields) or
// pattern-typed (single value type applied to every key), per §4.3.
type Object struct {
	// Enumerated form: non-nil Fields, nil ValueType.
	Fields *Fields
	// Pattern form: nil Fields, non-nil ValueType.
	ValueType Type

	Constraints map[string]ConstraintValue
}

func (*Object) typeNode() {}

// IsEnumerated reports whether o uses the named-field form.
func (o *Object) IsEnumerated() bool { return o.Fields != nil }

// Field is one declared field of an enumerated Object type.
type Field struct {
	Name       string
	Type       Type
	Optional   bool
	HasDefault bool
	Default    ast.Value // parsed with the data grammar, validated at schema-parse time
}

// Fields is an ordered mapping from field name to Field, mirroring
// ast.Fields's insertion-order contract.
type Fields struct {
	order []string
	items map[string]*Field
}

// NewFields returns an empty, ready-to-use Fields.
func NewFields() *Fields {
	return &Fields{items: make(map[string]*Field)}
}

// Set inserts f, or reports false if f.Name is already present.
func (fs *Fields) Set(f *Field) bool {
	if _, exists := fs.items[f.Name]; exists {
		return false
	}
	fs.order = append(fs.order, f.Name)
	fs.items[f.Name] = f
	return true
}

// Get returns the Field for name, if present.
func (fs *Fields) Get(name string) (*Field, bool) {
	f, ok := fs.items[name]
	return f, ok
}

// Keys returns the field names in declaration order.
func (fs *Fields) Keys() []string {
	out := make([]string, len(fs.order))
	copy(out, fs.order)
	return out
}

// Len returns the number of fields.
func (fs *Fields) Len() int { return len(fs.order) }

// Each calls fn for every Field in declaration order, stopping early if fn
// returns false.
func (fs *Fields) Each(fn func(*Field) bool) {
	for _, k := range fs.order {
		if !fn(fs.items[k]) {
			return
		}
	}
}

// ConstraintValue is the parsed value of one `name = value` constraint
// clause: a string, int64, float64, bool, nil (for `null`), or []ConstraintValue.
type ConstraintValue struct {
	Str    string
	Int    int64
	Flt    float64
	Bool   bool
	IsNull bool
	List   []ConstraintValue
	kind   constraintValueKind
}

type constraintValueKind uint8

const (
	cvString constraintValueKind = iota
	cvInt
	cvFloat
	cvBool
	cvNull
	cvList
)

func stringValue(s string) ConstraintValue  { return ConstraintValue{Str: s, kind: cvString} }
func intValue(i int64) ConstraintValue      { return ConstraintValue{Int: i, kind: cvInt} }
func floatValue(f float64) ConstraintValue  { return ConstraintValue{Flt: f, kind: cvFloat} }
func boolValue(b bool) ConstraintValue      { return ConstraintValue{Bool: b, kind: cvBool} }
func nullValue() ConstraintValue            { return ConstraintValue{IsNull: true, kind: cvNull} }
func listValue(v []ConstraintValue) ConstraintValue {
	return ConstraintValue{List: v, kind: cvList}
}

func (v ConstraintValue) IsString() bool { return v.kind == cvString }
func (v ConstraintValue) IsInt() bool    { return v.kind == cvInt }
func (v ConstraintValue) IsFloat() bool  { return v.kind == cvFloat }
func (v ConstraintValue) IsBool() bool   { return v.kind == cvBool }
func (v ConstraintValue) IsList() bool   { return v.kind == cvList }

// AsFloat64 returns v as a float64, accepting both int and float constraint
// literals (schema-author convenience; does not affect §9 Open Question 1,
// which governs *data* coercion, not constraint-literal widening).
func (v ConstraintValue) AsFloat64() (float64, bool) {
	switch v.kind {
	case cvInt:
		return float64(v.Int), true
	case cvFloat:
		return v.Flt, true
	default:
		return 0, false
	}
}

// ReservedScalarNames are the built-in type names recognized in type
// position without registration (§4.4).
var ReservedScalarNames = map[string]bool{
	"str": true, "int": true, "float": true, "bool": true, "null": true,
	"any": true, "date": true, "time": true, "datetime": true, "timestamp": true,
}
