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

import (
	"fmt"

	"github.com/DarrenHaba/ftml/ast"
)

// checkDefault verifies that a field's default literal (parsed with the
// data grammar per §4.4) matches its declared type, the same
// kind-then-constraint algorithm validate.Validate runs at data-validation
// time (§4.5 rules 2-6), restricted to the ast.Value shape defaults are
// parsed into. A non-empty reason means the default is invalid and the
// schema itself is malformed (§4.4: "failure is a schema error").
func (r *Registry) checkDefault(t Type, v ast.Value) string {
	switch typ := t.(type) {
	case *Scalar:
		return r.checkScalarDefault(typ, v)
	case *Union:
		var lastReason string
		for _, alt := range typ.Alternatives {
			if reason := r.checkDefault(alt, v); reason == "" {
				return ""
			} else {
				lastReason = reason
			}
		}
		return fmt.Sprintf("no union alternative matched: %s", lastReason)
	case *List:
		lst, ok := v.(*ast.List)
		if !ok {
			return "expected a list"
		}
		if typ.ElemType != nil {
			for i, item := range lst.Items {
				if reason := r.checkDefault(typ.ElemType, item); reason != "" {
					return fmt.Sprintf("item %d: %s", i, reason)
				}
			}
		}
		return r.checkListConstraints(typ, lst)
	case *Object:
		obj, ok := v.(*ast.Object)
		if !ok {
			return "expected an object"
		}
		if typ.IsEnumerated() {
			var reason string
			typ.Fields.Each(func(f *Field) bool {
				kv, present := obj.Fields.Get(f.Name)
				if !present {
					if f.Optional || f.HasDefault {
						return true
					}
					reason = fmt.Sprintf("missing required field %q", f.Name)
					return false
				}
				reason = r.checkDefault(f.Type, kv.Value)
				return reason == ""
			})
			if reason == "" {
				reason = checkObjectConstraints(typ, obj)
			}
			return reason
		}
		var reason string
		obj.Fields.Each(func(kv *ast.KeyValue) bool {
			reason = r.checkDefault(typ.ValueType, kv.Value)
			return reason == ""
		})
		if reason == "" {
			reason = checkObjectConstraints(typ, obj)
		}
		return reason
	}
	return "unknown type descriptor"
}

func (r *Registry) checkScalarDefault(s *Scalar, v ast.Value) string {
	sc, ok := v.(*ast.Scalar)
	if !ok {
		return "expected a scalar"
	}
	entry, known := r.Lookup(s.Kind)
	if !known {
		return fmt.Sprintf("type %q is not registered", s.Kind)
	}
	native := nativeOf(sc)
	if s.Kind == "any" {
		// always matches
	} else if !entry.Shape(native) {
		return fmt.Sprintf("value does not have the shape of %q", s.Kind)
	}
	for name, constraint := range s.Constraints {
		validator, ok := entry.Constraints[name]
		if !ok {
			continue
		}
		if reason := validator(constraint, native); reason != "" {
			return fmt.Sprintf("constraint %q: %s", name, reason)
		}
	}
	return ""
}

func nativeOf(sc *ast.Scalar) any {
	switch sc.Kind {
	case ast.ScalarString:
		return sc.Str
	case ast.ScalarInt:
		return sc.Int
	case ast.ScalarFloat:
		return sc.Flt
	case ast.ScalarBool:
		return sc.Bool
	default:
		return nil
	}
}

func (r *Registry) checkListConstraints(typ *List, lst *ast.List) string {
	if c, ok := typ.Constraints["min_items"]; ok {
		if n, ok := c.AsFloat64(); ok && len(lst.Items) < int(n) {
			return fmt.Sprintf("list shorter than minimum length %d", int(n))
		}
	}
	if c, ok := typ.Constraints["max_items"]; ok {
		if n, ok := c.AsFloat64(); ok && len(lst.Items) > int(n) {
			return fmt.Sprintf("list longer than maximum length %d", int(n))
		}
	}
	if c, ok := typ.Constraints["unique"]; ok && c.IsBool() && c.Bool {
		seen := make([]ast.Value, 0, len(lst.Items))
		for _, item := range lst.Items {
			for _, prior := range seen {
				if structurallyEqual(item, prior) {
					return "list contains duplicate elements"
				}
			}
			seen = append(seen, item)
		}
	}
	return ""
}

func checkObjectConstraints(typ *Object, obj *ast.Object) string {
	if c, ok := typ.Constraints["min_properties"]; ok {
		if n, ok := c.AsFloat64(); ok && obj.Fields.Len() < int(n) {
			return fmt.Sprintf("object has fewer than the minimum %d properties", int(n))
		}
	}
	if c, ok := typ.Constraints["max_properties"]; ok {
		if n, ok := c.AsFloat64(); ok && obj.Fields.Len() > int(n) {
			return fmt.Sprintf("object has more than the maximum %d properties", int(n))
		}
	}
	if c, ok := typ.Constraints["required_keys"]; ok && c.IsList() {
		for _, want := range c.List {
			if !want.IsString() {
				continue
			}
			if _, present := obj.Fields.Get(want.Str); !present {
				return fmt.Sprintf("missing required key %q", want.Str)
			}
		}
	}
	return ""
}

// structurallyEqual implements §9 Open Question resolution 3: list
// uniqueness is decided by deep structural equality, not reference
// identity.
func structurallyEqual(a, b ast.Value) bool {
	switch av := a.(type) {
	case *ast.Scalar:
		bv, ok := b.(*ast.Scalar)
		return ok && av.Kind == bv.Kind && av.Str == bv.Str && av.Int == bv.Int && av.Flt == bv.Flt && av.Bool == bv.Bool
	case *ast.List:
		bv, ok := b.(*ast.List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !structurallyEqual(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *ast.Object:
		bv, ok := b.(*ast.Object)
		if !ok || av.Fields.Len() != bv.Fields.Len() {
			return false
		}
		equal := true
		av.Fields.Each(func(kv *ast.KeyValue) bool {
			other, present := bv.Fields.Get(kv.Key)
			if !present || !structurallyEqual(kv.Value, other.Value) {
				equal = false
				return false
			}
			return true
		})
		return equal
	}
	return false
}
