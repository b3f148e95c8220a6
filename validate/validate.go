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

package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DarrenHaba/ftml/schema"
	"github.com/DarrenHaba/ftml/value"
)

// Options controls the validator's behavior (§5's configuration record and
// §4.5's apply_defaults flag).
type Options struct {
	// Strict rejects fields not declared by an enumerated object type,
	// unless that object's own `ext=true` constraint overrides it (§9
	// Open Question resolution 4).
	Strict bool
	// ApplyDefaults injects a field's default value into the tree in place
	// when the field is absent and the type declares has_default.
	ApplyDefaults bool
	Registry      *schema.Registry
}

// DefaultOptions matches §6.4's configuration surface defaults for load:
// strict=true, apply_defaults=true.
func DefaultOptions() Options {
	return Options{Strict: true, ApplyDefaults: true, Registry: schema.Default}
}

// Validate walks v against t (§4.5) and returns every accumulated error. A
// nil/empty result means v is valid. If opts.ApplyDefaults is set, v is
// mutated in place to inject missing defaults before validation recurses
// into them.
func Validate(v value.Value, t schema.Type, opts Options) []error {
	if opts.Registry == nil {
		opts.Registry = schema.Default
	}
	w := &walker{opts: opts}
	w.walk(v, t, "")
	return w.errs
}

type walker struct {
	opts Options
	errs []error
}

func (w *walker) walk(v value.Value, t schema.Type, path string) {
	switch typ := t.(type) {
	case *schema.Scalar:
		w.walkScalar(v, typ, path)
	case *schema.Union:
		w.walkUnion(v, typ, path)
	case *schema.List:
		w.walkList(v, typ, path)
	case *schema.Object:
		w.walkObject(v, typ, path)
	}
}

func nativeOf(v value.Value) (any, bool) {
	sc, ok := v.(*value.Scalar)
	if !ok {
		return nil, false
	}
	switch sc.K {
	case value.KindString:
		return sc.Str, true
	case value.KindInt:
		return sc.Int, true
	case value.KindFloat:
		return sc.Flt, true
	case value.KindBool:
		return sc.Bool, true
	case value.KindNull:
		return nil, true
	}
	return nil, false
}

// walkScalar implements §4.5 rule 2 (type match) and rule 6 (scalar
// constraints), consulting the registry for both — "nothing is hardcoded
// inside C6" per §4.4.
func (w *walker) walkScalar(v value.Value, t *schema.Scalar, path string) {
	entry, known := w.opts.Registry.Lookup(t.Kind)
	if !known {
		w.errs = append(w.errs, errTypeMismatch(path, fmt.Sprintf("type %q is not registered", t.Kind)))
		return
	}

	native, ok := nativeOf(v)
	if !ok {
		w.errs = append(w.errs, errTypeMismatch(path, "expected a scalar"))
		return
	}

	if t.Kind != "any" && !entry.Shape(native) {
		w.errs = append(w.errs, errTypeMismatch(path, fmt.Sprintf("value does not have the shape of %q", t.Kind)))
		return
	}

	// Collect every constraint failure on this node before returning,
	// without short-circuiting siblings (§4.5 rule 6); type mismatch
	// above is the one case that does short-circuit, since recursing
	// into constraints for a shape that doesn't match would be
	// meaningless (§7's propagation policy).
	for name, c := range t.Constraints {
		validator, ok := entry.Constraints[name]
		if !ok {
			continue
		}
		if reason := validator(c, native); reason != "" {
			w.errs = append(w.errs, errConstraintViolation(path, name, reason))
		}
	}
}

// walkUnion implements §4.5 rule 3: try each alternative in source order,
// accept the first whose type match and constraints both succeed.
func (w *walker) walkUnion(v value.Value, t *schema.Union, path string) {
	var lastSub []error
	for _, alt := range t.Alternatives {
		sub := &walker{opts: w.opts}
		sub.walk(v, alt, path)
		if len(sub.errs) == 0 {
			return
		}
		lastSub = sub.errs
	}
	reason := "no errors recorded"
	if len(lastSub) > 0 {
		msgs := make([]string, len(lastSub))
		for i, e := range lastSub {
			msgs[i] = e.Error()
		}
		reason = strings.Join(msgs, "; ")
	}
	w.errs = append(w.errs, errUnionNoMatch(path, reason))
}

// walkList implements §4.5 rule 4.
func (w *walker) walkList(v value.Value, t *schema.List, path string) {
	seq, ok := v.(*value.Sequence)
	if !ok {
		w.errs = append(w.errs, errTypeMismatch(path, "expected a list"))
		return
	}
	if t.ElemType != nil {
		for i, item := range seq.Items {
			w.walk(item, t.ElemType, fmt.Sprintf("%s[%d]", path, i))
		}
	}

	if c, ok := t.Constraints["min_items"]; ok {
		if n, ok := c.AsFloat64(); ok && len(seq.Items) < int(n) {
			w.errs = append(w.errs, errConstraintViolation(path, "min_items", fmt.Sprintf("list has fewer than %d items", int(n))))
		}
	}
	if c, ok := t.Constraints["max_items"]; ok {
		if n, ok := c.AsFloat64(); ok && len(seq.Items) > int(n) {
			w.errs = append(w.errs, errConstraintViolation(path, "max_items", fmt.Sprintf("list has more than %d items", int(n))))
		}
	}
	if c, ok := t.Constraints["unique"]; ok && c.IsBool() && c.Bool {
		for i := 0; i < len(seq.Items); i++ {
			for j := i + 1; j < len(seq.Items); j++ {
				if structurallyEqual(seq.Items[i], seq.Items[j]) {
					w.errs = append(w.errs, errConstraintViolation(path, "unique", "list contains duplicate elements"))
					return
				}
			}
		}
	}
}

// structurallyEqual implements §9 Open Question resolution 3: list
// uniqueness is structural equality, not reference identity.
func structurallyEqual(a, b value.Value) bool {
	switch av := a.(type) {
	case *value.Scalar:
		bv, ok := b.(*value.Scalar)
		return ok && av.K == bv.K && av.Str == bv.Str && av.Int == bv.Int && av.Flt == bv.Flt && av.Bool == bv.Bool
	case *value.Sequence:
		bv, ok := b.(*value.Sequence)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !structurallyEqual(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *value.Mapping:
		bv, ok := b.(*value.Mapping)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Each(func(k string, v value.Value) bool {
			other, present := bv.Get(k)
			if !present || !structurallyEqual(v, other) {
				equal = false
				return false
			}
			return true
		})
		return equal
	}
	return false
}

// walkObject implements §4.5 rules 1 and 5.
func (w *walker) walkObject(v value.Value, t *schema.Object, path string) {
	m, ok := v.(*value.Mapping)
	if !ok {
		w.errs = append(w.errs, errTypeMismatch(path, "expected an object"))
		return
	}

	if t.IsEnumerated() {
		w.walkEnumeratedObject(m, t, path)
	} else {
		m.Each(func(key string, val value.Value) bool {
			w.walk(val, t.ValueType, childPath(path, key))
			return true
		})
	}

	if c, ok := t.Constraints["min_properties"]; ok {
		if n, ok := c.AsFloat64(); ok && m.Len() < int(n) {
			w.errs = append(w.errs, errConstraintViolation(path, "min_properties", fmt.Sprintf("object has fewer than %d properties", int(n))))
		}
	}
	if c, ok := t.Constraints["max_properties"]; ok {
		if n, ok := c.AsFloat64(); ok && m.Len() > int(n) {
			w.errs = append(w.errs, errConstraintViolation(path, "max_properties", fmt.Sprintf("object has more than %d properties", int(n))))
		}
	}
	if c, ok := t.Constraints["required_keys"]; ok && c.IsList() {
		for _, want := range c.List {
			if !want.IsString() {
				continue
			}
			if _, present := m.Get(want.Str); !present {
				w.errs = append(w.errs, errMissingRequiredField(childPath(path, want.Str)))
			}
		}
	}
}

func (w *walker) walkEnumeratedObject(m *value.Mapping, t *schema.Object, path string) {
	strict := w.opts.Strict
	if c, ok := t.Constraints["ext"]; ok && c.IsBool() && c.Bool {
		strict = false
	}

	t.Fields.Each(func(f *schema.Field) bool {
		fieldPath := childPath(path, f.Name)
		val, present := m.Get(f.Name)
		if !present {
			switch {
			case f.HasDefault:
				if w.opts.ApplyDefaults {
					def := value.FromAST(f.Default)
					m.Set(f.Name, def)
					w.walk(def, f.Type, fieldPath)
				}
			case f.Optional:
				// absent and optional: nothing to do
			default:
				w.errs = append(w.errs, errMissingRequiredField(fieldPath))
			}
			return true
		}
		w.walk(val, f.Type, fieldPath)
		return true
	})

	if strict {
		m.Each(func(key string, _ value.Value) bool {
			if _, declared := t.Fields.Get(key); !declared {
				w.errs = append(w.errs, errUnknownField(childPath(path, key)))
			}
			return true
		})
	}
}

// childPath extends path with key, quoting it when it isn't a bare
// identifier, per §4.5's "Quoted keys use the quoted form in the path".
func childPath(path, key string) string {
	seg := key
	if !isBareIdent(key) {
		seg = strconv.Quote(key)
	}
	if path == "" {
		return seg
	}
	return path + "." + seg
}

func isBareIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if i > 0 && !isLetter && !isDigit {
			return false
		}
	}
	return true
}
