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

package schema_test

import (
	"testing"

	"github.com/DarrenHaba/ftml/schema"
)

func mustParse(t *testing.T, src string) *schema.Document {
	t.Helper()
	doc, errs := schema.Parse([]byte(src), nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected schema errors: %v", errs)
	}
	return doc
}

func TestParseSimpleScalarField(t *testing.T) {
	doc := mustParse(t, "port: int<min=1024, max=65535> = 8080\n")
	f, ok := doc.Fields.Get("port")
	if !ok {
		t.Fatal("missing field port")
	}
	sc, ok := f.Type.(*schema.Scalar)
	if !ok {
		t.Fatalf("expected Scalar, got %T", f.Type)
	}
	if sc.Kind != "int" {
		t.Fatalf("unexpected kind %q", sc.Kind)
	}
	if !f.HasDefault {
		t.Fatal("expected a default")
	}
}

func TestParseOptionalField(t *testing.T) {
	doc := mustParse(t, "nickname?: str\n")
	f, _ := doc.Fields.Get("nickname")
	if !f.Optional {
		t.Fatal("expected field to be optional")
	}
}

func TestParseUnionType(t *testing.T) {
	doc := mustParse(t, `id: str<enum=["unknown"]> | int<min=1>` + "\n")
	f, _ := doc.Fields.Get("id")
	u, ok := f.Type.(*schema.Union)
	if !ok {
		t.Fatalf("expected Union, got %T", f.Type)
	}
	if len(u.Alternatives) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(u.Alternatives))
	}
}

func TestParseEnumeratedObject(t *testing.T) {
	doc := mustParse(t, "user: { name: str, age?: int }\n")
	f, _ := doc.Fields.Get("user")
	obj, ok := f.Type.(*schema.Object)
	if !ok {
		t.Fatalf("expected Object, got %T", f.Type)
	}
	if !obj.IsEnumerated() || obj.Fields.Len() != 2 {
		t.Fatalf("unexpected object shape: %+v", obj)
	}
}

func TestParsePatternTypedObject(t *testing.T) {
	doc := mustParse(t, "scores: { int }\n")
	f, _ := doc.Fields.Get("scores")
	obj, ok := f.Type.(*schema.Object)
	if !ok {
		t.Fatalf("expected Object, got %T", f.Type)
	}
	if obj.IsEnumerated() {
		t.Fatal("expected pattern-typed object")
	}
	if _, ok := obj.ValueType.(*schema.Scalar); !ok {
		t.Fatalf("expected scalar value type, got %T", obj.ValueType)
	}
}

func TestParseListType(t *testing.T) {
	doc := mustParse(t, "ids: [int]<unique=true>\n")
	f, _ := doc.Fields.Get("ids")
	lst, ok := f.Type.(*schema.List)
	if !ok {
		t.Fatalf("expected List, got %T", f.Type)
	}
	if _, ok := lst.ElemType.(*schema.Scalar); !ok {
		t.Fatalf("expected scalar element type, got %T", lst.ElemType)
	}
}

func TestUnknownTypeIsSchemaError(t *testing.T) {
	_, errs := schema.Parse([]byte("x: bogus\n"), nil)
	if len(errs) == 0 {
		t.Fatal("expected an unknown-type error")
	}
}

func TestUnknownConstraintIsSchemaError(t *testing.T) {
	_, errs := schema.Parse([]byte("x: str<enum_strict=false>\n"), nil)
	if len(errs) == 0 {
		t.Fatal("expected an unknown-constraint error")
	}
}

func TestDefaultFailingTypeIsSchemaError(t *testing.T) {
	_, errs := schema.Parse([]byte(`port: int<min=1024> = 80`+"\n"), nil)
	if len(errs) == 0 {
		t.Fatal("expected the out-of-range default to fail as a schema error")
	}
}

func TestDuplicateFieldIsSchemaError(t *testing.T) {
	_, errs := schema.Parse([]byte("a: int\na: str\n"), nil)
	if len(errs) == 0 {
		t.Fatal("expected a duplicate-field error")
	}
}
