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

package validate_test

import (
	"testing"

	"github.com/DarrenHaba/ftml/ast"
	"github.com/DarrenHaba/ftml/schema"
	"github.com/DarrenHaba/ftml/validate"
	"github.com/DarrenHaba/ftml/value"
)

// dataValue builds a detached value.Mapping from a document's root fields,
// the same shape value.FromAST produces for a nested *ast.Object.
func dataValue(t *testing.T, src string) *value.Mapping {
	t.Helper()
	doc, errs := ast.Parse([]byte(src), true)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	m := value.NewMapping()
	doc.Items.Each(func(kv *ast.KeyValue) bool {
		m.Set(kv.Key, value.FromAST(kv.Value))
		return true
	})
	return m
}

func mustSchema(t *testing.T, src string) *schema.Document {
	t.Helper()
	doc, errs := schema.Parse([]byte(src), nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected schema errors: %v", errs)
	}
	return doc
}

func schemaObjectType(doc *schema.Document) *schema.Object {
	return &schema.Object{Fields: doc.Fields}
}

func TestValidScalarFieldPasses(t *testing.T) {
	sd := mustSchema(t, "port: int<min=1024, max=65535>\n")
	data := dataValue(t, "port = 8080\n")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestConstraintViolationIsReported(t *testing.T) {
	sd := mustSchema(t, "port: int<min=1024, max=65535>\n")
	data := dataValue(t, "port = 80\n")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	ve, ok := errs[0].(*validate.Error)
	if !ok || ve.Kind != validate.ConstraintViolation {
		t.Fatalf("expected ConstraintViolation, got %v", errs[0])
	}
}

func TestTypeMismatchIsReported(t *testing.T) {
	sd := mustSchema(t, "name: str\n")
	data := dataValue(t, "name = 123\n")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	ve := errs[0].(*validate.Error)
	if ve.Kind != validate.TypeMismatch || ve.Path != "name" {
		t.Fatalf("unexpected error: %v", ve)
	}
}

func TestMissingRequiredFieldIsReported(t *testing.T) {
	sd := mustSchema(t, "name: str\n")
	data := dataValue(t, "other = 1\n")

	opts := validate.DefaultOptions()
	opts.Strict = false // isolate the missing-field check from unknown-field noise
	errs := validate.Validate(data, schemaObjectType(sd), opts)

	found := false
	for _, e := range errs {
		if ve, ok := e.(*validate.Error); ok && ve.Kind == validate.MissingRequiredField && ve.Path == "name" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a MissingRequiredField error for name, got %v", errs)
	}
}

func TestOptionalFieldAbsentIsValid(t *testing.T) {
	sd := mustSchema(t, "nickname?: str\n")
	data := dataValue(t, "")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestUnknownFieldRejectedInStrictMode(t *testing.T) {
	sd := mustSchema(t, "name: str\n")
	data := dataValue(t, "name = \"a\"\nextra = 1\n")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	found := false
	for _, e := range errs {
		if ve, ok := e.(*validate.Error); ok && ve.Kind == validate.UnknownField && ve.Path == "extra" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an UnknownField error for extra, got %v", errs)
	}
}

func TestExtOverridesStrictMode(t *testing.T) {
	sd := mustSchema(t, "name: str\n")
	obj := schemaObjectType(sd)
	obj.Constraints = map[string]schema.ConstraintValue{"ext": testBoolConstraint(true)}
	data := dataValue(t, "name = \"a\"\nextra = 1\n")

	errs := validate.Validate(data, obj, validate.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("expected ext=true to permit unknown fields, got %v", errs)
	}
}

func TestUnionTriesAlternativesInOrder(t *testing.T) {
	sd := mustSchema(t, `id: str<enum=["unknown"]> | int<min=1>`+"\n")
	data := dataValue(t, "id = 42\n")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("expected int alternative to satisfy union, got %v", errs)
	}
}

func TestUnionNoMatchReportsFailure(t *testing.T) {
	sd := mustSchema(t, `id: str<enum=["unknown"]> | int<min=1>`+"\n")
	data := dataValue(t, "id = true\n")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	if errs[0].(*validate.Error).Kind != validate.UnionNoMatch {
		t.Fatalf("expected UnionNoMatch, got %v", errs[0])
	}
}

func TestListElementsValidatedWithIndexedPath(t *testing.T) {
	sd := mustSchema(t, "ids: [int<min=0>]\n")
	data := dataValue(t, "ids = [1, -1, 2]\n")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	if errs[0].(*validate.Error).Path != "ids[1]" {
		t.Fatalf("unexpected path: %v", errs[0])
	}
}

func TestListUniqueConstraint(t *testing.T) {
	sd := mustSchema(t, "ids: [int]<unique=true>\n")
	data := dataValue(t, "ids = [1, 2, 1]\n")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	if errs[0].(*validate.Error).Kind != validate.ConstraintViolation {
		t.Fatalf("expected ConstraintViolation, got %v", errs[0])
	}
}

func TestPatternTypedObjectValidatesEveryValue(t *testing.T) {
	sd := mustSchema(t, "scores: { int }\n")
	data := dataValue(t, "scores = { alice = 1, bob = \"x\" }\n")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	if errs[0].(*validate.Error).Path != "scores.bob" {
		t.Fatalf("unexpected path: %v", errs[0])
	}
}

func TestDefaultAppliedWhenFieldAbsent(t *testing.T) {
	sd := mustSchema(t, "port: int = 8080\n")
	data := dataValue(t, "")

	errs := validate.Validate(data, schemaObjectType(sd), validate.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v, ok := data.Get("port")
	if !ok {
		t.Fatal("expected default to be injected into the value tree")
	}
	sc := v.(*value.Scalar)
	if sc.Int != 8080 {
		t.Fatalf("unexpected injected default: %+v", sc)
	}
}

// testBoolConstraint builds a bool ConstraintValue without depending on
// schema's unexported constructor, by round-tripping it through a schema
// parse of a throwaway object field's `ext` constraint clause.
func testBoolConstraint(b bool) schema.ConstraintValue {
	src := "x: { y: int }<ext=true>\n"
	if !b {
		src = "x: { y: int }<ext=false>\n"
	}
	doc, errs := schema.Parse([]byte(src), nil)
	if len(errs) != 0 {
		panic(errs[0])
	}
	f, _ := doc.Fields.Get("x")
	return f.Type.(*schema.Object).Constraints["ext"]
}
