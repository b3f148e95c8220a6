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

package ftml_test

import (
	"strings"
	"testing"

	"github.com/DarrenHaba/ftml/ftml"
	"github.com/DarrenHaba/ftml/schema"
	"github.com/DarrenHaba/ftml/value"
)

func mustSchemaType(t *testing.T, src string) schema.Type {
	t.Helper()
	doc, errs := schema.Parse([]byte(src), schema.Default)
	if len(errs) != 0 {
		t.Fatalf("unexpected schema errors: %v", errs)
	}
	return &schema.Object{Fields: doc.Fields}
}

// Scenario 1: basic load + dump preserves comments, mutation touches only
// the mutated key and its surrounding blank line survives.
func TestBasicLoadDumpPreservesComments(t *testing.T) {
	src := "//! doc\n// lead\nname = \"App\"  // inline\n\nversion = \"1.0\"\n"
	doc, errs := ftml.LoadString(src, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected load errors: %v", errs)
	}

	doc.Root.Set("version", value.NewString("1.1"))

	out, errs := ftml.Dump(doc)
	if len(errs) != 0 {
		t.Fatalf("unexpected dump errors: %v", errs)
	}
	want := "//! doc\n// lead\nname = \"App\"  // inline\n\nversion = \"1.1\"\n"
	if out != want {
		t.Fatalf("expected:\n%q\ngot:\n%q", want, out)
	}
}

// Scenario 2: schema + defaults.
func TestSchemaDefaultsApplied(t *testing.T) {
	typ := mustSchemaType(t, "port: int<min=1024, max=65535> = 8080\n")
	doc, errs := ftml.Load([]byte(""), typ)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v, ok := doc.Root.Get("port")
	if !ok {
		t.Fatal("expected port to be defaulted in")
	}
	sc := v.(*value.Scalar)
	if sc.Int != 8080 {
		t.Fatalf("expected port=8080, got %d", sc.Int)
	}
}

// Scenario 3: union match order.
func TestUnionMatchOrder(t *testing.T) {
	typ := mustSchemaType(t, `id: str<enum=["unknown"]> | int<min=1>`+"\n")

	if _, errs := ftml.LoadString("id = 1\n", typ); len(errs) != 0 {
		t.Fatalf("expected int branch to validate, got %v", errs)
	}
	if _, errs := ftml.LoadString(`id = "unknown"`+"\n", typ); len(errs) != 0 {
		t.Fatalf("expected string branch to validate, got %v", errs)
	}
	if _, errs := ftml.LoadString(`id = "2"`+"\n", typ); len(errs) == 0 {
		t.Fatal("expected UnionNoMatch for id = \"2\"")
	}
}

// Scenario 4: strict mode unknown field.
func TestStrictModeUnknownField(t *testing.T) {
	typ := mustSchemaType(t, "user: { name: str }\n")
	src := "user = { name = \"A\", role = \"admin\" }\n"

	_, errs := ftml.LoadString(src, typ, ftml.WithStrict(true))
	if len(errs) == 0 {
		t.Fatal("expected UnknownField at user.role in strict mode")
	}

	doc, errs := ftml.LoadString(src, typ, ftml.WithStrict(false))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors in non-strict mode: %v", errs)
	}
	userVal, _ := doc.Root.Get("user")
	user := userVal.(*value.Mapping)
	if _, ok := user.Get("role"); !ok {
		t.Fatal("expected role to survive in non-strict mode")
	}
}

// Scenario 5: list uniqueness.
func TestListUniquenessConstraintViolation(t *testing.T) {
	typ := mustSchemaType(t, "ids: [int]<unique=true>\n")
	_, errs := ftml.LoadString("ids = [1, 2, 1]\n", typ)
	if len(errs) == 0 {
		t.Fatal("expected a ConstraintViolation(unique) error")
	}
}

// Scenario 6: version gate runs before comment attachment, and fails
// closed on an incompatible document version.
func TestVersionGateRejectsIncompatibleDocument(t *testing.T) {
	src := "ftml_version = \"2.0\"\nname = \"App\"\n"
	_, errs := ftml.LoadString(src, nil)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one version error, got %v", errs)
	}
	verr, ok := errs[0].(*ftml.VersionError)
	if !ok || verr.Kind != ftml.VersionIncompatible {
		t.Fatalf("expected VersionIncompatible, got %v", errs[0])
	}
}

func TestVersionGateAcceptsCompatibleDocument(t *testing.T) {
	src := "ftml_version = \"1.0\"\nname = \"App\"\n"
	if _, errs := ftml.LoadString(src, nil); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestVersionGateSkippedWhenDisabled(t *testing.T) {
	src := "ftml_version = \"99.0\"\nname = \"App\"\n"
	if _, errs := ftml.LoadString(src, nil, ftml.WithCheckVersion(false)); len(errs) != 0 {
		t.Fatalf("unexpected errors with version check disabled: %v", errs)
	}
}

// P4: applying defaults twice yields the same value tree.
func TestDefaultsIdempotent(t *testing.T) {
	typ := mustSchemaType(t, "port: int = 8080\n")
	doc, errs := ftml.Load([]byte(""), typ)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	first, _ := doc.Root.Get("port")

	// Re-running validation with apply_defaults over an already-defaulted
	// tree must not change the value, since the field is no longer absent.
	if errs := doc.Validate(typ, ftml.WithApplyDefaults(true)); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	secondPort, _ := doc.Root.Get("port")
	if first.(*value.Scalar).Int != secondPort.(*value.Scalar).Int {
		t.Fatal("expected repeated default application to be idempotent")
	}
}

// P6: if a document validates in strict mode, it validates in non-strict
// mode too (strict mode only ever adds a rejection, never relaxes one).
func TestStrictModeMonotonicity(t *testing.T) {
	typ := mustSchemaType(t, "name: str\n")
	src := "name = \"ok\"\n"

	_, strictErrs := ftml.LoadString(src, typ, ftml.WithStrict(true))
	_, looseErrs := ftml.LoadString(src, typ, ftml.WithStrict(false))
	if len(strictErrs) != 0 {
		t.Fatalf("unexpected strict errors: %v", strictErrs)
	}
	if len(looseErrs) != 0 {
		t.Fatalf("expected non-strict to also validate, got: %v", looseErrs)
	}
}

func TestLoadStringParseErrorSurfacesPosition(t *testing.T) {
	_, errs := ftml.LoadString("a = [1, 2\n", nil)
	if len(errs) == 0 {
		t.Fatal("expected an unterminated-container parse error")
	}
	if !strings.Contains(errs[0].Error(), ":") {
		t.Fatalf("expected position in error message, got %q", errs[0].Error())
	}
}

func TestParseVersionStageOrdering(t *testing.T) {
	major, minor, stageName, stageNum, err := ftml.ParseVersion("1.0rc2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if major != 1 || minor != 0 || stageName != "rc" || stageNum != 2 {
		t.Fatalf("got major=%d minor=%d stage=%q num=%d", major, minor, stageName, stageNum)
	}
}

func TestParseVersionRejectsMalformed(t *testing.T) {
	if _, _, _, _, err := ftml.ParseVersion("not-a-version"); err == nil {
		t.Fatal("expected an error for a malformed version string")
	}
}
