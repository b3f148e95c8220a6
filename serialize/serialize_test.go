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

package serialize_test

import (
	"strings"
	"testing"

	"github.com/DarrenHaba/ftml/ast"
	"github.com/DarrenHaba/ftml/serialize"
)

func parseDoc(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, errs := ast.Parse([]byte(src), true)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return doc
}

func TestSerializeScalarKinds(t *testing.T) {
	doc := parseDoc(t, "a = \"hi\"\nb = 5\nc = 5.0\nd = true\ne = null\n")
	out, errs := serialize.Serialize(doc, serialize.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, want := range []string{`a = "hi"`, "b = 5", "c = 5.0", "d = true", "e = null"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSerializeFloatAlwaysHasDecimalPoint(t *testing.T) {
	doc := parseDoc(t, "x = 3.0\n")
	out, _ := serialize.Serialize(doc, serialize.DefaultOptions())
	if !strings.Contains(out, "x = 3.0") {
		t.Fatalf("expected decimal point preserved, got:\n%s", out)
	}
}

func TestReservedKeysEmittedFirst(t *testing.T) {
	doc := parseDoc(t, "z = 1\nftml_encoding = \"utf-8\"\na = 2\nftml_version = \"1.0\"\n")
	out, _ := serialize.Serialize(doc, serialize.DefaultOptions())
	vIdx := strings.Index(out, "ftml_version")
	eIdx := strings.Index(out, "ftml_encoding")
	zIdx := strings.Index(out, "z = 1")
	if vIdx < 0 || eIdx < 0 || zIdx < 0 {
		t.Fatalf("missing expected keys in output:\n%s", out)
	}
	if !(vIdx < eIdx && eIdx < zIdx) {
		t.Fatalf("expected ftml_version, then ftml_encoding, then remaining keys, got:\n%s", out)
	}
}

func TestInlineObjectWithoutComments(t *testing.T) {
	doc := parseDoc(t, "o = { a = 1, b = 2 }\n")
	out, errs := serialize.Serialize(doc, serialize.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.Contains(out, "o = { a = 1, b = 2 }") {
		t.Fatalf("expected inline object rendering, got:\n%s", out)
	}
}

func TestObjectWithCommentForcesMultiline(t *testing.T) {
	doc := parseDoc(t, "o = {\n  a = 1  // note\n}\n")
	out, errs := serialize.Serialize(doc, serialize.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.Contains(out, "o = {\n") || !strings.Contains(out, "// note") {
		t.Fatalf("expected multiline object with comment preserved, got:\n%s", out)
	}
}

func TestEmptyContainers(t *testing.T) {
	doc := parseDoc(t, "o = {}\nl = []\n")
	out, errs := serialize.Serialize(doc, serialize.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.Contains(out, "o = {}") || !strings.Contains(out, "l = []") {
		t.Fatalf("expected empty container shorthand, got:\n%s", out)
	}
}

func TestInlineThresholdForcesListMultiline(t *testing.T) {
	opts := serialize.DefaultOptions()
	opts.InlineThreshold = 2
	doc := parseDoc(t, "l = [1, 2, 3]\n")
	out, _ := serialize.Serialize(doc, opts)
	if !strings.Contains(out, "l = [\n") {
		t.Fatalf("expected list forced multiline past threshold, got:\n%s", out)
	}
}

func TestQuotedKeyRoundTrips(t *testing.T) {
	doc := parseDoc(t, "\"not-bare\" = 1\n")
	out, _ := serialize.Serialize(doc, serialize.DefaultOptions())
	if !strings.Contains(out, `"not-bare" = 1`) {
		t.Fatalf("expected quoted key preserved, got:\n%s", out)
	}
}

func TestIdempotentDump(t *testing.T) {
	doc := parseDoc(t, "// doc comment\nserver = {\n  //! inner\n  port = 8080  // p\n}\nids = [1, 2, 3]\n")
	first, errs := serialize.Serialize(doc, serialize.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	reparsed := parseDoc(t, first)
	second, errs := serialize.Serialize(reparsed, serialize.DefaultOptions())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors on second pass: %v", errs)
	}
	if first != second {
		t.Fatalf("expected idempotent dump, got:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}
