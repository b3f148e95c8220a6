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

package ast_test

import (
	"testing"

	"github.com/DarrenHaba/ftml/ast"
)

func mustParse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, errs := ast.Parse([]byte(src), true)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return doc
}

func TestParseScalarsAndOrdering(t *testing.T) {
	doc := mustParse(t, "b = 1\na = 2\n")
	if got := doc.Items.Keys(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("unexpected key order: %v", got)
	}
	kv, ok := doc.Items.Get("a")
	if !ok {
		t.Fatal("missing key a")
	}
	sc, ok := kv.Value.(*ast.Scalar)
	if !ok {
		t.Fatalf("expected Scalar, got %T", kv.Value)
	}
	if sc.Kind != ast.ScalarInt || sc.Int != 2 {
		t.Fatalf("unexpected scalar: %+v", sc)
	}
}

func TestParseDuplicateKeyIsError(t *testing.T) {
	_, errs := ast.Parse([]byte("a = 1\na = 2\n"), true)
	if len(errs) == 0 {
		t.Fatal("expected a duplicate-key error")
	}
}

func TestParseReservedWordKeyIsError(t *testing.T) {
	_, errs := ast.Parse([]byte("true = 1\n"), true)
	if len(errs) == 0 {
		t.Fatal("expected a reserved-word error")
	}
}

func TestParseNestedObjectAndList(t *testing.T) {
	doc := mustParse(t, "a = {b = 1, c = [1, 2, 3]}\n")
	kv, _ := doc.Items.Get("a")
	obj, ok := kv.Value.(*ast.Object)
	if !ok {
		t.Fatalf("expected Object, got %T", kv.Value)
	}
	if obj.Fields.Len() != 2 {
		t.Fatalf("expected 2 fields, got %d", obj.Fields.Len())
	}
	cKV, _ := obj.Fields.Get("c")
	lst, ok := cKV.Value.(*ast.List)
	if !ok {
		t.Fatalf("expected List, got %T", cKV.Value)
	}
	if len(lst.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(lst.Items))
	}
}

func TestParseTrailingCommaAllowed(t *testing.T) {
	doc := mustParse(t, "a = [1, 2,]\n")
	kv, _ := doc.Items.Get("a")
	lst := kv.Value.(*ast.List)
	if len(lst.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(lst.Items))
	}
}

func TestParseUnterminatedObjectRecovers(t *testing.T) {
	_, errs := ast.Parse([]byte("a = {b = 1\n"), true)
	if len(errs) == 0 {
		t.Fatal("expected an unterminated-object error")
	}
}

func TestInlineCommentAttachesToPrecedingKeyValue(t *testing.T) {
	doc := mustParse(t, "a = 1 // trailing\nb = 2\n")
	kv, _ := doc.Items.Get("a")
	if kv.InlineComment == nil || kv.InlineComment.Text != "// trailing" {
		t.Fatalf("expected inline comment, got %+v", kv.InlineComment)
	}
}

func TestLeadingCommentAttachesToFollowingKey(t *testing.T) {
	doc := mustParse(t, "// about b\nb = 2\n")
	kv, _ := doc.Items.Get("b")
	if len(kv.LeadingComments) != 1 || kv.LeadingComments[0].Text != "// about b" {
		t.Fatalf("unexpected leading comments: %+v", kv.LeadingComments)
	}
}

func TestOuterDocCommentAttachesToFollowingKey(t *testing.T) {
	doc := mustParse(t, "/// about b\nb = 2\n")
	kv, _ := doc.Items.Get("b")
	if len(kv.OuterDocComments) != 1 || kv.OuterDocComments[0].Text != "/// about b" {
		t.Fatalf("unexpected outer-doc comments: %+v", kv.OuterDocComments)
	}
	if len(kv.LeadingComments) != 0 {
		t.Fatalf("expected no plain leading comments, got %+v", kv.LeadingComments)
	}
}

func TestLeadingDemotedWhenNotAdjacentToOuterDoc(t *testing.T) {
	doc := mustParse(t, "// older note\n\n/// about b\nb = 2\n")
	kv, _ := doc.Items.Get("b")
	if len(kv.OuterDocComments) != 1 || kv.OuterDocComments[0].Text != "/// about b" {
		t.Fatalf("unexpected outer-doc comments: %+v", kv.OuterDocComments)
	}
	if len(kv.LeadingComments) != 1 || kv.LeadingComments[0].Text != "// older note" {
		t.Fatalf("unexpected demoted leading comments: %+v", kv.LeadingComments)
	}
}

func TestInnerDocAttachesToEnclosingObject(t *testing.T) {
	doc := mustParse(t, "a = {\n  //! this object\n  b = 1\n}\n")
	kv, _ := doc.Items.Get("a")
	obj := kv.Value.(*ast.Object)
	if len(obj.InnerDocComments) != 1 || obj.InnerDocComments[0].Text != "//! this object" {
		t.Fatalf("unexpected inner-doc comments: %+v", obj.InnerDocComments)
	}
}

func TestOrphanTrailingCommentGoesToDocumentSink(t *testing.T) {
	doc := mustParse(t, "a = 1\n// trailing orphan\n")
	if len(doc.TrailingLeadingComments) != 1 || doc.TrailingLeadingComments[0].Text != "// trailing orphan" {
		t.Fatalf("unexpected trailing comments: %+v", doc.TrailingLeadingComments)
	}
}

func TestEmptyDocumentSendsAllCommentsToLeading(t *testing.T) {
	doc := mustParse(t, "// a\n/// b\n//! c\n")
	if len(doc.LeadingComments) != 3 {
		t.Fatalf("expected 3 leading comments, got %d: %+v", len(doc.LeadingComments), doc.LeadingComments)
	}
}

func TestListItemLeadingAndInlineComments(t *testing.T) {
	doc := mustParse(t, "a = [\n  // first\n  1, // note\n  2,\n]\n")
	kv, _ := doc.Items.Get("a")
	lst := kv.Value.(*ast.List)
	first := lst.Items[0].(*ast.Scalar)
	if len(first.LeadingComments) != 1 || first.LeadingComments[0].Text != "// first" {
		t.Fatalf("unexpected leading comments on first item: %+v", first.LeadingComments)
	}
	if first.InlineComment == nil || first.InlineComment.Text != "// note" {
		t.Fatalf("unexpected inline comment on first item: %+v", first.InlineComment)
	}
}
