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

package reconcile_test

import (
	"testing"

	"github.com/DarrenHaba/ftml/ast"
	"github.com/DarrenHaba/ftml/reconcile"
	"github.com/DarrenHaba/ftml/value"
)

func parseDoc(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, errs := ast.Parse([]byte(src), true)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return doc
}

func valueRoot(doc *ast.Document) *value.Mapping {
	m := value.NewMapping()
	doc.Items.Each(func(kv *ast.KeyValue) bool {
		m.Set(kv.Key, value.FromAST(kv.Value))
		return true
	})
	return m
}

func TestUnmutatedRoundTripPreservesComments(t *testing.T) {
	src := "// leading\nport = 8080  // inline\n"
	doc := parseDoc(t, src)
	root := valueRoot(doc)

	out, errs := reconcile.Reconcile(root, doc)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	kv, ok := out.Items.Get("port")
	if !ok {
		t.Fatal("missing key port")
	}
	if len(kv.LeadingComments) != 1 || kv.LeadingComments[0].Text != "// leading" {
		t.Fatalf("leading comment not preserved: %+v", kv.LeadingComments)
	}
	if kv.InlineComment == nil || kv.InlineComment.Text != "// inline" {
		t.Fatalf("inline comment not preserved: %+v", kv.InlineComment)
	}
}

func TestReassignedListScalarDropsOwnComment(t *testing.T) {
	doc := parseDoc(t, "ids = [\n  1,  // one\n  2,  // two\n]\n")
	root := valueRoot(doc)
	v, _ := root.Get("ids")
	seq := v.(*value.Sequence)
	seq.Items[0] = value.NewString("not-an-int") // type change: int -> string

	out, errs := reconcile.Reconcile(root, doc)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	kv, _ := out.Items.Get("ids")
	lst := kv.Value.(*ast.List)
	changed := lst.Items[0].(*ast.Scalar)
	if changed.InlineComment != nil {
		t.Fatalf("expected own comment dropped on type change, got %+v", changed.InlineComment)
	}
	unchanged := lst.Items[1].(*ast.Scalar)
	if unchanged.InlineComment == nil || unchanged.InlineComment.Text != "// two" {
		t.Fatalf("expected unchanged sibling to keep its own comment, got %+v", unchanged.InlineComment)
	}
}

func TestDroppedKeyLosesItsComments(t *testing.T) {
	doc := parseDoc(t, "a = 1\nb = 2  // keep me\n")
	root := valueRoot(doc)
	root.Delete("a")

	out, errs := reconcile.Reconcile(root, doc)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := out.Items.Get("a"); ok {
		t.Fatal("expected a to be dropped")
	}
	kv, ok := out.Items.Get("b")
	if !ok || kv.InlineComment == nil {
		t.Fatal("expected b and its comment to survive")
	}
}

func TestNewKeyIsSynthesizedWithoutComments(t *testing.T) {
	doc := parseDoc(t, "a = 1\n")
	root := valueRoot(doc)
	root.Set("b", value.NewInt(2))

	out, errs := reconcile.Reconcile(root, doc)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	kv, ok := out.Items.Get("b")
	if !ok {
		t.Fatal("expected new key b to be present")
	}
	if kv.InlineComment != nil || len(kv.LeadingComments) != 0 {
		t.Fatalf("expected no comments on synthesized key, got %+v", kv)
	}
}

func TestNestedObjectCommentsSurviveUnmutated(t *testing.T) {
	doc := parseDoc(t, "server = {\n  //! inner doc\n  port = 8080\n}\n")
	root := valueRoot(doc)

	out, errs := reconcile.Reconcile(root, doc)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	kv, _ := out.Items.Get("server")
	obj := kv.Value.(*ast.Object)
	if len(obj.InnerDocComments) != 1 {
		t.Fatalf("expected inner doc comment preserved, got %+v", obj.InnerDocComments)
	}
}

func TestCycleIsDetected(t *testing.T) {
	root := value.NewMapping()
	child := value.NewMapping()
	child.Set("self", child)
	root.Set("a", child)

	_, errs := reconcile.Reconcile(root, nil)
	if len(errs) == 0 {
		t.Fatal("expected a cycle error")
	}
}
