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

package reconcile

import (
	"fmt"

	"github.com/DarrenHaba/ftml/ast"
	"github.com/DarrenHaba/ftml/value"
)

// Reconcile merges root (a possibly-mutated value tree) with orig (the
// Document it was originally loaded from, or nil for a freshly built tree)
// into a brand-new Document, per §4.6. orig is never modified.
func Reconcile(root *value.Mapping, orig *ast.Document) (*ast.Document, []error) {
	r := &reconciler{visiting: make(map[value.Value]bool)}

	var origFields *ast.Fields
	d := &ast.Document{}
	if orig != nil {
		origFields = orig.Items
		d.LeadingComments = orig.LeadingComments
		d.InlineComment = orig.InlineComment
		d.InnerDocComments = orig.InnerDocComments
		d.TrailingLeadingComments = orig.TrailingLeadingComments
	}
	d.Items = r.reconcileFields(root, origFields, "")

	return d, r.errs
}

type reconciler struct {
	errs     []error
	visiting map[value.Value]bool
}

// reconcileFields implements the per-key loop of §4.6: keys present in V
// keep their position (insertion order); a matching orig KeyValue donates
// its key-level comments; keys in orig but absent from V are dropped along
// with their comments.
func (r *reconciler) reconcileFields(m *value.Mapping, origFields *ast.Fields, path string) *ast.Fields {
	out := ast.NewFields()
	m.Each(func(key string, v value.Value) bool {
		childPath := joinPath(path, key)
		newVal := r.reconcileValue(v, childPath)
		kv := &ast.KeyValue{Key: key, Value: newVal}
		if origFields != nil {
			if orig, ok := origFields.Get(key); ok {
				kv.KeyQuoted = orig.KeyQuoted
				kv.Pos = orig.Pos
				kv.LeadingComments = orig.LeadingComments
				kv.InlineComment = orig.InlineComment
				kv.OuterDocComments = orig.OuterDocComments
			}
		}
		out.Set(kv)
		return true
	})
	return out
}

// reconcileValue builds a fresh ast.Value for v, carrying over a
// container's or scalar's own comment slots from its AST back-reference
// when the node's shape and (for scalars) kind still match (§4.6: "Scalars
// are compared by value; type changes do not carry comments").
func (r *reconciler) reconcileValue(v value.Value, path string) ast.Value {
	if r.visiting[v] {
		r.errs = append(r.errs, errCycle(path))
		return &ast.Scalar{Kind: ast.ScalarNull}
	}

	switch n := v.(type) {
	case *value.Scalar:
		sc := &ast.Scalar{Kind: astScalarKindOf(n.K), Str: n.Str, Int: n.Int, Flt: n.Flt, Bool: n.Bool}
		if orig, ok := n.Src.(*ast.Scalar); ok && orig.Kind == sc.Kind {
			sc.LeadingComments = orig.LeadingComments
			sc.InlineComment = orig.InlineComment
			sc.Pos = orig.Pos
		}
		return sc

	case *value.Mapping:
		r.visiting[v] = true
		defer delete(r.visiting, v)

		obj := &ast.Object{}
		var origFields *ast.Fields
		if orig, ok := n.Src.(*ast.Object); ok {
			origFields = orig.Fields
			obj.InnerDocComments = orig.InnerDocComments
			obj.InlineComment = orig.InlineComment
			obj.InlineCommentEnd = orig.InlineCommentEnd
			obj.LeadingComments = orig.LeadingComments
			obj.Pos = orig.Pos
			obj.ClosePos = orig.ClosePos
		}
		obj.Fields = r.reconcileFields(n, origFields, path)
		return obj

	case *value.Sequence:
		r.visiting[v] = true
		defer delete(r.visiting, v)

		lst := &ast.List{}
		if orig, ok := n.Src.(*ast.List); ok {
			lst.InnerDocComments = orig.InnerDocComments
			lst.InlineComment = orig.InlineComment
			lst.InlineCommentEnd = orig.InlineCommentEnd
			lst.LeadingComments = orig.LeadingComments
			lst.Pos = orig.Pos
			lst.ClosePos = orig.ClosePos
		}
		// Each element carries its own AST back-reference (set by
		// value.FromAST), so its own leading/inline comments are recovered
		// by the *value.Scalar/*value.Mapping/*value.Sequence case above
		// without needing this List to look them up by index.
		for i, item := range n.Items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			lst.Items = append(lst.Items, r.reconcileValue(item, itemPath))
		}
		return lst
	}
	return &ast.Scalar{Kind: ast.ScalarNull}
}

func astScalarKindOf(k value.Kind) ast.ScalarKind {
	switch k {
	case value.KindString:
		return ast.ScalarString
	case value.KindInt:
		return ast.ScalarInt
	case value.KindFloat:
		return ast.ScalarFloat
	case value.KindBool:
		return ast.ScalarBool
	default:
		return ast.ScalarNull
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
