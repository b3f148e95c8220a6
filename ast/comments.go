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

package ast

import "github.com/DarrenHaba/ftml/token"

// This file implements C3, the second pass over the token stream that
// attaches comments to the skeleton AST produced by C2 (§4.3). It has no
// direct teacher equivalent — idol interleaves trivia into its single
// parse pass — but reuses the teacher's trivia-buffering *mechanism*
// (idol/syntax/syntax.go's comments()/consumeSpace) generalized into an
// explicit, independently testable pass, as spec.md's design notes (§9)
// call for.

// slot describes one child element of a comment-bearing scope (a
// KeyValue of a Document/Object, or a bare Value of a List) in terms of
// the token range it spans and setters for the comment fields it owns.
type slot struct {
	startTok, endTok int
	setLeading       func([]Comment)
	setOuterDoc      func([]Comment) // nil if this element cannot own outer-docs (I2)
	setInline        func(Comment)
}

func setValueLeading(v Value, cs []Comment) {
	switch t := v.(type) {
	case *Scalar:
		t.LeadingComments = cs
	case *Object:
		t.LeadingComments = cs
	case *List:
		t.LeadingComments = cs
	}
}

func setValueInline(v Value, c Comment) {
	switch t := v.(type) {
	case *Scalar:
		t.InlineComment = &c
	case *Object:
		t.InlineComment = &c
	case *List:
		t.InlineComment = &c
	}
}

func buildKeyValueSlots(fields *Fields) []slot {
	var out []slot
	fields.Each(func(kv *KeyValue) bool {
		out = append(out, slot{
			startTok: kv.keyTokIdx,
			endTok:   kv.endTokIdx,
			setLeading: func(cs []Comment) {
				kv.LeadingComments = cs
			},
			setOuterDoc: func(cs []Comment) {
				kv.OuterDocComments = cs
			},
			setInline: func(c Comment) {
				kv.InlineComment = &c
			},
		})
		return true
	})
	return out
}

func buildListItemSlots(items []Value) []slot {
	out := make([]slot, len(items))
	for i, v := range items {
		v := v
		start, end := v.tokRange()
		out[i] = slot{
			startTok:    start,
			endTok:      end,
			setLeading:  func(cs []Comment) { setValueLeading(v, cs) },
			setOuterDoc: nil,
			setInline:   func(c Comment) { setValueInline(v, c) },
		}
	}
	return out
}

// attachComments runs C3 over the whole tree.
func attachComments(doc *Document, toks []token.Token) {
	eofIdx := len(toks) - 1

	if doc.Items.Len() == 0 {
		// Rule 7: an empty document sends every comment to leading_comments,
		// regardless of marker kind.
		for i := 0; i < eofIdx; i++ {
			if toks[i].IsComment() {
				doc.LeadingComments = append(doc.LeadingComments, Comment{
					Kind: commentKindOf(toks[i].Kind),
					Text: toks[i].Text,
					Pos:  toks[i].Pos,
				})
			}
		}
		return
	}

	slots := buildKeyValueSlots(doc.Items)
	processScope(toks, -1, eofIdx, slots, &doc.InnerDocComments, &doc.TrailingLeadingComments)

	doc.Items.Each(func(kv *KeyValue) bool {
		attachNestedValue(kv.Value, toks)
		return true
	})
}

func attachNestedValue(v Value, toks []token.Token) {
	switch t := v.(type) {
	case *Object:
		var slots []slot
		if t.Fields != nil && t.Fields.Len() > 0 {
			slots = buildKeyValueSlots(t.Fields)
		}
		processScope(toks, t.openTokIdx, t.closeTokIdx, slots, &t.InnerDocComments, &t.InlineCommentEnd)
		if t.Fields != nil {
			t.Fields.Each(func(kv *KeyValue) bool {
				attachNestedValue(kv.Value, toks)
				return true
			})
		}
	case *List:
		slots := buildListItemSlots(t.Items)
		processScope(toks, t.openTokIdx, t.closeTokIdx, slots, &t.InnerDocComments, &t.InlineCommentEnd)
		for _, item := range t.Items {
			attachNestedValue(item, toks)
		}
	}
}

// segment is one source line of a trivia gap: nil for a blank line (no
// comment), or the comment found on that line.
type segment struct {
	comment *Comment
}

// processScope applies rules 1-6 to every gap between an opening boundary
// (openIdx, or -1 for "start of document") and a closing boundary
// (closeIdx, or EOF's index), given the ordered child slots in between.
func processScope(
	toks []token.Token,
	openIdx, closeIdx int,
	slots []slot,
	innerDocSink *[]Comment,
	orphanSink *[]Comment,
) {
	lo := openIdx + 1

	for i, s := range slots {
		hi := s.startTok - 1
		var prevEnd int
		atStart := i == 0
		if !atStart {
			prevEnd = slots[i-1].endTok
		} else {
			prevEnd = openIdx
		}
		processGap(toks, lo, hi, atStart, prevSetInline(slots, i), s.setOuterDoc, s.setLeading, innerDocSink, nil)
		_ = prevEnd
		lo = s.endTok + 1
	}

	// Final (possibly orphan) gap after the last element, or the whole
	// interior if there were no slots at all.
	processGap(toks, lo, closeIdx-1, len(slots) == 0, prevSetInline(slots, len(slots)), nil, nil, innerDocSink, orphanSink)
}

func prevSetInline(slots []slot, i int) func(Comment) {
	if i == 0 || i > len(slots) {
		return nil
	}
	return slots[i-1].setInline
}

// processGap classifies the trivia tokens in toks[lo..hi] (inclusive,
// possibly empty) and dispatches them per rules 1-6 of §4.3.
//
//   - atStart: true if this gap begins a document or container (no
//     "previous element" shares a line with its first token).
//   - setPrevInline: non-nil if a preceding element exists; receives a
//     trailing same-line comment (rule 6).
//   - setOuterDoc: non-nil if a following element exists and can own
//     outer-doc comments (a KeyValue; rule 3).
//   - setLeading: non-nil if a following element exists (rule 4).
//   - innerDocSink: receives a leading run of INNER_DOC lines when
//     atStart (rules 1-2).
//   - orphanSink: receives every remaining comment when there is no
//     following element (rule 5); nil when one exists.
func processGap(
	toks []token.Token,
	lo, hi int,
	atStart bool,
	setPrevInline func(Comment),
	setOuterDoc func([]Comment),
	setLeading func([]Comment),
	innerDocSink *[]Comment,
	orphanSink *[]Comment,
) {
	if lo > hi {
		return
	}

	i := lo

	// Rule 6: an inline comment shares the line with the previous element,
	// i.e. appears before the gap's first NEWLINE.
	if setPrevInline != nil {
		j := i
		for j <= hi && (toks[j].Kind == token.WHITESPACE || toks[j].Kind == token.COMMA) {
			j++
		}
		if j <= hi && toks[j].IsComment() {
			setPrevInline(Comment{Kind: commentKindOf(toks[j].Kind), Text: toks[j].Text, Pos: toks[j].Pos})
			j++
			if j <= hi && toks[j].Kind == token.NEWLINE {
				j++
			}
			i = j
		} else if j <= hi && toks[j].Kind == token.NEWLINE {
			i = j + 1
		}
	}

	// Split the remainder into line segments.
	var segs []segment
	var cur *Comment
	for ; i <= hi; i++ {
		tk := toks[i]
		switch {
		case tk.IsComment():
			c := Comment{Kind: commentKindOf(tk.Kind), Text: tk.Text, Pos: tk.Pos}
			cur = &c
		case tk.Kind == token.NEWLINE:
			segs = append(segs, segment{comment: cur})
			cur = nil
		}
	}
	if cur != nil {
		segs = append(segs, segment{comment: cur})
	}

	// Rules 1-2: a leading contiguous run of INNER_DOC lines, allowing for
	// the unavoidable blank segment left by the container's own opening
	// line (or document start) before it.
	if atStart {
		k := 0
		for k < len(segs) && segs[k].comment == nil {
			k++
		}
		var inner []Comment
		j := k
		for j < len(segs) && segs[j].comment != nil && segs[j].comment.Kind == CommentInnerDoc {
			inner = append(inner, *segs[j].comment)
			j++
		}
		if len(inner) > 0 {
			*innerDocSink = append(*innerDocSink, inner...)
			segs = segs[j:]
		}
	}

	if setOuterDoc == nil && setLeading == nil {
		// Orphan: everything remaining, in order, to orphanSink.
		for _, s := range segs {
			if s.comment != nil {
				*orphanSink = append(*orphanSink, *s.comment)
			}
		}
		return
	}

	if setOuterDoc != nil {
		// Rule 3: the run of contiguous OUTER_DOC lines immediately
		// preceding the element, modulo trailing blank lines.
		end := len(segs)
		for end > 0 && segs[end-1].comment == nil {
			end--
		}
		start := end
		for start > 0 && segs[start-1].comment != nil && segs[start-1].comment.Kind == CommentOuterDoc {
			start--
		}
		if start < end {
			var run []Comment
			for _, s := range segs[start:end] {
				run = append(run, *s.comment)
			}
			setOuterDoc(run)
			segs = segs[:start]
		}
	}

	var leading []Comment
	for _, s := range segs {
		if s.comment != nil {
			leading = append(leading, *s.comment)
		}
	}
	if len(leading) > 0 && setLeading != nil {
		setLeading(leading)
	}
}
