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

// Package serialize implements C8: deterministic AST-to-text formatting,
// designed for round-trip stability rather than minimality (§4.7).
//
// Grounded on idol/syntax/syntax_nodes.go's UnparseTo(buf *bytes.Buffer)
// method-per-node-type plus a package-level Unparse(node Node) string
// helper; since ast.Value is closed to its own package (no UnparseTo method
// can be attached to it from here), the same per-variant dispatch is done
// with a type switch over a serializer receiver instead of a method set.
package serialize

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/DarrenHaba/ftml/ast"
)

// Options controls formatting (§6.4's configuration surface).
type Options struct {
	IndentSpaces    int
	InlineThreshold int
}

// DefaultOptions matches §6.4: 4 spaces per indent level; the inline
// threshold is implementation-chosen, set here to 4 children.
func DefaultOptions() Options {
	return Options{IndentSpaces: 4, InlineThreshold: 4}
}

// Serialize renders doc to text (§4.7). The returned errors are non-fatal
// per-node formatting failures (comment text containing a newline, or a
// cycle in a hand-built Document); formatting continues past them.
func Serialize(doc *ast.Document, opts Options) (string, []error) {
	if opts.IndentSpaces <= 0 {
		opts.IndentSpaces = 4
	}
	if opts.InlineThreshold <= 0 {
		opts.InlineThreshold = 4
	}
	s := &serializer{opts: opts, visiting: make(map[ast.Value]bool)}

	var buf bytes.Buffer
	s.writeCommentLines(&buf, doc.LeadingComments, 0, "")
	s.writeCommentLines(&buf, doc.InnerDocComments, 0, "")

	keys := rootKeyOrder(doc.Items)
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte('\n')
		}
		kv, _ := doc.Items.Get(key)
		s.writeField(&buf, kv, 0, false, "")
	}
	s.writeCommentLines(&buf, doc.TrailingLeadingComments, 0, "")

	return buf.String(), s.errs
}

// rootKeyOrder implements §4.7's "Reserved keys ftml_version and
// ftml_encoding, when present, are emitted first at root in that order."
func rootKeyOrder(fields *ast.Fields) []string {
	all := fields.Keys()
	out := make([]string, 0, len(all))
	seen := make(map[string]bool, 2)
	for _, reserved := range []string{"ftml_version", "ftml_encoding"} {
		if _, ok := fields.Get(reserved); ok {
			out = append(out, reserved)
			seen[reserved] = true
		}
	}
	for _, k := range all {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

type serializer struct {
	opts     Options
	errs     []error
	visiting map[ast.Value]bool
}

func (s *serializer) indent(buf *bytes.Buffer, level int) {
	buf.WriteString(strings.Repeat(" ", level*s.opts.IndentSpaces))
}

func (s *serializer) writeCommentLines(buf *bytes.Buffer, comments []ast.Comment, level int, path string) {
	for _, c := range comments {
		if strings.ContainsRune(c.Text, '\n') {
			s.errs = append(s.errs, errCommentNewline(path))
			continue
		}
		s.indent(buf, level)
		buf.WriteString(c.Text)
		buf.WriteByte('\n')
	}
}

// writeField renders one `key = value` line: outer-doc comments, then
// leading comments, then the assignment, an optional trailing comma, and
// finally a same-line inline comment (§4.7's emission order).
func (s *serializer) writeField(buf *bytes.Buffer, kv *ast.KeyValue, level int, comma bool, path string) {
	childPath := joinPath(path, kv.Key)
	s.writeCommentLines(buf, kv.OuterDocComments, level, childPath)
	s.writeCommentLines(buf, kv.LeadingComments, level, childPath)

	s.indent(buf, level)
	buf.WriteString(keyText(kv))
	buf.WriteString(" = ")
	s.writeValue(buf, kv.Value, level, childPath)
	if comma {
		buf.WriteByte(',')
	}
	s.writeInlineComment(buf, kv.InlineComment, childPath)
	buf.WriteByte('\n')
}

func (s *serializer) writeInlineComment(buf *bytes.Buffer, c *ast.Comment, path string) {
	if c == nil {
		return
	}
	if strings.ContainsRune(c.Text, '\n') {
		s.errs = append(s.errs, errCommentNewline(path))
		return
	}
	buf.WriteString("  ")
	buf.WriteString(c.Text)
}

func (s *serializer) writeValue(buf *bytes.Buffer, v ast.Value, level int, path string) {
	if s.visiting[v] {
		s.errs = append(s.errs, errCycle(path))
		buf.WriteString("null")
		return
	}

	switch n := v.(type) {
	case *ast.Scalar:
		buf.WriteString(scalarText(n))
	case *ast.Object:
		s.writeObject(buf, n, level, path)
	case *ast.List:
		s.writeList(buf, n, level, path)
	}
}

func (s *serializer) writeObject(buf *bytes.Buffer, obj *ast.Object, level int, path string) {
	s.visiting[obj] = true
	defer delete(s.visiting, obj)

	if obj.Fields.Len() == 0 && !objectMultiline(obj, s.opts) {
		buf.WriteString("{}")
		return
	}

	if !objectMultiline(obj, s.opts) {
		buf.WriteString("{ ")
		i := 0
		obj.Fields.Each(func(kv *ast.KeyValue) bool {
			if i > 0 {
				buf.WriteString(", ")
			}
			i++
			buf.WriteString(keyText(kv))
			buf.WriteString(" = ")
			s.writeValue(buf, kv.Value, level, joinPath(path, kv.Key))
			return true
		})
		buf.WriteString(" }")
		return
	}

	buf.WriteString("{\n")
	s.writeCommentLines(buf, obj.InnerDocComments, level+1, path)
	obj.Fields.Each(func(kv *ast.KeyValue) bool {
		s.writeField(buf, kv, level+1, true, path)
		return true
	})
	s.writeCommentLines(buf, obj.InlineCommentEnd, level+1, path)
	s.indent(buf, level)
	buf.WriteByte('}')
}

func (s *serializer) writeList(buf *bytes.Buffer, lst *ast.List, level int, path string) {
	s.visiting[lst] = true
	defer delete(s.visiting, lst)

	if len(lst.Items) == 0 && !listMultiline(lst, s.opts) {
		buf.WriteString("[]")
		return
	}

	if !listMultiline(lst, s.opts) {
		buf.WriteString("[ ")
		for i, item := range lst.Items {
			if i > 0 {
				buf.WriteString(", ")
			}
			s.writeValue(buf, item, level, fmt.Sprintf("%s[%d]", path, i))
		}
		buf.WriteString(" ]")
		return
	}

	buf.WriteString("[\n")
	s.writeCommentLines(buf, lst.InnerDocComments, level+1, path)
	for i, item := range lst.Items {
		s.writeListItem(buf, item, level+1, fmt.Sprintf("%s[%d]", path, i))
	}
	s.writeCommentLines(buf, lst.InlineCommentEnd, level+1, path)
	s.indent(buf, level)
	buf.WriteByte(']')
}

func (s *serializer) writeListItem(buf *bytes.Buffer, item ast.Value, level int, path string) {
	leading, inline := itemComments(item)
	s.writeCommentLines(buf, leading, level, path)
	s.indent(buf, level)
	s.writeValue(buf, item, level, path)
	buf.WriteByte(',')
	s.writeInlineComment(buf, inline, path)
	buf.WriteByte('\n')
}

func itemComments(v ast.Value) ([]ast.Comment, *ast.Comment) {
	switch n := v.(type) {
	case *ast.Scalar:
		return n.LeadingComments, n.InlineComment
	case *ast.Object:
		return n.LeadingComments, n.InlineComment
	case *ast.List:
		return n.LeadingComments, n.InlineComment
	}
	return nil, nil
}

// objectMultiline decides multiline vs. inline `{ k = v }` formatting
// (§4.7): any comment on the object itself or a direct field forces
// multiline, as does exceeding the inline threshold.
func objectMultiline(obj *ast.Object, opts Options) bool {
	if len(obj.InnerDocComments) > 0 || len(obj.InlineCommentEnd) > 0 {
		return true
	}
	if obj.Fields.Len() > opts.InlineThreshold {
		return true
	}
	multiline := false
	obj.Fields.Each(func(kv *ast.KeyValue) bool {
		if len(kv.LeadingComments) > 0 || len(kv.OuterDocComments) > 0 || kv.InlineComment != nil {
			multiline = true
			return false
		}
		return true
	})
	return multiline
}

func listMultiline(lst *ast.List, opts Options) bool {
	if len(lst.InnerDocComments) > 0 || len(lst.InlineCommentEnd) > 0 {
		return true
	}
	if len(lst.Items) > opts.InlineThreshold {
		return true
	}
	for _, item := range lst.Items {
		leading, inline := itemComments(item)
		if len(leading) > 0 || inline != nil {
			return true
		}
	}
	return false
}

func scalarText(n *ast.Scalar) string {
	switch n.Kind {
	case ast.ScalarString:
		return quoteString(n.Str)
	case ast.ScalarInt:
		return strconv.FormatInt(n.Int, 10)
	case ast.ScalarFloat:
		return formatFloat(n.Flt)
	case ast.ScalarBool:
		if n.Bool {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}

// formatFloat implements §4.7's "floats always print a decimal point".
func formatFloat(f float64) string {
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(out, '.') {
		out += ".0"
	}
	return out
}

// quoteString implements §4.7's scalar string escaping:
// `\" \\ \n \r \t \b \f`.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func keyText(kv *ast.KeyValue) string {
	if kv.KeyQuoted || !isBareIdent(kv.Key) {
		return quoteString(kv.Key)
	}
	return kv.Key
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

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
