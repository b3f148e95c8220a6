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

package serialize

import "fmt"

// Error reports a failure found while serializing an AST to text (§7's
// "Reconcile/Serialize" error kind). Unlike validate.Error these are rare:
// they only fire against a hand-built Document that didn't come out of the
// parser, since a parsed tree cannot contain a cycle or an embedded newline
// inside a comment's text.
type Error struct {
	Path    string
	Message string
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func errCycle(path string) *Error {
	return &Error{Path: path, Message: "cycle detected in value tree"}
}

func errCommentNewline(path string) *Error {
	return &Error{Path: path, Message: "comment text contains a newline"}
}
