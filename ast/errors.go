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

import "fmt"

// Error is a document-parse error: unexpected token, duplicate key,
// unterminated container, or a malformed comment placement (§4.2, §4.3,
// §7). Grounded on idol/syntax/syntax_errors.go's Error{message, span}
// constructor-per-failure-kind idiom.
type Error struct {
	Message string
	Pos     Position
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func errUnexpectedToken(pos Position, expected, got string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("expected %s, got %s", expected, got)}
}

func errDuplicateKey(pos Position, key string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("duplicate key %q", key)}
}

func errUnterminated(pos Position, kind string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("unterminated %s", kind)}
}

func errReservedKey(pos Position, key string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("%q is a reserved word and cannot be used as an unquoted key", key)}
}

func errMultipleInlineComments(pos Position) error {
	return &Error{Pos: pos, Message: "more than one comment on the same line after a value"}
}
