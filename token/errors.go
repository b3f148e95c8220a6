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

package token

import "fmt"

// Error is a lexical error with the position at which scanning failed.
// Grounded on idol/syntax/syntax_errors.go's Error{code, message, span}
// shape, minus the numeric error-code space (not part of this format).
type Error struct {
	Message string
	Pos     Position
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func errUnexpectedCharacter(pos Position, r rune) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("unexpected character %q", r)}
}

func errUnterminatedString(pos Position) error {
	return &Error{Pos: pos, Message: "unterminated string literal"}
}

func errUnterminatedSingleString(pos Position) error {
	return &Error{Pos: pos, Message: "unterminated single-quoted string literal"}
}

func errInvalidEscape(pos Position, c byte) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("invalid escape sequence \\%c", c)}
}

func errMalformedNumber(pos Position, text string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("malformed number literal %q", text)}
}

func errInvalidUTF8(pos Position) error {
	return &Error{Pos: pos, Message: "source is not valid UTF-8"}
}
