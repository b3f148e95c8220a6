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

package schema

import (
	"fmt"

	"github.com/DarrenHaba/ftml/token"
)

// Error is a schema-parse error. Schema errors are fatal to the schema: a
// non-empty error slice from Parse means no type tree is returned (§7).
type Error struct {
	Message string
	Pos     token.Position
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func errUnknownType(pos token.Position, name string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("unknown type %q", name)}
}

func errUnexpectedToken(pos token.Position, expected, got string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("expected %s, got %s", expected, got)}
}

func errDuplicateField(pos token.Position, name string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("duplicate field %q", name)}
}

func errUnknownConstraint(pos token.Position, kind, name string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("unknown constraint %q for type %q", name, kind)}
}

func errMalformedConstraint(pos token.Position, name string, reason string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("malformed constraint %q: %s", name, reason)}
}

func errUnterminatedConstraints(pos token.Position) error {
	return &Error{Pos: pos, Message: "unterminated constraint list, expected '>'"}
}

func errDefaultInvalid(pos token.Position, fieldName string, reason string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("default value for field %q fails its own type: %s", fieldName, reason)}
}

func errPatternKeyCollision(pos token.Position) error {
	return &Error{Pos: pos, Message: "pattern-typed object nested inside a pattern object collides with an enumerated form at this key"}
}
