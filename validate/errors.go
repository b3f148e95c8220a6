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

// Package validate implements C6: a depth-first walk of a value tree
// against a schema type tree that accumulates path-qualified errors and,
// optionally, injects defaults in place.
//
// Grounded on idol/compiler/compiler_errors.go's accumulate-many-errors,
// one-constructor-per-failure-kind style, applied to value×type walking
// instead of declaration resolution.
package validate

import "fmt"

// Kind identifies the category of a validation failure (§7's "Validation"
// error taxonomy).
type Kind uint8

const (
	TypeMismatch Kind = iota
	UnknownField
	MissingRequiredField
	ConstraintViolation
	UnionNoMatch
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case UnknownField:
		return "UnknownField"
	case MissingRequiredField:
		return "MissingRequiredField"
	case ConstraintViolation:
		return "ConstraintViolation"
	case UnionNoMatch:
		return "UnionNoMatch"
	default:
		return "Unknown"
	}
}

// Error is one validation failure, path-qualified per §4.5's path
// notation ("users[0].email").
type Error struct {
	Path    string
	Kind    Kind
	Message string
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind, e.Message)
}

func errTypeMismatch(path, message string) *Error {
	return &Error{Path: path, Kind: TypeMismatch, Message: message}
}

func errUnknownField(path string) *Error {
	return &Error{Path: path, Kind: UnknownField, Message: "field is not declared by the schema"}
}

func errMissingRequiredField(path string) *Error {
	return &Error{Path: path, Kind: MissingRequiredField, Message: "required field is missing"}
}

func errConstraintViolation(path, constraint, reason string) *Error {
	return &Error{Path: path, Kind: ConstraintViolation, Message: fmt.Sprintf("%s: %s", constraint, reason)}
}

func errUnionNoMatch(path, lastReason string) *Error {
	return &Error{Path: path, Kind: UnionNoMatch, Message: fmt.Sprintf("no alternative matched: %s", lastReason)}
}
