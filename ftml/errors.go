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

package ftml

import "fmt"

// VersionErrorKind identifies why the §6.2 version gate rejected a
// document. Split from validate.Kind because version errors are raised
// before the validator (and even before C3) ever runs (§7's "Version
// errors are fatal and raised before other processing").
type VersionErrorKind uint8

const (
	VersionInvalidFormat VersionErrorKind = iota
	VersionIncompatible
	VersionNonString
)

func (k VersionErrorKind) String() string {
	switch k {
	case VersionInvalidFormat:
		return "InvalidFormat"
	case VersionIncompatible:
		return "Incompatible"
	case VersionNonString:
		return "NonString"
	default:
		return "Unknown"
	}
}

// VersionError reports a failed §6.2 version check.
type VersionError struct {
	Kind    VersionErrorKind
	Message string
}

var _ error = (*VersionError)(nil)

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errVersionInvalidFormat(raw string) *VersionError {
	return &VersionError{Kind: VersionInvalidFormat, Message: fmt.Sprintf("malformed ftml_version %q", raw)}
}

func errVersionIncompatible(docVersion, parserVersion string) *VersionError {
	return &VersionError{
		Kind:    VersionIncompatible,
		Message: fmt.Sprintf("document requires %s, parser implements %s", docVersion, parserVersion),
	}
}

func errVersionNonString() *VersionError {
	return &VersionError{Kind: VersionNonString, Message: "ftml_version must be a string scalar"}
}
