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

import "strings"

// normalizeEncoding implements §6.1's label normalization (lowercase,
// `_` -> `-`) and alias folding for the reserved ftml_encoding key. The
// core never re-decodes on this value itself — §6.1 is explicit that
// re-decoding is "outside the core" — this only canonicalizes the label
// so a host comparing it against a fixed set of names doesn't also have
// to fold case and separators itself.
func normalizeEncoding(raw string) string {
	norm := strings.ToLower(strings.ReplaceAll(raw, "_", "-"))
	switch norm {
	case "latin1", "iso-8859-1":
		return "latin-1"
	case "utf-16-le", "utf-16-be":
		return "utf-16"
	default:
		return norm
	}
}
