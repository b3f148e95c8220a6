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

// Package token defines the lexical tokens shared by FTML's document and
// schema grammars (§3, §4.1 of the format specification).
package token

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind uint8

const (
	EOF Kind = iota

	IDENT
	STRING        // double-quoted
	SINGLE_STRING // single-quoted
	INT
	FLOAT
	BOOL
	NULL

	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	EQUAL
	COLON
	PIPE
	LANGLE
	RANGLE
	COMMA
	QUESTION

	COMMENT   // "//"
	OUTER_DOC // "///"
	INNER_DOC // "//!"

	NEWLINE
	WHITESPACE
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case STRING:
		return "STRING"
	case SINGLE_STRING:
		return "SINGLE_STRING"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case BOOL:
		return "BOOL"
	case NULL:
		return "NULL"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case EQUAL:
		return "EQUAL"
	case COLON:
		return "COLON"
	case PIPE:
		return "PIPE"
	case LANGLE:
		return "LANGLE"
	case RANGLE:
		return "RANGLE"
	case COMMA:
		return "COMMA"
	case QUESTION:
		return "QUESTION"
	case COMMENT:
		return "COMMENT"
	case OUTER_DOC:
		return "OUTER_DOC"
	case INNER_DOC:
		return "INNER_DOC"
	case NEWLINE:
		return "NEWLINE"
	case WHITESPACE:
		return "WHITESPACE"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Position is a 1-based (line, column) pair used for error reporting and
// carried into every AST node derived from a token (§3).
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Less reports whether p sorts before o in document order.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Token is one lexical unit of source text, with the literal text it
// covers and its starting position. Kind==EOF tokens have empty Text.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// IsTrivia reports whether the token is whitespace, a newline, or one of
// the three comment kinds -- i.e. never part of the structural grammar.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case WHITESPACE, NEWLINE, COMMENT, OUTER_DOC, INNER_DOC:
		return true
	default:
		return false
	}
}

// IsComment reports whether the token is one of the three comment kinds.
func (t Token) IsComment() bool {
	switch t.Kind {
	case COMMENT, OUTER_DOC, INNER_DOC:
		return true
	default:
		return false
	}
}
