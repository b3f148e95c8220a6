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

import (
	"unicode/utf8"
)

// Tokenizer scans UTF-8 source text into a stream of Tokens terminated by
// an EOF token (§4.1). It is reused, unmodified, by the schema grammar
// (§4.4): the schema parser simply discards COMMENT/OUTER_DOC/INNER_DOC
// tokens as they arrive.
//
// Grounded on idol/syntax/syntax_tokens.go's Tokens.Next dispatch-by-
// leading-byte structure.
type Tokenizer struct {
	src  []byte
	pos  int
	line int
	col  int
}

// New returns a Tokenizer over src. A leading UTF-8 BOM is skipped.
func New(src []byte) (*Tokenizer, error) {
	if !utf8.Valid(src) {
		return nil, errInvalidUTF8(Position{1, 1})
	}
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		src = src[3:]
	}
	return &Tokenizer{src: src, line: 1, col: 1}, nil
}

func (t *Tokenizer) pos1() Position {
	return Position{Line: t.line, Column: t.col}
}

func (t *Tokenizer) advance(n int) {
	for i := 0; i < n; i++ {
		if t.src[t.pos+i] == '\n' {
			t.line++
			t.col = 1
		} else {
			t.col++
		}
	}
	t.pos += n
}

// Next scans and returns the next token. Past end of input it returns an
// EOF token forever.
func (t *Tokenizer) Next() (Token, error) {
	if t.pos >= len(t.src) {
		return Token{Kind: EOF, Pos: t.pos1()}, nil
	}

	c := t.src[t.pos]
	start := t.pos1()

	switch c {
	case ' ', '\t':
		return t.scanWhitespace()
	case '\r':
		if t.pos+1 < len(t.src) && t.src[t.pos+1] == '\n' {
			t.advance(2)
			return Token{Kind: NEWLINE, Text: "\r\n", Pos: start}, nil
		}
		return Token{}, errUnexpectedCharacter(start, rune(c))
	case '\n':
		t.advance(1)
		return Token{Kind: NEWLINE, Text: "\n", Pos: start}, nil
	case '{':
		t.advance(1)
		return Token{Kind: LBRACE, Text: "{", Pos: start}, nil
	case '}':
		t.advance(1)
		return Token{Kind: RBRACE, Text: "}", Pos: start}, nil
	case '[':
		t.advance(1)
		return Token{Kind: LBRACKET, Text: "[", Pos: start}, nil
	case ']':
		t.advance(1)
		return Token{Kind: RBRACKET, Text: "]", Pos: start}, nil
	case '=':
		t.advance(1)
		return Token{Kind: EQUAL, Text: "=", Pos: start}, nil
	case ':':
		t.advance(1)
		return Token{Kind: COLON, Text: ":", Pos: start}, nil
	case '|':
		t.advance(1)
		return Token{Kind: PIPE, Text: "|", Pos: start}, nil
	case '<':
		t.advance(1)
		return Token{Kind: LANGLE, Text: "<", Pos: start}, nil
	case '>':
		t.advance(1)
		return Token{Kind: RANGLE, Text: ">", Pos: start}, nil
	case ',':
		t.advance(1)
		return Token{Kind: COMMA, Text: ",", Pos: start}, nil
	case '?':
		t.advance(1)
		return Token{Kind: QUESTION, Text: "?", Pos: start}, nil
	case '/':
		return t.scanComment()
	case '"':
		return t.scanDoubleString()
	case '\'':
		return t.scanSingleString()
	}

	if c == '-' || c == '+' || (c >= '0' && c <= '9') {
		return t.scanNumber()
	}
	if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' {
		return t.scanIdent()
	}

	r, _ := utf8.DecodeRune(t.src[t.pos:])
	return Token{}, errUnexpectedCharacter(start, r)
}

func (t *Tokenizer) scanWhitespace() (Token, error) {
	start := t.pos1()
	begin := t.pos
	for t.pos < len(t.src) && (t.src[t.pos] == ' ' || t.src[t.pos] == '\t') {
		t.pos++
		t.col++
	}
	return Token{Kind: WHITESPACE, Text: string(t.src[begin:t.pos]), Pos: start}, nil
}

// scanComment classifies by exact prefix, longest-specific-first: "//!" is
// INNER_DOC, "///" is OUTER_DOC, else "//" is COMMENT (§4.1).
func (t *Tokenizer) scanComment() (Token, error) {
	start := t.pos1()
	if t.pos+1 >= len(t.src) || t.src[t.pos+1] != '/' {
		r, _ := utf8.DecodeRune(t.src[t.pos:])
		return Token{}, errUnexpectedCharacter(start, r)
	}

	kind := COMMENT
	switch {
	case t.pos+2 < len(t.src) && t.src[t.pos+2] == '!':
		kind = INNER_DOC
	case t.pos+2 < len(t.src) && t.src[t.pos+2] == '/':
		kind = OUTER_DOC
	}

	begin := t.pos
	for t.pos < len(t.src) && t.src[t.pos] != '\n' && t.src[t.pos] != '\r' {
		t.pos++
		t.col++
	}
	return Token{Kind: kind, Text: string(t.src[begin:t.pos]), Pos: start}, nil
}

var doubleEscapes = map[byte]byte{
	'"': '"', '\\': '\\', 'n': '\n', 'r': '\r', 't': '\t', 'b': '\b', 'f': '\f',
}

func (t *Tokenizer) scanDoubleString() (Token, error) {
	start := t.pos1()
	begin := t.pos
	t.pos++ // opening quote
	t.col++
	for {
		if t.pos >= len(t.src) {
			return Token{}, errUnterminatedString(start)
		}
		c := t.src[t.pos]
		if c == '\n' {
			return Token{}, errUnterminatedString(start)
		}
		if c == '\\' {
			if t.pos+1 >= len(t.src) {
				return Token{}, errUnterminatedString(start)
			}
			esc := t.src[t.pos+1]
			if _, ok := doubleEscapes[esc]; !ok {
				return Token{}, errInvalidEscape(Position{t.line, t.col}, esc)
			}
			t.pos += 2
			t.col += 2
			continue
		}
		if c == '"' {
			t.pos++
			t.col++
			return Token{Kind: STRING, Text: string(t.src[begin:t.pos]), Pos: start}, nil
		}
		t.advance(1)
	}
}

func (t *Tokenizer) scanSingleString() (Token, error) {
	start := t.pos1()
	begin := t.pos
	t.pos++ // opening quote
	t.col++
	for {
		if t.pos >= len(t.src) {
			return Token{}, errUnterminatedSingleString(start)
		}
		c := t.src[t.pos]
		if c == '\n' {
			return Token{}, errUnterminatedSingleString(start)
		}
		if c == '\'' {
			// "''" denotes a literal quote; otherwise this closes the string.
			if t.pos+1 < len(t.src) && t.src[t.pos+1] == '\'' {
				t.pos += 2
				t.col += 2
				continue
			}
			t.pos++
			t.col++
			return Token{Kind: SINGLE_STRING, Text: string(t.src[begin:t.pos]), Pos: start}, nil
		}
		t.advance(1)
	}
}

// scanNumber recognizes an optional leading sign, digits, and an optional
// '.' followed by digits. No scientific/hex/octal/binary notation (§4.1).
func (t *Tokenizer) scanNumber() (Token, error) {
	start := t.pos1()
	begin := t.pos
	if t.src[t.pos] == '-' || t.src[t.pos] == '+' {
		t.pos++
		t.col++
	}
	digitsStart := t.pos
	for t.pos < len(t.src) && t.src[t.pos] >= '0' && t.src[t.pos] <= '9' {
		t.pos++
		t.col++
	}
	if t.pos == digitsStart {
		text := string(t.src[begin:t.pos])
		return Token{}, errMalformedNumber(start, text)
	}

	kind := INT
	if t.pos+1 < len(t.src) && t.src[t.pos] == '.' && t.src[t.pos+1] >= '0' && t.src[t.pos+1] <= '9' {
		kind = FLOAT
		t.pos++ // '.'
		t.col++
		for t.pos < len(t.src) && t.src[t.pos] >= '0' && t.src[t.pos] <= '9' {
			t.pos++
			t.col++
		}
	}

	return Token{Kind: kind, Text: string(t.src[begin:t.pos]), Pos: start}, nil
}

var keywords = map[string]Kind{
	"true":  BOOL,
	"false": BOOL,
	"null":  NULL,
}

func (t *Tokenizer) scanIdent() (Token, error) {
	start := t.pos1()
	begin := t.pos
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			t.pos++
			t.col++
			continue
		}
		break
	}
	text := string(t.src[begin:t.pos])
	kind := IDENT
	if k, ok := keywords[text]; ok {
		kind = k
	}
	return Token{Kind: kind, Text: text, Pos: start}, nil
}

// ReservedWord reports whether text is one of the reserved bare
// identifiers (I6) that may not be used unquoted as a key: null, true,
// false, int, float, str, bool.
func ReservedWord(text string) bool {
	switch text {
	case "null", "true", "false", "int", "float", "str", "bool":
		return true
	default:
		return false
	}
}
