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

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DarrenHaba/ftml/token"
)

// Parse lexes and parses src into a Document skeleton (C2), then — unless
// preserveComments is false — attaches comments to it in a second pass
// (C3). It returns every recovered parse error; callers should treat a
// non-empty slice as failure (§7's propagation policy), though the
// returned Document is populated as far as recovery allowed.
//
// Grounded on idol/syntax/syntax.go's parseCtx[T] pattern of a cursor over
// a pre-tokenized stream, generalized to FTML's document grammar (§4.2)
// and to the explicit two-pass comment model of §4.3.
func Parse(src []byte, preserveComments bool) (*Document, []error) {
	toks, err := tokenizeAll(src)
	if err != nil {
		return nil, []error{err}
	}

	p := &parser{toks: toks}
	doc := p.parseDocument()

	if preserveComments {
		attachComments(doc, toks)
	}

	return doc, p.errs
}

// ParseValueAt parses a single Value starting at token index idx within
// toks and returns it along with the index of the last token it consumed.
// Used by schema.Parse (C4) to parse Default expressions with the data
// grammar (§4.4: "Value is a data expression (C2 subset)"), reusing the
// same token stream the schema tokenizer already produced.
func ParseValueAt(toks []token.Token, idx int) (Value, int, error) {
	p := &parser{toks: toks, cur: idx}
	val, ok := p.parseValue()
	if !ok {
		if len(p.errs) > 0 {
			return nil, idx, p.errs[0]
		}
		return nil, idx, errUnexpectedToken(toks[idx].Pos, "a value", describe(toks[idx]))
	}
	_, end := val.tokRange()
	return val, end, nil
}

func tokenizeAll(src []byte) ([]token.Token, error) {
	tz, err := token.New(src)
	if err != nil {
		return nil, err
	}
	var out []token.Token
	for {
		tk, err := tz.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tk)
		if tk.Kind == token.EOF {
			return out, nil
		}
	}
}

type parser struct {
	toks []token.Token
	cur  int
	errs []error
}

func (p *parser) eofIdx() int {
	return len(p.toks) - 1
}

// nextStructIdx returns the index of the next non-trivia token at or
// after cur without consuming it.
func (p *parser) nextStructIdx() int {
	i := p.cur
	for p.toks[i].IsTrivia() {
		i++
	}
	return i
}

func (p *parser) peek() token.Token {
	return p.toks[p.nextStructIdx()]
}

func (p *parser) peekIdx() int {
	return p.nextStructIdx()
}

// advancePast consumes every token up to and including idx.
func (p *parser) advancePast(idx int) {
	p.cur = idx + 1
}

func describe(tk token.Token) string {
	if tk.Kind == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tk.Kind, tk.Text)
}

func (p *parser) errorf(pos Position, expected string, got token.Token) {
	p.errs = append(p.errs, errUnexpectedToken(pos, expected, describe(got)))
}

// recoverToRootBoundary skips tokens from the next non-trivia token until
// the following NEWLINE (inclusive) or EOF, per §4.2's root-scope recovery
// rule.
func (p *parser) recoverToRootBoundary() {
	i := p.nextStructIdx()
	for p.toks[i].Kind != token.EOF && p.toks[i].Kind != token.NEWLINE {
		i++
	}
	if p.toks[i].Kind == token.NEWLINE {
		i++
	}
	p.cur = i
}

// recoverToContainerBoundary skips tokens until the next COMMA at the
// current nesting depth, or the matching closing delimiter (left
// unconsumed for the caller), per §4.2's container-scope recovery rule.
func (p *parser) recoverToContainerBoundary() {
	depth := 0
	for {
		i := p.nextStructIdx()
		tk := p.toks[i]
		switch tk.Kind {
		case token.EOF:
			p.cur = i
			return
		case token.LBRACE, token.LBRACKET:
			depth++
		case token.RBRACE, token.RBRACKET:
			if depth == 0 {
				p.cur = i
				return
			}
			depth--
		case token.COMMA:
			if depth == 0 {
				p.cur = i + 1
				return
			}
		}
		p.cur = i + 1
	}
}

// parseDocument implements `Document := (Newline* KeyValue)* Newline* EOF`
// (comments ignored at this layer).
func (p *parser) parseDocument() *Document {
	doc := &Document{Items: NewFields()}

	for {
		idx := p.peekIdx()
		tk := p.toks[idx]
		if tk.Kind == token.EOF {
			p.advancePast(idx)
			break
		}

		kv, ok := p.parseKeyValue()
		if !ok {
			p.recoverToRootBoundary()
			continue
		}
		if !doc.Items.Set(kv) {
			p.errs = append(p.errs, errDuplicateKey(kv.Pos, kv.Key))
			continue
		}
	}

	return doc
}

func (p *parser) parseKeyValue() (*KeyValue, bool) {
	keyIdx := p.peekIdx()
	keyTok := p.toks[keyIdx]

	var key string
	var quoted bool
	switch keyTok.Kind {
	case token.IDENT:
		if token.ReservedWord(keyTok.Text) {
			p.errs = append(p.errs, errReservedKey(keyTok.Pos, keyTok.Text))
			return nil, false
		}
		key = keyTok.Text
	case token.STRING:
		key = decodeDoubleString(keyTok.Text)
		quoted = true
	case token.SINGLE_STRING:
		key = decodeSingleString(keyTok.Text)
		quoted = true
	default:
		p.errorf(keyTok.Pos, "a key (identifier or quoted string)", keyTok)
		return nil, false
	}
	p.advancePast(keyIdx)

	eqIdx := p.peekIdx()
	eqTok := p.toks[eqIdx]
	if eqTok.Kind != token.EQUAL {
		p.errorf(eqTok.Pos, "'='", eqTok)
		return nil, false
	}
	p.advancePast(eqIdx)

	val, ok := p.parseValue()
	if !ok {
		return nil, false
	}

	_, endIdx := val.tokRange()

	return &KeyValue{
		Key:       key,
		KeyQuoted: quoted,
		Value:     val,
		Pos:       keyTok.Pos,
		keyTokIdx: keyIdx,
		endTokIdx: endIdx,
	}, true
}

func (p *parser) parseValue() (Value, bool) {
	idx := p.peekIdx()
	tk := p.toks[idx]

	switch tk.Kind {
	case token.STRING, token.SINGLE_STRING, token.INT, token.FLOAT, token.BOOL, token.NULL:
		return p.parseScalar()
	case token.LBRACE:
		return p.parseObject()
	case token.LBRACKET:
		return p.parseList()
	default:
		p.errorf(tk.Pos, "a value", tk)
		return nil, false
	}
}

func (p *parser) parseScalar() (Value, bool) {
	idx := p.peekIdx()
	tk := p.toks[idx]
	p.advancePast(idx)

	s := &Scalar{Pos: tk.Pos, tokIdx: idx}
	switch tk.Kind {
	case token.STRING:
		s.Kind = ScalarString
		s.Str = decodeDoubleString(tk.Text)
	case token.SINGLE_STRING:
		s.Kind = ScalarString
		s.Str = decodeSingleString(tk.Text)
	case token.INT:
		v, err := strconv.ParseInt(tk.Text, 10, 64)
		if err != nil {
			p.errs = append(p.errs, &Error{Pos: tk.Pos, Message: fmt.Sprintf("invalid integer literal %q", tk.Text)})
			return nil, false
		}
		s.Kind = ScalarInt
		s.Int = v
	case token.FLOAT:
		v, err := strconv.ParseFloat(tk.Text, 64)
		if err != nil {
			p.errs = append(p.errs, &Error{Pos: tk.Pos, Message: fmt.Sprintf("invalid float literal %q", tk.Text)})
			return nil, false
		}
		s.Kind = ScalarFloat
		s.Flt = v
	case token.BOOL:
		s.Kind = ScalarBool
		s.Bool = tk.Text == "true"
	case token.NULL:
		s.Kind = ScalarNull
	}
	return s, true
}

// parseObject implements `Object := '{' (KVPair (',' KVPair)* ','?)? '}'`.
func (p *parser) parseObject() (Value, bool) {
	openIdx := p.peekIdx()
	p.advancePast(openIdx)

	obj := &Object{Pos: p.toks[openIdx].Pos, openTokIdx: openIdx}
	fields := NewFields()

	first := true
	for {
		idx := p.peekIdx()
		tk := p.toks[idx]
		if tk.Kind == token.RBRACE {
			p.advancePast(idx)
			obj.ClosePos = tk.Pos
			obj.closeTokIdx = idx
			obj.Fields = fields
			return obj, true
		}
		if tk.Kind == token.EOF {
			p.errs = append(p.errs, errUnterminated(obj.Pos, "object"))
			obj.ClosePos = tk.Pos
			obj.closeTokIdx = idx
			obj.Fields = fields
			return obj, false
		}
		if !first {
			if tk.Kind != token.COMMA {
				p.errorf(tk.Pos, "',' or '}'", tk)
				p.recoverToContainerBoundary()
				continue
			}
			p.advancePast(idx)
			// Trailing comma before '}'.
			if p.peek().Kind == token.RBRACE {
				continue
			}
		}
		first = false

		kv, ok := p.parseKeyValue()
		if !ok {
			p.recoverToContainerBoundary()
			continue
		}
		if !fields.Set(kv) {
			p.errs = append(p.errs, errDuplicateKey(kv.Pos, kv.Key))
		}
	}
}

// parseList implements `List := '[' (Value (',' Value)* ','?)? ']'`.
func (p *parser) parseList() (Value, bool) {
	openIdx := p.peekIdx()
	p.advancePast(openIdx)

	lst := &List{Pos: p.toks[openIdx].Pos, openTokIdx: openIdx}

	first := true
	for {
		idx := p.peekIdx()
		tk := p.toks[idx]
		if tk.Kind == token.RBRACKET {
			p.advancePast(idx)
			lst.ClosePos = tk.Pos
			lst.closeTokIdx = idx
			return lst, true
		}
		if tk.Kind == token.EOF {
			p.errs = append(p.errs, errUnterminated(lst.Pos, "list"))
			lst.ClosePos = tk.Pos
			lst.closeTokIdx = idx
			return lst, false
		}
		if !first {
			if tk.Kind != token.COMMA {
				p.errorf(tk.Pos, "',' or ']'", tk)
				p.recoverToContainerBoundary()
				continue
			}
			p.advancePast(idx)
			if p.peek().Kind == token.RBRACKET {
				continue
			}
		}
		first = false

		val, ok := p.parseValue()
		if !ok {
			p.recoverToContainerBoundary()
			continue
		}
		lst.Items = append(lst.Items, val)
	}
}

// decodeDoubleString strips the surrounding quotes and resolves the
// escapes recognized by the tokenizer (§4.1).
func decodeDoubleString(raw string) string {
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// decodeSingleString strips the surrounding quotes and resolves only the
// `''` -> `'` escape (§4.1); every other character is literal.
func decodeSingleString(raw string) string {
	inner := raw[1 : len(raw)-1]
	return strings.ReplaceAll(inner, "''", "'")
}
