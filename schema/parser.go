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
	"strconv"

	"github.com/DarrenHaba/ftml/ast"
	"github.com/DarrenHaba/ftml/token"
)

// Document is the root of a parsed schema: the enumerated field list at
// schema scope (§4.4's `Schema := (Field Newline+)* EOF`).
type Document struct {
	Fields *Fields
}

// Parse lexes and parses src as schema text (C4), resolving and validating
// constraint names and default values against reg. Schema errors are
// fatal: a non-empty error slice means no usable Document is returned
// (§7's "Schema errors are fatal to the schema").
//
// Grounded on idol/syntax/syntax.go's parseCtx[T] cursor pattern, reused
// here for a second grammar layered over the same token package (§4.4).
func Parse(src []byte, reg *Registry) (*Document, []error) {
	if reg == nil {
		reg = Default
	}
	toks, err := tokenizeAll(src)
	if err != nil {
		return nil, []error{err}
	}

	p := &parser{toks: toks, reg: reg}
	fields := p.parseSchema()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return &Document{Fields: fields}, nil
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
	reg  *Registry
	errs []error
}

func (p *parser) nextStructIdx() int {
	i := p.cur
	for p.toks[i].IsTrivia() {
		i++
	}
	return i
}

func (p *parser) peek() token.Token     { return p.toks[p.nextStructIdx()] }
func (p *parser) peekIdx() int          { return p.nextStructIdx() }
func (p *parser) advancePast(idx int)   { p.cur = idx + 1 }

func describe(tk token.Token) string {
	if tk.Kind == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tk.Kind, tk.Text)
}

func (p *parser) errorf(pos token.Position, expected string, got token.Token) {
	p.errs = append(p.errs, errUnexpectedToken(pos, expected, describe(got)))
}

// parseSchema implements `Schema := (Field Newline+)* EOF`.
func (p *parser) parseSchema() *Fields {
	fields := NewFields()
	for {
		idx := p.peekIdx()
		if p.toks[idx].Kind == token.EOF {
			p.advancePast(idx)
			return fields
		}
		f, ok := p.parseField()
		if !ok {
			return fields
		}
		if !fields.Set(f) {
			p.errs = append(p.errs, errDuplicateField(p.toks[idx].Pos, f.Name))
			return fields
		}
	}
}

// parseField implements `Field := Key Optional? ':' TypeExpr Default?`.
func (p *parser) parseField() (*Field, bool) {
	nameIdx := p.peekIdx()
	nameTok := p.toks[nameIdx]

	var name string
	switch nameTok.Kind {
	case token.IDENT:
		name = nameTok.Text
	case token.STRING:
		name = decodeQuoted(nameTok.Text)
	default:
		p.errorf(nameTok.Pos, "a field name", nameTok)
		return nil, false
	}
	p.advancePast(nameIdx)

	f := &Field{Name: name}

	if p.peek().Kind == token.QUESTION {
		p.advancePast(p.peekIdx())
		f.Optional = true
	}

	colonIdx := p.peekIdx()
	if p.toks[colonIdx].Kind != token.COLON {
		p.errorf(p.toks[colonIdx].Pos, "':'", p.toks[colonIdx])
		return nil, false
	}
	p.advancePast(colonIdx)

	typ, ok := p.parseTypeExpr()
	if !ok {
		return nil, false
	}
	f.Type = typ

	if p.peek().Kind == token.EQUAL {
		eqIdx := p.peekIdx()
		p.advancePast(eqIdx)
		valIdx := p.peekIdx()
		val, end, err := ast.ParseValueAt(p.toks, valIdx)
		if err != nil {
			p.errs = append(p.errs, err)
			return nil, false
		}
		p.advancePast(end)
		if reason := p.reg.checkDefault(typ, val); reason != "" {
			p.errs = append(p.errs, errDefaultInvalid(p.toks[valIdx].Pos, f.Name, reason))
			return nil, false
		}
		f.HasDefault = true
		f.Default = val
	}

	return f, true
}

// parseTypeExpr implements `TypeExpr := Union`.
func (p *parser) parseTypeExpr() (Type, bool) {
	return p.parseUnion()
}

// parseUnion implements `Union := Atom ('|' Atom)*`, splitting on '|' only
// at nesting depth zero (handled naturally here since parseAtom consumes
// balanced delimiters internally).
func (p *parser) parseUnion() (Type, bool) {
	first, ok := p.parseAtom()
	if !ok {
		return nil, false
	}
	if p.peek().Kind != token.PIPE {
		return first, true
	}
	alts := []Type{first}
	for p.peek().Kind == token.PIPE {
		p.advancePast(p.peekIdx())
		next, ok := p.parseAtom()
		if !ok {
			return nil, false
		}
		alts = append(alts, next)
	}
	return &Union{Alternatives: alts}, true
}

// parseAtom implements the Atom production: a scalar name, a list, or an
// object, each optionally followed by a Constraints clause.
func (p *parser) parseAtom() (Type, bool) {
	idx := p.peekIdx()
	tk := p.toks[idx]

	switch tk.Kind {
	case token.IDENT:
		p.advancePast(idx)
		if !ReservedScalarNames[tk.Text] {
			if _, ok := p.reg.Lookup(tk.Text); !ok {
				p.errs = append(p.errs, errUnknownType(tk.Pos, tk.Text))
				return nil, false
			}
		}
		constraints, ok := p.parseOptionalConstraints(tk.Text)
		if !ok {
			return nil, false
		}
		return &Scalar{Kind: tk.Text, Constraints: constraints}, true

	case token.LBRACKET:
		p.advancePast(idx)
		var elem Type
		if p.peek().Kind != token.RBRACKET {
			e, ok := p.parseTypeExpr()
			if !ok {
				return nil, false
			}
			elem = e
		}
		closeIdx := p.peekIdx()
		if p.toks[closeIdx].Kind != token.RBRACKET {
			p.errorf(p.toks[closeIdx].Pos, "']'", p.toks[closeIdx])
			return nil, false
		}
		p.advancePast(closeIdx)
		constraints, ok := p.parseOptionalConstraints("list")
		if !ok {
			return nil, false
		}
		return &List{ElemType: elem, Constraints: constraints}, true

	case token.LBRACE:
		return p.parseObjectAtom()

	default:
		p.errorf(tk.Pos, "a type expression", tk)
		return nil, false
	}
}

// parseObjectAtom implements the `{ ObjectBody }` atom, disambiguating
// pattern vs. enumerated form by peeking for a ':' before the first ','
// or '}' (§4.4).
func (p *parser) parseObjectAtom() (Type, bool) {
	openIdx := p.peekIdx()
	openPos := p.toks[openIdx].Pos
	p.advancePast(openIdx)

	if p.peek().Kind == token.RBRACE {
		p.advancePast(p.peekIdx())
		constraints, ok := p.parseOptionalConstraints("object")
		if !ok {
			return nil, false
		}
		return &Object{Fields: NewFields(), Constraints: constraints}, true
	}

	if p.looksLikeEnumeratedField() {
		fields := NewFields()
		for {
			f, ok := p.parseField()
			if !ok {
				return nil, false
			}
			if !fields.Set(f) {
				p.errs = append(p.errs, errDuplicateField(openPos, f.Name))
				return nil, false
			}
			if p.peek().Kind == token.COMMA {
				p.advancePast(p.peekIdx())
				if p.peek().Kind == token.RBRACE {
					break
				}
				continue
			}
			break
		}
		closeIdx := p.peekIdx()
		if p.toks[closeIdx].Kind != token.RBRACE {
			p.errorf(p.toks[closeIdx].Pos, "',' or '}'", p.toks[closeIdx])
			return nil, false
		}
		p.advancePast(closeIdx)
		constraints, ok := p.parseOptionalConstraints("object")
		if !ok {
			return nil, false
		}
		return &Object{Fields: fields, Constraints: constraints}, true
	}

	valueType, ok := p.parseTypeExpr()
	if !ok {
		return nil, false
	}
	if nested, ok := valueType.(*Object); ok && !nested.IsEnumerated() {
		p.errs = append(p.errs, errPatternKeyCollision(openPos))
		return nil, false
	}
	closeIdx := p.peekIdx()
	if p.toks[closeIdx].Kind != token.RBRACE {
		p.errorf(p.toks[closeIdx].Pos, "'}'", p.toks[closeIdx])
		return nil, false
	}
	p.advancePast(closeIdx)
	constraints, ok := p.parseOptionalConstraints("object")
	if !ok {
		return nil, false
	}
	return &Object{ValueType: valueType, Constraints: constraints}, true
}

// looksLikeEnumeratedField peeks past an identifier/quoted-string key and
// an optional '?' to see whether a ':' follows, per §4.4's disambiguation
// rule ("If the first identifier is followed by ':' -> enumerated").
func (p *parser) looksLikeEnumeratedField() bool {
	idx := p.peekIdx()
	tk := p.toks[idx]
	if tk.Kind != token.IDENT && tk.Kind != token.STRING {
		return false
	}
	i := idx + 1
	for p.toks[i].IsTrivia() {
		i++
	}
	if p.toks[i].Kind == token.QUESTION {
		i++
		for p.toks[i].IsTrivia() {
			i++
		}
	}
	return p.toks[i].Kind == token.COLON
}

// parseOptionalConstraints implements `Constraints := '<' Constraint (','
// Constraint)* '>'`, resolving aliases and rejecting unregistered names for
// the given kind.
func (p *parser) parseOptionalConstraints(kind string) (map[string]ConstraintValue, bool) {
	if p.peek().Kind != token.LANGLE {
		return nil, true
	}
	openIdx := p.peekIdx()
	p.advancePast(openIdx)

	out := make(map[string]ConstraintValue)
	entry, hasEntry := p.reg.Lookup(kind)

	first := true
	for {
		if p.peek().Kind == token.RANGLE {
			p.advancePast(p.peekIdx())
			return out, true
		}
		if p.peek().Kind == token.EOF {
			p.errs = append(p.errs, errUnterminatedConstraints(p.toks[openIdx].Pos))
			return nil, false
		}
		if !first {
			if p.peek().Kind != token.COMMA {
				p.errorf(p.peek().Pos, "',' or '>'", p.peek())
				return nil, false
			}
			p.advancePast(p.peekIdx())
		}
		first = false

		nameIdx := p.peekIdx()
		nameTok := p.toks[nameIdx]
		if nameTok.Kind != token.IDENT {
			p.errorf(nameTok.Pos, "a constraint name", nameTok)
			return nil, false
		}
		p.advancePast(nameIdx)

		canon := nameTok.Text
		if hasEntry {
			if alias, ok := entry.Aliases[nameTok.Text]; ok {
				canon = alias
			}
			if _, ok := entry.Constraints[canon]; !ok {
				p.errs = append(p.errs, errUnknownConstraint(nameTok.Pos, kind, nameTok.Text))
				return nil, false
			}
		}

		eqIdx := p.peekIdx()
		if p.toks[eqIdx].Kind != token.EQUAL {
			p.errorf(p.toks[eqIdx].Pos, "'='", p.toks[eqIdx])
			return nil, false
		}
		p.advancePast(eqIdx)

		val, ok := p.parseConstraintValue()
		if !ok {
			return nil, false
		}
		out[canon] = val
	}
}

// parseConstraintValue implements `ConstraintValue := STRING | INT | FLOAT
// | BOOL | NULL | '[' ConstraintValue (',' ConstraintValue)* ']'`.
func (p *parser) parseConstraintValue() (ConstraintValue, bool) {
	idx := p.peekIdx()
	tk := p.toks[idx]

	switch tk.Kind {
	case token.STRING:
		p.advancePast(idx)
		return stringValue(decodeQuoted(tk.Text)), true
	case token.SINGLE_STRING:
		p.advancePast(idx)
		return stringValue(decodeSingleQuoted(tk.Text)), true
	case token.INT:
		p.advancePast(idx)
		n, err := strconv.ParseInt(tk.Text, 10, 64)
		if err != nil {
			p.errs = append(p.errs, errMalformedConstraint(tk.Pos, tk.Text, err.Error()))
			return ConstraintValue{}, false
		}
		return intValue(n), true
	case token.FLOAT:
		p.advancePast(idx)
		f, err := strconv.ParseFloat(tk.Text, 64)
		if err != nil {
			p.errs = append(p.errs, errMalformedConstraint(tk.Pos, tk.Text, err.Error()))
			return ConstraintValue{}, false
		}
		return floatValue(f), true
	case token.BOOL:
		p.advancePast(idx)
		return boolValue(tk.Text == "true"), true
	case token.NULL:
		p.advancePast(idx)
		return nullValue(), true
	case token.LBRACKET:
		p.advancePast(idx)
		var items []ConstraintValue
		first := true
		for {
			if p.peek().Kind == token.RBRACKET {
				p.advancePast(p.peekIdx())
				return listValue(items), true
			}
			if !first {
				if p.peek().Kind != token.COMMA {
					p.errorf(p.peek().Pos, "',' or ']'", p.peek())
					return ConstraintValue{}, false
				}
				p.advancePast(p.peekIdx())
				if p.peek().Kind == token.RBRACKET {
					continue
				}
			}
			first = false
			v, ok := p.parseConstraintValue()
			if !ok {
				return ConstraintValue{}, false
			}
			items = append(items, v)
		}
	default:
		p.errorf(tk.Pos, "a constraint value", tk)
		return ConstraintValue{}, false
	}
}

func decodeQuoted(raw string) string {
	inner := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			}
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

func decodeSingleQuoted(raw string) string {
	inner := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\'' && i+1 < len(inner) && inner[i+1] == '\'' {
			out = append(out, '\'')
			i++
			continue
		}
		out = append(out, inner[i])
	}
	return string(out)
}
