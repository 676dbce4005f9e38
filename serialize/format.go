// Package serialize implements the world's wire schema and its canonical
// textual encoding: a nested list literal of numbers, comma-separated,
// braces as grouping, no strings and no nulls (spec.md §6). Encode and
// Decode below are the generic grammar; Serialize/Deserialize in
// serialize.go map that grammar onto a world snapshot.
package serialize

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Value is either a float64 leaf or a []Value list — the only two shapes
// the wire grammar admits.
type Value interface{}

// Encode renders v as the canonical nested list literal.
func Encode(v Value) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []Value:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = Encode(e)
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		panic(errors.Errorf("serialize: unsupported value type %T", v))
	}
}

// Decode parses the canonical nested list literal grammar.
func Decode(s string) (Value, error) {
	p := &parser{s: s}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, errors.Errorf("trailing data at offset %d", p.pos)
	}
	return v, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseValue() (Value, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return nil, errors.New("unexpected end of input")
	}
	if p.s[p.pos] == '{' {
		return p.parseList()
	}
	return p.parseNumber()
}

func (p *parser) parseList() (Value, error) {
	p.pos++ // consume '{'
	items := []Value{}

	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == '}' {
		p.pos++
		return items, nil
	}

	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, errors.New("unterminated list")
		}
		switch p.s[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return items, nil
		default:
			return nil, errors.Errorf("expected ',' or '}' at offset %d", p.pos)
		}
	}
}

func (p *parser) parseNumber() (Value, error) {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return nil, errors.Errorf("expected number at offset %d", start)
	}
	f, err := strconv.ParseFloat(p.s[start:p.pos], 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid number %q", p.s[start:p.pos])
	}
	return f, nil
}
