package model

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/teranos/shapeshare/errors"
)

// ParseType parses a type expression such as "Vec<Option<u32>>",
// "HashMap<String, T>", "[u8; 4]", "[T]", "()" or "Page<User>".
func ParseType(expr string) (Type, error) {
	p := &typeParser{src: expr}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(expr string) Type {
	t, err := ParseType(expr)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInvalidModel, "type %q at offset %d: %s",
		p.src, p.pos, errors.Newf(format, args...).Error())
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *typeParser) parse() (Type, error) {
	switch p.peek() {
	case 0:
		return nil, p.errorf("expected a type")
	case '(':
		p.pos++
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return Prim(Unit), nil
	case '[':
		return p.parseBracket()
	}

	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected a type name")
	}

	var args []Type
	if p.peek() == '<' {
		p.pos++
		var err error
		if args, err = p.parseArgs(); err != nil {
			return nil, err
		}
	}

	switch name {
	case "Vec", "Option":
		if len(args) != 1 {
			return nil, p.errorf("%s takes one type argument, got %d", name, len(args))
		}
		if name == "Vec" {
			return List(args[0]), nil
		}
		return Optional(args[0]), nil
	case "HashMap":
		if len(args) != 2 {
			return nil, p.errorf("HashMap takes two type arguments, got %d", len(args))
		}
		return Map(args[0], args[1]), nil
	}
	if k, ok := primitivesByName[name]; ok {
		if len(args) > 0 {
			return nil, p.errorf("%s takes no type arguments", name)
		}
		return Prim(k), nil
	}
	return Named(name, args...), nil
}

func (p *typeParser) parseArgs() ([]Type, error) {
	var args []Type
	for {
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return args, nil
		default:
			return nil, p.errorf("expected ',' or '>'")
		}
	}
}

func (p *typeParser) parseBracket() (Type, error) {
	p.pos++
	elem, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.peek() == ']' {
		p.pos++
		return SliceOf(elem), nil
	}
	if err := p.expect(';'); err != nil {
		return nil, err
	}
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return nil, p.errorf("expected array length")
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	return FixedArray(elem, n), nil
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if c != '_' && c != ':' && c != '.' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			break
		}
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}
