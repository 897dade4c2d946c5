package parser

import (
	"strconv"
	"strings"

	"github.com/rmoseley/steptools/steperrors"
)

// entity_parser.go converts one DATA-section statement into an Entity via
// recursive descent over the STEP parameter grammar. A single malformed
// record aborts the whole parse: recovering would risk silently dropping
// references.

// entParser parses a single entity statement.
type entParser struct {
	s    string
	pos  int
	base int64 // byte offset of s[0] within the input buffer
}

// parseEntityStatement parses `#<id>=<TYPE>(<params>)` or the complex form
// `#<id>=(<TYPE1>(...)<TYPE2>(...))`. The statement text carries no
// terminating semicolon (the lexer consumed it).
func parseEntityStatement(stmt statement) (*Entity, error) {
	p := &entParser{s: stmt.text, base: stmt.offset}

	if !p.eat('#') {
		return nil, p.errExpected("'#'")
	}
	id, ok := p.parseDigits()
	if !ok {
		return nil, p.errExpected("entity id")
	}
	p.skipWS()
	if !p.eat('=') {
		return nil, p.errExpected("'='")
	}
	p.skipWS()

	e := &Entity{ID: id}
	if p.peek() == '(' {
		complexRecords, err := p.parseComplexRecords()
		if err != nil {
			return nil, err
		}
		e.Complex = complexRecords
	} else {
		typeName, ok := p.parseKeyword()
		if !ok {
			return nil, p.errExpected("entity type keyword")
		}
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		e.Type = typeName
		e.Params = params
	}

	p.skipWS()
	if p.pos != len(p.s) {
		return nil, p.errExpected("end of statement")
	}

	// Scan the right-hand side once for the reference set. The raw-text
	// scanner is cheaper than a value-tree walk and its result is reused by
	// every canonicalization iteration.
	eq := strings.IndexByte(stmt.text, '=')
	e.refs = AppendReferences(nil, stmt.text[eq+1:])
	return e, nil
}

// parseComplexRecords parses `(TYPE1(...)TYPE2(...))`, the opening paren not
// yet consumed.
func (p *entParser) parseComplexRecords() ([]SimpleRecord, error) {
	p.eat('(')
	var records []SimpleRecord
	for {
		p.skipWS()
		if p.eat(')') {
			if len(records) == 0 {
				return nil, p.errExpected("at least one sub-record in complex entity")
			}
			return records, nil
		}
		typeName, ok := p.parseKeyword()
		if !ok {
			return nil, p.errExpected("sub-record type keyword")
		}
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		records = append(records, SimpleRecord{Type: typeName, Params: params})
	}
}

// parseParamList parses `(<value>,<value>,...)` including the empty list.
func (p *entParser) parseParamList() ([]Value, error) {
	p.skipWS()
	if !p.eat('(') {
		return nil, p.errExpected("'('")
	}
	params := []Value{}
	p.skipWS()
	if p.eat(')') {
		return params, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		params = append(params, v)
		p.skipWS()
		if p.eat(',') {
			p.skipWS()
			continue
		}
		if p.eat(')') {
			return params, nil
		}
		return nil, p.errExpected("',' or ')'")
	}
}

// parseValue parses one value of the parameter grammar.
func (p *entParser) parseValue() (Value, error) {
	switch c := p.peek(); {
	case c == '$':
		p.pos++
		return Omitted(), nil
	case c == '*':
		p.pos++
		return Derived(), nil
	case c == '#':
		p.pos++
		id, ok := p.parseDigits()
		if !ok {
			return Value{}, p.errExpected("digits after '#'")
		}
		return Ref(id), nil
	case c == '\'':
		return p.parseString()
	case c == '.':
		// Leading dot: a number like .5 or an enumeration like .TRUE.
		if d := p.peekAt(1); d >= '0' && d <= '9' {
			return p.parseNumber()
		}
		return p.parseEnum()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == '(':
		elems, err := p.parseParamList()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindList, List: elems}, nil
	case isKeywordStart(c):
		keyword, _ := p.parseKeyword()
		inner, err := p.parseParamList()
		if err != nil {
			return Value{}, err
		}
		if len(inner) != 1 {
			return Value{}, p.errExpected("exactly one value in typed parameter " + keyword)
		}
		return Typed(keyword, inner[0]), nil
	default:
		return Value{}, p.errExpected("value")
	}
}

// parseString parses a quoted string, preserving the inner text verbatim
// including doubled-quote escapes.
func (p *entParser) parseString() (Value, error) {
	start := p.pos
	p.pos++ // opening quote
	for p.pos < len(p.s) {
		if p.s[p.pos] != '\'' {
			p.pos++
			continue
		}
		if p.peekAt(1) == '\'' {
			p.pos += 2
			continue
		}
		inner := p.s[start+1 : p.pos]
		p.pos++
		return Str(inner), nil
	}
	return Value{}, &steperrors.SyntaxError{
		Offset:   p.base + int64(start),
		Expected: "closing quote",
		Found:    "end of statement",
	}
}

// parseEnum parses `.KEYWORD.`.
func (p *entParser) parseEnum() (Value, error) {
	p.pos++ // leading dot
	keyword, ok := p.parseKeyword()
	if !ok {
		return Value{}, p.errExpected("enumeration keyword")
	}
	if !p.eat('.') {
		return Value{}, p.errExpected("closing '.' of enumeration")
	}
	return Enum(keyword), nil
}

// parseNumber captures an integer or real lexeme verbatim:
// [+-]? digits [. digits*]? ([eE][+-]?digits)?  or  [+-]? . digits ...
func (p *entParser) parseNumber() (Value, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	intDigits := p.eatDigits()
	fracDigits := 0
	if p.peek() == '.' {
		p.pos++
		fracDigits = p.eatDigits()
	}
	if intDigits == 0 && fracDigits == 0 {
		return Value{}, p.errExpected("digits")
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		save := p.pos
		p.pos++
		if c := p.peek(); c == '-' || c == '+' {
			p.pos++
		}
		if p.eatDigits() == 0 {
			// Not an exponent after all; leave it for the caller to reject.
			p.pos = save
		}
	}
	return Number(p.s[start:p.pos]), nil
}

// parseKeyword consumes a STEP keyword: an upper-case letter or '!' (for
// user-defined keywords), followed by upper-case letters, digits, and
// underscores.
func (p *entParser) parseKeyword() (string, bool) {
	start := p.pos
	if !isKeywordStart(p.peek()) {
		return "", false
	}
	p.pos++
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.s[start:p.pos], true
}

func isKeywordStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || c == '!'
}

func (p *entParser) parseDigits() (int64, bool) {
	start := p.pos
	if p.eatDigits() == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(p.s[start:p.pos], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p *entParser) eatDigits() int {
	n := 0
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c < '0' || c > '9' {
			break
		}
		p.pos++
		n++
	}
	return n
}

func (p *entParser) skipWS() {
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			break
		}
		p.pos++
	}
}

func (p *entParser) peek() byte {
	if p.pos < len(p.s) {
		return p.s[p.pos]
	}
	return 0
}

func (p *entParser) peekAt(ahead int) byte {
	if p.pos+ahead < len(p.s) {
		return p.s[p.pos+ahead]
	}
	return 0
}

func (p *entParser) eat(c byte) bool {
	if p.pos < len(p.s) && p.s[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *entParser) errExpected(expected string) error {
	found := "end of statement"
	if p.pos < len(p.s) {
		found = strconv.Quote(string(p.s[p.pos]))
	}
	return &steperrors.SyntaxError{
		Offset:   p.base + int64(p.pos),
		Expected: expected,
		Found:    found,
	}
}
