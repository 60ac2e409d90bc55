// Package parse implements the JSON parser state machine (component E): a
// recursive-descent parser over an internal/read.Source, capped at 128
// levels of array/object nesting, producing a plain interface{} tree
// (map[string]interface{}, []interface{}, string, bool, nil,
// numlex.Number) that pkg/json either hands back as a Value tree or
// decodes onto a caller's Go type via reflection.
//
// Grounded on shapestone-shape-json/internal/fastparser/parser.go's
// control flow (Parse/parseValue/parseObject/parseArray/parseString/
// parseNumber), adapted to run over internal/read.Source instead of a raw
// []byte index, and extended with the recursion cap and position-carrying
// errors spec.md §4.1/§5 require.
package parse

import (
	"github.com/shapestone/jsoncodec/internal/numlex"
	"github.com/shapestone/jsoncodec/internal/read"
)

// MaxDepth is the maximum nesting depth of arrays and objects; exceeding
// it fails with KindRecursionLimitExceeded at the opening bracket.
const MaxDepth = 128

const KindRecursionLimitExceeded = "recursion limit exceeded"
const KindExpectedValue = "expected value"
const KindExpectedColon = "expected `:`"
const KindExpectedListCommaOrEnd = "expected `,` or `]`"
const KindExpectedObjectCommaOrEnd = "expected `,` or `}`"
const KindKeyMustBeAString = "key must be a string"
const KindTrailingComma = "trailing comma"
const KindTrailingCharacters = "trailing characters"
const KindEofWhileParsingList = "eof while parsing a list"
const KindEofWhileParsingObject = "eof while parsing an object"
const KindEofWhileParsingValue = "eof while parsing a value"
const KindExpectedSomeIdent = "expected ident"

// Parser drives src through the JSON grammar.
type Parser struct {
	src     read.Source
	scratch []byte
	depth   int
	// Validate controls whether a lone surrogate in a \u escape is
	// rejected (true) or encoded as a 3-byte sequence (false). Raw string
	// bytes are not checked for well-formed UTF-8 either way. Defaults to
	// true; StreamDecoder and Unmarshal always use true.
	Validate bool
}

// New wraps src for parsing. Validate defaults to true.
func New(src read.Source) *Parser {
	return &Parser{src: src, Validate: true}
}

func (p *Parser) err(kind string) error {
	return &read.Error{Kind: kind, Pos: p.src.PeekPosition()}
}

func (p *Parser) errAt(kind string, pos read.Position) error {
	return &read.Error{Kind: kind, Pos: pos}
}

// ParseTopLevel parses exactly one JSON value, skipping leading and
// trailing whitespace, and requires the input be fully consumed.
func (p *Parser) ParseTopLevel() (interface{}, error) {
	p.skipWhitespace()
	v, err := p.ParseValue()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if _, ok := p.src.Peek(); ok {
		return nil, p.err(KindTrailingCharacters)
	}
	return v, nil
}

// More reports whether another top-level value follows whitespace, for
// StreamDecoder's whitespace-separated iteration.
func (p *Parser) More() bool {
	p.skipWhitespace()
	_, ok := p.src.Peek()
	return ok
}

func (p *Parser) skipWhitespace() {
	for {
		b, ok := p.src.Peek()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			p.src.Discard()
		default:
			return
		}
	}
}

// ParseValue parses one JSON value starting at the current position
// (leading whitespace must already be skipped by the caller).
func (p *Parser) ParseValue() (interface{}, error) {
	b, ok := p.src.Peek()
	if !ok {
		return nil, p.err(KindEofWhileParsingValue)
	}
	switch {
	case b == '{':
		return p.parseObject()
	case b == '[':
		return p.parseArray()
	case b == '"':
		p.src.Discard()
		ref, err := p.src.ParseString(&p.scratch, p.Validate)
		if err != nil {
			return nil, err
		}
		return ref.Value, nil
	case b == 't':
		return p.parseLiteral("true", true)
	case b == 'f':
		return p.parseLiteral("false", false)
	case b == 'n':
		return p.parseLiteralNull()
	case b == '-' || (b >= '0' && b <= '9'):
		p.src.Discard()
		return numlex.Lex(p.src, b)
	default:
		return nil, p.err(KindExpectedValue)
	}
}

func (p *Parser) parseLiteral(lit string, val bool) (interface{}, error) {
	for i := 0; i < len(lit); i++ {
		b, ok := p.src.Next()
		if !ok || b != lit[i] {
			return nil, p.err(KindExpectedSomeIdent)
		}
	}
	return val, nil
}

func (p *Parser) parseLiteralNull() (interface{}, error) {
	for i := 0; i < len("null"); i++ {
		b, ok := p.src.Next()
		if !ok || b != "null"[i] {
			return nil, p.err(KindExpectedSomeIdent)
		}
	}
	return nil, nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return p.err(KindRecursionLimitExceeded)
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

func (p *Parser) parseArray() (interface{}, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.src.Discard() // '['
	p.skipWhitespace()

	var out []interface{}
	if b, ok := p.src.Peek(); ok && b == ']' {
		p.src.Discard()
		return out, nil
	}

	for {
		p.skipWhitespace()
		if _, ok := p.src.Peek(); !ok {
			return nil, p.err(KindEofWhileParsingList)
		}
		v, err := p.ParseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		p.skipWhitespace()
		b, ok := p.src.Peek()
		if !ok {
			return nil, p.err(KindEofWhileParsingList)
		}
		switch b {
		case ',':
			p.src.Discard()
			p.skipWhitespace()
			if b2, ok := p.src.Peek(); ok && b2 == ']' {
				return nil, p.err(KindTrailingComma)
			}
		case ']':
			p.src.Discard()
			return out, nil
		default:
			return nil, p.err(KindExpectedListCommaOrEnd)
		}
	}
}

func (p *Parser) parseObject() (interface{}, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.src.Discard() // '{'
	p.skipWhitespace()

	out := make(map[string]interface{})
	if b, ok := p.src.Peek(); ok && b == '}' {
		p.src.Discard()
		return out, nil
	}

	for {
		p.skipWhitespace()
		b, ok := p.src.Peek()
		if !ok {
			return nil, p.err(KindEofWhileParsingObject)
		}
		if b != '"' {
			return nil, p.err(KindKeyMustBeAString)
		}
		p.src.Discard()
		ref, err := p.src.ParseString(&p.scratch, p.Validate)
		if err != nil {
			return nil, err
		}
		key := ref.Value

		p.skipWhitespace()
		b, ok = p.src.Peek()
		if !ok || b != ':' {
			return nil, p.err(KindExpectedColon)
		}
		p.src.Discard()
		p.skipWhitespace()

		v, err := p.ParseValue()
		if err != nil {
			return nil, err
		}
		out[key] = v

		p.skipWhitespace()
		b, ok = p.src.Peek()
		if !ok {
			return nil, p.err(KindEofWhileParsingObject)
		}
		switch b {
		case ',':
			p.src.Discard()
			p.skipWhitespace()
			if b2, ok := p.src.Peek(); ok && b2 == '}' {
				return nil, p.err(KindTrailingComma)
			}
		case '}':
			p.src.Discard()
			return out, nil
		default:
			return nil, p.err(KindExpectedObjectCommaOrEnd)
		}
	}
}
