// Package numlex lexes and classifies JSON numeric literals, shared by the
// parser (component E) and the dynamic Value tree (pkg/json).
package numlex

import (
	"math"
	"strconv"

	"github.com/shapestone/jsoncodec/internal/read"
)

// Kind distinguishes how a Number is stored internally.
type Kind int

const (
	KindInt64 Kind = iota
	KindUint64
	KindFloat64
)

// Number is the tagged union spec.md §3 requires: exact i64/u64 when the
// literal has no fraction/exponent and fits, float64 when it has one of
// those, and NumberOutOfRange when an integer literal doesn't fit i64/u64
// (spec.md §4.3: no arbitrary_precision fallback in scope). Grounded on
// shapestone-shape-json/internal/fastparser/parser.go's parseNumber
// classification, adapted to reject integer overflow instead of the
// teacher's silent float fallback.
type Number struct {
	kind  Kind
	i64   int64
	u64   uint64
	f64   float64
}

func Int64(v int64) Number   { return Number{kind: KindInt64, i64: v} }
func Uint64(v uint64) Number { return Number{kind: KindUint64, u64: v} }
func Float64(v float64) Number { return Number{kind: KindFloat64, f64: v} }

func (n Number) Kind() Kind { return n.kind }

func (n Number) IsInt() bool   { return n.kind == KindInt64 || n.kind == KindUint64 }
func (n Number) IsFloat() bool { return n.kind == KindFloat64 }

func (n Number) Int64() (int64, bool) {
	switch n.kind {
	case KindInt64:
		return n.i64, true
	case KindUint64:
		if n.u64 > 1<<63-1 {
			return 0, false
		}
		return int64(n.u64), true
	default:
		return 0, false
	}
}

func (n Number) Uint64() (uint64, bool) {
	switch n.kind {
	case KindUint64:
		return n.u64, true
	case KindInt64:
		if n.i64 < 0 {
			return 0, false
		}
		return uint64(n.i64), true
	default:
		return 0, false
	}
}

func (n Number) Float64() float64 {
	switch n.kind {
	case KindInt64:
		return float64(n.i64)
	case KindUint64:
		return float64(n.u64)
	default:
		return n.f64
	}
}

// String renders the number the same way it would be emitted as JSON:
// exact decimal for integers, shortest round-trip decimal for floats.
func (n Number) String() string {
	switch n.kind {
	case KindInt64:
		return strconv.FormatInt(n.i64, 10)
	case KindUint64:
		return strconv.FormatUint(n.u64, 10)
	default:
		return strconv.FormatFloat(n.f64, 'g', -1, 64)
	}
}

// Lex consumes a JSON number from src, given that firstByte (either '-' or
// an ASCII digit) has already been read from src. Grounded on
// shapestone-shape-json/internal/fastparser/parser.go's parseNumber and
// internal/tokenizer/tokenizer.go's numberMatcherByte grammar.
func Lex(src read.Source, firstByte byte) (Number, error) {
	var buf []byte
	buf = append(buf, firstByte)

	neg := firstByte == '-'
	if neg {
		b, ok := src.Peek()
		if !ok || b < '0' || b > '9' {
			return Number{}, &read.Error{Kind: read.KindInvalidNumber, Pos: src.PeekPosition()}
		}
	}

	// Integer part: '0' or [1-9][0-9]*
	if neg {
		b, _ := src.Next()
		buf = append(buf, b)
		if b == '0' {
			// leading zero: no more digits allowed in integer part
		} else {
			buf = consumeDigits(src, buf)
		}
	} else if firstByte == '0' {
		// nothing more to consume for the integer part
	} else {
		buf = consumeDigits(src, buf)
	}

	isFloat := false

	if b, ok := src.Peek(); ok && b == '.' {
		isFloat = true
		src.Discard()
		buf = append(buf, '.')
		start := len(buf)
		buf = consumeDigits(src, buf)
		if len(buf) == start {
			return Number{}, &read.Error{Kind: read.KindInvalidNumber, Pos: src.PeekPosition()}
		}
	}

	if b, ok := src.Peek(); ok && (b == 'e' || b == 'E') {
		isFloat = true
		src.Discard()
		buf = append(buf, b)
		if b2, ok := src.Peek(); ok && (b2 == '+' || b2 == '-') {
			src.Discard()
			buf = append(buf, b2)
		}
		start := len(buf)
		buf = consumeDigits(src, buf)
		if len(buf) == start {
			return Number{}, &read.Error{Kind: read.KindInvalidNumber, Pos: src.PeekPosition()}
		}
	}

	s := string(buf)

	if !isFloat {
		if !neg {
			if u, err := strconv.ParseUint(s, 10, 64); err == nil {
				return Uint64(u), nil
			}
		} else {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return Int64(i), nil
			}
		}
		// No '.'/'e' present, so this is an integer literal that overflows
		// i64/u64: spec requires NumberOutOfRange here, not a silent float
		// fallback (that's only for arbitrary_precision, out of scope).
		return Number{}, &read.Error{Kind: read.KindNumberOutOfRange, Pos: src.PeekPosition()}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if math.IsInf(f, 0) {
			return Number{}, &read.Error{Kind: read.KindNumberOutOfRange, Pos: src.PeekPosition()}
		}
		return Number{}, &read.Error{Kind: read.KindInvalidNumber, Pos: src.PeekPosition()}
	}
	return Float64(f), nil
}

func consumeDigits(src read.Source, buf []byte) []byte {
	for {
		b, ok := src.Peek()
		if !ok || b < '0' || b > '9' {
			return buf
		}
		src.Discard()
		buf = append(buf, b)
	}
}
