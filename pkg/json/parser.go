package json

import (
	"bytes"
	"io"
	"math"

	"github.com/shapestone/jsoncodec/internal/numlex"
	"github.com/shapestone/jsoncodec/internal/parse"
	"github.com/shapestone/jsoncodec/internal/read"
)

// Parse parses s into a dynamic Value tree (component I), the DOM
// equivalent of the teacher's Parse(string) (*ast.ObjectNode, error) —
// rebuilt against this package's own Value type now that the
// shape-core-dependent ast package is gone (see DESIGN.md). Parses
// through internal/read.TextSource (component A's borrowing-from-text
// variant), not SliceSource, since the input here is a string the
// caller already owns.
func Parse(s string) (Value, error) {
	src := read.NewTextSource(s)
	p := parse.New(src)
	p.Validate = true
	out, err := p.ParseTopLevel()
	if err != nil {
		return Value{}, fromReadError(err)
	}
	return fromInterface(out), nil
}

// ParseReader parses all of r into a dynamic Value tree, streaming bytes
// through internal/read.ReaderSource rather than buffering r first.
func ParseReader(r io.Reader) (Value, error) {
	src := read.NewReaderSource(r)
	p := parse.New(src)
	out, err := p.ParseTopLevel()
	if err != nil {
		return Value{}, fromReadError(err)
	}
	return fromInterface(out), nil
}

// Validate reports whether input is syntactically valid JSON. It runs the
// full Parse and discards the resulting Value tree; there is no separate
// validation-only path that skips building the tree.
func Validate(input string) error {
	_, err := Parse(input)
	return err
}

// ValidateReader is Validate over an io.Reader.
func ValidateReader(r io.Reader) error {
	_, err := ParseReader(r)
	return err
}

// parseToInterface parses data into the raw interface{} tree
// internal/parse produces (map[string]interface{}, []interface{},
// string, bool, nil, numlex.Number), for Unmarshal's reflection-based
// decode path.
func parseToInterface(data []byte) (interface{}, error) {
	src := read.NewSliceSource(data)
	p := parse.New(src)
	out, err := p.ParseTopLevel()
	if err != nil {
		return nil, fromReadError(err)
	}
	return out, nil
}

func parseValueBytes(data []byte, validate bool) (Value, error) {
	src := read.NewSliceSource(data)
	p := parse.New(src)
	p.Validate = validate
	out, err := p.ParseTopLevel()
	if err != nil {
		return Value{}, fromReadError(err)
	}
	return fromInterface(out), nil
}

// encodeValue renders val through f into a freshly allocated []byte.
func encodeValue(val Value, f Formatter) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)
	if err := writeValue(buf, f, val); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func writeValue(buf *bytes.Buffer, f Formatter, val Value) error {
	switch val.kind {
	case KindNull:
		return f.WriteNull(buf)
	case KindBool:
		return f.WriteBool(buf, val.b)
	case KindNumber:
		return writeNumber(buf, f, val.n)
	case KindString:
		return writeQuotedString(f, buf, val.s)
	case KindArray:
		if err := f.BeginArray(buf); err != nil {
			return err
		}
		for i, item := range val.arr {
			if err := f.BeginArrayValue(buf, i == 0); err != nil {
				return err
			}
			if err := writeValue(buf, f, item); err != nil {
				return err
			}
			if err := f.EndArrayValue(buf); err != nil {
				return err
			}
		}
		return f.EndArray(buf)
	case KindObject:
		if err := f.BeginObject(buf); err != nil {
			return err
		}
		for i, k := range val.sortedKeys() {
			if err := f.BeginObjectKey(buf, i == 0); err != nil {
				return err
			}
			if err := writeQuotedString(f, buf, k); err != nil {
				return err
			}
			if err := f.EndObjectKey(buf); err != nil {
				return err
			}
			if err := f.BeginObjectValue(buf); err != nil {
				return err
			}
			if err := writeValue(buf, f, val.obj[k]); err != nil {
				return err
			}
			if err := f.EndObjectValue(buf); err != nil {
				return err
			}
		}
		return f.EndObject(buf)
	default:
		return f.WriteNull(buf)
	}
}

func writeNumber(buf *bytes.Buffer, f Formatter, n Number) error {
	switch n.Kind() {
	case numlex.KindInt64:
		v, _ := n.Int64()
		return f.WriteInt64(buf, v)
	case numlex.KindUint64:
		v, _ := n.Uint64()
		return f.WriteUint64(buf, v)
	default:
		v := n.Float64()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return f.WriteNull(buf)
		}
		return f.WriteFloat64(buf, v)
	}
}
