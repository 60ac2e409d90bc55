package json

import (
	"bytes"
	"strconv"
)

// Formatter is the callback interface the serialization adapter
// (component H) drives: every primitive write and every structural
// delimiter passes through one of these methods, so swapping the
// Formatter is the only thing that distinguishes compact from
// pretty-printed output. Grounded on original_source/src/ser.rs's
// Formatter trait, translated from Rust's io::Write-generic methods into
// Go methods taking a *bytes.Buffer (the encoder's own scratch buffer,
// matching shapestone-shape-json/pkg/json/marshal.go's buffer-pool use).
type Formatter interface {
	WriteNull(buf *bytes.Buffer) error
	WriteBool(buf *bytes.Buffer, v bool) error
	WriteInt64(buf *bytes.Buffer, v int64) error
	WriteUint64(buf *bytes.Buffer, v uint64) error
	WriteFloat64(buf *bytes.Buffer, v float64) error
	WriteNumberStr(buf *bytes.Buffer, s string) error

	BeginString(buf *bytes.Buffer) error
	WriteStringFragment(buf *bytes.Buffer, s string) error
	WriteCharEscape(buf *bytes.Buffer, raw byte) error
	EndString(buf *bytes.Buffer) error

	BeginArray(buf *bytes.Buffer) error
	BeginArrayValue(buf *bytes.Buffer, first bool) error
	EndArrayValue(buf *bytes.Buffer) error
	EndArray(buf *bytes.Buffer) error

	BeginObject(buf *bytes.Buffer) error
	BeginObjectKey(buf *bytes.Buffer, first bool) error
	EndObjectKey(buf *bytes.Buffer) error
	BeginObjectValue(buf *bytes.Buffer) error
	EndObjectValue(buf *bytes.Buffer) error
	EndObject(buf *bytes.Buffer) error

	WriteRawFragment(buf *bytes.Buffer, s string) error
}

// writeQuotedString runs s through a Formatter's string-writing callbacks
// the way every Formatter implementation wants it done, so CompactFormatter
// and IndentFormatter only need to supply BeginString/WriteStringFragment/
// WriteCharEscape/EndString; this stays outside the interface since it's
// pure orchestration, not a formatting decision.
func writeQuotedString(f Formatter, buf *bytes.Buffer, s string) error {
	if err := f.BeginString(buf); err != nil {
		return err
	}
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if i > start {
			if err := f.WriteStringFragment(buf, s[start:i]); err != nil {
				return err
			}
		}
		if err := f.WriteCharEscape(buf, c); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(s) {
		if err := f.WriteStringFragment(buf, s[start:]); err != nil {
			return err
		}
	}
	return f.EndString(buf)
}

// CompactFormatter writes JSON with no insignificant whitespace.
// Grounded on original_source/src/ser.rs's CompactFormatter (all the
// "begin/end" hooks are no-ops beyond the minimal structural byte).
type CompactFormatter struct{}

func (CompactFormatter) WriteNull(buf *bytes.Buffer) error { buf.WriteString("null"); return nil }
func (CompactFormatter) WriteBool(buf *bytes.Buffer, v bool) error {
	if v {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
	return nil
}
func (CompactFormatter) WriteInt64(buf *bytes.Buffer, v int64) error {
	buf.WriteString(strconv.FormatInt(v, 10))
	return nil
}
func (CompactFormatter) WriteUint64(buf *bytes.Buffer, v uint64) error {
	buf.WriteString(strconv.FormatUint(v, 10))
	return nil
}
func (CompactFormatter) WriteFloat64(buf *bytes.Buffer, v float64) error {
	buf.WriteString(formatFloat(v))
	return nil
}
func (CompactFormatter) WriteNumberStr(buf *bytes.Buffer, s string) error {
	buf.WriteString(s)
	return nil
}
func (CompactFormatter) BeginString(buf *bytes.Buffer) error { buf.WriteByte('"'); return nil }
func (CompactFormatter) WriteStringFragment(buf *bytes.Buffer, s string) error {
	buf.WriteString(s)
	return nil
}
func (CompactFormatter) WriteCharEscape(buf *bytes.Buffer, raw byte) error {
	writeCharEscape(buf, raw)
	return nil
}
func (CompactFormatter) EndString(buf *bytes.Buffer) error { buf.WriteByte('"'); return nil }
func (CompactFormatter) BeginArray(buf *bytes.Buffer) error { buf.WriteByte('['); return nil }
func (CompactFormatter) BeginArrayValue(buf *bytes.Buffer, first bool) error {
	if !first {
		buf.WriteByte(',')
	}
	return nil
}
func (CompactFormatter) EndArrayValue(buf *bytes.Buffer) error { return nil }
func (CompactFormatter) EndArray(buf *bytes.Buffer) error      { buf.WriteByte(']'); return nil }
func (CompactFormatter) BeginObject(buf *bytes.Buffer) error   { buf.WriteByte('{'); return nil }
func (CompactFormatter) BeginObjectKey(buf *bytes.Buffer, first bool) error {
	if !first {
		buf.WriteByte(',')
	}
	return nil
}
func (CompactFormatter) EndObjectKey(buf *bytes.Buffer) error { return nil }
func (CompactFormatter) BeginObjectValue(buf *bytes.Buffer) error {
	buf.WriteByte(':')
	return nil
}
func (CompactFormatter) EndObjectValue(buf *bytes.Buffer) error { return nil }
func (CompactFormatter) EndObject(buf *bytes.Buffer) error      { buf.WriteByte('}'); return nil }
func (CompactFormatter) WriteRawFragment(buf *bytes.Buffer, s string) error {
	buf.WriteString(s)
	return nil
}

// IndentFormatter writes pretty-printed JSON, two spaces per level by
// default. Grounded on shapestone-shape-json/pkg/json/render.go's
// depth-tracked pretty printer (strings.Repeat(indent, depth)), adapted
// to drive off the Formatter interface instead of an AST.
type IndentFormatter struct {
	Indent string
	depth  int
}

// NewIndentFormatter returns an IndentFormatter using indent for each
// level; an empty indent defaults to two spaces.
func NewIndentFormatter(indent string) *IndentFormatter {
	if indent == "" {
		indent = "  "
	}
	return &IndentFormatter{Indent: indent}
}

func (f *IndentFormatter) writeIndent(buf *bytes.Buffer) {
	buf.WriteByte('\n')
	for i := 0; i < f.depth; i++ {
		buf.WriteString(f.Indent)
	}
}

func (f *IndentFormatter) WriteNull(buf *bytes.Buffer) error { buf.WriteString("null"); return nil }
func (f *IndentFormatter) WriteBool(buf *bytes.Buffer, v bool) error {
	if v {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
	return nil
}
func (f *IndentFormatter) WriteInt64(buf *bytes.Buffer, v int64) error {
	buf.WriteString(strconv.FormatInt(v, 10))
	return nil
}
func (f *IndentFormatter) WriteUint64(buf *bytes.Buffer, v uint64) error {
	buf.WriteString(strconv.FormatUint(v, 10))
	return nil
}
func (f *IndentFormatter) WriteFloat64(buf *bytes.Buffer, v float64) error {
	buf.WriteString(formatFloat(v))
	return nil
}
func (f *IndentFormatter) WriteNumberStr(buf *bytes.Buffer, s string) error {
	buf.WriteString(s)
	return nil
}
func (f *IndentFormatter) BeginString(buf *bytes.Buffer) error { buf.WriteByte('"'); return nil }
func (f *IndentFormatter) WriteStringFragment(buf *bytes.Buffer, s string) error {
	buf.WriteString(s)
	return nil
}
func (f *IndentFormatter) WriteCharEscape(buf *bytes.Buffer, raw byte) error {
	writeCharEscape(buf, raw)
	return nil
}
func (f *IndentFormatter) EndString(buf *bytes.Buffer) error { buf.WriteByte('"'); return nil }
func (f *IndentFormatter) BeginArray(buf *bytes.Buffer) error {
	f.depth++
	buf.WriteByte('[')
	return nil
}
func (f *IndentFormatter) BeginArrayValue(buf *bytes.Buffer, first bool) error {
	if !first {
		buf.WriteByte(',')
	}
	f.writeIndent(buf)
	return nil
}
func (f *IndentFormatter) EndArrayValue(buf *bytes.Buffer) error { return nil }
func (f *IndentFormatter) EndArray(buf *bytes.Buffer) error {
	f.depth--
	if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '[' {
		f.writeIndent(buf)
	}
	buf.WriteByte(']')
	return nil
}
func (f *IndentFormatter) BeginObject(buf *bytes.Buffer) error {
	f.depth++
	buf.WriteByte('{')
	return nil
}
func (f *IndentFormatter) BeginObjectKey(buf *bytes.Buffer, first bool) error {
	if !first {
		buf.WriteByte(',')
	}
	f.writeIndent(buf)
	return nil
}
func (f *IndentFormatter) EndObjectKey(buf *bytes.Buffer) error { return nil }
func (f *IndentFormatter) BeginObjectValue(buf *bytes.Buffer) error {
	buf.WriteString(": ")
	return nil
}
func (f *IndentFormatter) EndObjectValue(buf *bytes.Buffer) error { return nil }
func (f *IndentFormatter) EndObject(buf *bytes.Buffer) error {
	f.depth--
	if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '{' {
		f.writeIndent(buf)
	}
	buf.WriteByte('}')
	return nil
}
func (f *IndentFormatter) WriteRawFragment(buf *bytes.Buffer, s string) error {
	buf.WriteString(s)
	return nil
}

// writeCharEscape writes the two-or-six byte escape sequence for raw,
// shared by both formatters.
func writeCharEscape(buf *bytes.Buffer, raw byte) {
	esc := escapeTable[raw]
	if esc == 0x01 || esc == 0 {
		buf.WriteString(`\u00`)
		buf.WriteByte(hexDigits[raw>>4])
		buf.WriteByte(hexDigits[raw&0x0F])
		return
	}
	buf.WriteByte('\\')
	buf.WriteByte(esc)
}

// formatFloat renders v the way spec.md §4.3/§4.5 requires: shortest
// round-trip decimal, NaN/Inf never reached here (callers substitute
// null before calling WriteFloat64 — see writeNumber in parser.go).
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	return s
}

// MarshalIndent is like Marshal but formats the output with IndentFormatter.
// prefix begins every line after the first, as in Indent.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	data, err := marshalWithFormatter(v, NewIndentFormatter(indent))
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return data, nil
	}
	return bytes.ReplaceAll(data, []byte("\n"), []byte("\n"+prefix)), nil
}

// Indent appends to dst an indented form of the JSON-encoded src,
// compatible with encoding/json.Indent. Re-parses src into a Value and
// re-renders it, rather than reformatting tokens in place, since this
// repo's Formatter is value-driven (component G/H), not token-driven.
func Indent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	val, err := parseValueBytes(src, true)
	if err != nil {
		return err
	}
	data, err := encodeValue(val, NewIndentFormatter(indent))
	if err != nil {
		return err
	}
	if prefix != "" {
		data = bytes.ReplaceAll(data, []byte("\n"), []byte("\n"+prefix))
	}
	dst.Write(data)
	return nil
}

// Compact appends to dst the JSON-encoded src with insignificant
// whitespace elided, compatible with encoding/json.Compact.
func Compact(dst *bytes.Buffer, src []byte) error {
	val, err := parseValueBytes(src, true)
	if err != nil {
		return err
	}
	data, err := encodeValue(val, CompactFormatter{})
	if err != nil {
		return err
	}
	dst.Write(data)
	return nil
}
