package json

import (
	"io"
)

// An Encoder writes JSON values to an output stream.
type Encoder struct {
	w      io.Writer
	prefix string
	indent string
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetIndent configures the encoder to emit pretty-printed JSON, each
// element on its own line beginning with prefix followed by indent
// repeated once per nesting level — the same convention as
// encoding/json.Encoder.SetIndent.
func (enc *Encoder) SetIndent(prefix, indent string) {
	enc.prefix = prefix
	enc.indent = indent
}

// Encode writes the JSON encoding of v to the stream, followed by a
// newline character. See Marshal for the conversion rules.
func (enc *Encoder) Encode(v interface{}) error {
	var data []byte
	var err error
	if enc.indent != "" || enc.prefix != "" {
		data, err = MarshalIndent(v, enc.prefix, enc.indent)
	} else {
		data, err = Marshal(v)
	}
	if err != nil {
		return err
	}
	if _, err := enc.w.Write(data); err != nil {
		return newIOError(err)
	}
	if _, err := enc.w.Write([]byte("\n")); err != nil {
		return newIOError(err)
	}
	return nil
}
