package json

import (
	"bytes"
	"reflect"
	"sync"
)

// bufferPool pools []byte-backed buffers across encodeValue calls.
// Grounded on shapestone-shape-json/pkg/json/marshal.go's bufferPool
// (same 64KB retention cap). Only the Value-tree encodeValue path uses
// it; the reflection-based Marshal allocates its own output slice.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= 64*1024 {
		bufferPool.Put(buf)
	}
}

// Marshaler is the interface implemented by types that can marshal
// themselves into valid JSON.
type Marshaler interface {
	MarshalJSON() ([]byte, error)
}

// Marshal returns the JSON encoding of v, using the cached
// reflect.Type-to-encoderFunc machinery in encoder.go (component H).
// shapestone-shape-json carried two independent Marshal implementations
// (this uncached one, and encoder.go's cached one); DESIGN.md explains
// why only the cached design survives here — Marshal always delegates to
// it rather than re-deriving reflection logic.
func Marshal(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return []byte("null"), nil
	}
	enc := encoderForType(rv.Type())
	buf, err := enc(make([]byte, 0, 256), rv)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// marshalWithFormatter marshals v through the reflection encoder and then
// re-renders it through f, for MarshalIndent's pretty-printing path.
// Re-parsing the compact output back into a Value and walking it through
// the Formatter keeps exactly one code path responsible for formatter-
// driven rendering (parser.go's writeValue), rather than teaching the
// encoderFunc tree about indentation directly.
func marshalWithFormatter(v interface{}, f Formatter) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	val, err := parseValueBytes(compact, false)
	if err != nil {
		return nil, err
	}
	return encodeValue(val, f)
}
