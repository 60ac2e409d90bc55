package json

import (
	"io"

	"github.com/shapestone/jsoncodec/internal/parse"
	"github.com/shapestone/jsoncodec/internal/read"
)

// A Decoder reads and decodes JSON values from an input stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a new decoder that reads from r. The decoder
// introduces its own buffering and may read data from r beyond the JSON
// value requested.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the next JSON-encoded value from its input and stores it
// in the value pointed to by v. See Unmarshal for the conversion rules.
func (dec *Decoder) Decode(v interface{}) error {
	src := read.NewReaderSource(dec.r)
	p := parse.New(src)
	node, err := p.ParseTopLevel()
	if err != nil {
		return fromReadError(err)
	}
	return decodeInto(node, v)
}
