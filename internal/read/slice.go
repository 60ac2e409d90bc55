package read

import "unsafe"

// lineCol tracks the line/column of the next unread byte (line, col) and
// of the byte most recently consumed (lastLine, lastCol); shared by
// SliceSource and ReaderSource.
type lineCol struct {
	line, col         int
	lastLine, lastCol int
}

func newLineCol() lineCol { return lineCol{line: 1, col: 0, lastLine: 1, lastCol: 0} }

// advance updates the tracker for having just consumed b.
func (lc *lineCol) advance(b byte) {
	lc.lastLine, lc.lastCol = lc.line, lc.col
	if b == '\n' {
		lc.line++
		lc.col = 0
	} else {
		lc.col++
	}
}

func (lc *lineCol) position() Position {
	return Position{Line: lc.lastLine, Column: lc.lastCol}
}

func (lc *lineCol) peekPosition() Position {
	return Position{Line: lc.line, Column: lc.col}
}

// SliceSource reads from an in-memory []byte, borrowing substrings of it
// whenever a decoded JSON string needs no escape processing. Grounded on
// original_source/src/read.rs's SliceRead.
type SliceSource struct {
	data []byte
	pos  int
	lc   lineCol
}

// NewSliceSource wraps data for parsing. The caller must not mutate data
// for as long as any Reference returned with Borrowed==true is in use.
func NewSliceSource(data []byte) *SliceSource {
	return &SliceSource{data: data, lc: newLineCol()}
}

func (s *SliceSource) Next() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	b := s.data[s.pos]
	s.pos++
	s.lc.advance(b)
	return b, true
}

func (s *SliceSource) Peek() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	return s.data[s.pos], true
}

func (s *SliceSource) Discard() {
	if s.pos < len(s.data) {
		s.lc.advance(s.data[s.pos])
		s.pos++
	}
}

func (s *SliceSource) Position() Position { return s.lc.position() }

func (s *SliceSource) PeekPosition() Position { return s.lc.peekPosition() }

func (s *SliceSource) ByteOffset() int { return s.pos }

func (s *SliceSource) ParseString(scratch *[]byte, validate bool) (Reference, error) {
	start := s.pos
	for {
		if s.pos >= len(s.data) {
			return Reference{}, &Error{Kind: KindEofWhileParsingString}
		}
		b := s.data[s.pos]
		if !escape[b] {
			s.pos++
			s.lc.advance(b)
			continue
		}
		if b == '"' {
			if len(*scratch) == 0 {
				result := borrowString(s.data[start:s.pos])
				s.pos++
				s.lc.advance(b)
				return Reference{Borrowed: true, Value: result}, nil
			}
			*scratch = append(*scratch, s.data[start:s.pos]...)
			s.pos++
			s.lc.advance(b)
			result := string(*scratch)
			*scratch = (*scratch)[:0]
			return Reference{Borrowed: false, Value: result}, nil
		}
		if b == '\\' {
			*scratch = append(*scratch, s.data[start:s.pos]...)
			s.pos++
			s.lc.advance(b)
			if err := decodeEscape(s.rawNext, scratch, validate); err != nil {
				return Reference{}, err
			}
			start = s.pos
			continue
		}
		return Reference{}, &Error{Kind: KindControlCharacter}
	}
}

func (s *SliceSource) IgnoreString() error {
	for {
		if s.pos >= len(s.data) {
			return &Error{Kind: KindEofWhileParsingString}
		}
		b := s.data[s.pos]
		if !escape[b] {
			s.pos++
			s.lc.advance(b)
			continue
		}
		if b == '"' {
			s.pos++
			s.lc.advance(b)
			return nil
		}
		if b == '\\' {
			s.pos++
			s.lc.advance(b)
			var discard []byte
			if err := decodeEscape(s.rawNext, &discard, true); err != nil {
				return err
			}
			continue
		}
		return &Error{Kind: KindControlCharacter}
	}
}

// rawNext is the next() callback handed to decodeEscape.
func (s *SliceSource) rawNext() (byte, bool) { return s.Next() }

// borrowString views b as a string without copying it, the zero-copy
// half of Reference.Borrowed: a plain string(b) conversion always
// allocates and copies. The caller must not mutate b (or the buffer it
// was sliced from) for as long as the returned string is in use, per
// NewSliceSource's doc comment. Same technique as
// gibsn-gojsonlex's unsafeStringFromBytes / apexJSON's
// *(*string)(unsafe.Pointer(&b)), expressed with the Go 1.20+
// unsafe.String primitive instead of the raw pointer cast.
func borrowString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
