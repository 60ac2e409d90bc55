package read

import "io"

// ReaderSource reads from an io.Reader one byte at a time through a small
// internal buffer. It never borrows: every string it returns is a fresh
// copy, since there is no stable backing buffer to borrow from once bytes
// have been consumed from the reader. Grounded on
// original_source/src/read.rs's IoRead.
type ReaderSource struct {
	r    io.Reader
	buf  [4096]byte
	n    int
	i    int
	err  error
	peek byte
	hasP bool
	lc   lineCol
	off  int
}

// NewReaderSource wraps r for parsing.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r, lc: newLineCol()}
}

func (s *ReaderSource) fill() bool {
	if s.i < s.n {
		return true
	}
	if s.err != nil {
		return false
	}
	n, err := s.r.Read(s.buf[:])
	s.i, s.n = 0, n
	if err != nil {
		s.err = err
	}
	return s.n > 0
}

func (s *ReaderSource) rawNext() (byte, bool) {
	if s.hasP {
		b := s.peek
		s.hasP = false
		s.lc.advance(b)
		s.off++
		return b, true
	}
	if !s.fill() {
		return 0, false
	}
	b := s.buf[s.i]
	s.i++
	s.lc.advance(b)
	s.off++
	return b, true
}

func (s *ReaderSource) Next() (byte, bool) { return s.rawNext() }

func (s *ReaderSource) Peek() (byte, bool) {
	if s.hasP {
		return s.peek, true
	}
	if !s.fill() {
		return 0, false
	}
	s.peek = s.buf[s.i]
	s.i++
	s.hasP = true
	return s.peek, true
}

func (s *ReaderSource) Discard() {
	if s.hasP {
		s.hasP = false
		s.lc.advance(s.peek)
		s.off++
	}
}

func (s *ReaderSource) Position() Position     { return s.lc.position() }
func (s *ReaderSource) PeekPosition() Position { return s.lc.peekPosition() }
func (s *ReaderSource) ByteOffset() int        { return s.off }

func (s *ReaderSource) ParseString(scratch *[]byte, validate bool) (Reference, error) {
	*scratch = (*scratch)[:0]
	for {
		b, ok := s.rawNext()
		if !ok {
			return Reference{}, &Error{Kind: KindEofWhileParsingString}
		}
		if !escape[b] {
			*scratch = append(*scratch, b)
			continue
		}
		if b == '"' {
			return Reference{Borrowed: false, Value: string(*scratch)}, nil
		}
		if b == '\\' {
			if err := decodeEscape(s.rawNext, scratch, validate); err != nil {
				return Reference{}, err
			}
			continue
		}
		return Reference{}, &Error{Kind: KindControlCharacter}
	}
}

func (s *ReaderSource) IgnoreString() error {
	var discard []byte
	_, err := s.ParseString(&discard, true)
	return err
}
