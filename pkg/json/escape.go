package json

// escapeTable maps ASCII bytes to their JSON escape character. 0 means no
// escape needed. Grounded on shapestone-shape-json/pkg/json/escape.go,
// with one deliberate correction: the teacher's table escapes '/' as
// '\/', and its render.go does the same independently — but spec.md
// §4.5/§6 says "/ is not escaped" and original_source/src/read.rs's
// ESCAPE table agrees (it marks only control characters, '"' and '\\').
// '/' is therefore left unescaped here. See DESIGN.md.
var escapeTable [256]byte

const hexDigits = "0123456789abcdef"

func init() {
	escapeTable['"'] = '"'
	escapeTable['\\'] = '\\'
	escapeTable['\b'] = 'b'
	escapeTable['\f'] = 'f'
	escapeTable['\n'] = 'n'
	escapeTable['\r'] = 'r'
	escapeTable['\t'] = 't'

	for i := byte(0); i < 0x20; i++ {
		if escapeTable[i] == 0 {
			escapeTable[i] = 0x01 // sentinel: needs \u00XX encoding
		}
	}
}

// appendEscapedString appends s to buf as a JSON string body (without the
// surrounding quotes). Zero-allocation aside from the final growth of buf
// itself: it writes directly to the provided buffer.
func appendEscapedString(buf []byte, s string) []byte {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}

		buf = append(buf, s[start:i]...)

		esc := escapeTable[c]
		if esc == 0x01 {
			buf = append(buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0x0F])
		} else {
			buf = append(buf, '\\', esc)
		}
		start = i + 1
	}
	return append(buf, s[start:]...)
}

// quoteString returns s as a complete JSON string literal, quotes
// included.
func quoteString(s string) string {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	buf = appendEscapedString(buf, s)
	buf = append(buf, '"')
	return string(buf)
}
