package read

import "unsafe"

// TextSource reads from a Go string. The byte-level mechanics are
// identical to SliceSource, so TextSource simply wraps one and handles
// strings exactly as SliceSource does; like SliceSource, it does not check
// raw string bytes for well-formed UTF-8.
type TextSource struct {
	*SliceSource
}

// NewTextSource wraps s for parsing without copying its bytes: viewBytes
// aliases s's backing array instead of allocating a new one, so this is
// the "borrowing-from-text" source component A calls for, distinct from
// ReaderSource which always copies. The caller must not rely on the
// returned source after s has been garbage collected while a Reference
// it returned is still outstanding, same lifetime contract as
// NewSliceSource.
func NewTextSource(s string) *TextSource {
	return &TextSource{SliceSource: NewSliceSource(viewBytes(s))}
}

// viewBytes returns a []byte aliasing s's backing array without copying.
// Safe here because SliceSource only ever reads its data, never writes it.
func viewBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
