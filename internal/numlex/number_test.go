package numlex

import (
	"testing"

	"github.com/shapestone/jsoncodec/internal/read"
)

func lexAll(t *testing.T, s string) Number {
	t.Helper()
	src := read.NewSliceSource([]byte(s[1:]))
	n, err := Lex(src, s[0])
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", s, err)
	}
	return n
}

func TestLex_Integers(t *testing.T) {
	tests := []struct {
		in       string
		wantKind Kind
	}{
		{"0", KindUint64},
		{"42", KindUint64},
		{"-42", KindInt64},
		{"-0", KindInt64},
	}
	for _, tt := range tests {
		n := lexAll(t, tt.in)
		if n.Kind() != tt.wantKind {
			t.Errorf("Lex(%q).Kind() = %v; want %v", tt.in, n.Kind(), tt.wantKind)
		}
	}
}

func TestLex_Floats(t *testing.T) {
	for _, in := range []string{"3.14", "-2.5", "1e10", "1.5e-3", "0.0"} {
		n := lexAll(t, in)
		if !n.IsFloat() {
			t.Errorf("Lex(%q).IsFloat() = false; want true", in)
		}
	}
}

func TestLex_LargeIntegerOverflowsToError(t *testing.T) {
	src := read.NewSliceSource([]byte("9999999999999999999999"))
	_, err := Lex(src, '9')
	if err == nil {
		t.Fatal("an integer literal overflowing uint64 should error, not fall back to float64")
	}
	rerr, ok := err.(*read.Error)
	if !ok || rerr.Kind != read.KindNumberOutOfRange {
		t.Fatalf("error = %v, want Kind %q", err, read.KindNumberOutOfRange)
	}
}

func TestLex_LeadingZeroRejectsExtraDigits(t *testing.T) {
	src := read.NewSliceSource([]byte("1"))
	if _, err := Lex(src, '0'); err != nil {
		t.Fatalf("'0' followed by unrelated input should not itself error: %v", err)
	}
	if b, ok := src.Peek(); !ok || b != '1' {
		t.Fatalf("Peek() after Lex('0') = %q, %v; want '1' left unconsumed", b, ok)
	}
}

func TestNumber_Int64RoundTrip(t *testing.T) {
	n := Int64(-7)
	v, ok := n.Int64()
	if !ok || v != -7 {
		t.Errorf("Int64() = %d, %v; want -7, true", v, ok)
	}
	if _, ok := n.Uint64(); ok {
		t.Error("Uint64() on a negative Int64 Number should fail")
	}
}

func TestNumber_Uint64CrossConversion(t *testing.T) {
	n := Uint64(1 << 63)
	if _, ok := n.Int64(); ok {
		t.Error("Int64() on a Uint64 Number exceeding math.MaxInt64 should fail")
	}
	u, ok := n.Uint64()
	if !ok || u != 1<<63 {
		t.Errorf("Uint64() = %d, %v; want %d, true", u, ok, uint64(1)<<63)
	}
}

func TestNumber_String(t *testing.T) {
	tests := []struct {
		n    Number
		want string
	}{
		{Int64(-5), "-5"},
		{Uint64(5), "5"},
		{Float64(3.5), "3.5"},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("String() = %q; want %q", got, tt.want)
		}
	}
}
