package json

import (
	"bytes"
	"strings"
	"testing"
)

type unmarshalCase struct {
	name        string
	json        string
	target      interface{}
	shouldError bool
	errorMsg    string
	validate    func(t *testing.T, target interface{})
}

func runUnmarshalCases(t *testing.T, tests []unmarshalCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unmarshal([]byte(tt.json), tt.target)
			switch {
			case tt.shouldError && err == nil:
				t.Errorf("expected error but got none")
			case tt.shouldError && tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg):
				t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
			case !tt.shouldError && err != nil:
				t.Errorf("unexpected error: %v", err)
			case !tt.shouldError && tt.validate != nil:
				tt.validate(t, tt.target)
			}
		})
	}
}

func TestUnmarshalLiteral_StringAndBool(t *testing.T) {
	runUnmarshalCases(t, []unmarshalCase{
		{name: "string to string", json: `"hello"`, target: new(string)},
		{name: "number to string errors", json: `42`, target: new(string), shouldError: true, errorMsg: "cannot unmarshal"},
		{name: "bool to string errors", json: `true`, target: new(string), shouldError: true, errorMsg: "cannot unmarshal"},
		{name: "true to bool", json: `true`, target: new(bool)},
		{name: "false to bool", json: `false`, target: new(bool)},
		{name: "number to bool errors", json: `1`, target: new(bool), shouldError: true, errorMsg: "cannot unmarshal"},
		{name: "string to bool errors", json: `"true"`, target: new(bool), shouldError: true, errorMsg: "cannot unmarshal"},
	})
}

func TestUnmarshalLiteral_Integers(t *testing.T) {
	runUnmarshalCases(t, []unmarshalCase{
		{name: "to int", json: `42`, target: new(int)},
		{name: "to int8", json: `127`, target: new(int8)},
		{name: "to int16", json: `32767`, target: new(int16)},
		{name: "to int32", json: `2147483647`, target: new(int32)},
		{name: "to int64", json: `9223372036854775807`, target: new(int64)},
		{name: "overflow int8", json: `128`, target: new(int8), shouldError: true, errorMsg: "overflows"},
		{name: "overflow int16", json: `32768`, target: new(int16), shouldError: true, errorMsg: "overflows"},
		{name: "whole float to int", json: `42.0`, target: new(int)},
		{name: "fractional float to int errors", json: `42.5`, target: new(int), shouldError: true, errorMsg: "cannot unmarshal number"},
		{name: "string to int errors", json: `"42"`, target: new(int), shouldError: true, errorMsg: "cannot unmarshal"},
		{name: "to uint", json: `42`, target: new(uint)},
		{name: "to uint8", json: `255`, target: new(uint8)},
		{name: "to uint16", json: `65535`, target: new(uint16)},
		{name: "to uint32", json: `4294967295`, target: new(uint32)},
		{name: "negative to uint errors", json: `-1`, target: new(uint), shouldError: true, errorMsg: "overflows"},
		{name: "overflow uint8", json: `256`, target: new(uint8), shouldError: true, errorMsg: "overflows"},
		{name: "whole positive float to uint", json: `42.0`, target: new(uint)},
		{name: "negative float to uint errors", json: `-1.0`, target: new(uint), shouldError: true, errorMsg: "cannot unmarshal number"},
		{name: "fractional float to uint errors", json: `42.5`, target: new(uint), shouldError: true, errorMsg: "cannot unmarshal number"},
		{name: "string to uint errors", json: `"42"`, target: new(uint), shouldError: true, errorMsg: "cannot unmarshal"},
	})
}

func TestUnmarshalLiteral_Floats(t *testing.T) {
	runUnmarshalCases(t, []unmarshalCase{
		{name: "to float32", json: `3.14`, target: new(float32)},
		{name: "to float64", json: `3.14159265359`, target: new(float64)},
		{name: "int to float32", json: `42`, target: new(float32)},
		{name: "int to float64", json: `42`, target: new(float64)},
		{name: "large float overflows float32", json: `3.4e39`, target: new(float32), shouldError: true, errorMsg: "overflows"},
		{name: "string to float errors", json: `"3.14"`, target: new(float64), shouldError: true, errorMsg: "cannot unmarshal"},
	})
}

// An integer literal wider than int64/uint64 and without a fractional
// part or exponent is a decode error, not a silent float64 downgrade
// (unmarshalLiteral widens only through numlex.Number, which itself
// already rejected the literal during parsing).
func TestUnmarshal_IntegerLiteralOverflow(t *testing.T) {
	var v int64
	err := Unmarshal([]byte(`99999999999999999999999999999`), &v)
	if err == nil {
		t.Fatal("expected an out-of-range error for an unrepresentable integer literal")
	}
	je, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if je.Kind() != KindNumberOutOfRange {
		t.Errorf("Kind() = %v, want %v", je.Kind(), KindNumberOutOfRange)
	}
}

func TestUnmarshalArray_Comprehensive(t *testing.T) {
	runUnmarshalCases(t, []unmarshalCase{
		{
			name: "empty array to slice", json: `[]`, target: new([]int),
			validate: func(t *testing.T, target interface{}) {
				if s := *target.(*[]int); len(s) != 0 {
					t.Errorf("expected empty slice, got %v", s)
				}
			},
		},
		{
			name: "int array to slice", json: `[1, 2, 3, 4, 5]`, target: new([]int),
			validate: func(t *testing.T, target interface{}) {
				s := *target.(*[]int)
				if len(s) != 5 || s[0] != 1 || s[4] != 5 {
					t.Errorf("unexpected values: %v", s)
				}
			},
		},
		{
			name: "string array to slice", json: `["a", "b", "c"]`, target: new([]string),
			validate: func(t *testing.T, target interface{}) {
				s := *target.(*[]string)
				if len(s) != 3 || s[0] != "a" || s[2] != "c" {
					t.Errorf("unexpected values: %v", s)
				}
			},
		},
		{
			name: "mixed type array to interface slice", json: `[1, "two", true, null]`, target: new([]interface{}),
			validate: func(t *testing.T, target interface{}) {
				if s := *target.(*[]interface{}); len(s) != 4 {
					t.Errorf("expected length 4, got %d", len(s))
				}
			},
		},
		{
			name: "nested array", json: `[[1, 2], [3, 4]]`, target: new([][]int),
			validate: func(t *testing.T, target interface{}) {
				s := *target.(*[][]int)
				if len(s) != 2 || len(s[0]) != 2 || s[0][0] != 1 {
					t.Errorf("unexpected nested values: %v", s)
				}
			},
		},
		{
			name: "array to fixed size array", json: `[1, 2, 3]`, target: new([3]int),
			validate: func(t *testing.T, target interface{}) {
				if arr := *target.(*[3]int); arr[0] != 1 || arr[2] != 3 {
					t.Errorf("unexpected values: %v", arr)
				}
			},
		},
		{name: "array too large for fixed array", json: `[1, 2, 3, 4]`, target: new([3]int), shouldError: true, errorMsg: "exceeds target array length"},
		{
			name: "array smaller than fixed array leaves zero tail", json: `[1, 2]`, target: new([5]int),
			validate: func(t *testing.T, target interface{}) {
				arr := *target.(*[5]int)
				if arr[0] != 1 || arr[1] != 2 || arr[2] != 0 {
					t.Errorf("unexpected values: %v", arr)
				}
			},
		},
		{name: "array to non-array type errors", json: `[1, 2, 3]`, target: new(int), shouldError: true, errorMsg: "cannot unmarshal array"},
	})
}

func TestEncode_Comprehensive(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"int", 42, "42"},
		{"float", 3.14, "3.14"},
		{"string", "hello", `"hello"`},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"null", nil, "null"},
		{"slice", []int{1, 2, 3}, "[1,2,3]"},
		{"empty slice", []int{}, "[]"},
		{"struct", struct {
			Name string `json:"name"`
			Age  int    `json:"age"`
		}{Name: "Alice", Age: 30}, `{"age":30,"name":"Alice"}`},
		{"map", map[string]int{"a": 1, "b": 2}, `{"a":1,"b":2}`},
		{"nested struct", struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		}{User: struct {
			Name string `json:"name"`
		}{Name: "Bob"}}, `{"user":{"name":"Bob"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewEncoder(&buf).Encode(tt.input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestEncode_ErrorCases(t *testing.T) {
	for name, v := range map[string]interface{}{"channel": make(chan int), "function": func() {}} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewEncoder(&buf).Encode(v); err == nil {
				t.Errorf("encoding a %s should error", name)
			}
		})
	}
}

func TestMarshal_EdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		shouldError bool
	}{
		{"pointer to int", func() *int { i := 42; return &i }(), false},
		{"nil pointer", (*int)(nil), false},
		{"pointer to struct", &struct{ Name string }{Name: "test"}, false},
		{"channel", make(chan int), true},
		{"function", func() {}, true},
		{"complex nested structure", map[string]interface{}{"a": []interface{}{1, "two", true, nil}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.input)
			if tt.shouldError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMarshalString_Escaping(t *testing.T) {
	tests := []struct{ name, input, want string }{
		{"quotes", `hello "world"`, `"hello \"world\""`},
		{"backslash", `C:\path\to\file`, `"C:\\path\\to\\file"`},
		{"newline", "line1\nline2", `"line1\nline2"`},
		{"tab", "col1\tcol2", `"col1\tcol2"`},
		{"carriage return", "text\rreturn", `"text\rreturn"`},
		{"all escapes", "\"\\\n\r\t", `"\"\\\n\r\t"`},
		{"unicode", "Hello 世界", `"Hello 世界"`},
		{"empty", "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMarshalValue_AllTypes(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input interface{}
	}{
		{"nil", nil}, {"bool", true},
		{"int", 42}, {"int8", int8(127)}, {"int16", int16(32767)},
		{"int32", int32(2147483647)}, {"int64", int64(9223372036854775807)},
		{"uint", uint(42)}, {"uint8", uint8(255)}, {"uint16", uint16(65535)},
		{"uint32", uint32(4294967295)}, {"uint64", uint64(18446744073709551615)},
		{"float32", float32(3.14)}, {"float64", float64(3.14159265359)},
		{"string", "hello"},
		{"slice", []int{1, 2, 3}}, {"array", [3]int{1, 2, 3}},
		{"map", map[string]int{"a": 1}}, {"struct", struct{ Name string }{"test"}},
		{"pointer", func() *int { i := 42; return &i }()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Marshal(tt.input); err != nil {
				t.Errorf("unexpected error for %s: %v", tt.name, err)
			}
		})
	}
}
