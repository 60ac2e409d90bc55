package json

import (
	"bytes"
	"testing"
)

type reformatCase struct {
	name   string
	src    string
	prefix string
	indent string
	want   string
}

var reformatCases = []reformatCase{
	{"2-space indent", `{"name":"Alice","age":30}`, "", "  ",
		"{\n  \"age\": 30,\n  \"name\": \"Alice\"\n}"},
	{"tab indent", `{"name":"Bob","age":25}`, "", "\t",
		"{\n\t\"age\": 25,\n\t\"name\": \"Bob\"\n}"},
	{"nested object", `{"user":{"name":"Alice","age":30}}`, "", "  ",
		"{\n  \"user\": {\n    \"age\": 30,\n    \"name\": \"Alice\"\n  }\n}"},
	{"array", `[1,2,3]`, "", "  ", "[\n  1,\n  2,\n  3\n]"},
	{"empty object", `{}`, "", "  ", "{}"},
	{"empty array", `[]`, "", "  ", "[]"},
	{"with prefix", `{"key":"value"}`, ">>", "  ", "{\n>>  \"key\": \"value\"\n>>}"},
	{"string with escaped quotes", `{"message":"He said \"hello\""}`, "", "  ",
		"{\n  \"message\": \"He said \\\"hello\\\"\"\n}"},
	{"complex nested",
		`{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}],"total":2}`, "", "  ",
		"{\n  \"total\": 2,\n  \"users\": [\n    {\n      \"id\": 1,\n      \"name\": \"Alice\"\n    },\n    {\n      \"id\": 2,\n      \"name\": \"Bob\"\n    }\n  ]\n}"},
}

func TestIndent(t *testing.T) {
	for _, tt := range reformatCases {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Indent(&buf, []byte(tt.src), tt.prefix, tt.indent); err != nil {
				t.Fatalf("Indent() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Indent() mismatch:\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}

	t.Run("re-indent already-indented input", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Indent(&buf, []byte("{\n  \"name\": \"Alice\"\n}"), "", "    "); err != nil {
			t.Fatalf("Indent() error = %v", err)
		}
		want := "{\n    \"name\": \"Alice\"\n}"
		if got := buf.String(); got != want {
			t.Errorf("Indent() = %q, want %q", got, want)
		}
	})

	t.Run("trailing whitespace is not preserved", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Indent(&buf, []byte(`{"name":"Alice"}   `), "", "  "); err != nil {
			t.Fatalf("Indent() error = %v", err)
		}
		want := "{\n  \"name\": \"Alice\"\n}"
		if got := buf.String(); got != want {
			t.Errorf("Indent() = %q, want %q", got, want)
		}
	})
}

func TestIndent_InvalidJSON(t *testing.T) {
	for _, src := range []string{`{"name":"Alice"`, `[1,2,3`, `{name:"value"}`, `{"key":"value",}`} {
		t.Run(src, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Indent(&buf, []byte(src), "", "  "); err == nil {
				t.Errorf("Indent(%q) expected error, got nil", src)
			}
		})
	}
}

// Indent reports 0-based columns in its parse errors, consistent with
// every other error-producing entry point in the package.
func TestIndent_ErrorColumnIsZeroBased(t *testing.T) {
	var buf bytes.Buffer
	err := Indent(&buf, []byte("[1, 2, ]"), "", "  ")
	if err == nil {
		t.Fatal("expected a trailing-comma error")
	}
	je, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if je.Column() != 7 {
		t.Errorf("Column() = %d, want 7 (0-based)", je.Column())
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"indented object", "{\n  \"name\": \"Alice\",\n  \"age\": 30\n}", `{"age":30,"name":"Alice"}`},
		{"indented array", "[\n  1,\n  2,\n  3\n]", `[1,2,3]`},
		{"already compact", `{"name":"Alice","age":30}`, `{"age":30,"name":"Alice"}`},
		{"empty object", `{}`, `{}`},
		{"empty array", `[]`, `[]`},
		{"preserve internal spaces", `{"message": "Hello World"}`, `{"message":"Hello World"}`},
		{"escaped quotes", `{"message": "He said \"hello\""}`, `{"message":"He said \"hello\""}`},
		{"tabs and newlines", "{\n\t\"name\":\t\"Alice\",\n\t\"age\":\t30\n}", `{"age":30,"name":"Alice"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Compact(&buf, []byte(tt.src)); err != nil {
				t.Fatalf("Compact() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Compact() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompact_InvalidJSON(t *testing.T) {
	for _, src := range []string{`{"name":"Alice"`, `[1,2,3`, `{name:"value"}`, `{"key":"value",}`} {
		t.Run(src, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Compact(&buf, []byte(src)); err == nil {
				t.Errorf("Compact(%q) expected error, got nil", src)
			}
		})
	}
}

func TestIndentCompactRoundTrip(t *testing.T) {
	original := `{"name":"Alice","age":30,"city":"NYC"}`

	var indented bytes.Buffer
	if err := Indent(&indented, []byte(original), "", "  "); err != nil {
		t.Fatalf("Indent() error = %v", err)
	}

	var compacted bytes.Buffer
	if err := Compact(&compacted, indented.Bytes()); err != nil {
		t.Fatalf("Compact() error = %v", err)
	}

	var reindented bytes.Buffer
	if err := Indent(&reindented, compacted.Bytes(), "", "  "); err != nil {
		t.Fatalf("second Indent() error = %v", err)
	}

	if indented.String() != reindented.String() {
		t.Errorf("round trip mismatch:\nfirst:\n%s\nreindented:\n%s", indented.String(), reindented.String())
	}
}

func TestMarshalIndent(t *testing.T) {
	tests := []struct {
		name   string
		input  interface{}
		prefix string
		indent string
		want   string
	}{
		{"simple map", map[string]interface{}{"name": "Alice", "age": 30}, "", "  ",
			"{\n  \"age\": 30,\n  \"name\": \"Alice\"\n}"},
		{"tab indent", map[string]interface{}{"name": "Bob", "age": 25}, "", "\t",
			"{\n\t\"age\": 25,\n\t\"name\": \"Bob\"\n}"},
		{"array", []int{1, 2, 3}, "", "  ", "[\n  1,\n  2,\n  3\n]"},
		{"empty map", map[string]interface{}{}, "", "  ", "{}"},
		{"empty slice", []int{}, "", "  ", "[]"},
		{"struct with tags", struct {
			Name string `json:"name"`
			Age  int    `json:"age"`
		}{Name: "Charlie", Age: 35}, "", "  ",
			"{\n  \"age\": 35,\n  \"name\": \"Charlie\"\n}"},
		{"with prefix", map[string]interface{}{"key": "value"}, ">>", "  ",
			"{\n>>  \"key\": \"value\"\n>>}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalIndent(tt.input, tt.prefix, tt.indent)
			if err != nil {
				t.Fatalf("MarshalIndent() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalIndent() mismatch:\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestMarshalIndent_Struct(t *testing.T) {
	type Address struct {
		Street string `json:"street"`
		City   string `json:"city"`
	}
	type Person struct {
		Name    string  `json:"name"`
		Age     int     `json:"age"`
		Address Address `json:"address"`
	}

	data, err := MarshalIndent(Person{
		Name: "Alice",
		Age:  30,
		Address: Address{Street: "123 Main St", City: "NYC"},
	}, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	want := "{\n  \"address\": {\n    \"city\": \"NYC\",\n    \"street\": \"123 Main St\"\n  },\n  \"age\": 30,\n  \"name\": \"Alice\"\n}"
	if got := string(data); got != want {
		t.Errorf("MarshalIndent() mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarshalIndent_ErrorCases(t *testing.T) {
	for name, v := range map[string]interface{}{"channel": make(chan int), "function": func() {}} {
		t.Run(name, func(t *testing.T) {
			if _, err := MarshalIndent(v, "", "  "); err == nil {
				t.Errorf("MarshalIndent(%s) expected error, got nil", name)
			}
		})
	}
}
