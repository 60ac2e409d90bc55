// Package json provides a user-friendly DOM API for JSON manipulation.
//
// Document and Array wrap a Value (component I's tagged union) with a
// chainable, type-safe builder/getter API — the same fluent idiom
// shapestone-shape-json's dom.go offers, adapted to build a real tagged
// union instead of map[string]interface{}/[]interface{}, since Value can
// distinguish JSON null from "key absent" where the teacher's
// interface{}-backed version could not.
//
//	doc := json.NewDocument().
//		SetString("name", "Alice").
//		SetInt("age", 30).
//		SetBool("active", true)
package json

import (
	"fmt"
	"math"
	"strings"
)

// Document represents a JSON object with a fluent API. All setters
// return *Document to enable chaining.
type Document struct {
	keys []string
	data map[string]Value
}

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	return &Document{data: make(map[string]Value)}
}

// ParseDocument parses input into a Document. Returns an error if input
// is not valid JSON or is not a JSON object.
func ParseDocument(input string) (*Document, error) {
	v, err := Parse(input)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindObject {
		return nil, fmt.Errorf("json: expected JSON object, got %s", v.Kind())
	}
	return &Document{keys: v.keys, data: v.obj}, nil
}

func (d *Document) set(key string, v Value) *Document {
	if _, exists := d.data[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.data[key] = v
	return d
}

func (d *Document) Set(key string, value Value) *Document        { return d.set(key, value) }
func (d *Document) SetString(key, value string) *Document        { return d.set(key, String(value)) }
func (d *Document) SetInt(key string, value int) *Document       { return d.set(key, Int(int64(value))) }
func (d *Document) SetInt64(key string, value int64) *Document   { return d.set(key, Int(value)) }
func (d *Document) SetBool(key string, value bool) *Document     { return d.set(key, Bool(value)) }
func (d *Document) SetFloat(key string, value float64) *Document { return d.set(key, Float(value)) }
func (d *Document) SetNull(key string) *Document                 { return d.set(key, Null) }

// SetObject sets a nested Document and returns the parent for chaining.
func (d *Document) SetObject(key string, value *Document) *Document {
	return d.set(key, value.Value())
}

// SetArray sets an Array and returns the parent Document for chaining.
func (d *Document) SetArray(key string, value *Array) *Document {
	return d.set(key, value.Value())
}

// Get gets a raw Value. ok is false if key is absent.
func (d *Document) Get(key string) (Value, bool) {
	v, ok := d.data[key]
	return v, ok
}

func (d *Document) GetString(key string) (string, bool) {
	if v, ok := d.data[key]; ok {
		return v.AsString()
	}
	return "", false
}

func (d *Document) GetInt(key string) (int, bool) {
	if v, ok := d.data[key]; ok {
		if n, ok := v.AsNumber(); ok {
			if i, ok := n.Int64(); ok {
				return int(i), true
			}
			if f := n.Float64(); n.IsFloat() && f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
				return int(f), true
			}
		}
	}
	return 0, false
}

func (d *Document) GetInt64(key string) (int64, bool) {
	if v, ok := d.data[key]; ok {
		if n, ok := v.AsNumber(); ok {
			if i, ok := n.Int64(); ok {
				return i, true
			}
		}
	}
	return 0, false
}

func (d *Document) GetBool(key string) (bool, bool) {
	if v, ok := d.data[key]; ok {
		return v.AsBool()
	}
	return false, false
}

func (d *Document) GetFloat(key string) (float64, bool) {
	if v, ok := d.data[key]; ok {
		if n, ok := v.AsNumber(); ok {
			return n.Float64(), true
		}
	}
	return 0, false
}

func (d *Document) GetObject(key string) (*Document, bool) {
	v, ok := d.data[key]
	if !ok || v.Kind() != KindObject {
		return nil, false
	}
	return &Document{keys: v.keys, data: v.obj}, true
}

func (d *Document) GetArray(key string) (*Array, bool) {
	v, ok := d.data[key]
	if !ok || v.Kind() != KindArray {
		return nil, false
	}
	return &Array{items: v.arr}, true
}

func (d *Document) IsNull(key string) bool {
	v, ok := d.data[key]
	return ok && v.IsNull()
}

func (d *Document) Has(key string) bool {
	_, ok := d.data[key]
	return ok
}

func (d *Document) Remove(key string) *Document {
	delete(d.data, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return d
}

func (d *Document) Keys() []string { return append([]string(nil), d.keys...) }
func (d *Document) Size() int      { return len(d.data) }

// Value returns the Document as a Value.
func (d *Document) Value() Value {
	return Value{kind: KindObject, keys: d.keys, obj: d.data}
}

// JSON marshals the Document to a compact JSON string.
func (d *Document) JSON() (string, error) {
	data, err := encodeValue(d.Value(), CompactFormatter{})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// JSONIndent returns a pretty-printed JSON string. prefix is written at
// the start of every line after the first, indent repeated once per
// nesting level.
func (d *Document) JSONIndent(prefix, indent string) (string, error) {
	data, err := encodeValue(d.Value(), NewIndentFormatter(indent))
	if err != nil {
		return "", err
	}
	if prefix != "" {
		return strings.ReplaceAll(string(data), "\n", "\n"+prefix), nil
	}
	return string(data), nil
}

// MarshalJSON implements Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) { return encodeValue(d.Value(), CompactFormatter{}) }

// UnmarshalJSON implements Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	v, err := Parse(string(data))
	if err != nil {
		return err
	}
	if v.Kind() != KindObject {
		return fmt.Errorf("json: expected JSON object, got %s", v.Kind())
	}
	d.keys, d.data = v.keys, v.obj
	return nil
}

// Array represents a JSON array with a fluent API. All appenders return
// *Array to enable chaining.
type Array struct {
	items []Value
}

// NewArray creates a new empty Array.
func NewArray() *Array { return &Array{} }

// ParseArray parses input into an Array. Returns an error if input is
// not valid JSON or is not a JSON array.
func ParseArray(input string) (*Array, error) {
	v, err := Parse(input)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindArray {
		return nil, fmt.Errorf("json: expected JSON array, got %s", v.Kind())
	}
	return &Array{items: v.arr}, nil
}

func (a *Array) Add(value Value) *Array         { a.items = append(a.items, value); return a }
func (a *Array) AddString(value string) *Array  { return a.Add(String(value)) }
func (a *Array) AddInt(value int) *Array        { return a.Add(Int(int64(value))) }
func (a *Array) AddInt64(value int64) *Array    { return a.Add(Int(value)) }
func (a *Array) AddBool(value bool) *Array      { return a.Add(Bool(value)) }
func (a *Array) AddFloat(value float64) *Array  { return a.Add(Float(value)) }
func (a *Array) AddNull() *Array                { return a.Add(Null) }
func (a *Array) AddObject(value *Document) *Array { return a.Add(value.Value()) }
func (a *Array) AddArray(value *Array) *Array   { return a.Add(value.Value()) }

func (a *Array) Get(index int) (Value, bool) {
	if index < 0 || index >= len(a.items) {
		return Value{}, false
	}
	return a.items[index], true
}

func (a *Array) GetString(index int) (string, bool) {
	if v, ok := a.Get(index); ok {
		return v.AsString()
	}
	return "", false
}

func (a *Array) GetInt(index int) (int, bool) {
	if v, ok := a.Get(index); ok {
		if n, ok := v.AsNumber(); ok {
			if i, ok := n.Int64(); ok {
				return int(i), true
			}
		}
	}
	return 0, false
}

func (a *Array) GetInt64(index int) (int64, bool) {
	if v, ok := a.Get(index); ok {
		if n, ok := v.AsNumber(); ok {
			if i, ok := n.Int64(); ok {
				return i, true
			}
		}
	}
	return 0, false
}

func (a *Array) GetBool(index int) (bool, bool) {
	if v, ok := a.Get(index); ok {
		return v.AsBool()
	}
	return false, false
}

func (a *Array) GetFloat(index int) (float64, bool) {
	if v, ok := a.Get(index); ok {
		if n, ok := v.AsNumber(); ok {
			return n.Float64(), true
		}
	}
	return 0, false
}

func (a *Array) GetObject(index int) (*Document, bool) {
	v, ok := a.Get(index)
	if !ok || v.Kind() != KindObject {
		return nil, false
	}
	return &Document{keys: v.keys, data: v.obj}, true
}

func (a *Array) GetArray(index int) (*Array, bool) {
	v, ok := a.Get(index)
	if !ok || v.Kind() != KindArray {
		return nil, false
	}
	return &Array{items: v.arr}, true
}

func (a *Array) IsNull(index int) bool {
	v, ok := a.Get(index)
	return ok && v.IsNull()
}

func (a *Array) Len() int { return len(a.items) }

// Value returns the Array as a Value.
func (a *Array) Value() Value { return Value{kind: KindArray, arr: a.items} }

// JSON marshals the Array to a compact JSON string.
func (a *Array) JSON() (string, error) {
	data, err := encodeValue(a.Value(), CompactFormatter{})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// JSONIndent returns a pretty-printed JSON string.
func (a *Array) JSONIndent(prefix, indent string) (string, error) {
	data, err := encodeValue(a.Value(), NewIndentFormatter(indent))
	if err != nil {
		return "", err
	}
	if prefix != "" {
		return prefix + string(data), nil
	}
	return string(data), nil
}

// MarshalJSON implements Marshaler.
func (a *Array) MarshalJSON() ([]byte, error) { return encodeValue(a.Value(), CompactFormatter{}) }

// UnmarshalJSON implements Unmarshaler.
func (a *Array) UnmarshalJSON(data []byte) error {
	v, err := Parse(string(data))
	if err != nil {
		return err
	}
	if v.Kind() != KindArray {
		return fmt.Errorf("json: expected JSON array, got %s", v.Kind())
	}
	a.items = v.arr
	return nil
}
