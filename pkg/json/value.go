package json

import "sort"

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is the dynamic JSON value tree (component I): a tagged union of
// Null, Bool, Number, String, Array and Object. Unlike the teacher's
// dom.go (which backs Document/Array with plain map[string]interface{}
// and []interface{}), Value is a genuine tagged union so Null is
// distinguishable from "absent" and from the empty string, as spec.md §3
// requires. Objects are stored with sorted keys on emission (default,
// per spec.md's Non-goals excluding insertion-ordered maps). The order
// keys were added is retained internally for Keys(): for objects built
// with Object or Document it is the construction order, while for parsed
// objects it follows Go map iteration and is not defined.
type Value struct {
	kind Kind
	b    bool
	n    Number
	s    string
	arr  []Value
	keys []string
	obj  map[string]Value
}

// Null is the JSON null value.
var Null = Value{kind: KindNull}

// Bool wraps a boolean as a Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string as a Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int wraps an exact integer as a Value.
func Int(v int64) Value { return Value{kind: KindNumber, n: NumberFromInt64(v)} }

// Uint wraps an exact non-negative integer as a Value.
func Uint(v uint64) Value { return Value{kind: KindNumber, n: NumberFromUint64(v)} }

// Float wraps a float64 as a Value. NaN and Inf are rejected at encode
// time (they emit as null), per spec.md §4.3.
func Float(v float64) Value { return Value{kind: KindNumber, n: NumberFromFloat64(v)} }

// NumberValue wraps an already-classified Number as a Value.
func NumberValue(n Number) Value { return Value{kind: KindNumber, n: n} }

// Arr builds an array Value from items. Named Arr, not Array, because
// Array is the fluent builder type in dom.go (adapted from the teacher's
// dom.go); Go does not allow a function and a type to share a name.
func Arr(items ...Value) Value {
	return Value{kind: KindArray, arr: append([]Value(nil), items...)}
}

// Pair is one key/value entry for Object.
type Pair struct {
	Key   string
	Value Value
}

// Object builds an object Value from pairs, in the teacher's fluent
// Document-builder idiom (see pkg/json/dom.go), adapted to build a real
// tagged union instead of a map[string]interface{}.
func Object(pairs ...Pair) Value {
	v := Value{kind: KindObject, obj: make(map[string]Value, len(pairs))}
	for _, p := range pairs {
		if _, exists := v.obj[p.Key]; !exists {
			v.keys = append(v.keys, p.Key)
		}
		v.obj[p.Key] = p.Value
	}
	return v
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsNumber() (Number, bool) {
	if v.kind != KindNumber {
		return Number{}, false
	}
	return v.n, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Keys returns object keys in insertion order. Emission (MarshalJSON,
// Formatter-driven encoding) always sorts keys regardless of this order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	return append([]string(nil), v.keys...)
}

// Get looks up a key in an object Value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	val, ok := v.obj[key]
	return val, ok
}

// Len returns the number of elements in an Array or Object Value, and 0
// for every other Kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// sortedKeys returns an object's keys sorted ascending, the default
// (non-insertion-order) emission order spec.md §3 requires.
func (v Value) sortedKeys() []string {
	keys := append([]string(nil), v.keys...)
	sort.Strings(keys)
	return keys
}

// Equal reports whether v and other represent the same JSON value,
// ignoring object key order (objects compare by key/value pairs, not
// insertion order) and treating int/uint/float Numbers that denote the
// same mathematical value as equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n.Float64() == other.n.Float64()
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, val := range v.obj {
			ov, ok := other.obj[k]
			if !ok || !val.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// fromInterface converts the interface{} tree internal/parse produces
// (map[string]interface{}, []interface{}, string, bool, nil,
// numlex.Number) into a Value tree.
func fromInterface(x interface{}) Value {
	switch t := x.(type) {
	case nil:
		return Null
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case Number:
		return NumberValue(t)
	case []interface{}:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = fromInterface(e)
		}
		return Value{kind: KindArray, arr: items}
	case map[string]interface{}:
		v := Value{kind: KindObject, obj: make(map[string]Value, len(t))}
		for k, e := range t {
			v.keys = append(v.keys, k)
			v.obj[k] = fromInterface(e)
		}
		return v
	default:
		return Null
	}
}
