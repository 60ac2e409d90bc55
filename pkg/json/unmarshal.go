package json

import (
	"reflect"
	"strings"

	"github.com/shapestone/jsoncodec/internal/numlex"
)

// Unmarshal parses the JSON-encoded data and stores the result in the
// value pointed to by v, the inverse of Marshal's encodings. Grounded on
// shapestone-shape-json/pkg/json/unmarshal.go's unmarshalFromNode/
// unmarshalValue/unmarshalStruct/unmarshalMap/unmarshalArray dispatch,
// adapted to decode from the interface{} tree internal/parse produces
// instead of an ast.SchemaNode (the teacher's AST represents JSON arrays
// as objects with numeric string keys "0","1","2",...; this repo's
// parser instead produces a genuine []interface{}, so that translation
// step — unmarshalArray/isArray in the teacher — is dropped entirely).
func Unmarshal(data []byte, v interface{}) error {
	out, err := parseToInterface(data)
	if err != nil {
		return err
	}
	return decodeInto(out, v)
}

// Unmarshaler is the interface implemented by types that can unmarshal a
// JSON description of themselves.
type Unmarshaler interface {
	UnmarshalJSON([]byte) error
}

func decodeInto(node interface{}, v interface{}) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return newDataError("Unmarshal(nil)", 0, 0)
	}
	if rv.Kind() != reflect.Ptr {
		return newDataError("Unmarshal(non-pointer "+rv.Type().String()+")", 0, 0)
	}
	if rv.IsNil() {
		return newDataError("Unmarshal(nil "+rv.Type().String()+")", 0, 0)
	}

	if rv.Type().Implements(unmarshalerType) {
		jsonBytes, err := Marshal(node)
		if err != nil {
			return err
		}
		return rv.Interface().(Unmarshaler).UnmarshalJSON(jsonBytes)
	}

	return unmarshalValue(node, rv.Elem())
}

var unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()

func unmarshalValue(node interface{}, rv reflect.Value) error {
	if node == nil {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		rv.Set(reflect.ValueOf(interfaceFromParsed(node)))
		return nil
	}

	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return unmarshalValue(node, rv.Elem())
	}

	switch t := node.(type) {
	case string, bool, numlex.Number:
		return unmarshalLiteral(t, rv)
	case map[string]interface{}:
		return unmarshalObject(t, rv)
	case []interface{}:
		return unmarshalArray(t, rv)
	default:
		return newDataError("unsupported value "+reflect.TypeOf(node).String(), 0, 0)
	}
}

func unmarshalLiteral(val interface{}, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		if s, ok := val.(string); ok {
			rv.SetString(s)
			return nil
		}
		return newDataError("cannot unmarshal into Go value of type string", 0, 0)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := val.(numlex.Number)
		if !ok {
			return newDataError("cannot unmarshal into Go value of type "+rv.Type().String(), 0, 0)
		}
		if i, ok := n.Int64(); ok {
			if rv.OverflowInt(i) {
				return newDataError("value overflows "+rv.Type().String(), 0, 0)
			}
			rv.SetInt(i)
			return nil
		}
		f := n.Float64()
		if f != float64(int64(f)) {
			return newDataError("cannot unmarshal number "+n.String()+" into Go value of type "+rv.Type().String(), 0, 0)
		}
		i := int64(f)
		if rv.OverflowInt(i) {
			return newDataError("value overflows "+rv.Type().String(), 0, 0)
		}
		rv.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := val.(numlex.Number)
		if !ok {
			return newDataError("cannot unmarshal into Go value of type "+rv.Type().String(), 0, 0)
		}
		if u, ok := n.Uint64(); ok {
			if rv.OverflowUint(u) {
				return newDataError("value overflows "+rv.Type().String(), 0, 0)
			}
			rv.SetUint(u)
			return nil
		}
		if n.Kind() == numlex.KindInt64 {
			// A negative integer literal: out of range for every unsigned type.
			return newDataError("value overflows "+rv.Type().String(), 0, 0)
		}
		f := n.Float64()
		if f < 0 || f != float64(uint64(f)) {
			return newDataError("cannot unmarshal number "+n.String()+" into Go value of type "+rv.Type().String(), 0, 0)
		}
		u := uint64(f)
		if rv.OverflowUint(u) {
			return newDataError("value overflows "+rv.Type().String(), 0, 0)
		}
		rv.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		n, ok := val.(numlex.Number)
		if !ok {
			return newDataError("cannot unmarshal into Go value of type "+rv.Type().String(), 0, 0)
		}
		f := n.Float64()
		if rv.OverflowFloat(f) {
			return newDataError("value overflows "+rv.Type().String(), 0, 0)
		}
		rv.SetFloat(f)
		return nil

	case reflect.Bool:
		if b, ok := val.(bool); ok {
			rv.SetBool(b)
			return nil
		}
		return newDataError("cannot unmarshal into Go value of type bool", 0, 0)

	default:
		return newDataError("unsupported type "+rv.Type().String(), 0, 0)
	}
}

func unmarshalObject(props map[string]interface{}, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Struct:
		return unmarshalStruct(props, rv)
	case reflect.Map:
		return unmarshalMap(props, rv)
	default:
		return newDataError("cannot unmarshal object into Go value of type "+rv.Type().String(), 0, 0)
	}
}

func unmarshalStruct(props map[string]interface{}, rv reflect.Value) error {
	fields := fieldsForType(rv.Type())

	fieldMap := make(map[string]int, len(fields))
	for _, f := range fields {
		fieldMap[f.name] = f.index
	}

	for jsonName, propNode := range props {
		idx, ok := fieldMap[jsonName]
		if !ok {
			// Case-insensitive fallback, matching encoding/json's
			// documented lenient matching.
			for name, i := range fieldMap {
				if strings.EqualFold(name, jsonName) {
					idx, ok = i, true
					break
				}
			}
		}
		if !ok {
			continue
		}
		if err := unmarshalValue(propNode, rv.Field(idx)); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalMap(props map[string]interface{}, rv reflect.Value) error {
	mapType := rv.Type()
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	}
	if mapType.Key().Kind() != reflect.String {
		return newDataError("unsupported map key type "+mapType.Key().String(), 0, 0)
	}
	valueType := mapType.Elem()
	for key, propNode := range props {
		elemVal := reflect.New(valueType).Elem()
		if err := unmarshalValue(propNode, elemVal); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(key), elemVal)
	}
	return nil
}

func unmarshalArray(elements []interface{}, rv reflect.Value) error {
	n := len(elements)
	switch rv.Kind() {
	case reflect.Slice:
		slice := reflect.MakeSlice(rv.Type(), n, n)
		for i, elem := range elements {
			if err := unmarshalValue(elem, slice.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(slice)
		return nil
	case reflect.Array:
		if n > rv.Len() {
			return newDataError("array length exceeds target array length", 0, 0)
		}
		for i, elem := range elements {
			if err := unmarshalValue(elem, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return newDataError("cannot unmarshal array into Go value of type "+rv.Type().String(), 0, 0)
	}
}

// interfaceFromParsed converts one node of internal/parse's interface{}
// tree into the exact shape documented for Unmarshal into interface{}:
// bool, float64, string, []interface{}, map[string]interface{}, nil —
// matching encoding/json's convention (Number stored as float64, not our
// richer Number type, so callers relying on that convention still work).
func interfaceFromParsed(node interface{}) interface{} {
	switch t := node.(type) {
	case numlex.Number:
		return t.Float64()
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = interfaceFromParsed(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = interfaceFromParsed(e)
		}
		return out
	default:
		return t
	}
}
