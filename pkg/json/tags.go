package json

import (
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
)

// fieldInfo is the parsed result of a struct field's `json` tag: the
// JSON name it encodes/decodes under plus the omitempty/string/skip
// options, mirroring encoding/json's documented tag grammar.
type fieldInfo struct {
	name      string
	omitEmpty bool
	asString  bool
	skip      bool
}

// parseTag parses a struct field's json tag value: "name" or
// "name,option1,option2". A bare "-" means skip the field entirely.
func parseTag(tag string) fieldInfo {
	if tag == "-" {
		return fieldInfo{name: "-", skip: true}
	}

	parts := strings.Split(tag, ",")
	info := fieldInfo{name: parts[0]}
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "omitempty":
			info.omitEmpty = true
		case "string":
			info.asString = true
		}
	}
	return info
}

// getFieldInfo resolves a struct field's effective fieldInfo, falling
// back to the Go field name when the tag supplies none.
func getFieldInfo(field reflect.StructField) fieldInfo {
	info := parseTag(field.Tag.Get("json"))
	if info.name == "" && !info.skip {
		info.name = field.Name
	}
	return info
}

// isEmptyValue reports whether v is the zero value for omitempty purposes.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

// decodeField is one decodable struct field resolved from a reflect.Type:
// its field index and the json name it's addressed by.
type decodeField struct {
	index int
	name  string
}

// decodeFieldCache maps a struct reflect.Type to its decodeField slice,
// built once per type instead of re-walking StructField/tag parsing on
// every unmarshalStruct call. Same copy-on-write atomic.Value idiom
// encoder.go's encoderCache uses on the encode side, applied here to the
// decode side which had no equivalent cache.
var decodeFieldCache atomic.Value // map[reflect.Type][]decodeField
var decodeFieldMu sync.Mutex

func init() {
	decodeFieldCache.Store(make(map[reflect.Type][]decodeField))
}

// fieldsForType returns the cached decodeField list for t, building and
// storing it on first use.
func fieldsForType(t reflect.Type) []decodeField {
	if fs, ok := decodeFieldCache.Load().(map[reflect.Type][]decodeField)[t]; ok {
		return fs
	}

	decodeFieldMu.Lock()
	defer decodeFieldMu.Unlock()

	cur := decodeFieldCache.Load().(map[reflect.Type][]decodeField)
	if fs, ok := cur[t]; ok {
		return fs
	}

	var fields []decodeField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		info := getFieldInfo(sf)
		if info.skip {
			continue
		}
		fields = append(fields, decodeField{index: i, name: info.name})
	}

	next := make(map[reflect.Type][]decodeField, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	next[t] = fields
	decodeFieldCache.Store(next)
	return fields
}
