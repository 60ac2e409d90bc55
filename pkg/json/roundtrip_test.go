package json

import (
	"reflect"
	"testing"
)

// Empty arrays and empty objects must stay distinguishable through a
// marshal/unmarshal cycle into interface{} — encoding/json has the same
// invariant, and a naive map[string]interface{}-backed tree can silently
// merge the two when len() == 0 for both.
func TestEmptyArrayRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]interface{}
	}{
		{"empty array in map", map[string]interface{}{"items": []interface{}{}}},
		{"multiple empty arrays", map[string]interface{}{
			"array1": []interface{}{}, "array2": []interface{}{},
			"nested": map[string]interface{}{"emptyArr": []interface{}{}},
		}},
		{"empty array and empty object", map[string]interface{}{
			"emptyArray": []interface{}{}, "emptyObject": map[string]interface{}{},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBytes, err := Marshal(tt.input)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}

			var result map[string]interface{}
			if err := Unmarshal(jsonBytes, &result); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}

			if !reflect.DeepEqual(tt.input, result) {
				t.Errorf("round trip mismatch:\ninput:  %#v\nresult: %#v\nJSON:   %s", tt.input, result, jsonBytes)
			}
			assertShapesMatch(t, "", tt.input, result)
		})
	}
}

// assertShapesMatch recursively checks that every []interface{}/
// map[string]interface{} in original is still the same kind in result.
func assertShapesMatch(t *testing.T, path string, original, result interface{}) {
	t.Helper()
	switch orig := original.(type) {
	case []interface{}:
		res, ok := result.([]interface{})
		if !ok {
			t.Errorf("at %q: expected []interface{}, got %T (%v)", path, result, result)
			return
		}
		for i := range orig {
			if i < len(res) {
				assertShapesMatch(t, path+"[]", orig[i], res[i])
			}
		}
	case map[string]interface{}:
		res, ok := result.(map[string]interface{})
		if !ok {
			t.Errorf("at %q: expected map[string]interface{}, got %T (%v)", path, result, result)
			return
		}
		for key, val := range orig {
			if resVal, exists := res[key]; exists {
				assertShapesMatch(t, path+"."+key, val, resVal)
			}
		}
	}
}

func TestEmptyArrayJSONRepresentation(t *testing.T) {
	for _, tt := range []struct {
		name, want string
		input      interface{}
	}{
		{"standalone empty array", `[]`, []interface{}{}},
		{"empty array in struct", `{"Items":[]}`, struct{ Items []int }{Items: []int{}}},
		{"empty array in map", `{"data":[]}`, map[string]interface{}{"data": []interface{}{}}},
		{"empty object vs empty array", `{"arr":[],"obj":{}}`, map[string]interface{}{
			"arr": []interface{}{}, "obj": map[string]interface{}{},
		}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArrayTypeFidelity(t *testing.T) {
	data := struct {
		EmptyArray  []interface{}          `json:"emptyArray"`
		EmptyObject map[string]interface{} `json:"emptyObject"`
		FilledArray []int                  `json:"filledArray"`
	}{
		EmptyArray:  []interface{}{},
		EmptyObject: map[string]interface{}{},
		FilledArray: []int{1, 2, 3},
	}

	jsonBytes, err := Marshal(data)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"emptyArray":[],"emptyObject":{},"filledArray":[1,2,3]}`; string(jsonBytes) != want {
		t.Errorf("JSON = %s, want %s", jsonBytes, want)
	}

	var result map[string]interface{}
	if err := Unmarshal(jsonBytes, &result); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for key, wantType := range map[string]interface{}{
		"emptyArray":  []interface{}(nil),
		"emptyObject": map[string]interface{}(nil),
		"filledArray": []interface{}(nil),
	} {
		v, ok := result[key]
		if !ok {
			t.Errorf("%s key not found", key)
			continue
		}
		if reflect.TypeOf(v) != reflect.TypeOf(wantType) {
			t.Errorf("%s has wrong type: got %T, want %T", key, v, wantType)
		}
	}
}

// Value's Kind distinguishes an empty array from an empty object
// directly, without needing the interface{} round-trip the tests above
// rely on — this is the tagged-union property that motivated Value in
// the first place.
func TestValue_EmptyArrayVsEmptyObjectKind(t *testing.T) {
	arr, err := Parse(`[]`)
	if err != nil {
		t.Fatalf("Parse([]) error = %v", err)
	}
	obj, err := Parse(`{}`)
	if err != nil {
		t.Fatalf("Parse({}) error = %v", err)
	}
	if arr.Kind() != KindArray {
		t.Errorf("Parse([]).Kind() = %v, want %v", arr.Kind(), KindArray)
	}
	if obj.Kind() != KindObject {
		t.Errorf("Parse({}).Kind() = %v, want %v", obj.Kind(), KindObject)
	}
	if arr.Kind() == obj.Kind() {
		t.Error("empty array and empty object must not share a Kind")
	}
}
