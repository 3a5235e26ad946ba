package querytree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
)

// Value is a sealed interface over the JSON shapes a query tree may hold.
// Only String, Int, Boolean, Array and Object implement it. There is no float
// and no null.
type Value interface {
	value()
}

// String is a JSON string.
type String string

// Int is a JSON integer.
type Int int64

// Boolean is a JSON boolean.
type Boolean bool

// Array is a JSON array.
type Array []Value

// Object is a JSON object. Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (String) value()  {}
func (Int) value()     {}
func (Boolean) value() {}
func (Array) value()   {}
func (Object) value()  {}

// Strings builds an Array of String values.
func Strings(values ...string) Array {
	arr := make(Array, len(values))
	for i, v := range values {
		arr[i] = String(v)
	}
	return arr
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's native string ordering compares UTF-8 bytes and differs for
// characters outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}

// MarshalJSON implements json.Marshaler with canonical key order.
func (obj Object) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(obj)
}

// MarshalJSON implements json.Marshaler.
func (arr Array) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(arr)
}

// DecodeValue parses JSON into a Value, rejecting floats and nulls.
func DecodeValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return FromAny(raw)
}

// FromAny converts decoded JSON or YAML data into a Value.
// Accepted inputs are string, bool, integer kinds, json.Number holding an
// integer, []any, map[string]any, and Values themselves.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is not allowed in a query tree")
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Boolean(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("number out of int64 range: %d", val)
		}
		return Int(val), nil
	case json.Number:
		if strings.ContainsAny(string(val), ".eE") {
			return nil, fmt.Errorf("floats are not allowed in a query tree: %s", val)
		}
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("number out of int64 range: %s", val)
		}
		return Int(n), nil
	case float32, float64:
		return nil, fmt.Errorf("floats are not allowed in a query tree: %v", val)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			conv, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = conv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			conv, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = conv
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}
