package firebase

import (
	"bytes"

	jsonitor "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

var json = jsonitor.ConfigCompatibleWithStandardLibrary

// unmarshalJSON is the single entry point for body parsing.
var unmarshalJSON = json.Unmarshal

// Kind identifies which JSON shape a Value holds.
type Kind int

const (
	// KindNoContent marks an empty response body. It is not JSON null.
	KindNoContent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNoContent:
		return "no-content"
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
		return "unknown"
	}
}

// Value is a parsed JSON document. The zero Value is KindNoContent.
//
// Numbers decode to float64, arrays to []any and objects to map[string]any.
// Like the database, which stores numbers as doubles, integers beyond 2^53
// lose precision in Interface, Number and Decode; Raw keeps the exact text.
// The original text is retained so ForEach and Get see keys in document order.
type Value struct {
	kind Kind
	raw  []byte
	data any
}

// parseValue builds a Value from a response body. An empty body yields
// KindNoContent without invoking the parser. A body of only whitespace is
// not JSON and fails with ErrDecode.
func parseValue(raw []byte) (Value, error) {
	if len(raw) == 0 {
		return Value{}, nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Value{}, ErrDecode.New("body contains only whitespace")
	}
	var data any
	if err := unmarshalJSON(trimmed, &data); err != nil {
		return Value{}, ErrDecode.Err(err)
	}
	return newValue(trimmed, data), nil
}

func newValue(raw []byte, data any) Value {
	v := Value{raw: raw, data: data}
	switch data.(type) {
	case nil:
		v.kind = KindNull
	case bool:
		v.kind = KindBool
	case float64:
		v.kind = KindNumber
	case string:
		v.kind = KindString
	case []any:
		v.kind = KindArray
	case map[string]any:
		v.kind = KindObject
	}
	return v
}

func valueFromResult(res gjson.Result) Value {
	if !res.Exists() {
		return Value{}
	}
	v, err := parseValue([]byte(res.Raw))
	if err != nil {
		return Value{}
	}
	return v
}

func (v Value) Kind() Kind {
	return v.kind
}

// IsNoContent reports whether the body was empty.
func (v Value) IsNoContent() bool {
	return v.kind == KindNoContent
}

// IsNull reports whether the body was the JSON literal null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Interface returns the decoded Go value: nil, bool, float64, string,
// []any or map[string]any. No-content and null both return nil; use Kind
// to tell them apart.
func (v Value) Interface() any {
	return v.data
}

// Raw returns the JSON text of the value, or nil for KindNoContent.
func (v Value) Raw() []byte {
	return v.raw
}

func (v Value) Bool() (bool, bool) {
	b, ok := v.data.(bool)
	return b, ok
}

func (v Value) Number() (float64, bool) {
	n, ok := v.data.(float64)
	return n, ok
}

func (v Value) Text() (string, bool) {
	s, ok := v.data.(string)
	return s, ok
}

// Len returns the number of elements of an array or object, and 0 otherwise.
func (v Value) Len() int {
	switch d := v.data.(type) {
	case []any:
		return len(d)
	case map[string]any:
		return len(d)
	}
	return 0
}

// Get looks up a child using gjson path syntax, e.g. "users.0.name".
// A missing child yields KindNoContent.
func (v Value) Get(path string) Value {
	if v.kind != KindArray && v.kind != KindObject {
		return Value{}
	}
	return valueFromResult(gjson.GetBytes(v.raw, path))
}

// ForEach calls fn for every member of an object or element of an array, in
// document order, until fn returns false. Array keys are empty.
func (v Value) ForEach(fn func(key string, child Value) bool) {
	if v.kind != KindArray && v.kind != KindObject {
		return
	}
	isArray := v.kind == KindArray
	gjson.ParseBytes(v.raw).ForEach(func(key, value gjson.Result) bool {
		if isArray {
			return fn("", valueFromResult(value))
		}
		return fn(key.String(), valueFromResult(value))
	})
}

// Decode copies the value into target, which must be a pointer. Struct
// fields are matched by their json tags.
func (v Value) Decode(target any) error {
	if v.kind == KindNoContent {
		return ErrDecode.New("no content to decode")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  target,
	})
	if err != nil {
		return ErrDecode.Err(err)
	}
	if err := decoder.Decode(v.data); err != nil {
		return ErrDecode.Err(err)
	}
	return nil
}

// MarshalJSON writes the original text back. No-content marshals as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNoContent {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// String returns the JSON text, or an empty string for KindNoContent.
func (v Value) String() string {
	return string(v.raw)
}
