// Package document holds the immutable, order-preserving JSON value model that every
// other confviz package reads from.
package document

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strconv"
)

// Kind identifies the JSON type of a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ObjectKind
	ArrayKind
)

// String returns the lower-case JSON type name.
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value. Objects keep their source key order and numbers keep
// their literal text. A Value is never modified after construction.
type Value struct {
	kind   Kind
	text   string
	keys   []string
	fields map[string]*Value
	items  []*Value
}

// Member is a key/value pair used to build objects.
type Member struct {
	Key   string
	Value *Value
}

// Null returns a JSON null.
func Null() *Value { return &Value{kind: NullKind, text: "null"} }

// Bool returns a JSON boolean.
func Bool(b bool) *Value {
	return &Value{kind: BoolKind, text: strconv.FormatBool(b)}
}

// Number returns a JSON number from its literal text (e.g. "30", "1.5e3").
func Number(literal string) *Value { return &Value{kind: NumberKind, text: literal} }

// String returns a JSON string.
func String(s string) *Value { return &Value{kind: StringKind, text: s} }

// Object returns an object with members in the given order. A repeated key keeps its
// first position and its last value, matching encoding/json.
func Object(members ...Member) *Value {
	v := &Value{kind: ObjectKind, fields: make(map[string]*Value, len(members))}
	for _, m := range members {
		if _, seen := v.fields[m.Key]; !seen {
			v.keys = append(v.keys, m.Key)
		}
		val := m.Value
		if val == nil {
			val = Null()
		}
		v.fields[m.Key] = val
	}
	return v
}

// Array returns an array holding items in order.
func Array(items ...*Value) *Value {
	v := &Value{kind: ArrayKind, items: make([]*Value, len(items))}
	for i, it := range items {
		if it == nil {
			it = Null()
		}
		v.items[i] = it
	}
	return v
}

// Kind reports the value's JSON type. A nil Value reports NullKind.
func (v *Value) Kind() Kind {
	if v == nil {
		return NullKind
	}
	return v.kind
}

// IsContainer reports whether v is an object or an array.
func (v *Value) IsContainer() bool {
	k := v.Kind()
	return k == ObjectKind || k == ArrayKind
}

// Keys returns object keys in source order. The slice must not be modified.
func (v *Value) Keys() []string {
	if v.Kind() != ObjectKind {
		return nil
	}
	return v.keys
}

// Get returns the member stored under key.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != ObjectKind {
		return nil, false
	}
	child, ok := v.fields[key]
	return child, ok
}

// Len returns the number of members or items; scalars have length 0.
func (v *Value) Len() int {
	switch v.Kind() {
	case ObjectKind:
		return len(v.keys)
	case ArrayKind:
		return len(v.items)
	default:
		return 0
	}
}

// Index returns the i-th array item, or nil when out of range.
func (v *Value) Index(i int) *Value {
	if v.Kind() != ArrayKind || i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Text returns the display form of a scalar: strings verbatim, numbers as written in
// the source, booleans as true/false and null as null. Containers render as compact JSON.
func (v *Value) Text() string {
	if v == nil {
		return "null"
	}
	if v.IsContainer() {
		b, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(b)
	}
	return v.text
}

// Equal reports whether two values are the same JSON value. Numbers compare by numeric
// value so 1 and 1.0 are equal; object member order is not significant.
func (v *Value) Equal(o *Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case NullKind:
		return true
	case NumberKind:
		return numbersEqual(v.text, o.text)
	case BoolKind, StringKind:
		return v.text == o.text
	case ObjectKind:
		if len(v.keys) != len(o.keys) {
			return false
		}
		for _, k := range v.keys {
			other, ok := o.fields[k]
			if !ok || !v.fields[k].Equal(other) {
				return false
			}
		}
		return true
	case ArrayKind:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}
	x, okA := new(big.Float).SetString(a)
	y, okB := new(big.Float).SetString(b)
	if !okA || !okB {
		return false
	}
	return x.Cmp(y) == 0
}

// Interface converts v to plain Go values (map[string]any, []any, string, float64,
// bool, nil), the shape expected by expression evaluators and generic encoders.
func (v *Value) Interface() any {
	switch v.Kind() {
	case NullKind:
		return nil
	case BoolKind:
		return v.text == "true"
	case NumberKind:
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return i
		}
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			return v.text
		}
		return f
	case StringKind:
		return v.text
	case ObjectKind:
		m := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			m[k] = v.fields[k].Interface()
		}
		return m
	case ArrayKind:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	}
	return nil
}

// MarshalJSON encodes v with object members in source order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) encode(buf *bytes.Buffer) error {
	switch v.Kind() {
	case NullKind:
		buf.WriteString("null")
	case BoolKind, NumberKind:
		buf.WriteString(v.text)
	case StringKind:
		b, err := json.Marshal(v.text)
		if err != nil {
			return err
		}
		buf.Write(b)
	case ObjectKind:
		buf.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := v.fields[k].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case ArrayKind:
		buf.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

// Indented returns v as JSON indented with two spaces.
func (v *Value) Indented() (string, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}
