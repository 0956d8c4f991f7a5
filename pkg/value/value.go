// Package value defines the canonical data model shared by every format
// parser and the diff engine. A Value is a closed tagged variant over the
// six kinds below; parsers produce nothing else, and the engine consumes
// nothing else, so neither side ever sees a source-format type.
package value

import "fmt"

type Kind string

const (
	KindNull   = Kind("null")
	KindBool   = Kind("bool")
	KindNumber = Kind("number")
	KindString = Kind("string")
	KindArray  = Kind("array")
	KindObject = Kind("object")
)

// Value is one node of a canonical tree. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []*Value
	obj  *Object
}

func Null() *Value {
	return &Value{kind: KindNull}
}

func Bool(b bool) *Value {
	return &Value{kind: KindBool, b: b}
}

// Number holds every numeric scalar as a float64. TOML integers, YAML
// integers and the like all land here, so 1 and 1.0 compare equal.
func Number(n float64) *Value {
	return &Value{kind: KindNumber, n: n}
}

func String(s string) *Value {
	return &Value{kind: KindString, s: s}
}

func Array(items ...*Value) *Value {
	return &Value{kind: KindArray, arr: items}
}

func ObjectValue(obj *Object) *Value {
	if obj == nil {
		obj = NewObject()
	}
	return &Value{kind: KindObject, obj: obj}
}

func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) Bool() bool { return v.b }

func (v *Value) Number() float64 { return v.n }

// Text returns the raw string scalar. Only meaningful for KindString.
func (v *Value) Text() string { return v.s }

func (v *Value) Array() []*Value { return v.arr }

func (v *Value) Object() *Object { return v.obj }

func (v *Value) Append(items ...*Value) {
	v.arr = append(v.arr, items...)
}

// Interface converts the tree back to plain Go values: nil, bool, float64,
// string, []interface{} and map[string]interface{}. Object key order is
// lost in the map; callers that need order should walk the Value directly.
func (v *Value) Interface() interface{} {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, v.obj.Len())
		for _, key := range v.obj.Keys() {
			item, _ := v.obj.Get(key)
			out[key] = item.Interface()
		}
		return out
	}
	return nil
}

// FromInterface builds a Value from plain Go data, accepting the types
// produced by the stdlib JSON decoder plus the common integer widths.
// Map key order is whatever Go's map iteration yields; parsers that care
// about document order build Objects directly instead of going through
// maps.
func FromInterface(data interface{}) (*Value, error) {
	switch d := data.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(d), nil
	case float64:
		return Number(d), nil
	case float32:
		return Number(float64(d)), nil
	case int:
		return Number(float64(d)), nil
	case int64:
		return Number(float64(d)), nil
	case uint64:
		return Number(float64(d)), nil
	case string:
		return String(d), nil
	case []interface{}:
		arr := Array()
		for _, item := range d {
			v, err := FromInterface(item)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case map[string]interface{}:
		obj := NewObject()
		for _, key := range sortedKeys(d) {
			v, err := FromInterface(d[key])
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return ObjectValue(obj), nil
	}
	return nil, fmt.Errorf("unsupported value type %T", data)
}
