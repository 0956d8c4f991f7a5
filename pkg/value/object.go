package value

import "sort"

// Object is a string-keyed mapping that remembers insertion order. Order
// is semantically meaningful: the diff engine walks keys in document
// order so entry ordering stays stable across runs.
type Object struct {
	keys []string
	vals map[string]*Value
}

func NewObject() *Object {
	return &Object{vals: make(map[string]*Value)}
}

// Set inserts or replaces a key. A replaced key keeps its original
// position.
func (o *Object) Set(key string, v *Value) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

func (o *Object) Get(key string) (*Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (o *Object) Keys() []string {
	return o.keys
}

func (o *Object) Len() int {
	return len(o.keys)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
