package parser

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

// ParseTOML decodes one TOML document. BurntSushi/toml decodes into
// plain maps, so document key order is reconstructed from
// MetaData.Keys(), which lists keys in order of appearance. Integers and
// floats both become Number; datetimes become RFC 3339 strings.
func ParseTOML(text string) (*value.Value, error) {
	var raw map[string]interface{}
	md, err := toml.Decode(text, &raw)
	if err != nil {
		pe := &ParseError{Format: FormatTOML, Msg: err.Error(), Err: err}
		var tomlErr toml.ParseError
		if errors.As(err, &tomlErr) {
			pe.Line = tomlErr.Position.Line
			pe.Msg = tomlErr.Message
		}
		return nil, pe
	}
	return tomlTable(raw, "", keyOrder(md))
}

// keyOrder maps a table path to its child keys in document order. Paths
// are joined with NUL so dotted key names cannot collide.
func keyOrder(md toml.MetaData) map[string][]string {
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		prefix := ""
		for _, part := range key {
			full := prefix + "\x00" + part
			if !seen[full] {
				seen[full] = true
				order[prefix] = append(order[prefix], part)
			}
			prefix = full
		}
	}
	return order
}

func tomlTable(table map[string]interface{}, prefix string, order map[string][]string) (*value.Value, error) {
	keys := order[prefix]
	if len(keys) < len(table) {
		// inline structures the metadata does not cover; keep them stable
		known := make(map[string]bool, len(keys))
		for _, k := range keys {
			known[k] = true
		}
		var rest []string
		for k := range table {
			if !known[k] {
				rest = append(rest, k)
			}
		}
		sort.Strings(rest)
		keys = append(keys, rest...)
	}

	obj := value.NewObject()
	for _, key := range keys {
		raw, ok := table[key]
		if !ok {
			continue
		}
		v, err := tomlValue(raw, prefix+"\x00"+key, order)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	return value.ObjectValue(obj), nil
}

func tomlValue(raw interface{}, prefix string, order map[string][]string) (*value.Value, error) {
	switch t := raw.(type) {
	case map[string]interface{}:
		return tomlTable(t, prefix, order)
	case []map[string]interface{}: // array of tables
		arr := value.Array()
		for _, elem := range t {
			v, err := tomlTable(elem, prefix, order)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case []interface{}:
		arr := value.Array()
		for _, elem := range t {
			v, err := tomlValue(elem, prefix, order)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case bool:
		return value.Bool(t), nil
	case int64:
		return value.Number(float64(t)), nil
	case float64:
		return value.Number(t), nil
	case string:
		return value.String(t), nil
	case time.Time:
		return value.String(t.Format(time.RFC3339)), nil
	}
	// local date/time wrapper types from the toml package stringify cleanly
	if s, ok := raw.(fmt.Stringer); ok {
		return value.String(s.String()), nil
	}
	return nil, &ParseError{Format: FormatTOML, Msg: fmt.Sprintf("unsupported TOML value type %T", raw)}
}
