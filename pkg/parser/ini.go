package parser

import (
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

// ParseINI decodes an INI document. Each section becomes a top-level
// object key holding an object of its keys; keys that appear before any
// section header are placed directly at the top level. Values get scalar
// inference: "true"/"false" become Bool, anything that parses as a
// number becomes Number, everything else stays String.
func ParseINI(text string) (*value.Value, error) {
	cfg, err := ini.Load([]byte(text))
	if err != nil {
		return nil, &ParseError{Format: FormatINI, Msg: err.Error(), Err: err}
	}

	root := value.NewObject()
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			for _, key := range section.Keys() {
				root.Set(key.Name(), inferScalar(key.Value()))
			}
			continue
		}
		obj := value.NewObject()
		for _, key := range section.Keys() {
			obj.Set(key.Name(), inferScalar(key.Value()))
		}
		root.Set(section.Name(), value.ObjectValue(obj))
	}
	return value.ObjectValue(root), nil
}

func inferScalar(s string) *value.Value {
	switch s {
	case "true", "false":
		return value.Bool(s == "true")
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && s != "" {
		return value.Number(n)
	}
	return value.String(s)
}
