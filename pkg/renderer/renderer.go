// Package renderer turns a diff entry list into one of the supported
// textual representations: the native line-per-entry report, JSON, or
// YAML.
package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/wonderfulspam/semdiff/pkg/differ"
)

// FormatError reports an unrecognized rendering target.
type FormatError struct {
	Name string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unknown output format: %q (supported: native, json, yaml)", e.Name)
}

// Format renders entries in the named format. The empty name means
// native.
func Format(entries []differ.Entry, name string) (string, error) {
	format, err := differ.ParseOutputFormat(name)
	if err != nil {
		return "", &FormatError{Name: name}
	}
	return FormatAs(entries, format)
}

// FormatAs renders entries in an already resolved format.
func FormatAs(entries []differ.Entry, format differ.OutputFormat) (string, error) {
	if entries == nil {
		entries = []differ.Entry{}
	}

	switch format {
	case differ.OutputNative:
		return formatNative(entries), nil

	case differ.OutputJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling entries: %w", err)
		}
		return string(data) + "\n", nil

	case differ.OutputYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return "", fmt.Errorf("marshaling entries: %w", err)
		}
		return string(data), nil
	}

	return "", &FormatError{Name: string(format)}
}

// formatNative writes one line per entry: a marker for the entry kind,
// the path, and the value(s) as compact literals.
//
//	+ jobs.test: {"stage":"test"}
//	- jobs.lint: {"stage":"lint"}
//	~ timeout: 30 -> 60
//	! port: "8080" -> 8080
func formatNative(entries []differ.Entry) string {
	var buf bytes.Buffer
	for _, e := range entries {
		path := e.Path
		if path == "" {
			path = "(root)"
		}
		switch e.Type {
		case differ.DiffTypeAdded:
			fmt.Fprintf(&buf, "+ %s: %s\n", path, e.NewValue)
		case differ.DiffTypeRemoved:
			fmt.Fprintf(&buf, "- %s: %s\n", path, e.Value)
		case differ.DiffTypeModified:
			fmt.Fprintf(&buf, "~ %s: %s -> %s\n", path, e.OldValue, e.NewValue)
		case differ.DiffTypeTypeChanged:
			fmt.Fprintf(&buf, "! %s: %s -> %s\n", path, e.OldValue, e.NewValue)
		}
	}
	return buf.String()
}
