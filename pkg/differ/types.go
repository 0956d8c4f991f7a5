package differ

import (
	"fmt"
	"strings"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

type DiffType string

const (
	DiffTypeAdded       = DiffType("Added")
	DiffTypeRemoved     = DiffType("Removed")
	DiffTypeModified    = DiffType("Modified")
	DiffTypeTypeChanged = DiffType("TypeChanged")
)

// Entry is one difference between the two trees. Field population is
// fixed per type: Added carries NewValue, Removed carries Value,
// Modified and TypeChanged carry OldValue and NewValue. This is also the
// serialized shape for the json and yaml output formats.
type Entry struct {
	Type     DiffType     `json:"type" yaml:"type"`
	Path     string       `json:"path" yaml:"path"`
	Value    *value.Value `json:"value,omitempty" yaml:"value,omitempty"`
	OldValue *value.Value `json:"oldValue,omitempty" yaml:"oldValue,omitempty"`
	NewValue *value.Value `json:"newValue,omitempty" yaml:"newValue,omitempty"`
}

// Result wraps a diff run for callers that want more than the raw entry
// list. Under quiet mode Entries is nil and only HasChanges is
// meaningful.
type Result struct {
	Entries    []Entry `json:"entries"`
	HasChanges bool    `json:"has_changes"`
	Summary    string  `json:"summary"`
}

func summarize(entries []Entry, hasChanges bool) string {
	if !hasChanges {
		return "no differences found"
	}
	if len(entries) == 0 {
		return "trees differ"
	}

	counts := map[DiffType]int{}
	for _, e := range entries {
		counts[e.Type]++
	}
	parts := []string{}
	for _, dt := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified, DiffTypeTypeChanged} {
		if n := counts[dt]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(string(dt))))
		}
	}
	return fmt.Sprintf("%s (%d total changes)", strings.Join(parts, ", "), len(entries))
}
