// Package differ compares two canonical value trees and reports their
// differences as an ordered, path-addressed entry list. Entry order is
// fully determined by the traversal: object keys in the old tree's
// document order followed by new-only keys in the new tree's order,
// array elements by index or identity-match order. No map iteration
// order ever leaks into the output.
package differ

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

// ErrDepthExceeded signals that traversal hit the configured depth
// bound.
var ErrDepthExceeded = errors.New("maximum traversal depth exceeded")

// EngineError reports a failure during traversal along with the path at
// which it occurred.
type EngineError struct {
	Path string
	Err  error
}

func (e *EngineError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("diffing: %v", e.Err)
	}
	return fmt.Sprintf("diffing at %s: %v", e.Path, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Diff compares old and new and returns the ordered entry list. A nil
// opts means all defaults.
func Diff(old, new *value.Value, opts *Options) ([]Entry, error) {
	result, err := Compare(old, new, opts)
	if err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// Compare is Diff plus the changed/unchanged signal and a human summary,
// which brief and quiet mode callers need since their entry lists are
// truncated or absent.
func Compare(old, new *value.Value, opts *Options) (*Result, error) {
	var raw Options
	if opts != nil {
		raw = *opts
	}
	cfg, err := raw.Validate()
	if err != nil {
		return nil, err
	}
	return CompareWith(old, new, cfg)
}

// CompareWith runs a diff against an already validated configuration,
// letting callers reuse one Config across many document pairs without
// recompiling the exclusion pattern.
func CompareWith(old, new *value.Value, cfg *Config) (*Result, error) {
	d := &differ{cfg: cfg}
	if err := d.node(old, new, 0); err != nil {
		return nil, err
	}

	entries := d.entries
	if cfg.PathFilter != "" {
		kept := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if strings.Contains(e.Path, cfg.PathFilter) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	return &Result{
		Entries:    entries,
		HasChanges: d.found,
		Summary:    summarize(entries, d.found),
	}, nil
}

type pathSeg struct {
	label   string
	bracket bool // rendered without a leading dot, e.g. [3] or [id=1]
}

type differ struct {
	cfg     *Config
	path    []pathSeg
	entries []Entry
	found   bool
}

// done reports whether the short-circuit modes have seen enough.
func (d *differ) done() bool {
	return d.found && (d.cfg.BriefMode || d.cfg.QuietMode)
}

func (d *differ) push(seg pathSeg) {
	d.path = append(d.path, seg)
}

func (d *differ) pop() {
	d.path = d.path[:len(d.path)-1]
}

// currentPath joins the accumulated segments into the display string.
// Segments are kept as tokens during recursion; the join happens only
// when an entry is emitted.
func (d *differ) currentPath() string {
	var sb strings.Builder
	for i, seg := range d.path {
		if !seg.bracket && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.label)
	}
	return sb.String()
}

func (d *differ) emit(e Entry) {
	if d.cfg.PathFilter == "" || strings.Contains(e.Path, d.cfg.PathFilter) {
		d.found = true
	}
	if !d.cfg.QuietMode {
		d.entries = append(d.entries, e)
	}
}

func (d *differ) node(old, new *value.Value, depth int) error {
	if d.done() {
		return nil
	}
	if depth > d.cfg.MaxDepth {
		return &EngineError{Path: d.currentPath(), Err: ErrDepthExceeded}
	}

	if old.Kind() != new.Kind() {
		d.emit(Entry{Type: DiffTypeTypeChanged, Path: d.currentPath(), OldValue: old, NewValue: new})
		return nil
	}

	switch old.Kind() {
	case value.KindObject:
		return d.objects(old.Object(), new.Object(), depth)
	case value.KindArray:
		return d.arrays(old.Array(), new.Array(), depth)
	case value.KindNumber:
		if !d.numbersEqual(old.Number(), new.Number()) {
			d.emit(Entry{Type: DiffTypeModified, Path: d.currentPath(), OldValue: old, NewValue: new})
		}
	case value.KindString:
		if d.normalize(old.Text()) != d.normalize(new.Text()) {
			d.emit(Entry{Type: DiffTypeModified, Path: d.currentPath(), OldValue: old, NewValue: new})
		}
	case value.KindBool:
		if old.Bool() != new.Bool() {
			d.emit(Entry{Type: DiffTypeModified, Path: d.currentPath(), OldValue: old, NewValue: new})
		}
	case value.KindNull:
		// two nulls are always equal
	}
	return nil
}

func (d *differ) objects(old, new *value.Object, depth int) error {
	for _, key := range old.Keys() {
		if d.done() {
			return nil
		}
		if d.ignored(key) {
			continue
		}
		oldItem, _ := old.Get(key)
		d.push(pathSeg{label: key})
		if newItem, ok := new.Get(key); ok {
			if err := d.node(oldItem, newItem, depth+1); err != nil {
				return err
			}
		} else {
			d.emit(Entry{Type: DiffTypeRemoved, Path: d.currentPath(), Value: oldItem})
		}
		d.pop()
	}

	for _, key := range new.Keys() {
		if d.done() {
			return nil
		}
		if old.Has(key) || d.ignored(key) {
			continue
		}
		newItem, _ := new.Get(key)
		d.push(pathSeg{label: key})
		d.emit(Entry{Type: DiffTypeAdded, Path: d.currentPath(), NewValue: newItem})
		d.pop()
	}
	return nil
}

func (d *differ) arrays(old, new []*value.Value, depth int) error {
	if d.cfg.ArrayIDKey != "" {
		oldIDs, oldOK := identityIndex(old, d.cfg.ArrayIDKey)
		newIDs, newOK := identityIndex(new, d.cfg.ArrayIDKey)
		if oldOK && newOK {
			return d.arraysByIdentity(oldIDs, newIDs, depth)
		}
	}
	return d.arraysByPosition(old, new, depth)
}

// identitySlot pairs an element with the literal form of its identity
// key value, which becomes the [key=value] path segment.
type identitySlot struct {
	id   string
	elem *value.Value
}

// identityIndex extracts identity keys in element order. It reports
// false when identity matching cannot apply: some element is not an
// object, lacks the key, or two elements share an id.
func identityIndex(items []*value.Value, idKey string) ([]identitySlot, bool) {
	slots := make([]identitySlot, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Kind() != value.KindObject {
			return nil, false
		}
		idVal, ok := item.Object().Get(idKey)
		if !ok {
			return nil, false
		}
		id := scalarLabel(idVal)
		if seen[id] {
			return nil, false
		}
		seen[id] = true
		slots = append(slots, identitySlot{id: id, elem: item})
	}
	return slots, true
}

// scalarLabel renders an identity value for the path segment: raw text
// for strings, the compact literal otherwise.
func scalarLabel(v *value.Value) string {
	if v.Kind() == value.KindString {
		return v.Text()
	}
	return v.String()
}

func (d *differ) arraysByIdentity(old, new []identitySlot, depth int) error {
	newByID := make(map[string]*value.Value, len(new))
	for _, slot := range new {
		newByID[slot.id] = slot.elem
	}
	oldByID := make(map[string]bool, len(old))
	for _, slot := range old {
		oldByID[slot.id] = true
	}

	for _, slot := range old {
		if d.done() {
			return nil
		}
		d.push(pathSeg{label: fmt.Sprintf("[%s=%s]", d.cfg.ArrayIDKey, slot.id), bracket: true})
		if newElem, ok := newByID[slot.id]; ok {
			// reordering alone produces no entries
			if err := d.node(slot.elem, newElem, depth+1); err != nil {
				return err
			}
		} else {
			d.emit(Entry{Type: DiffTypeRemoved, Path: d.currentPath(), Value: slot.elem})
		}
		d.pop()
	}

	for _, slot := range new {
		if d.done() {
			return nil
		}
		if oldByID[slot.id] {
			continue
		}
		d.push(pathSeg{label: fmt.Sprintf("[%s=%s]", d.cfg.ArrayIDKey, slot.id), bracket: true})
		d.emit(Entry{Type: DiffTypeAdded, Path: d.currentPath(), NewValue: slot.elem})
		d.pop()
	}
	return nil
}

func (d *differ) arraysByPosition(old, new []*value.Value, depth int) error {
	shorter := len(old)
	if len(new) < shorter {
		shorter = len(new)
	}

	for i := 0; i < shorter; i++ {
		if d.done() {
			return nil
		}
		d.push(pathSeg{label: fmt.Sprintf("[%d]", i), bracket: true})
		if err := d.node(old[i], new[i], depth+1); err != nil {
			return err
		}
		d.pop()
	}

	for i := shorter; i < len(old); i++ {
		if d.done() {
			return nil
		}
		d.push(pathSeg{label: fmt.Sprintf("[%d]", i), bracket: true})
		d.emit(Entry{Type: DiffTypeRemoved, Path: d.currentPath(), Value: old[i]})
		d.pop()
	}
	for i := shorter; i < len(new); i++ {
		if d.done() {
			return nil
		}
		d.push(pathSeg{label: fmt.Sprintf("[%d]", i), bracket: true})
		d.emit(Entry{Type: DiffTypeAdded, Path: d.currentPath(), NewValue: new[i]})
		d.pop()
	}
	return nil
}

func (d *differ) ignored(key string) bool {
	return d.cfg.IgnoreKeys != nil && d.cfg.IgnoreKeys.MatchString(key)
}

func (d *differ) numbersEqual(a, b float64) bool {
	if d.cfg.Epsilon == 0 {
		return a == b
	}
	return math.Abs(a-b) <= d.cfg.Epsilon
}

func (d *differ) normalize(s string) string {
	if d.cfg.IgnoreWhitespace {
		s = strings.Join(strings.Fields(s), " ")
	}
	if d.cfg.IgnoreCase {
		s = strings.ToLower(s)
	}
	return s
}
