// Package parser turns raw text in any supported format into the
// canonical value model. Every parse function is pure: no file I/O, no
// shared state, text in, value or ParseError out.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

type Format string

const (
	FormatJSON = Format("json")
	FormatYAML = Format("yaml")
	FormatTOML = Format("toml")
	FormatINI  = Format("ini")
	FormatXML  = Format("xml")
	FormatCSV  = Format("csv")
)

// ParseError reports a syntax failure in one input document. Line and
// Col are 1-based and zero when the underlying decoder does not expose a
// position.
type ParseError struct {
	Format Format
	Line   int
	Col    int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Col > 0:
		return fmt.Sprintf("parsing %s at line %d, column %d: %s", e.Format, e.Line, e.Col, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("parsing %s at line %d: %s", e.Format, e.Line, e.Msg)
	default:
		return fmt.Sprintf("parsing %s: %s", e.Format, e.Msg)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse dispatches to the parser for the given format.
func Parse(format Format, text string) (*value.Value, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(text)
	case FormatYAML:
		return ParseYAML(text)
	case FormatTOML:
		return ParseTOML(text)
	case FormatINI:
		return ParseINI(text)
	case FormatXML:
		return ParseXML(text)
	case FormatCSV:
		return ParseCSV(text)
	}
	return nil, fmt.Errorf("unsupported input format: %q", format)
}

// Detect maps a file name to its format by extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".ini", ".cfg":
		return FormatINI, nil
	case ".xml":
		return FormatXML, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("cannot detect input format of %q; specify one explicitly", path)
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
