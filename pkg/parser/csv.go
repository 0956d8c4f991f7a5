package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

// ParseCSV decodes a CSV document into an Array of Objects, one per data
// row, keyed by the header columns from the first record. Cells that
// parse as numbers become Number, every other cell stays String. An
// empty document parses to an empty Array.
func ParseCSV(text string) (*value.Value, error) {
	r := csv.NewReader(strings.NewReader(text))
	header, err := r.Read()
	if err == io.EOF {
		return value.Array(), nil
	}
	if err != nil {
		return nil, csvError(err)
	}

	rows := value.Array()
	for {
		record, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, csvError(err)
		}
		obj := value.NewObject()
		for i, cell := range record {
			obj.Set(header[i], inferCell(cell))
		}
		rows.Append(value.ObjectValue(obj))
	}
}

func inferCell(s string) *value.Value {
	if s == "" {
		return value.String(s)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return value.Number(n)
	}
	return value.String(s)
}

func csvError(err error) *ParseError {
	pe := &ParseError{Format: FormatCSV, Msg: err.Error(), Err: err}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		pe.Line = parseErr.Line
		pe.Col = parseErr.Column
		pe.Msg = parseErr.Err.Error()
	}
	return pe
}
