package parser

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

// ParseJSON decodes one JSON document, preserving object key order.
// Trailing non-whitespace input after the first value is an error.
func ParseJSON(text string) (*value.Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	v, err := value.DecodeJSON(dec)
	if err != nil {
		return nil, jsonError(text, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing content after JSON value")
		}
		return nil, jsonError(text, err)
	}
	return v, nil
}

func jsonError(text string, err error) *ParseError {
	pe := &ParseError{Format: FormatJSON, Msg: err.Error(), Err: err}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Line, pe.Col = lineCol(text, int(syntaxErr.Offset))
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		pe.Msg = "unexpected end of JSON input"
	}
	return pe
}
