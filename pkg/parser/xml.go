package parser

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

// ParseXML decodes one XML document into the canonical model using a
// fixed convention:
//
//   - every element becomes an Object;
//   - attribute "name" is stored under the reserved key "@name";
//   - non-blank character data is stored under the reserved key "#text";
//   - child elements are keyed by tag name; a tag occurring once stays a
//     single value, a repeated tag always collapses into an Array;
//   - an element with no attributes and no children collapses to its
//     text content as a plain String;
//   - the document root is an Object with one key, the root tag.
func ParseXML(text string) (*value.Value, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, &ParseError{Format: FormatXML, Msg: "no root element"}
		}
		if err != nil {
			return nil, xmlError(err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue // prolog, comments, whitespace
		}
		elem, err := xmlElement(dec, start)
		if err != nil {
			return nil, err
		}
		root := value.NewObject()
		root.Set(start.Name.Local, elem)
		return value.ObjectValue(root), nil
	}
}

func xmlElement(dec *xml.Decoder, start xml.StartElement) (*value.Value, error) {
	obj := value.NewObject()
	for _, attr := range start.Attr {
		obj.Set("@"+attr.Name.Local, value.String(attr.Value))
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, xmlError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := xmlElement(dec, t)
			if err != nil {
				return nil, err
			}
			name := t.Name.Local
			if existing, ok := obj.Get(name); ok {
				if existing.Kind() == value.KindArray {
					existing.Append(child)
				} else {
					obj.Set(name, value.Array(existing, child))
				}
			} else {
				obj.Set(name, child)
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			content := strings.TrimSpace(text.String())
			if obj.Len() == 0 {
				return value.String(content), nil
			}
			if content != "" {
				obj.Set("#text", value.String(content))
			}
			return value.ObjectValue(obj), nil
		}
	}
}

func xmlError(err error) *ParseError {
	pe := &ParseError{Format: FormatXML, Msg: err.Error(), Err: err}
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Line = syntaxErr.Line
		pe.Msg = syntaxErr.Msg
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		pe.Msg = "unexpected end of XML input"
	}
	return pe
}
