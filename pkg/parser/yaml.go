package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonderfulspam/semdiff/pkg/value"
)

// ParseYAML decodes one YAML document via the yaml.v3 node API, which
// keeps mapping keys in document order and resolves anchors and aliases.
// An empty document parses to Null.
func ParseYAML(text string) (*value.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, &ParseError{Format: FormatYAML, Msg: yamlMessage(err), Err: err}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return value.Null(), nil
	}
	v, err := yamlNode(root.Content[0])
	if err != nil {
		return nil, err
	}
	return v, nil
}

// yaml.v3 prefixes its messages with "yaml: "; strip it since ParseError
// already names the format.
func yamlMessage(err error) string {
	return strings.TrimPrefix(err.Error(), "yaml: ")
}

func yamlNode(node *yaml.Node) (*value.Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return yamlNode(node.Alias)
	case yaml.ScalarNode:
		return yamlScalar(node)
	case yaml.SequenceNode:
		arr := value.Array()
		for _, item := range node.Content {
			v, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := value.NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind == yaml.AliasNode {
				key = key.Alias
			}
			v, err := yamlNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key.Value, v)
		}
		return value.ObjectValue(obj), nil
	}
	return nil, &ParseError{
		Format: FormatYAML,
		Line:   node.Line,
		Col:    node.Column,
		Msg:    fmt.Sprintf("unsupported node kind %d", node.Kind),
	}
}

func yamlScalar(node *yaml.Node) (*value.Value, error) {
	switch node.Tag {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(node.Value))
		if err != nil {
			return nil, yamlScalarError(node, err)
		}
		return value.Bool(b), nil
	case "!!int":
		// base 0 covers the 0x/0o/0b forms yaml.v3 leaves unresolved
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return nil, yamlScalarError(node, err)
		}
		return value.Number(float64(n)), nil
	case "!!float":
		switch strings.ToLower(node.Value) {
		case ".inf", "+.inf":
			return value.Number(math.Inf(1)), nil
		case "-.inf":
			return value.Number(math.Inf(-1)), nil
		case ".nan":
			return value.Number(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, yamlScalarError(node, err)
		}
		return value.Number(f), nil
	default:
		// !!str, !!timestamp and custom tags all carry their raw text
		return value.String(node.Value), nil
	}
}

func yamlScalarError(node *yaml.Node, err error) *ParseError {
	return &ParseError{
		Format: FormatYAML,
		Line:   node.Line,
		Col:    node.Column,
		Msg:    fmt.Sprintf("invalid %s scalar %q", strings.TrimPrefix(node.Tag, "!!"), node.Value),
		Err:    err,
	}
}
