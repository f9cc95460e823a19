package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Zigazou/cliquetis/internal/ojson"
)

// decodeYAML parses a YAML tool description into the same ordered shapes
// ojson.Decode produces, so the rest of the loader is format-agnostic.
// yaml.Node keeps mapping order, which plain map decoding would lose.
func decodeYAML(raw []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("empty YAML document")
	}
	return yamlValue(root.Content[0])
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		obj := &ojson.Object{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			value, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, ojson.Member{Key: key, Value: value})
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := yamlValue(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		return arr, nil

	case yaml.ScalarNode:
		return yamlScalar(node)

	case yaml.AliasNode:
		return yamlValue(node.Alias)

	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d at line %d", node.Kind, node.Line)
	}
}

func yamlScalar(node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int", "!!float":
		return json.Number(node.Value), nil
	default:
		return node.Value, nil
	}
}
