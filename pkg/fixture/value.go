package fixture

import (
	"fmt"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"

	"plait/evaluator-go/pkg/runtime"
)

// ValueFromYAML converts a YAML node into a runtime value. Mapping keys
// keep document order, unlike decoding through map[string]any.
func ValueFromYAML(node *yaml.Node) (runtime.Value, error) {
	if node == nil {
		return runtime.NilValue{}, nil
	}
	switch node.Kind {
	case 0:
		// Zero node: the fixture omitted the field entirely.
		return runtime.NilValue{}, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return runtime.NilValue{}, nil
		}
		return ValueFromYAML(node.Content[0])
	case yaml.AliasNode:
		return ValueFromYAML(node.Alias)
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	case yaml.SequenceNode:
		arr := &runtime.ArrayValue{Elements: make([]runtime.Value, 0, len(node.Content))}
		for _, child := range node.Content {
			v, err := ValueFromYAML(child)
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := runtime.NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			v, err := ValueFromYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("fixture: unsupported YAML node kind %d", node.Kind)
	}
}

func scalarFromYAML(node *yaml.Node) (runtime.Value, error) {
	switch node.Tag {
	case "!!null", "":
		if node.Tag == "" && node.Value != "" {
			return runtime.StringValue{Val: node.Value}, nil
		}
		return runtime.NilValue{}, nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return nil, fmt.Errorf("fixture: bool scalar %q: %w", node.Value, err)
		}
		return runtime.BoolValue{Val: b}, nil
	case "!!int":
		i, ok := new(big.Int).SetString(node.Value, 0)
		if !ok {
			return nil, fmt.Errorf("fixture: integer scalar %q", node.Value)
		}
		return runtime.IntegerValue{Val: i}, nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("fixture: float scalar %q: %w", node.Value, err)
		}
		return runtime.FloatValue{Val: f}, nil
	case "!!str":
		return runtime.StringValue{Val: node.Value}, nil
	default:
		return nil, fmt.Errorf("fixture: unsupported scalar tag %s", node.Tag)
	}
}
