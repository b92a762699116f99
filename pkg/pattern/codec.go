package pattern

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"plait/evaluator-go/pkg/runtime"
)

// DecodeJSON builds a validated pattern from a JSON document. See
// DecodeMap for the accepted shape.
func DecodeJSON(data []byte) (Pattern, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("pattern: decode: %w", err)
	}
	return DecodeMap(doc)
}

// DecodeMap builds a validated pattern from a generic document tree, as
// produced by JSON or YAML decoding. Nodes are keyed by "type"
// (ObjectPattern, ArrayPattern, NamePattern, WildcardPattern,
// RestPattern). Array elements and object field entries accept string
// shorthands: "name" binds a name, "_" discards, "...name" captures the
// rest. Defaults are either {"value": <literal>} or {"expr": <source>}.
func DecodeMap(doc map[string]any) (Pattern, error) {
	p, err := decodePattern(doc, "pattern")
	if err != nil {
		return nil, err
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func decodePattern(raw any, path string) (Pattern, error) {
	switch node := raw.(type) {
	case string:
		return decodeShorthand(node), nil
	case map[string]any:
		typ, _ := node["type"].(string)
		switch typ {
		case "NamePattern":
			name, _ := node["name"].(string)
			def, err := decodeDefault(node["default"], path)
			if err != nil {
				return nil, err
			}
			return NewNamePattern(name, def), nil
		case "WildcardPattern":
			return NewWildcardPattern(), nil
		case "RestPattern":
			name, _ := node["name"].(string)
			return NewRestPattern(name), nil
		case "ObjectPattern":
			return decodeObjectPattern(node, path)
		case "ArrayPattern":
			return decodeArrayPattern(node, path)
		default:
			return nil, invalid(ErrInvalidNode, path, "unknown pattern type %q", typ)
		}
	default:
		return nil, invalid(ErrInvalidNode, path, "expected pattern node, got %T", raw)
	}
}

func decodeShorthand(s string) Pattern {
	switch {
	case s == "_":
		return NewWildcardPattern()
	case strings.HasPrefix(s, "..."):
		return NewRestPattern(strings.TrimPrefix(s, "..."))
	default:
		return NewNamePattern(s, nil)
	}
}

func decodeObjectPattern(node map[string]any, path string) (Pattern, error) {
	rawFields, _ := node["fields"].([]any)
	fields := make([]*ObjectPatternField, 0, len(rawFields))
	var rest *RestPattern
	for i, raw := range rawFields {
		fieldPath := fmt.Sprintf("%s.fields[%d]", path, i)
		if restNode, ok := decodeRestEntry(raw); ok {
			if rest != nil {
				return nil, invalid(ErrDuplicateRest, fieldPath, "second rest capture")
			}
			rest = restNode
			continue
		}
		if rest != nil {
			return nil, invalid(ErrMisplacedRest, fieldPath, "field after rest capture")
		}
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, invalid(ErrInvalidNode, fieldPath, "expected field entry, got %T", raw)
		}
		field, err := decodeField(entry, fieldPath)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if rest == nil {
		rest = decodeRestSlot(node["rest"])
	}
	return NewObjectPattern(fields, rest), nil
}

func decodeField(entry map[string]any, path string) (*ObjectPatternField, error) {
	key, _ := entry["key"].(string)
	def, err := decodeDefault(entry["default"], path)
	if err != nil {
		return nil, err
	}
	var value Pattern
	if binding, ok := entry["binding"].(string); ok {
		value = NewNamePattern(binding, nil)
	} else if rawValue, ok := entry["value"]; ok && rawValue != nil {
		value, err = decodePattern(rawValue, path+".value")
		if err != nil {
			return nil, err
		}
	}
	return NewObjectPatternField(key, value, def), nil
}

func decodeArrayPattern(node map[string]any, path string) (Pattern, error) {
	rawElements, _ := node["elements"].([]any)
	elements := make([]Pattern, 0, len(rawElements))
	var rest *RestPattern
	for i, raw := range rawElements {
		elemPath := fmt.Sprintf("%s.elements[%d]", path, i)
		if restNode, ok := decodeRestEntry(raw); ok {
			if rest != nil {
				return nil, invalid(ErrDuplicateRest, elemPath, "second rest capture")
			}
			rest = restNode
			continue
		}
		if rest != nil {
			return nil, invalid(ErrMisplacedRest, elemPath, "element after rest capture")
		}
		elem, err := decodePattern(raw, elemPath)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	if rest == nil {
		rest = decodeRestSlot(node["rest"])
	}
	return NewArrayPattern(elements, rest), nil
}

// decodeRestSlot reads the dedicated "rest" slot, where a bare name is
// enough.
func decodeRestSlot(raw any) *RestPattern {
	if name, ok := raw.(string); ok {
		return NewRestPattern(strings.TrimPrefix(name, "..."))
	}
	if restNode, ok := decodeRestEntry(raw); ok {
		return restNode
	}
	return nil
}

// decodeRestEntry recognizes the rest forms: the "...name" shorthand, a
// {"type": "RestPattern"} node, or a bare name in the "rest" slot.
func decodeRestEntry(raw any) (*RestPattern, bool) {
	switch node := raw.(type) {
	case string:
		if strings.HasPrefix(node, "...") {
			return NewRestPattern(strings.TrimPrefix(node, "...")), true
		}
		return nil, false
	case map[string]any:
		if typ, _ := node["type"].(string); typ == "RestPattern" {
			name, _ := node["name"].(string)
			return NewRestPattern(name), true
		}
		return nil, false
	default:
		return nil, false
	}
}

func decodeDefault(raw any, path string) (Default, error) {
	if raw == nil {
		return nil, nil
	}
	if entry, ok := raw.(map[string]any); ok {
		if source, ok := entry["expr"].(string); ok {
			def, err := NewExprDefault(source)
			if err != nil {
				return nil, invalid(ErrInvalidNode, path, "%v", err)
			}
			return def, nil
		}
		if literal, ok := entry["value"]; ok {
			val, err := runtime.FromGo(literal)
			if err != nil {
				return nil, invalid(ErrInvalidNode, path, "default literal: %v", err)
			}
			return NewValueDefault(val), nil
		}
	}
	val, err := runtime.FromGo(raw)
	if err != nil {
		return nil, invalid(ErrInvalidNode, path, "default literal: %v", err)
	}
	return NewValueDefault(val), nil
}
