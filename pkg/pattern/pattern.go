// Package pattern defines declarative descriptions of how to decompose
// a structured value into named bindings. Patterns are immutable once
// constructed and are consumed read-only by the matcher.
package pattern

type NodeType string

const (
	NodeNamePattern        NodeType = "NamePattern"
	NodeWildcardPattern    NodeType = "WildcardPattern"
	NodeObjectPattern      NodeType = "ObjectPattern"
	NodeObjectPatternField NodeType = "ObjectPatternField"
	NodeArrayPattern       NodeType = "ArrayPattern"
	NodeRestPattern        NodeType = "RestPattern"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Pattern marks nodes usable as a match target.
type Pattern interface {
	Node
	patternNode()
}

type patternMarker struct{}

func (patternMarker) patternNode() {}

// NamePattern binds a value directly to an identifier, with an optional
// default applied when the value is absent or nil.
type NamePattern struct {
	nodeImpl
	patternMarker

	Name    string  `json:"name"`
	Default Default `json:"default,omitempty"`
}

func NewNamePattern(name string, def Default) *NamePattern {
	return &NamePattern{nodeImpl: newNodeImpl(NodeNamePattern), Name: name, Default: def}
}

// WildcardPattern consumes a position without binding anything.
type WildcardPattern struct {
	nodeImpl
	patternMarker
}

func NewWildcardPattern() *WildcardPattern {
	return &WildcardPattern{nodeImpl: newNodeImpl(NodeWildcardPattern)}
}

// ObjectPatternField reads the source field Key. A nil Value is the
// shorthand form binding Key itself; a NamePattern renames; an object or
// array pattern destructures the field recursively. Default applies when
// the field is absent or nil, before any nested match.
type ObjectPatternField struct {
	nodeImpl

	Key     string  `json:"key"`
	Value   Pattern `json:"value,omitempty"`
	Default Default `json:"default,omitempty"`
}

func NewObjectPatternField(key string, value Pattern, def Default) *ObjectPatternField {
	return &ObjectPatternField{nodeImpl: newNodeImpl(NodeObjectPatternField), Key: key, Value: value, Default: def}
}

// ObjectPattern destructures an object's named fields. Rest, when
// present, captures every own field not consumed by Fields.
type ObjectPattern struct {
	nodeImpl
	patternMarker

	Fields []*ObjectPatternField `json:"fields"`
	Rest   *RestPattern          `json:"rest,omitempty"`
}

func NewObjectPattern(fields []*ObjectPatternField, rest *RestPattern) *ObjectPattern {
	return &ObjectPattern{nodeImpl: newNodeImpl(NodeObjectPattern), Fields: fields, Rest: rest}
}

// ArrayPattern destructures a sequence positionally. Rest, when present,
// captures the elements past the last positional pattern.
type ArrayPattern struct {
	nodeImpl
	patternMarker

	Elements []Pattern    `json:"elements"`
	Rest     *RestPattern `json:"rest,omitempty"`
}

func NewArrayPattern(elements []Pattern, rest *RestPattern) *ArrayPattern {
	return &ArrayPattern{nodeImpl: newNodeImpl(NodeArrayPattern), Elements: elements, Rest: rest}
}

// RestPattern captures all otherwise-unmatched elements or fields. An
// empty Name discards the remainder.
type RestPattern struct {
	nodeImpl
	patternMarker

	Name string `json:"name,omitempty"`
}

func NewRestPattern(name string) *RestPattern {
	return &RestPattern{nodeImpl: newNodeImpl(NodeRestPattern), Name: name}
}
