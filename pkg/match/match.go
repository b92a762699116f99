// Package match applies patterns to runtime values, producing ordered
// binding results. Matching never mutates the input value; rest captures
// are fresh copies.
package match

import (
	"fmt"

	"plait/evaluator-go/pkg/pattern"
	"plait/evaluator-go/pkg/runtime"
)

// ErrorCode classifies evaluation failures.
type ErrorCode string

// NullishSource is raised when a pattern dereferences the nullish
// sentinel: either the root source or a field a nested pattern must read
// into. It is the only evaluation failure; missing optional fields
// resolve through defaults or bind nil.
const NullishSource ErrorCode = "nullish_source"

// MatchError is a typed evaluation failure, carrying the path of the
// value the pattern could not consume.
type MatchError struct {
	Code ErrorCode
	Path string
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("match: %s at %s", e.Code, e.Path)
}

// Matcher is a validated pattern ready to apply. It is immutable and
// safe for concurrent use; each Match allocates its own bindings.
type Matcher struct {
	pattern pattern.Pattern
}

// New validates the pattern eagerly. Construction errors surface here
// and never at match time.
func New(p pattern.Pattern) (*Matcher, error) {
	if err := pattern.Validate(p); err != nil {
		return nil, err
	}
	return &Matcher{pattern: p}, nil
}

// Match applies the pattern to the value. On failure no partial
// bindings are returned.
func (m *Matcher) Match(value runtime.Value) (*runtime.Bindings, error) {
	if runtime.IsNil(value) {
		return nil, &MatchError{Code: NullishSource, Path: "$"}
	}
	bindings := runtime.NewBindings()
	if err := m.assign(m.pattern, value, bindings, "$"); err != nil {
		return nil, err
	}
	return bindings, nil
}

// Value validates the pattern and applies it in one call.
func Value(p pattern.Pattern, value runtime.Value) (*runtime.Bindings, error) {
	m, err := New(p)
	if err != nil {
		return nil, err
	}
	return m.Match(value)
}

func (m *Matcher) assign(p pattern.Pattern, value runtime.Value, b *runtime.Bindings, path string) error {
	switch node := p.(type) {
	case *pattern.NamePattern:
		return bindLeaf(node.Name, node.Default, value, b)
	case *pattern.WildcardPattern:
		return nil
	case *pattern.ObjectPattern:
		return m.assignObject(node, value, b, path)
	case *pattern.ArrayPattern:
		return m.assignArray(node, value, b, path)
	default:
		return fmt.Errorf("match: unsupported pattern %s at %s", p.NodeType(), path)
	}
}

func (m *Matcher) assignObject(p *pattern.ObjectPattern, value runtime.Value, b *runtime.Bindings, path string) error {
	obj, _ := value.(*runtime.ObjectValue)
	consumed := make(map[string]struct{}, len(p.Fields))
	for _, field := range p.Fields {
		consumed[field.Key] = struct{}{}
		var fieldVal runtime.Value = runtime.NilValue{}
		if obj != nil {
			if v, ok := obj.Get(field.Key); ok {
				fieldVal = v
			}
		}
		fieldPath := path + "." + field.Key
		resolved, err := applyDefault(fieldVal, field.Default, b)
		if err != nil {
			return err
		}
		if field.Value == nil {
			b.Define(field.Key, resolved)
			continue
		}
		if err := m.assignNested(field.Value, resolved, b, fieldPath); err != nil {
			return err
		}
	}
	if p.Rest != nil && p.Rest.Name != "" {
		rest := runtime.NewObject()
		if obj != nil {
			for _, key := range obj.Keys() {
				if _, taken := consumed[key]; taken {
					continue
				}
				v, _ := obj.Get(key)
				rest.Set(key, v)
			}
		}
		b.Define(p.Rest.Name, rest)
	}
	return nil
}

func (m *Matcher) assignArray(p *pattern.ArrayPattern, value runtime.Value, b *runtime.Bindings, path string) error {
	var elements []runtime.Value
	if arr, ok := value.(*runtime.ArrayValue); ok {
		elements = arr.Elements
	}
	for idx, elem := range p.Elements {
		var elemVal runtime.Value = runtime.NilValue{}
		if idx < len(elements) && elements[idx] != nil {
			elemVal = elements[idx]
		}
		elemPath := fmt.Sprintf("%s[%d]", path, idx)
		if err := m.assignNested(elem, elemVal, b, elemPath); err != nil {
			return err
		}
	}
	if p.Rest != nil && p.Rest.Name != "" {
		var remaining []runtime.Value
		if len(elements) > len(p.Elements) {
			remaining = append([]runtime.Value(nil), elements[len(p.Elements):]...)
		}
		b.Define(p.Rest.Name, &runtime.ArrayValue{Elements: remaining})
	}
	return nil
}

// assignNested recurses into an element or field value. Composite
// sub-patterns cannot read into a nullish value; leaves bind it (or
// their default) instead.
func (m *Matcher) assignNested(p pattern.Pattern, value runtime.Value, b *runtime.Bindings, path string) error {
	switch p.(type) {
	case *pattern.ObjectPattern, *pattern.ArrayPattern:
		if runtime.IsNil(value) {
			return &MatchError{Code: NullishSource, Path: path}
		}
	}
	return m.assign(p, value, b, path)
}

// bindLeaf applies optional-parameter semantics: a nil value with a
// default resolves the default (exactly once) against the bindings so
// far; without one the sentinel itself is bound.
func bindLeaf(name string, def pattern.Default, value runtime.Value, b *runtime.Bindings) error {
	resolved, err := applyDefault(value, def, b)
	if err != nil {
		return err
	}
	b.Define(name, resolved)
	return nil
}

func applyDefault(value runtime.Value, def pattern.Default, b *runtime.Bindings) (runtime.Value, error) {
	if def == nil || !runtime.IsNil(value) {
		if value == nil {
			return runtime.NilValue{}, nil
		}
		return value, nil
	}
	return def.Resolve(b)
}
