package pattern

import "fmt"

// Validate checks a pattern for construction errors: misplaced or
// duplicated rest captures, duplicated binding names, empty identifiers,
// and defaults that reference names first bound later in the pattern.
// A nil error means the pattern is safe to match.
func Validate(p Pattern) error {
	if p == nil {
		return invalid(ErrInvalidNode, "", "nil pattern")
	}
	v := &validator{
		all:   make(map[string]struct{}),
		bound: make(map[string]struct{}),
	}
	if err := v.collect(p, "pattern"); err != nil {
		return err
	}
	return v.walk(p, "pattern")
}

// validator performs two passes: collect gathers every name the pattern
// binds (rejecting duplicates), walk re-traverses in match order
// checking structure and default references against names bound so far.
type validator struct {
	all   map[string]struct{}
	bound map[string]struct{}
}

func (v *validator) declare(name, path string) error {
	if name == "" {
		return invalid(ErrEmptyName, path, "binding name is empty")
	}
	if _, dup := v.all[name]; dup {
		return invalid(ErrDuplicateName, path, "name %q bound twice", name)
	}
	v.all[name] = struct{}{}
	return nil
}

func (v *validator) collect(p Pattern, path string) error {
	switch node := p.(type) {
	case *NamePattern:
		return v.declare(node.Name, path)
	case *WildcardPattern:
		return nil
	case *RestPattern:
		// Placement is checked during walk; names still count.
		if node.Name == "" {
			return nil
		}
		return v.declare(node.Name, path)
	case *ObjectPattern:
		for i, field := range node.Fields {
			fieldPath := fmt.Sprintf("%s.fields[%d]", path, i)
			if field == nil {
				return invalid(ErrInvalidNode, fieldPath, "nil field")
			}
			if field.Value == nil {
				if err := v.declare(field.Key, fieldPath); err != nil {
					return err
				}
				continue
			}
			if err := v.collect(field.Value, fieldPath+".value"); err != nil {
				return err
			}
		}
		if node.Rest != nil && node.Rest.Name != "" {
			return v.declare(node.Rest.Name, path+".rest")
		}
		return nil
	case *ArrayPattern:
		for i, elem := range node.Elements {
			elemPath := fmt.Sprintf("%s.elements[%d]", path, i)
			if elem == nil {
				return invalid(ErrInvalidNode, elemPath, "nil element")
			}
			if err := v.collect(elem, elemPath); err != nil {
				return err
			}
		}
		if node.Rest != nil && node.Rest.Name != "" {
			return v.declare(node.Rest.Name, path+".rest")
		}
		return nil
	case nil:
		return invalid(ErrInvalidNode, path, "nil pattern")
	default:
		return invalid(ErrInvalidNode, path, "unsupported node %s", p.NodeType())
	}
}

func (v *validator) walk(p Pattern, path string) error {
	switch node := p.(type) {
	case *NamePattern:
		if err := v.checkDefault(node.Default, path); err != nil {
			return err
		}
		v.bound[node.Name] = struct{}{}
		return nil
	case *WildcardPattern:
		return nil
	case *RestPattern:
		return invalid(ErrMisplacedRest, path, "rest capture outside the final position")
	case *ObjectPattern:
		for i, field := range node.Fields {
			fieldPath := fmt.Sprintf("%s.fields[%d]", path, i)
			if field.Key == "" {
				return invalid(ErrEmptyName, fieldPath, "field key is empty")
			}
			if err := v.checkDefault(field.Default, fieldPath); err != nil {
				return err
			}
			if field.Value == nil {
				v.bound[field.Key] = struct{}{}
				continue
			}
			if err := v.walkFieldValue(field.Value, fieldPath+".value"); err != nil {
				return err
			}
		}
		return nil
	case *ArrayPattern:
		rests := 0
		for _, elem := range node.Elements {
			if _, ok := elem.(*RestPattern); ok {
				rests++
			}
		}
		if rests > 1 || (rests == 1 && node.Rest != nil) {
			return invalid(ErrDuplicateRest, path, "more than one rest capture")
		}
		for i, elem := range node.Elements {
			elemPath := fmt.Sprintf("%s.elements[%d]", path, i)
			if err := v.walk(elem, elemPath); err != nil {
				return err
			}
		}
		return nil
	default:
		return invalid(ErrInvalidNode, path, "unsupported node %s", p.NodeType())
	}
}

// walkFieldValue validates an object field's value pattern. Rest is not
// a legal field value; everything else recurses normally.
func (v *validator) walkFieldValue(p Pattern, path string) error {
	if _, ok := p.(*RestPattern); ok {
		return invalid(ErrMisplacedRest, path, "rest capture used as a field value")
	}
	return v.walk(p, path)
}

// checkDefault rejects defaults referencing names the match has not
// produced yet. Names the pattern never binds are left to the resolver.
func (v *validator) checkDefault(def Default, path string) error {
	if def == nil {
		return nil
	}
	for _, ref := range def.References() {
		if _, ok := v.bound[ref]; ok {
			continue
		}
		if _, declaredLater := v.all[ref]; declaredLater {
			return invalid(ErrForwardReference, path, "default references %q before it is bound", ref)
		}
	}
	return nil
}
