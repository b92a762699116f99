package pattern

import "plait/evaluator-go/pkg/runtime"

// Short builders for literal patterns, mainly used by tests and
// embedders constructing patterns in code.

func Name(name string) *NamePattern {
	return NewNamePattern(name, nil)
}

func NameD(name string, def Default) *NamePattern {
	return NewNamePattern(name, def)
}

func Wc() *WildcardPattern {
	return NewWildcardPattern()
}

func Rest(name string) *RestPattern {
	return NewRestPattern(name)
}

// Field is the shorthand form: bind the source field under its own name.
func Field(key string) *ObjectPatternField {
	return NewObjectPatternField(key, nil, nil)
}

func FieldD(key string, def Default) *ObjectPatternField {
	return NewObjectPatternField(key, nil, def)
}

// FieldAs reads key and binds it under a different identifier.
func FieldAs(key, binding string) *ObjectPatternField {
	return NewObjectPatternField(key, Name(binding), nil)
}

func FieldAsD(key, binding string, def Default) *ObjectPatternField {
	return NewObjectPatternField(key, Name(binding), def)
}

// FieldSub applies a nested pattern to the named field.
func FieldSub(key string, sub Pattern) *ObjectPatternField {
	return NewObjectPatternField(key, sub, nil)
}

func FieldSubD(key string, sub Pattern, def Default) *ObjectPatternField {
	return NewObjectPatternField(key, sub, def)
}

func Obj(fields ...*ObjectPatternField) *ObjectPattern {
	return NewObjectPattern(fields, nil)
}

func ObjRest(rest string, fields ...*ObjectPatternField) *ObjectPattern {
	return NewObjectPattern(fields, Rest(rest))
}

func Arr(elements ...Pattern) *ArrayPattern {
	return NewArrayPattern(elements, nil)
}

func ArrRest(rest string, elements ...Pattern) *ArrayPattern {
	return NewArrayPattern(elements, Rest(rest))
}

// Default builders.

func Val(v runtime.Value) *ValueDefault {
	return NewValueDefault(v)
}

func Expr(source string) *ExprDefault {
	return MustExprDefault(source)
}
