package runtime

import (
	"fmt"
	"math/big"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// NilValue is the nullish sentinel: the one value a pattern cannot
// dereference into.
type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type IntegerValue struct {
	Val *big.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// NewArray wraps the given elements without copying.
func NewArray(elements ...Value) *ArrayValue {
	return &ArrayValue{Elements: elements}
}

// ObjectValue is an insertion-ordered field mapping. Field order is
// significant: rest capture hands back unconsumed fields in source order.
type ObjectValue struct {
	keys   []string
	fields map[string]Value
}

func (v *ObjectValue) Kind() Kind { return KindObject }

func NewObject() *ObjectValue {
	return &ObjectValue{fields: make(map[string]Value)}
}

// Set inserts or replaces a field. A replaced field keeps its original
// position.
func (v *ObjectValue) Set(key string, val Value) *ObjectValue {
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
	return v
}

// Get retrieves a field by name.
func (v *ObjectValue) Get(key string) (Value, bool) {
	val, ok := v.fields[key]
	return val, ok
}

// Keys returns the field names in insertion order.
func (v *ObjectValue) Keys() []string {
	return append([]string(nil), v.keys...)
}

func (v *ObjectValue) Len() int {
	return len(v.keys)
}

//-----------------------------------------------------------------------------
// Constructors
//-----------------------------------------------------------------------------

// Nil returns the nullish sentinel.
func Nil() Value { return NilValue{} }

func Bool(val bool) Value { return BoolValue{Val: val} }

func Int(val int64) Value { return IntegerValue{Val: big.NewInt(val)} }

// IntBig copies the provided big.Int, tolerating nil.
func IntBig(val *big.Int) Value {
	if val == nil {
		return IntegerValue{Val: new(big.Int)}
	}
	return IntegerValue{Val: new(big.Int).Set(val)}
}

func Float(val float64) Value { return FloatValue{Val: val} }

func Str(val string) Value { return StringValue{Val: val} }

// IsNil reports whether the value is the nullish sentinel. An untyped nil
// interface is treated the same way, so a missing field and an explicit
// nil behave identically.
func IsNil(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NilValue)
	return ok
}
