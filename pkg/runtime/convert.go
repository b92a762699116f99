package runtime

import (
	"fmt"
	"math/big"
	"sort"
)

// FromGo converts a plain Go value (as produced by generic JSON or YAML
// decoding) into a runtime value. Map keys are visited in sorted order
// since Go maps carry no insertion order; use jsonval.Decode when the
// document's own field order matters.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return NilValue{}, nil
	case Value:
		return val, nil
	case bool:
		return BoolValue{Val: val}, nil
	case string:
		return StringValue{Val: val}, nil
	case int:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint64:
		return IntegerValue{Val: new(big.Int).SetUint64(val)}, nil
	case *big.Int:
		return IntBig(val), nil
	case float32:
		return floatOrInt(float64(val)), nil
	case float64:
		return floatOrInt(val), nil
	case []any:
		elems := make([]Value, 0, len(val))
		for _, el := range val {
			converted, err := FromGo(el)
			if err != nil {
				return nil, err
			}
			elems = append(elems, converted)
		}
		return &ArrayValue{Elements: elems}, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			converted, err := FromGo(val[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, converted)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("runtime: cannot convert %T to a value", v)
	}
}

// floatOrInt keeps integral doubles as integers, matching the way JSON
// numbers round-trip through generic decoding.
func floatOrInt(f float64) Value {
	if f == float64(int64(f)) {
		return Int(int64(f))
	}
	return FloatValue{Val: f}
}

// ToGo converts a runtime value back into plain Go data. Objects become
// map[string]any (order is lost), arrays become []any, integers become
// int when they fit and *big.Int otherwise.
func ToGo(v Value) any {
	switch val := v.(type) {
	case nil, NilValue:
		return nil
	case BoolValue:
		return val.Val
	case IntegerValue:
		if val.Val == nil {
			return 0
		}
		if val.Val.IsInt64() {
			return int(val.Val.Int64())
		}
		return new(big.Int).Set(val.Val)
	case FloatValue:
		return val.Val
	case StringValue:
		return val.Val
	case *ArrayValue:
		out := make([]any, 0, len(val.Elements))
		for _, el := range val.Elements {
			out = append(out, ToGo(el))
		}
		return out
	case *ObjectValue:
		out := make(map[string]any, val.Len())
		for _, k := range val.keys {
			out[k] = ToGo(val.fields[k])
		}
		return out
	default:
		return nil
	}
}

// bigOrZero treats an IntegerValue with no backing big.Int as zero,
// like ToGo and ValueToString do.
func bigOrZero(v IntegerValue) *big.Int {
	if v.Val == nil {
		return big.NewInt(0)
	}
	return v.Val
}

// Equal reports structural equality of two values. Integer and float
// values compare across kinds when numerically equal, matching the
// loose number handling in FromGo.
func Equal(a, b Value) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	switch av := a.(type) {
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case IntegerValue:
		switch bv := b.(type) {
		case IntegerValue:
			return bigOrZero(av).Cmp(bigOrZero(bv)) == 0
		case FloatValue:
			ai := bigOrZero(av)
			return ai.IsInt64() && float64(ai.Int64()) == bv.Val
		}
		return false
	case FloatValue:
		switch bv := b.(type) {
		case FloatValue:
			return av.Val == bv.Val
		case IntegerValue:
			bi := bigOrZero(bv)
			return bi.IsInt64() && float64(bi.Int64()) == av.Val
		}
		return false
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *ObjectValue:
		bv, ok := b.(*ObjectValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, present := bv.Get(k)
			if !present || !Equal(av.fields[k], other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
