package runtime

import (
	"fmt"
	"strings"
)

// ValueToString renders the display form of a value. This is the form
// template cooking splices between literal segments.
func ValueToString(val Value) string {
	switch v := val.(type) {
	case nil, NilValue:
		return "nil"
	case BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case IntegerValue:
		if v.Val == nil {
			return "0"
		}
		return v.Val.String()
	case FloatValue:
		return fmt.Sprintf("%g", v.Val)
	case StringValue:
		return v.Val
	case *ArrayValue:
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			parts = append(parts, ValueToString(el))
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *ObjectValue:
		parts := make([]string, 0, v.Len())
		for _, k := range v.keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, ValueToString(v.fields[k])))
		}
		return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("[%s]", val.Kind())
	}
}
