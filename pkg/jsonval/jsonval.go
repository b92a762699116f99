// Package jsonval bridges JSON documents and runtime values. Decoding
// preserves the document's own field order, which matters to rest
// capture of unconsumed fields.
package jsonval

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"plait/evaluator-go/pkg/runtime"
)

// Decode converts a JSON document into a runtime value.
func Decode(data []byte) (runtime.Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("jsonval: invalid JSON document")
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// DecodeString is Decode over a string source.
func DecodeString(data string) (runtime.Value, error) {
	return Decode([]byte(data))
}

func fromResult(r gjson.Result) runtime.Value {
	switch r.Type {
	case gjson.Null:
		return runtime.NilValue{}
	case gjson.False:
		return runtime.BoolValue{Val: false}
	case gjson.True:
		return runtime.BoolValue{Val: true}
	case gjson.String:
		return runtime.StringValue{Val: r.Str}
	case gjson.Number:
		return numberFromRaw(r)
	case gjson.JSON:
		if r.IsArray() {
			arr := &runtime.ArrayValue{}
			r.ForEach(func(_, elem gjson.Result) bool {
				arr.Elements = append(arr.Elements, fromResult(elem))
				return true
			})
			return arr
		}
		obj := runtime.NewObject()
		r.ForEach(func(key, elem gjson.Result) bool {
			obj.Set(key.String(), fromResult(elem))
			return true
		})
		return obj
	default:
		return runtime.NilValue{}
	}
}

// numberFromRaw keeps integer literals as integers at arbitrary
// precision; anything fractional or exponent-form becomes a float.
func numberFromRaw(r gjson.Result) runtime.Value {
	raw := r.Raw
	if !bytes.ContainsAny([]byte(raw), ".eE") {
		if i, ok := new(big.Int).SetString(raw, 10); ok {
			return runtime.IntegerValue{Val: i}
		}
	}
	return runtime.FloatValue{Val: r.Float()}
}

// Encode renders a runtime value as JSON, keeping object field order.
func Encode(v runtime.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v runtime.Value) error {
	switch val := v.(type) {
	case nil, runtime.NilValue:
		buf.WriteString("null")
		return nil
	case runtime.BoolValue:
		if val.Val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case runtime.IntegerValue:
		if val.Val == nil {
			buf.WriteByte('0')
			return nil
		}
		buf.WriteString(val.Val.String())
		return nil
	case runtime.FloatValue:
		return encodeScalar(buf, val.Val)
	case runtime.StringValue:
		return encodeScalar(buf, val.Val)
	case *runtime.ArrayValue:
		buf.WriteByte('[')
		for i, el := range val.Elements {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, el); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case *runtime.ObjectValue:
		buf.WriteByte('{')
		for i, key := range val.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeScalar(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			field, _ := val.Get(key)
			if err := encodeValue(buf, field); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("jsonval: cannot encode %s value", v.Kind())
	}
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("jsonval: %w", err)
	}
	buf.Write(data)
	return nil
}
