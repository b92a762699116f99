package jsonval

import (
	"math/big"
	"reflect"
	"testing"

	"plait/evaluator-go/pkg/match"
	"plait/evaluator-go/pkg/pattern"
	"plait/evaluator-go/pkg/runtime"
)

func TestDecodePreservesFieldOrder(t *testing.T) {
	v, err := DecodeString(`{"z": 1, "a": 2, "m": 3}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj, ok := v.(*runtime.ObjectValue)
	if !ok {
		t.Fatalf("expected object, got %#v", v)
	}
	if got := obj.Keys(); !reflect.DeepEqual(got, []string{"z", "a", "m"}) {
		t.Fatalf("expected document order [z a m], got %v", got)
	}
}

func TestDecodeNumbers(t *testing.T) {
	v, err := DecodeString(`[1, -2, 3.5, 2.0e2, 123456789012345678901234567890]`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	arr := v.(*runtime.ArrayValue)
	if !runtime.Equal(arr.Elements[0], runtime.Int(1)) {
		t.Fatalf("expected integer 1, got %#v", arr.Elements[0])
	}
	if !runtime.Equal(arr.Elements[1], runtime.Int(-2)) {
		t.Fatalf("expected integer -2, got %#v", arr.Elements[1])
	}
	if !runtime.Equal(arr.Elements[2], runtime.Float(3.5)) {
		t.Fatalf("expected float 3.5, got %#v", arr.Elements[2])
	}
	if !runtime.Equal(arr.Elements[3], runtime.Float(200)) {
		t.Fatalf("expected float 200, got %#v", arr.Elements[3])
	}
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	if !runtime.Equal(arr.Elements[4], runtime.IntBig(huge)) {
		t.Fatalf("expected big integer, got %#v", arr.Elements[4])
	}
}

func TestDecodeScalarsAndNull(t *testing.T) {
	v, err := DecodeString(`{"s": "hi", "t": true, "f": false, "n": null}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj := v.(*runtime.ObjectValue)
	s, _ := obj.Get("s")
	if !runtime.Equal(s, runtime.Str("hi")) {
		t.Fatalf("unexpected string %#v", s)
	}
	n, _ := obj.Get("n")
	if !runtime.IsNil(n) {
		t.Fatalf("expected nil, got %#v", n)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	if _, err := DecodeString(`{"a": `); err == nil {
		t.Fatalf("expected error for truncated document")
	}
}

func TestEncodeKeepsOrderAndRoundTrips(t *testing.T) {
	src := `{"z":1,"a":[true,null,"s"],"m":{"inner":2.5}}`
	v, err := DecodeString(src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(out) != src {
		t.Fatalf("round trip changed document:\n  in  %s\n  out %s", src, out)
	}
}

func TestDestructureJSONDocument(t *testing.T) {
	doc := `{"name": "plait", "tags": ["a", "b", "c"], "version": 3}`
	v, err := DecodeString(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := pattern.ObjRest("meta",
		pattern.Field("name"),
		pattern.FieldSub("tags", pattern.ArrRest("moreTags", pattern.Name("firstTag"))),
	)
	b, err := match.Value(p, v)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if got := b.Names(); !reflect.DeepEqual(got, []string{"name", "firstTag", "moreTags", "meta"}) {
		t.Fatalf("unexpected binding order %v", got)
	}
	meta, _ := b.Get("meta")
	if got := meta.(*runtime.ObjectValue).Keys(); !reflect.DeepEqual(got, []string{"version"}) {
		t.Fatalf("expected rest [version], got %v", got)
	}
}
