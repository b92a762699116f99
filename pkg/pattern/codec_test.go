package pattern

import (
	"testing"
)

func TestDecodeJSONObjectPattern(t *testing.T) {
	doc := []byte(`{
		"type": "ObjectPattern",
		"fields": [
			{"key": "a"},
			{"key": "b", "binding": "renamedB", "default": {"value": 10}},
			{"key": "c", "value": {"type": "ArrayPattern", "elements": ["first", "_", "...rest"]}}
		],
		"rest": "others"
	}`)
	p, err := DecodeJSON(doc)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	obj, ok := p.(*ObjectPattern)
	if !ok {
		t.Fatalf("expected object pattern, got %#v", p)
	}
	if len(obj.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(obj.Fields))
	}
	if obj.Fields[0].Key != "a" || obj.Fields[0].Value != nil {
		t.Fatalf("expected shorthand field a, got %#v", obj.Fields[0])
	}
	rename, ok := obj.Fields[1].Value.(*NamePattern)
	if !ok || rename.Name != "renamedB" {
		t.Fatalf("expected rename to renamedB, got %#v", obj.Fields[1].Value)
	}
	if obj.Fields[1].Default == nil {
		t.Fatalf("expected default on renamed field")
	}
	nested, ok := obj.Fields[2].Value.(*ArrayPattern)
	if !ok {
		t.Fatalf("expected nested array pattern, got %#v", obj.Fields[2].Value)
	}
	if len(nested.Elements) != 2 || nested.Rest == nil || nested.Rest.Name != "rest" {
		t.Fatalf("unexpected nested shape %#v", nested)
	}
	if _, ok := nested.Elements[1].(*WildcardPattern); !ok {
		t.Fatalf("expected wildcard element, got %#v", nested.Elements[1])
	}
	if obj.Rest == nil || obj.Rest.Name != "others" {
		t.Fatalf("expected rest others, got %#v", obj.Rest)
	}
}

func TestDecodeJSONExprDefault(t *testing.T) {
	doc := []byte(`{
		"type": "ObjectPattern",
		"fields": [
			{"key": "a"},
			{"key": "b", "default": {"expr": "a * 2"}}
		]
	}`)
	p, err := DecodeJSON(doc)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	obj := p.(*ObjectPattern)
	def, ok := obj.Fields[1].Default.(*ExprDefault)
	if !ok {
		t.Fatalf("expected expr default, got %#v", obj.Fields[1].Default)
	}
	if refs := def.References(); len(refs) != 1 || refs[0] != "a" {
		t.Fatalf("expected refs [a], got %v", refs)
	}
}

func TestDecodeJSONScalarDefaultShorthand(t *testing.T) {
	doc := []byte(`{"type": "ObjectPattern", "fields": [{"key": "a", "default": 5}]}`)
	p, err := DecodeJSON(doc)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	def, ok := p.(*ObjectPattern).Fields[0].Default.(*ValueDefault)
	if !ok {
		t.Fatalf("expected value default, got %#v", p.(*ObjectPattern).Fields[0].Default)
	}
	if def.Val.Kind().String() != "integer" {
		t.Fatalf("expected integer default, got %s", def.Val.Kind())
	}
}

func TestDecodeRejectsMidListRest(t *testing.T) {
	doc := []byte(`{"type": "ArrayPattern", "elements": ["a", "...rest", "b"]}`)
	_, err := DecodeJSON(doc)
	expectCode(t, err, ErrMisplacedRest)
}

func TestDecodeRejectsDoubleRest(t *testing.T) {
	doc := []byte(`{"type": "ArrayPattern", "elements": ["a", "...r1", "...r2"]}`)
	_, err := DecodeJSON(doc)
	expectCode(t, err, ErrDuplicateRest)

	doc = []byte(`{"type": "ObjectPattern", "fields": [{"key": "a"}, "...r1", "...r2"]}`)
	_, err = DecodeJSON(doc)
	expectCode(t, err, ErrDuplicateRest)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"type": "TuplePattern"}`))
	expectCode(t, err, ErrInvalidNode)
}

func TestDecodeValidatesResult(t *testing.T) {
	// Structurally decodable but semantically broken: forward reference.
	doc := []byte(`{
		"type": "ObjectPattern",
		"fields": [
			{"key": "a", "default": {"expr": "b + 1"}},
			{"key": "b"}
		]
	}`)
	_, err := DecodeJSON(doc)
	expectCode(t, err, ErrForwardReference)
}
