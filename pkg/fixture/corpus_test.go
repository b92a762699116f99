package fixture

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"plait/evaluator-go/pkg/runtime"
)

func writeFixture(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

const matchFixture = `
description: simple match case
match:
  pattern:
    type: ObjectPattern
    fields:
      - key: a
  input:
    a: 1
  expect:
    bindings:
      - {name: a, value: 1}
`

const templateFixture = `
description: simple template case
template:
  source: "hi ${name}"
  bindings:
    name: there
  expect:
    output: "hi there"
`

const ambiguousFixture = `
description: holds both case kinds
match:
  pattern:
    type: ObjectPattern
    fields:
      - key: a
  input:
    a: 1
template:
  source: "hi"
`

func TestLoadSingleFixture(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "simple.yaml", matchFixture)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Match == nil || f.Template != nil {
		t.Fatalf("expected a match fixture, got %#v", f)
	}
	if f.Name() != "simple" {
		t.Fatalf("expected name simple, got %q", f.Name())
	}
	if f.Description != "simple match case" {
		t.Fatalf("unexpected description %q", f.Description)
	}
}

func TestLoadRejectsAmbiguousFixture(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "both.yaml", ambiguousFixture)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for fixture holding both cases")
	}

	path = writeFixture(t, dir, "neither.yaml", "description: empty")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for fixture holding neither case")
	}
}

func TestLoadDirWalksNestedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.yaml", matchFixture)
	writeFixture(t, dir, filepath.Join("nested", "b.yml"), templateFixture)
	writeFixture(t, dir, "ignored.txt", "not a fixture")

	fixtures, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}
}

func TestLoadDirEmptyCorpus(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	if !errors.Is(err, ErrNoFixtures) {
		t.Fatalf("expected ErrNoFixtures, got %v", err)
	}
}

func TestValueFromYAMLKeepsMappingOrder(t *testing.T) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte("z: 26\nb: 2\na: 1\n"), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, err := ValueFromYAML(&node)
	if err != nil {
		t.Fatalf("ValueFromYAML: %v", err)
	}
	obj, ok := v.(*runtime.ObjectValue)
	if !ok {
		t.Fatalf("expected object, got %#v", v)
	}
	if got := obj.Keys(); !reflect.DeepEqual(got, []string{"z", "b", "a"}) {
		t.Fatalf("expected document order [z b a], got %v", got)
	}
}

func TestValueFromYAMLScalars(t *testing.T) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(`[null, true, 3, 4.5, hello, "5"]`), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, err := ValueFromYAML(&node)
	if err != nil {
		t.Fatalf("ValueFromYAML: %v", err)
	}
	arr := v.(*runtime.ArrayValue)
	want := []runtime.Value{
		runtime.Nil(), runtime.Bool(true), runtime.Int(3),
		runtime.Float(4.5), runtime.Str("hello"), runtime.Str("5"),
	}
	if len(arr.Elements) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(arr.Elements))
	}
	for i := range want {
		if !runtime.Equal(arr.Elements[i], want[i]) {
			t.Fatalf("element %d = %#v, want %#v", i, arr.Elements[i], want[i])
		}
	}
}
