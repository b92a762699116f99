package template

import (
	"testing"

	"plait/evaluator-go/pkg/fixture"
	"plait/evaluator-go/pkg/runtime"
)

func TestConformanceFixtures(t *testing.T) {
	fixtures, err := fixture.LoadDir("testdata")
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	for _, f := range fixtures {
		t.Run(f.Name(), func(t *testing.T) {
			if f.Template == nil {
				t.Fatalf("fixture %s is not a template case", f.Path)
			}
			runTemplateFixture(t, f.Template)
		})
	}
}

func runTemplateFixture(t *testing.T, c *fixture.TemplateCase) {
	t.Helper()
	tmpl, err := Parse(c.Source)
	if err != nil {
		if c.Expect.Error == "" {
			t.Fatalf("parse: %v", err)
		}
		return
	}
	if c.Expect.Error != "" {
		t.Fatalf("expected parse error %q", c.Expect.Error)
	}
	bindings := runtime.NewBindings()
	for name, node := range c.Bindings {
		val, err := fixture.ValueFromYAML(&node)
		if err != nil {
			t.Fatalf("decode binding %q: %v", name, err)
		}
		bindings.Define(name, val)
	}
	inv, err := tmpl.Eval(bindings)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if len(c.Expect.Cooked) > 0 {
		assertSegments(t, "cooked", c.Expect.Cooked, inv.Literals().CookedAll())
	}
	if len(c.Expect.Raw) > 0 {
		assertSegments(t, "raw", c.Expect.Raw, inv.Literals().RawAll())
	}
	got, err := tmpl.Render(bindings)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != c.Expect.Output {
		t.Fatalf("render = %q, want %q", got, c.Expect.Output)
	}
}

func assertSegments(t *testing.T, view string, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: expected %d segments, got %d", view, len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("%s[%d] = %q, want %q", view, i, got[i], want[i])
		}
	}
}
