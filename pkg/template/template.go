// Package template invokes tag functions over split template literals:
// the cooked/raw literal segments on one side, the ordered substitution
// values on the other.
package template

import (
	"fmt"
	"strings"

	"plait/evaluator-go/pkg/runtime"
)

// InvalidTemplateError reports a malformed literal/substitution split.
// It is a fatal construction error: the caller handed over sequences
// that cannot have come from one template.
type InvalidTemplateError struct {
	Detail string
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("template: %s", e.Detail)
}

// Strings is the literals view handed to tag functions: the cooked
// segments (escape sequences resolved) as the primary sequence, with the
// raw segments (escapes verbatim) as a secondary named view.
type Strings struct {
	cooked []string
	raw    []string
}

func (s *Strings) Len() int { return len(s.cooked) }

// Cooked returns the i-th segment with escapes resolved.
func (s *Strings) Cooked(i int) string { return s.cooked[i] }

// Raw returns the i-th segment with escapes preserved verbatim.
func (s *Strings) Raw(i int) string { return s.raw[i] }

func (s *Strings) CookedAll() []string {
	return append([]string(nil), s.cooked...)
}

func (s *Strings) RawAll() []string {
	return append([]string(nil), s.raw...)
}

// TagFunc consumes the literals view and the ordered substitutions. Its
// result is passed through the invoker unchanged.
type TagFunc func(literals *Strings, substitutions []runtime.Value) (runtime.Value, error)

// Invocation is an immutable literal/substitution split: N+1 literal
// segments around N substitution values.
type Invocation struct {
	literals      *Strings
	substitutions []runtime.Value
}

// NewInvocation checks the segment invariant before anything else:
// len(raw) == len(cooked) == len(substitutions)+1.
func NewInvocation(raw, cooked []string, substitutions []runtime.Value) (*Invocation, error) {
	if len(cooked) == 0 {
		return nil, &InvalidTemplateError{Detail: "no literal segments"}
	}
	if len(raw) != len(cooked) {
		return nil, &InvalidTemplateError{Detail: fmt.Sprintf("%d raw segments against %d cooked", len(raw), len(cooked))}
	}
	if len(substitutions) != len(cooked)-1 {
		return nil, &InvalidTemplateError{Detail: fmt.Sprintf("%d substitutions against %d literal segments", len(substitutions), len(cooked))}
	}
	subs := make([]runtime.Value, len(substitutions))
	for i, sub := range substitutions {
		if sub == nil {
			sub = runtime.NilValue{}
		}
		subs[i] = sub
	}
	return &Invocation{
		literals: &Strings{
			cooked: append([]string(nil), cooked...),
			raw:    append([]string(nil), raw...),
		},
		substitutions: subs,
	}, nil
}

// Literals exposes the literals view.
func (inv *Invocation) Literals() *Strings { return inv.literals }

// Substitutions returns a copy of the substitution values.
func (inv *Invocation) Substitutions() []runtime.Value {
	return append([]runtime.Value(nil), inv.substitutions...)
}

// Invoke calls the tag function with the literals view and the
// substitutions, passing its result through unchanged.
func (inv *Invocation) Invoke(tag TagFunc) (runtime.Value, error) {
	if tag == nil {
		return nil, &InvalidTemplateError{Detail: "nil tag function"}
	}
	return tag(inv.literals, inv.substitutions)
}

// Cook is the untagged-template tag: cooked segments interleaved with
// the display form of each substitution.
func Cook(literals *Strings, substitutions []runtime.Value) (runtime.Value, error) {
	var builder strings.Builder
	for i := 0; i < literals.Len(); i++ {
		builder.WriteString(literals.Cooked(i))
		if i < len(substitutions) {
			builder.WriteString(runtime.ValueToString(substitutions[i]))
		}
	}
	return runtime.StringValue{Val: builder.String()}, nil
}
