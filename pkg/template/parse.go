package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"plait/evaluator-go/pkg/runtime"
)

// Template is a parsed template source: literal segments split around
// ${...} placeholders, each placeholder compiled as an expression over a
// binding result. A Template is immutable once parsed.
type Template struct {
	source       string
	raw          []string
	cooked       []string
	placeholders []placeholder
}

type placeholder struct {
	source  string
	program *vm.Program
}

// Parse scans a template source. Literal escapes are kept verbatim in
// the raw segments and resolved in the cooked segments; unknown escape
// sequences pass through untouched.
func Parse(source string) (*Template, error) {
	t := &Template{source: source}
	var raw, cooked strings.Builder
	i := 0
	for i < len(source) {
		switch {
		case source[i] == '\\' && i+1 < len(source):
			consumed, cookedText := cookEscape(source[i:])
			raw.WriteString(source[i : i+consumed])
			cooked.WriteString(cookedText)
			i += consumed
		case source[i] == '$' && i+1 < len(source) && source[i+1] == '{':
			end, err := findPlaceholderEnd(source, i+2)
			if err != nil {
				return nil, err
			}
			exprSource := source[i+2 : end]
			program, err := expr.Compile(exprSource, expr.AllowUndefinedVariables(), expr.DisableAllBuiltins())
			if err != nil {
				return nil, fmt.Errorf("template: compile placeholder %q: %w", exprSource, err)
			}
			t.raw = append(t.raw, raw.String())
			t.cooked = append(t.cooked, cooked.String())
			t.placeholders = append(t.placeholders, placeholder{source: exprSource, program: program})
			raw.Reset()
			cooked.Reset()
			i = end + 1
		default:
			raw.WriteByte(source[i])
			cooked.WriteByte(source[i])
			i++
		}
	}
	t.raw = append(t.raw, raw.String())
	t.cooked = append(t.cooked, cooked.String())
	return t, nil
}

// findPlaceholderEnd locates the closing brace, tolerating nested braces
// inside the placeholder expression. Braces inside quoted string literals
// do not count.
func findPlaceholderEnd(source string, start int) (int, error) {
	depth := 1
	for i := start; i < len(source); i++ {
		switch source[i] {
		case '"', '\'':
			end, ok := skipStringLiteral(source, i)
			if !ok {
				return 0, fmt.Errorf("template: unterminated string in placeholder at offset %d", i)
			}
			i = end
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("template: unterminated placeholder at offset %d", start-2)
}

// skipStringLiteral returns the index of the closing quote matching the
// opening quote at start, honoring backslash escapes.
func skipStringLiteral(source string, start int) (int, bool) {
	quote := source[start]
	for i := start + 1; i < len(source); i++ {
		switch source[i] {
		case '\\':
			i++
		case quote:
			return i, true
		}
	}
	return 0, false
}

// cookEscape resolves one escape sequence starting at a backslash.
// Returns the number of source bytes consumed and the cooked text.
func cookEscape(s string) (int, string) {
	switch s[1] {
	case 'n':
		return 2, "\n"
	case 't':
		return 2, "\t"
	case 'r':
		return 2, "\r"
	case '\\':
		return 2, "\\"
	case '$':
		return 2, "$"
	case '`':
		return 2, "`"
	case '"':
		return 2, "\""
	case 'u':
		if len(s) > 3 && s[2] == '{' {
			if end := strings.IndexByte(s[3:], '}'); end >= 0 {
				if code, err := strconv.ParseUint(s[3:3+end], 16, 32); err == nil {
					return end + 4, string(rune(code))
				}
			}
		}
		return 2, s[:2]
	default:
		// Unknown escape: both views keep the sequence verbatim.
		return 2, s[:2]
	}
}

// Source returns the original template text.
func (t *Template) Source() string { return t.source }

// Arity returns the number of placeholders.
func (t *Template) Arity() int { return len(t.placeholders) }

// Placeholders returns the placeholder expression sources in order.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	for i, ph := range t.placeholders {
		out[i] = ph.source
	}
	return out
}

// Bind pairs the template's segments with caller-supplied substitution
// values, one per placeholder.
func (t *Template) Bind(substitutions ...runtime.Value) (*Invocation, error) {
	return NewInvocation(t.raw, t.cooked, substitutions)
}

// Eval resolves every placeholder against a binding result and returns
// the invocation. Placeholder names that are not bound evaluate to nil.
func (t *Template) Eval(b *runtime.Bindings) (*Invocation, error) {
	env := map[string]any{}
	if b != nil {
		env = b.Env()
	}
	subs := make([]runtime.Value, 0, len(t.placeholders))
	for _, ph := range t.placeholders {
		out, err := expr.Run(ph.program, env)
		if err != nil {
			return nil, fmt.Errorf("template: evaluate placeholder %q: %w", ph.source, err)
		}
		val, err := runtime.FromGo(out)
		if err != nil {
			return nil, fmt.Errorf("template: placeholder %q: %w", ph.source, err)
		}
		subs = append(subs, val)
	}
	return NewInvocation(t.raw, t.cooked, subs)
}

// Render evaluates the template against a binding result with the
// default cooking tag.
func (t *Template) Render(b *runtime.Bindings) (string, error) {
	inv, err := t.Eval(b)
	if err != nil {
		return "", err
	}
	result, err := inv.Invoke(Cook)
	if err != nil {
		return "", err
	}
	str, ok := result.(runtime.StringValue)
	if !ok {
		return "", fmt.Errorf("template: cook returned %s", result.Kind())
	}
	return str.Val, nil
}
