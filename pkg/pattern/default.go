package pattern

import (
	"fmt"

	"github.com/expr-lang/expr"
	exprast "github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"plait/evaluator-go/pkg/runtime"
)

// Default is a deferred computation producing a fallback value for a
// missing or nil field. It runs at match time, in declaration order, and
// sees only the bindings produced by earlier elements of the same match.
type Default interface {
	// References lists the binding names the computation reads. The
	// validator uses them to reject forward references.
	References() []string
	// Resolve evaluates the default against the bindings produced so far.
	Resolve(b *runtime.Bindings) (runtime.Value, error)
}

// ValueDefault yields a constant value.
type ValueDefault struct {
	Val runtime.Value
}

func NewValueDefault(val runtime.Value) *ValueDefault {
	return &ValueDefault{Val: val}
}

func (d *ValueDefault) References() []string { return nil }

func (d *ValueDefault) Resolve(*runtime.Bindings) (runtime.Value, error) {
	if d.Val == nil {
		return runtime.NilValue{}, nil
	}
	return d.Val, nil
}

// FuncDefault yields the result of an arbitrary Go closure. Refs must
// declare every earlier binding the closure reads; the validator cannot
// see inside the function.
type FuncDefault struct {
	Refs []string
	Fn   func(b *runtime.Bindings) (runtime.Value, error)
}

func NewFuncDefault(refs []string, fn func(b *runtime.Bindings) (runtime.Value, error)) *FuncDefault {
	return &FuncDefault{Refs: refs, Fn: fn}
}

func (d *FuncDefault) References() []string { return d.Refs }

func (d *FuncDefault) Resolve(b *runtime.Bindings) (runtime.Value, error) {
	if d.Fn == nil {
		return runtime.NilValue{}, nil
	}
	return d.Fn(b)
}

// ExprDefault compiles an expr-lang expression at construction and
// evaluates it against the partial bindings at match time. Identifiers
// that name earlier bindings resolve to their values; identifiers bound
// nowhere in the pattern evaluate to nil.
type ExprDefault struct {
	Source  string
	refs    []string
	program *vm.Program
}

func NewExprDefault(source string) (*ExprDefault, error) {
	refs, err := exprIdentifiers(source)
	if err != nil {
		return nil, fmt.Errorf("pattern: parse default %q: %w", source, err)
	}
	// Builtins are disabled so names like first or count stay plain
	// binding references.
	program, err := expr.Compile(source, expr.AllowUndefinedVariables(), expr.DisableAllBuiltins())
	if err != nil {
		return nil, fmt.Errorf("pattern: compile default %q: %w", source, err)
	}
	return &ExprDefault{Source: source, refs: refs, program: program}, nil
}

// MustExprDefault is NewExprDefault panicking on error, for use in
// statically known pattern literals.
func MustExprDefault(source string) *ExprDefault {
	d, err := NewExprDefault(source)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *ExprDefault) References() []string {
	return append([]string(nil), d.refs...)
}

func (d *ExprDefault) Resolve(b *runtime.Bindings) (runtime.Value, error) {
	var env map[string]any
	if b != nil {
		env = b.Env()
	} else {
		env = map[string]any{}
	}
	out, err := expr.Run(d.program, env)
	if err != nil {
		return nil, fmt.Errorf("pattern: evaluate default %q: %w", d.Source, err)
	}
	val, err := runtime.FromGo(out)
	if err != nil {
		return nil, fmt.Errorf("pattern: default %q: %w", d.Source, err)
	}
	return val, nil
}

// identCollector gathers free identifiers from a parsed expression.
type identCollector struct {
	seen  map[string]struct{}
	names []string
}

func (c *identCollector) Visit(node *exprast.Node) {
	id, ok := (*node).(*exprast.IdentifierNode)
	if !ok {
		return
	}
	if _, dup := c.seen[id.Value]; dup {
		return
	}
	c.seen[id.Value] = struct{}{}
	c.names = append(c.names, id.Value)
}

func exprIdentifiers(source string) ([]string, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	collector := &identCollector{seen: make(map[string]struct{})}
	exprast.Walk(&tree.Node, collector)
	return collector.names, nil
}
