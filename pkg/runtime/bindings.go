package runtime

// Bindings is the result of one match attempt: a name-to-value mapping
// whose insertion order follows pattern declaration order. A Bindings is
// produced fresh per match and owned solely by the caller.
type Bindings struct {
	names  []string
	values map[string]Value
}

func NewBindings() *Bindings {
	return &Bindings{values: make(map[string]Value)}
}

// Define inserts a binding. Redefining a name replaces the value but
// keeps the original position.
func (b *Bindings) Define(name string, value Value) {
	if _, ok := b.values[name]; !ok {
		b.names = append(b.names, name)
	}
	b.values[name] = value
}

// Get retrieves a binding by name.
func (b *Bindings) Get(name string) (Value, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Has reports whether the name is bound.
func (b *Bindings) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Names returns the bound names in declaration order.
func (b *Bindings) Names() []string {
	return append([]string(nil), b.names...)
}

func (b *Bindings) Len() int {
	return len(b.names)
}

// Snapshot copies the current bindings into a plain map.
func (b *Bindings) Snapshot() map[string]Value {
	out := make(map[string]Value, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// Env bridges the bindings into the environment shape expected by
// expression evaluation: plain Go values keyed by name.
func (b *Bindings) Env() map[string]any {
	env := make(map[string]any, len(b.values))
	for name, val := range b.values {
		env[name] = ToGo(val)
	}
	return env
}
