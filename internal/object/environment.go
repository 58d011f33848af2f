package object

// Environment is the single flat variable table of a run. There is no
// nesting: a function call snapshots the whole table and restores it
// afterwards.
type Environment struct {
	store map[string]Object
}

func NewEnvironment() *Environment {
	return &Environment{store: map[string]Object{}}
}

func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	return obj, ok
}

func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

func (e *Environment) Len() int { return len(e.store) }

// Clone copies the table. Values are immutable so a shallow copy suffices.
func (e *Environment) Clone() *Environment {
	out := make(map[string]Object, len(e.store))
	for k, v := range e.store {
		out[k] = v
	}
	return &Environment{store: out}
}

// Names returns the variable names in no particular order.
func (e *Environment) Names() []string {
	out := make([]string, 0, len(e.store))
	for k := range e.store {
		out = append(out, k)
	}
	return out
}
