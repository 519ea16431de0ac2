package runtime

import (
	lua "github.com/yuin/gopher-lua"
)

// GlobalRef is a deferred reference to one slot of the global namespace.
// Creating a reference performs no lookup and no type check; the actual
// get or set happens at point of use, so the same expression can both
// read and write the slot.
type GlobalRef struct {
	state *State
	table *lua.LTable
	key   string
}

// Global returns a deferred reference to the global variable name.
func (s *State) Global(name string) GlobalRef {
	return GlobalRef{state: s, table: s.vm.G.Global, key: name}
}

// Get resolves the reference and returns the current value.
func (r GlobalRef) Get() lua.LValue {
	return r.state.vm.GetField(r.table, r.key)
}

// Set writes v through the reference.
func (r GlobalRef) Set(v lua.LValue) {
	r.state.vm.SetField(r.table, r.key, v)
}

// IsNil reports whether the slot currently holds no value.
func (r GlobalRef) IsNil() bool {
	return r.Get() == lua.LNil
}

// String resolves the reference and formats the value as the engine
// would.
func (r GlobalRef) String() string {
	return r.Get().String()
}

// Number resolves the reference as a number. The second result is false
// when the slot does not hold one.
func (r GlobalRef) Number() (float64, bool) {
	if n, ok := r.Get().(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}

// Table resolves the reference as a table. The second result is false
// when the slot does not hold one.
func (r GlobalRef) Table() (*lua.LTable, bool) {
	t, ok := r.Get().(*lua.LTable)
	return t, ok
}

// SetString writes a string through the reference.
func (r GlobalRef) SetString(v string) {
	r.Set(lua.LString(v))
}

// SetNumber writes a number through the reference.
func (r GlobalRef) SetNumber(v float64) {
	r.Set(lua.LNumber(v))
}

// SetBool writes a boolean through the reference.
func (r GlobalRef) SetBool(v bool) {
	r.Set(lua.LBool(v))
}
