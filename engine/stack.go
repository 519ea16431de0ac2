package engine

import (
	lua "github.com/yuin/gopher-lua"
)

// StackGuard records the evaluation stack depth at a call boundary so it
// can be restored on every exit path. The stack is shared across the whole
// VM session; a depth leak at one call site silently corrupts unrelated
// later calls, so every public operation that touches the stack acquires
// a guard and defers Restore.
type StackGuard struct {
	vm  *lua.LState
	top int
}

// SaveStack captures the current stack top of vm.
func SaveStack(vm *lua.LState) StackGuard {
	return StackGuard{vm: vm, top: vm.GetTop()}
}

// Top returns the depth recorded at acquisition.
func (g StackGuard) Top() int {
	return g.top
}

// Restore returns the stack to the recorded depth, discarding anything
// pushed above it since the guard was taken.
func (g StackGuard) Restore() {
	if g.vm != nil {
		g.vm.SetTop(g.top)
	}
}
