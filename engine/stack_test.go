package engine

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestStackGuard_RestoresAfterPushes(t *testing.T) {
	vm := lua.NewState()
	defer vm.Close()

	vm.Push(lua.LNumber(1))
	want := vm.GetTop()

	guard := SaveStack(vm)
	vm.Push(lua.LString("a"))
	vm.Push(lua.LString("b"))
	vm.Push(lua.LString("c"))
	guard.Restore()

	if got := vm.GetTop(); got != want {
		t.Errorf("stack top = %d, want %d", got, want)
	}
	if v := vm.Get(-1); v != lua.LNumber(1) {
		t.Errorf("top value = %v, want 1", v)
	}
}

func TestStackGuard_RestoresAfterPops(t *testing.T) {
	vm := lua.NewState()
	defer vm.Close()

	vm.Push(lua.LNumber(1))
	vm.Push(lua.LNumber(2))
	want := vm.GetTop()

	guard := SaveStack(vm)
	vm.Pop(2)
	guard.Restore()

	if got := vm.GetTop(); got != want {
		t.Errorf("stack top = %d, want %d", got, want)
	}
}

func TestStackGuard_Top(t *testing.T) {
	vm := lua.NewState()
	defer vm.Close()

	vm.Push(lua.LNumber(7))
	guard := SaveStack(vm)
	if guard.Top() != 1 {
		t.Errorf("Top() = %d, want 1", guard.Top())
	}
}

func TestStackGuard_ZeroValueIsSafe(t *testing.T) {
	var guard StackGuard
	guard.Restore() // must not panic
}
