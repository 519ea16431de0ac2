package engine

import (
	"fmt"
	"io"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// InstallTrap wires the VM's panic hook. The trap fires on an error raised
// outside any protected call; at that point the VM's internal state is no
// longer trustworthy, so the trap writes the message to the diagnostic
// stream, flushes it, and aborts the process.
//
// A nil w defaults to os.Stderr; a nil abort defaults to os.Exit. Tests
// inject both.
func InstallTrap(vm *lua.LState, w io.Writer, abort func(code int)) {
	if w == nil {
		w = os.Stderr
	}
	if abort == nil {
		abort = os.Exit
	}
	vm.Panic = func(l *lua.LState) {
		msg := "?"
		if l.GetTop() > 0 {
			msg = l.Get(-1).String()
		}
		fmt.Fprintf(w, "PANIC: unprotected error in call to Lua API (%s)\n", msg)
		if s, ok := w.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		abort(1)
	}
}
