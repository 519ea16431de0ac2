package runtime

import (
	"io"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/lua-runtime/engine"
)

func TestThread_YieldAndResume(t *testing.T) {
	state := New(WithRouter(NewRouter()))
	defer state.Close()

	unit := state.LoadString(`
		local x = coroutine.yield(1, 2)
		return x + 10
	`)
	if !unit.Valid() {
		t.Fatal("unit invalid")
	}

	th := state.NewThreadUnit(unit)
	defer th.Cancel()

	done, results, err := th.Resume()
	if err != nil {
		t.Fatalf("first resume: %v", err)
	}
	if done {
		t.Fatal("thread finished before its yield point")
	}
	if len(results) != 2 || results[0] != lua.LNumber(1) || results[1] != lua.LNumber(2) {
		t.Fatalf("yielded values = %v, want [1 2]", results)
	}

	done, results, err = th.Resume(lua.LNumber(5))
	if err != nil {
		t.Fatalf("second resume: %v", err)
	}
	if !done {
		t.Fatal("thread still suspended after return")
	}
	if len(results) != 1 || results[0] != lua.LNumber(15) {
		t.Fatalf("returned values = %v, want [15]", results)
	}
}

func TestThread_SharesGlobals(t *testing.T) {
	state := New(WithRouter(NewRouter()))
	defer state.Close()

	state.Global("base").SetNumber(100)

	unit := state.LoadString(`observed = base + 1`)
	th := state.NewThreadUnit(unit)
	defer th.Cancel()

	if done, _, err := th.Resume(); err != nil || !done {
		t.Fatalf("resume: done=%v err=%v", done, err)
	}
	if got := state.GetGlobal("observed"); got != lua.LNumber(101) {
		t.Errorf("observed = %v, want 101", got)
	}
}

func TestThread_ErrorIsRoutedAndTerminal(t *testing.T) {
	state := New(WithRouter(NewRouter()))
	defer state.Close()

	failures := 0
	state.SetHandler(func(engine.Status, string) { failures++ })

	unit := state.LoadString(`error("thread boom")`)
	th := state.NewThreadUnit(unit)
	defer th.Cancel()

	done, _, err := th.Resume()
	if err == nil {
		t.Fatal("Resume returned nil error for a failing body")
	}
	if !done {
		t.Error("failed thread still reports resumable")
	}
	if failures != 1 {
		t.Errorf("routed failures = %d, want 1", failures)
	}
}

func TestThread_FromInvalidUnit(t *testing.T) {
	state := New(WithRouter(NewRouter()), WithStderr(io.Discard))
	defer state.Close()

	unit := state.LoadString(`return ===`)
	if th := state.NewThreadUnit(unit); th != nil {
		t.Error("NewThreadUnit returned a thread for an invalid unit")
	}
}

func TestThread_CancelIsSafe(t *testing.T) {
	state := New(WithRouter(NewRouter()))
	defer state.Close()

	unit := state.LoadString(`coroutine.yield()`)
	th := state.NewThreadUnit(unit)
	if done, _, err := th.Resume(); err != nil || done {
		t.Fatalf("resume to yield: done=%v err=%v", done, err)
	}

	th.Cancel()
	th.Cancel() // repeat must be harmless
}
