package runtime

import (
	"context"

	lua "github.com/yuin/gopher-lua"
)

// Thread is a cooperative, independently resumable execution context
// spawned from a State. It shares the parent VM's globals, allocator,
// and collector but carries its own evaluation stack. Suspension happens
// only where running script code explicitly yields; resumption is always
// an explicit host call. Closing the parent state while threads remain
// suspended invalidates them silently; they are reclaimed at teardown.
type Thread struct {
	state  *State
	co     *lua.LState
	cancel context.CancelFunc
	fn     *lua.LFunction
}

// NewThread spawns a thread that runs fn when first resumed.
func (s *State) NewThread(fn *lua.LFunction) *Thread {
	co, cancel := s.vm.NewThread()
	return &Thread{state: s, co: co, cancel: cancel, fn: fn}
}

// NewThreadUnit spawns a thread from a compiled unit. Returns nil for an
// invalid unit.
func (s *State) NewThreadUnit(unit *ScriptUnit) *Thread {
	if !unit.Valid() {
		return nil
	}
	return s.NewThread(unit.fn)
}

// Resume drives the thread until it yields or finishes. done is true
// once the thread can no longer be resumed; results carries the values
// it yielded or returned. A script failure is routed through the error
// handler and also returned.
func (t *Thread) Resume(args ...lua.LValue) (done bool, results []lua.LValue, err error) {
	st, rerr, values := t.state.vm.Resume(t.co, t.fn, args...)
	switch st {
	case lua.ResumeYield:
		return false, values, nil
	case lua.ResumeError:
		t.state.reportGuarded(rerr)
		return true, nil, rerr
	default:
		return true, values, nil
	}
}

// Cancel releases the thread's context, if it has one. A suspended
// thread is never resumed after Cancel.
func (t *Thread) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}
