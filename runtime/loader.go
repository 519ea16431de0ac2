package runtime

import (
	"io"
	"os"

	lua "github.com/yuin/gopher-lua"

	luaruntime "github.com/wippyai/lua-runtime"
	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/errors"
)

// ScriptUnit is a compiled-but-not-yet-executed chunk. An invalid unit
// means compilation failed; the failure was already routed through the
// error handler before the caller observed the unit.
type ScriptUnit struct {
	state *State
	fn    *lua.LFunction
}

// Valid reports whether the unit can be invoked.
func (u *ScriptUnit) Valid() bool {
	return u != nil && u.fn != nil
}

// Function exposes the compiled function, or nil for an invalid unit.
func (u *ScriptUnit) Function() *lua.LFunction {
	if u == nil {
		return nil
	}
	return u.fn
}

// Run invokes the unit in protected mode with no arguments, discarding
// all results. A non-nil env is substituted as the chunk's visible
// global namespace first. Reports success.
func (u *ScriptUnit) Run(env *lua.LTable) bool {
	if !u.Valid() {
		return false
	}
	return u.state.call(u.fn, env)
}

// LoadString compiles source text (or a binary chunk container) into a
// unit without running it. On failure the unit is invalid and the error
// has been routed.
func (s *State) LoadString(source string) *ScriptUnit {
	return s.load([]byte(source), "<string>")
}

// LoadFile compiles the chunk stored at path. Both source files and
// binary chunk containers load through the same call; the format is
// detected by signature.
func (s *State) LoadFile(path string) *ScriptUnit {
	data, err := s.readFile(path)
	if err != nil {
		s.reportGuarded(err)
		return &ScriptUnit{state: s}
	}
	defer s.releaseBuffer(data)
	return s.load(data, path)
}

// RunString compiles and runs source text. An optional env table is
// substituted as the chunk's global namespace for this invocation; the
// true global table is not mutated. Reports success; failures have been
// routed through the error handler.
func (s *State) RunString(source string, env ...*lua.LTable) bool {
	unit := s.LoadString(source)
	return unit.Run(pickEnv(env))
}

// RunFile compiles and runs the chunk stored at path, with the same
// environment handling as RunString.
func (s *State) RunFile(path string, env ...*lua.LTable) bool {
	unit := s.LoadFile(path)
	return unit.Run(pickEnv(env))
}

// Eval runs source under the true global namespace.
func (s *State) Eval(source string) bool {
	return s.RunString(source)
}

func pickEnv(env []*lua.LTable) *lua.LTable {
	if len(env) == 0 {
		return nil
	}
	return env[len(env)-1]
}

func (s *State) load(data []byte, name string) *ScriptUnit {
	guard := engine.SaveStack(s.vm)
	defer guard.Restore()

	fn, err := engine.Compile(s.vm, data, name)
	if err != nil {
		s.report(err)
		return &ScriptUnit{state: s}
	}
	return &ScriptUnit{state: s, fn: fn}
}

// call runs fn protected with zero arguments and unbounded results. The
// environment substitution uses the engine's legacy function-environment
// mechanism; the engine has 5.1 semantics, so this choice is fixed for
// the build, never branched per call. The substitution lasts for this
// invocation only: the function is rebound to the true global table
// afterwards, so a reused unit run without an environment sees the true
// globals again. The guard discards all results.
func (s *State) call(fn *lua.LFunction, env *lua.LTable) bool {
	guard := engine.SaveStack(s.vm)
	defer guard.Restore()

	if env != nil {
		s.vm.SetFEnv(fn, env)
		defer s.vm.SetFEnv(fn, s.vm.G.Global)
	}

	s.vm.Push(fn)
	if err := s.vm.PCall(0, lua.MultRet, nil); err != nil {
		s.report(err)
		return false
	}
	return true
}

// reportGuarded routes a failure that occurs before any stack activity.
func (s *State) reportGuarded(err error) {
	guard := engine.SaveStack(s.vm)
	defer guard.Restore()
	s.report(err)
}

// readFile reads the chunk at path. When the state carries a custom
// allocator, the read buffer is managed through the raw allocation
// bridge; otherwise the built-in allocator path is used.
func (s *State) readFile(path string) ([]byte, error) {
	if s.allocator == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.File(path, err)
		}
		return data, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.File(path, err)
	}
	defer f.Close()

	buf := luaruntime.Alloc(s.allocator, nil, 0, 4096)
	if buf == nil {
		return nil, errors.OutOfMemory("read buffer")
	}
	size := 0
	for {
		if size == len(buf) {
			next := luaruntime.Alloc(s.allocator, buf, len(buf), len(buf)*2)
			if next == nil {
				luaruntime.Alloc(s.allocator, buf, len(buf), 0)
				return nil, errors.OutOfMemory("grow read buffer")
			}
			buf = next
		}
		n, rerr := f.Read(buf[size:])
		size += n
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			luaruntime.Alloc(s.allocator, buf, len(buf), 0)
			return nil, errors.File(path, rerr)
		}
	}
	return buf[:size], nil
}

// releaseBuffer returns a buffer obtained from readFile to the custom
// allocator, if one is wired.
func (s *State) releaseBuffer(buf []byte) {
	if s.allocator != nil && buf != nil {
		luaruntime.Alloc(s.allocator, buf, len(buf), 0)
	}
}
