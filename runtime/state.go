package runtime

import (
	"fmt"
	"io"
	"os"
	goruntime "runtime"

	lua "github.com/yuin/gopher-lua"

	luaruntime "github.com/wippyai/lua-runtime"
	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/errors"
)

// Lib pairs a library name with its open function. The name doubles as
// the require-style symbol and the global-namespace insertion key.
type Lib struct {
	Name string
	Open lua.LGFunction
}

// StdLibs returns the engine's standard libraries in canonical load order.
func StdLibs() []Lib {
	return []Lib{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.IoLibName, lua.OpenIo},
		{lua.OsLibName, lua.OpenOs},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.DebugLibName, lua.OpenDebug},
		{lua.ChannelLibName, lua.OpenChannel},
		{lua.CoroutineLibName, lua.OpenCoroutine},
	}
}

// State owns or adopts exactly one VM instance and is the entry point for
// every operation on it: library loading, script loading and execution,
// collector control, and global access.
//
// A State created by New owns its VM and must be closed; a State created
// by Adopt never closes the VM it wraps. States are not safe for
// concurrent use by multiple goroutines.
type State struct {
	vm        *lua.LState
	created   bool
	allocator luaruntime.Allocator // shared ownership; must outlive the VM
	router    *Router
	stderr    io.Writer
	gc        *GC
	libsOpen  bool
}

type config struct {
	allocator    luaruntime.Allocator
	libs         []Lib
	libsSet      bool
	router       *Router
	stderr       io.Writer
	abort        func(code int)
	registrySize int
}

// Option configures state construction.
type Option func(*config)

// WithAllocator routes the handle's buffer management through a. A nil a
// selects DefaultAllocator. The VM itself allocates from the host heap;
// the allocator serves the handle's own block management (source reading,
// chunk containers) and is kept alive for the life of the state.
func WithAllocator(a luaruntime.Allocator) Option {
	return func(c *config) {
		if a == nil {
			a = luaruntime.DefaultAllocator{}
		}
		c.allocator = a
	}
}

// WithLibraries replaces the standard-library baseline with an explicit
// ordered list. Zero entries loads nothing.
func WithLibraries(libs ...Lib) Option {
	return func(c *config) {
		c.libs = libs
		c.libsSet = true
	}
}

// WithRouter attaches the state to a specific error router instead of
// DefaultRouter.
func WithRouter(r *Router) Option {
	return func(c *config) {
		if r != nil {
			c.router = r
		}
	}
}

// WithStderr redirects the diagnostic stream used by the default error
// handler and the panic trap.
func WithStderr(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.stderr = w
		}
	}
}

// WithAbort replaces the process-abort hook fired by the panic trap.
// Intended for tests.
func WithAbort(fn func(code int)) Option {
	return func(c *config) {
		c.abort = fn
	}
}

// WithRegistrySize presizes the fresh VM's registry stack. Ignored by
// Adopt, which never reconfigures the VM it wraps.
func WithRegistrySize(n int) Option {
	return func(c *config) {
		c.registrySize = n
	}
}

func buildConfig(opts []Option) config {
	cfg := config{
		router: DefaultRouter,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// New creates a state with a fresh, owned VM. With no options it loads
// the full standard library set under the built-in allocator; the
// construction modes (custom allocator, explicit library list, or both)
// are selected through options. Every fresh VM gets the panic trap.
func New(opts ...Option) *State {
	cfg := buildConfig(opts)

	vmOpts := lua.Options{SkipOpenLibs: true}
	if cfg.registrySize > 0 {
		vmOpts.RegistrySize = cfg.registrySize
	}
	vm := lua.NewState(vmOpts)
	debugf("new state: registry=%d libs_explicit=%v custom_alloc=%v",
		cfg.registrySize, cfg.libsSet, cfg.allocator != nil)
	s := &State{
		vm:        vm,
		created:   true,
		allocator: cfg.allocator,
		router:    cfg.router,
		stderr:    cfg.stderr,
		gc:        newGC(),
	}
	engine.InstallTrap(vm, cfg.stderr, cfg.abort)
	s.init()

	if cfg.libsSet {
		s.OpenLibraries(cfg.libs...)
	} else {
		s.OpenLibs()
	}
	return s
}

// Adopt wraps an already-existing, externally-owned VM. Ownership is not
// taken: closing the returned state never closes vm. The panic trap and
// the default error handler are applied only if absent, so a VM wired
// elsewhere keeps its configuration.
func Adopt(vm *lua.LState, opts ...Option) *State {
	cfg := buildConfig(opts)

	s := &State{
		vm:        vm,
		created:   false,
		allocator: cfg.allocator,
		router:    cfg.router,
		stderr:    cfg.stderr,
		gc:        newGC(),
	}
	if vm.Panic == nil {
		engine.InstallTrap(vm, cfg.stderr, cfg.abort)
	}
	s.init()
	return s
}

// init installs the default handler when no handler is associated with
// this VM identity yet.
func (s *State) init() {
	if s.router.Has(s.vm) {
		return
	}
	w := s.stderr
	s.router.Register(s.vm, func(status engine.Status, message string) {
		fmt.Fprintln(w, message)
	})
}

// Close releases an owned VM and its memory, dropping the router entry
// for its identity. Closing an adopting state is a no-op on the VM.
func (s *State) Close() {
	if !s.created {
		return
	}
	s.created = false
	s.router.Remove(s.vm)
	s.vm.Close()
}

// VM exposes the underlying VM for interoperation with code that works
// on it directly.
func (s *State) VM() *lua.LState {
	return s.vm
}

// Router returns the error router serving this state.
func (s *State) Router() *Router {
	return s.router
}

// SetHandler installs or replaces the error handler for this VM.
func (s *State) SetHandler(h Handler) {
	guard := engine.SaveStack(s.vm)
	defer guard.Restore()
	s.router.Register(s.vm, h)
}

// report routes a recoverable failure: the message is placed on the
// stack the way a failed protected call leaves it, then delivered and
// popped by the router.
func (s *State) report(err error) {
	status := engine.StatusOf(err)
	debugf("routing failure: status=%s err=%v", status, err)
	s.vm.Push(lua.LString(engine.MessageOf(err)))
	s.router.Handle(s.vm, status)
}

// OpenLibs loads the engine's full standard library set. The baseline is
// idempotent: repeated calls are no-ops.
func (s *State) OpenLibs() {
	if s.libsOpen {
		return
	}
	s.libsOpen = true
	s.OpenLibraries(StdLibs()...)
}

// OpenLib loads one library. The open function runs protected with the
// library name as its argument; a returned module value is also bound
// into the global namespace under that name. Failures are routed through
// the error handler and returned.
func (s *State) OpenLib(lib Lib) error {
	guard := engine.SaveStack(s.vm)
	defer guard.Restore()

	err := s.vm.CallByParam(lua.P{
		Fn:      s.vm.NewFunction(lib.Open),
		NRet:    1,
		Protect: true,
	}, lua.LString(lib.Name))
	if err != nil {
		s.report(err)
		return errors.Registration(lib.Name, err)
	}

	if mod := s.vm.Get(-1); lib.Name != "" && mod != lua.LNil {
		s.vm.SetGlobal(lib.Name, mod)
	}
	return nil
}

// OpenLibraries loads each entry in order. A failure in one entry does
// not prevent subsequent entries from being attempted; each failure is
// reported through the error handler as it happens.
func (s *State) OpenLibraries(libs ...Lib) {
	for _, lib := range libs {
		_ = s.OpenLib(lib)
	}
}

// SetGlobal binds value under name in the true global namespace.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.vm.SetGlobal(name, value)
}

// GetGlobal reads name from the true global namespace.
func (s *State) GetGlobal(name string) lua.LValue {
	return s.vm.GetGlobal(name)
}

// NewTable creates a fresh table value on this VM.
func (s *State) NewTable() *lua.LTable {
	return s.vm.NewTable()
}

// NewTableSize creates a table presized for acap array slots and hcap
// hash slots.
func (s *State) NewTableSize(acap, hcap int) *lua.LTable {
	return s.vm.CreateTable(acap, hcap)
}

// NewUserData boxes a host value as a VM-managed value. A value that
// implements io.Closer is closed when the collector reclaims the box,
// forwarding the host-side destructor the way VM-side finalizers would.
func (s *State) NewUserData(v any) *lua.LUserData {
	ud := s.vm.NewUserData()
	ud.Value = v
	if closer, ok := v.(io.Closer); ok {
		goruntime.SetFinalizer(ud, func(*lua.LUserData) {
			_ = closer.Close()
		})
	}
	return ud
}
