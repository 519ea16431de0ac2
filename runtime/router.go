package runtime

import (
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/lua-runtime/engine"
)

// Handler receives the status code and message of a recoverable VM
// failure. It must not raise further; the failing operation returns a
// failure indicator to its caller after the handler runs.
type Handler func(status engine.Status, message string)

// Router maps a VM identity to its error handler. It is the single seam
// through which every recoverable failure surfaces: at most one handler
// is associated with a VM at any time, and an entry is removed when an
// owned VM closes so identities never dangle.
//
// A Router lives for the duration of the process (or of a test, when one
// is constructed per test for isolation). VM identities are keys only;
// the router never owns or copies a VM.
type Router struct {
	mu       sync.RWMutex
	handlers map[*lua.LState]Handler
}

// NewRouter creates an empty registry.
func NewRouter() *Router {
	return &Router{handlers: make(map[*lua.LState]Handler)}
}

// DefaultRouter serves every state that is not given its own router.
var DefaultRouter = NewRouter()

// Register installs or replaces the handler for vm. Safe mid-session:
// the replacement is invoked on the next failure. Re-registering from
// inside a running handler does not deadlock, but only takes effect for
// subsequent failures.
func (r *Router) Register(vm *lua.LState, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[vm] = h
}

// Has reports whether a handler is associated with vm. Used to decide
// whether to install the default at construction time, so adopting a VM
// wired elsewhere keeps its existing handler.
func (r *Router) Has(vm *lua.LState) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[vm]
	return ok
}

// Remove drops the entry for vm.
func (r *Router) Remove(vm *lua.LState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, vm)
}

// Handle delivers a failure: it reads the message left on top of vm's
// stack by the failed protected call, invokes the registered handler
// with the status code and message, then pops the message so the
// operation is stack-neutral from the caller's view.
func (r *Router) Handle(vm *lua.LState, status engine.Status) {
	var message string
	pushed := vm.GetTop() > 0
	if pushed {
		message = vm.Get(-1).String()
	}

	r.mu.RLock()
	h := r.handlers[vm]
	r.mu.RUnlock()
	if h != nil {
		h(status, message)
	}

	if pushed {
		vm.Pop(1)
	}
}
