// Package luaruntime embeds a Lua virtual machine in a Go host application.
//
// The library owns (or adopts) one VM instance per handle, controls its
// allocation strategy, routes VM-level failures through a swappable
// per-VM handler, exposes collector controls, and loads and runs script
// source from files or in-memory text, optionally under a private global
// namespace.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	luaruntime/      Root package with the Allocator interface and the
//	                 raw allocation-callback bridge
//	├── runtime/     High-level API: State, script loading, error routing,
//	                 GC control, global references, cooperative threads
//	├── engine/      Low-level VM integration: compilation front-end,
//	                 stack guards, binary chunk container, panic trap
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Create a state with the standard libraries and run a script:
//
//	state := runtime.New()
//	defer state.Close()
//
//	if ok := state.RunString(`print("hello")`); !ok {
//	    // failure was already reported through the state's error handler
//	}
//
// # Error Model
//
// Failures inside protected calls (compile errors, runtime errors, memory
// exhaustion) never abort the process: they are delivered to the handler
// registered for the VM, and the failing operation returns false or an
// invalid unit. Errors raised outside any protected call go through the
// panic trap, which writes the message to the diagnostic stream and
// aborts, because the VM state is no longer trustworthy.
//
// # Thread Safety
//
// One native goroutine drives a given VM at a time. The VM's internal
// structures are not safe for concurrent access from multiple goroutines;
// external synchronization is the embedding application's responsibility.
// Cooperative threads spawned from a State share its memory and collector
// but carry their own evaluation stack, and are only ever resumed by an
// explicit host call.
package luaruntime
