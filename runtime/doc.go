// Package runtime provides the high-level API for embedding the Lua VM.
//
// # Quick Start
//
//	state := runtime.New()
//	defer state.Close()
//
//	if ok := state.RunString(`print("hello")`); !ok {
//	    // the failure was already delivered to the error handler
//	}
//
// # Construction Modes
//
// A state is built in exactly one of five ways:
//
//	New()                                  fresh VM, built-in allocator, full stdlib
//	New(WithAllocator(a))                  fresh VM, custom allocator, full stdlib
//	New(WithLibraries(libs...))            fresh VM, explicit library list
//	New(WithAllocator(a), WithLibraries()) fresh VM, custom allocator, explicit list
//	Adopt(vm)                              wrap an externally-owned VM; never closed here
//
// Every fresh VM gets a panic trap: an error raised outside any protected
// call is written to the diagnostic stream and the process aborts, since
// the VM is no longer trustworthy. Adopt applies the trap and the default
// error handler only if absent.
//
// # Error Routing
//
// Recoverable failures (compile errors, runtime errors, out-of-memory
// inside a protected region) never abort the process. Each VM identity
// has at most one Handler, kept in a Router; operations deliver the
// status code and message there and then return false or an invalid
// unit. The default handler prints the message, newline-terminated, to
// standard error. Swap it at any time:
//
//	state.SetHandler(func(status engine.Status, msg string) {
//	    log.Printf("script failed (%s): %s", status, msg)
//	})
//
// # Namespace Isolation
//
// Run operations accept an optional environment table substituted as the
// chunk's visible global namespace. The true global table is untouched:
//
//	env := state.NewTable()
//	state.RunString(`x = 10`, env)        // writes env.x
//	state.GetGlobal("x")                  // still nil
//
// # Stack Discipline
//
// Every public operation leaves the VM's evaluation stack at the exact
// depth observed on entry, on success and on every failure path.
//
// # Thread Safety
//
// A State is driven by one goroutine at a time; wrap access in a mutex
// to share one between goroutines. Cooperative threads created with
// NewThread have their own stacks but still belong to the parent VM.
package runtime
