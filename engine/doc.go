// Package engine provides the low-level integration with the embedded
// Lua virtual machine.
//
// This package wraps the pure-Go Lua 5.1 engine to provide the pieces the
// high-level runtime package composes: a compilation front-end that
// accepts both source text and portable binary chunk containers, scoped
// stack guards, protected-call status classification, and the panic trap
// for unprotected failures.
//
// # Stack Discipline
//
// The VM has a single evaluation stack shared by every operation in a
// session. Every caller that pushes to it takes a StackGuard first:
//
//	guard := engine.SaveStack(vm)
//	defer guard.Restore()
//
// Restore runs on every exit path, so expected failures and handler
// invocations leave the stack at the exact depth observed on entry.
//
// # Chunk Formats
//
// Compile sniffs a short signature at the start of its input:
//
//	\x1bGLC  portable binary chunk container (EncodeChunk/DecodeChunk)
//	\x1bLua  bytecode of the reference C engine: rejected with a
//	         compile-phase error, since this VM cannot execute it
//	other    Lua source text
//
// Callers never choose a format explicitly.
//
// # Status Codes
//
// Protected entry points report failures as error values; StatusOf
// classifies them into the engine's status numbering (runtime error,
// syntax error, out of memory, file error), and MessageOf recovers the
// script-visible message for handler delivery.
//
// Most users should use the runtime package for a simpler API.
// This package is for advanced use cases requiring direct control.
package engine
