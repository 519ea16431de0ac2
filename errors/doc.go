// Package errors provides structured error types for the lua-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the chunk name, source line, and cause
// chain where they are known.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindSyntax).
//		Chunk("init.lua").
//		Line(12).
//		Detail("unexpected symbol near ')'").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Syntax("init.lua", cause)
//	err := errors.File("missing.lua", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
