package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad    Phase = "load"    // chunk acquisition (files, containers)
	PhaseCompile Phase = "compile" // source to function
	PhaseRun     Phase = "run"     // protected execution
	PhaseLib     Phase = "lib"     // library registration
	PhaseGC      Phase = "gc"      // collector control
	PhasePanic   Phase = "panic"   // unprotected failure
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax       Kind = "syntax"
	KindRuntimeFault Kind = "runtime_error"
	KindOutOfMemory  Kind = "out_of_memory"
	KindFile         Kind = "file"
	KindBytecode     Kind = "bytecode"
	KindRegistration Kind = "registration"
	KindClosed       Kind = "closed"
	KindHandler      Kind = "handler"
	KindInvalidInput Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Chunk  string
	Line   int
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Chunk != "" {
		b.WriteString(" at ")
		b.WriteString(e.Chunk)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Chunk sets the chunk name
func (b *Builder) Chunk(name string) *Builder {
	b.err.Chunk = name
	return b
}

// Line sets the source line
func (b *Builder) Line(line int) *Builder {
	b.err.Line = line
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Syntax creates a compile-phase syntax error
func Syntax(chunk string, cause error) *Error {
	return &Error{
		Phase: PhaseCompile,
		Kind:  KindSyntax,
		Chunk: chunk,
		Cause: cause,
	}
}

// File creates a load-phase file access error
func File(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindFile,
		Chunk:  path,
		Detail: fmt.Sprintf("cannot open %s", path),
		Cause:  cause,
	}
}

// Bytecode creates an error for a chunk compiled for a different engine
func Bytecode(chunk string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindBytecode,
		Chunk:  chunk,
		Detail: "binary chunk was compiled for a different engine",
	}
}

// BadContainer creates an error for a corrupt binary chunk container
func BadContainer(chunk string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindBytecode,
		Chunk:  chunk,
		Detail: "malformed binary chunk container",
		Cause:  cause,
	}
}

// OutOfMemory creates an allocation failure error
func OutOfMemory(detail string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindOutOfMemory,
		Detail: detail,
	}
}

// Registration creates a library registration error
func Registration(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseLib,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("open library %q", name),
		Cause:  cause,
	}
}

// Closed creates an error for an operation on a closed VM
func Closed(op string) *Error {
	return &Error{
		Phase:  PhaseRun,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s on closed state", op),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
