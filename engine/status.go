package engine

import (
	stderrors "errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/wippyai/lua-runtime/errors"
)

// Status is the result code of a protected VM entry point. The zero value
// means success; everything else identifies the failure class the engine
// reported.
type Status int

const (
	StatusOK Status = iota
	StatusYield
	StatusErrRun
	StatusErrSyntax
	StatusErrMem
	StatusErrErr
	StatusErrFile
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusYield:
		return "yield"
	case StatusErrRun:
		return "runtime error"
	case StatusErrSyntax:
		return "syntax error"
	case StatusErrMem:
		return "out of memory"
	case StatusErrErr:
		return "error in error handling"
	case StatusErrFile:
		return "file error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// StatusOf classifies an error returned by the VM's protected entry points
// or by this package's own load pipeline.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}

	var api *lua.ApiError
	if stderrors.As(err, &api) {
		switch api.Type {
		case lua.ApiErrorSyntax:
			return StatusErrSyntax
		case lua.ApiErrorFile:
			return StatusErrFile
		case lua.ApiErrorError:
			return StatusErrErr
		default:
			return StatusErrRun
		}
	}

	var structured *errors.Error
	if stderrors.As(err, &structured) {
		switch structured.Kind {
		case errors.KindSyntax, errors.KindBytecode:
			return StatusErrSyntax
		case errors.KindFile:
			return StatusErrFile
		case errors.KindOutOfMemory:
			return StatusErrMem
		}
		return StatusErrRun
	}

	var compileErr *lua.CompileError
	if stderrors.As(err, &compileErr) {
		return StatusErrSyntax
	}
	var parseErr *parse.Error
	if stderrors.As(err, &parseErr) {
		return StatusErrSyntax
	}

	return StatusErrRun
}

// MessageOf extracts the script-visible error message. For failures raised
// inside the VM this is the error value the chunk produced; for host-side
// failures it is the error text.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var api *lua.ApiError
	if stderrors.As(err, &api) && api.Object != lua.LNil {
		return api.Object.String()
	}
	return err.Error()
}
