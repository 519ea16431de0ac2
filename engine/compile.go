package engine

import (
	"bytes"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/wippyai/lua-runtime/errors"
)

// Compile turns script input into an invocable function on vm. Input may
// be source text or a binary chunk container; the two are disambiguated
// by signature. The returned function has not been called and carries the
// VM's current global environment until rebound.
func Compile(vm *lua.LState, data []byte, name string) (*lua.LFunction, error) {
	if IsBinaryChunk(data) {
		chunkName, source, err := DecodeChunk(data)
		if err != nil {
			return nil, err
		}
		if chunkName != "" {
			name = chunkName
		}
		data = source
		debugf("compile: unwrapped container %s (%d bytes)", name, len(data))
	} else if isForeignChunk(data) {
		debugf("compile: rejecting foreign bytecode in %s", name)
		return nil, errors.Bytecode(name)
	}

	chunk, err := parse.Parse(bytes.NewReader(data), name)
	if err != nil {
		return nil, err
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, err
	}
	return vm.NewFunctionFromProto(proto), nil
}
