package engine

import (
	stderrors "errors"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/lua-runtime/errors"
)

func TestCompile_SourceText(t *testing.T) {
	vm := lua.NewState()
	defer vm.Close()

	fn, err := Compile(vm, []byte(`return 1 + 1`), "test")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	vm.Push(fn)
	if err := vm.PCall(0, 1, nil); err != nil {
		t.Fatalf("call: %v", err)
	}
	if got := vm.Get(-1); got != lua.LNumber(2) {
		t.Errorf("result = %v, want 2", got)
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	vm := lua.NewState()
	defer vm.Close()

	_, err := Compile(vm, []byte(`return ===`), "broken")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if got := StatusOf(err); got != StatusErrSyntax {
		t.Errorf("status = %v, want syntax error", got)
	}
}

func TestCompile_Container(t *testing.T) {
	vm := lua.NewState()
	defer vm.Close()

	data, err := EncodeChunk("boxed", []byte(`return 40 + 2`))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	fn, err := Compile(vm, data, "ignored")
	if err != nil {
		t.Fatalf("compile container: %v", err)
	}

	vm.Push(fn)
	if err := vm.PCall(0, 1, nil); err != nil {
		t.Fatalf("call: %v", err)
	}
	if got := vm.Get(-1); got != lua.LNumber(42) {
		t.Errorf("result = %v, want 42", got)
	}
}

func TestCompile_ForeignBytecode(t *testing.T) {
	vm := lua.NewState()
	defer vm.Close()

	_, err := Compile(vm, []byte("\x1bLua\x51garbage"), "blob")
	if err == nil {
		t.Fatal("expected rejection of foreign bytecode")
	}
	var structured *errors.Error
	if !stderrors.As(err, &structured) || structured.Kind != errors.KindBytecode {
		t.Errorf("err = %v, want bytecode kind", err)
	}
	if got := StatusOf(err); got != StatusErrSyntax {
		t.Errorf("status = %v, want syntax error", got)
	}
}
