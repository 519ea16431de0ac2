package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wippyai/lua-runtime/engine"
	"github.com/wippyai/lua-runtime/runtime"
)

func main() {
	var (
		source      = flag.String("e", "", "Execute source string instead of a file")
		compileOut  = flag.String("compile", "", "Compile the script into a portable chunk at the given path and exit")
		isolate     = flag.Bool("isolate", false, "Run the script under a fresh environment table")
		interactive = flag.Bool("i", false, "Interactive REPL with TUI")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *source == "" && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: run <script.lua> [-isolate]")
		fmt.Fprintln(os.Stderr, "       run -e 'source'")
		fmt.Fprintln(os.Stderr, "       run <script.lua> -compile out.glc")
		fmt.Fprintln(os.Stderr, "       run -i [script.lua]  (interactive mode)")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *source, *compileOut, *isolate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(script, source, compileOut string, isolate bool) error {
	if compileOut != "" {
		return compile(script, compileOut)
	}

	state := runtime.New()
	defer state.Close()

	// Script failures are routed to the default handler, which prints to
	// stderr; the boolean only decides the exit code.
	ok := false
	switch {
	case source != "":
		ok = state.RunString(source)
	case isolate:
		env := state.NewTable()
		ok = state.RunFile(script, env)
	default:
		ok = state.RunFile(script)
	}
	if !ok {
		return fmt.Errorf("script failed")
	}
	return nil
}

// compile wraps a script into the portable chunk container so it can be
// shipped and executed without its source sitting in a .lua file.
func compile(script, out string) error {
	src, err := os.ReadFile(script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	// Reject scripts that do not parse before boxing them.
	state := runtime.New(runtime.WithRouter(runtime.NewRouter()))
	defer state.Close()
	if !state.LoadString(string(src)).Valid() {
		return fmt.Errorf("%s does not compile", script)
	}

	data, err := engine.EncodeChunk(script, src)
	if err != nil {
		return fmt.Errorf("encode chunk: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write chunk: %w", err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
	return nil
}
