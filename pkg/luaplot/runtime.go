package luaplot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// RuntimeConfig contains configuration options for the Lua runtime.
type RuntimeConfig struct {
	// CPULimit is the CPU instruction limit for one Lua call.
	// 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes that one Lua call can allocate.
	// 0 means unlimited.
	MemoryLimit uint64
	// Stdout is the writer for Lua print output.
	// If nil, output is only captured.
	Stdout io.Writer
}

// DefaultRuntimeConfig returns a RuntimeConfig with sensible default values.
// CPU limit: 10,000,000 instructions
// Memory limit: 50 MB
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024, // 50 MB
		Stdout:      os.Stdout,
	}
}

// Runtime wraps a Golua runtime with resource limits and captured output.
// It is safe for concurrent use; Lua code never runs concurrently.
type Runtime struct {
	config  RuntimeConfig
	runtime *rt.Runtime
	output  *bytes.Buffer
	cleanup func()
	mu      sync.Mutex
}

// NewRuntime creates a runtime with the Lua standard libraries loaded.
func NewRuntime(config RuntimeConfig) *Runtime {
	output := &bytes.Buffer{}
	var stdout io.Writer = output
	if config.Stdout != nil {
		stdout = io.MultiWriter(config.Stdout, output)
	}

	r := rt.New(stdout)
	cleanup := lib.LoadAll(r)

	return &Runtime{
		config:  config,
		runtime: r,
		output:  output,
		cleanup: cleanup,
	}
}

// limits returns the resource limits applied to each call.
func (lr *Runtime) limits() rt.RuntimeContextDef {
	return rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    lr.config.CPULimit,
			Memory: lr.config.MemoryLimit,
		},
	}
}

// Exec compiles a chunk and runs it within the resource limits. Function
// definitions in the chunk become globals.
func (lr *Runtime) Exec(name string, code []byte) error {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	closure, err := lr.runtime.CompileAndLoadLuaChunk(
		name,
		code,
		rt.TableValue(lr.runtime.GlobalEnv()),
	)
	if err != nil {
		return fmt.Errorf("failed to load Lua chunk %s: %w", name, err)
	}

	lr.runtime.PushContext(lr.limits())
	defer lr.runtime.PopContext()

	if _, err := rt.Call1(lr.runtime.MainThread(), rt.FunctionValue(closure)); err != nil {
		return fmt.Errorf("Lua execution error in %s: %w", name, err)
	}
	return nil
}

// HasFunction reports whether the global name holds a function.
func (lr *Runtime) HasFunction(name string) bool {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.runtime.GlobalEnv().Get(rt.StringValue(name)).Type() == rt.FunctionType
}

// Call calls the global function name and returns its first nRes results.
// Missing results are nil.
func (lr *Runtime) Call(name string, nRes int, args ...rt.Value) ([]rt.Value, error) {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	fn := lr.runtime.GlobalEnv().Get(rt.StringValue(name))
	if fn == rt.NilValue {
		return nil, fmt.Errorf("function %s not found", name)
	}

	lr.runtime.PushContext(lr.limits())
	defer lr.runtime.PopContext()

	term := rt.NewTerminationWith(nil, nRes, false)
	if err := rt.Call(lr.runtime.MainThread(), fn, args, term); err != nil {
		return nil, fmt.Errorf("failed to call function %s: %w", name, err)
	}
	results := make([]rt.Value, nRes)
	for i := range results {
		results[i] = term.Get(i)
	}
	return results, nil
}

// SetGoFunction registers a Go function in the Lua global environment.
// The function is declared as memory-safe and CPU-safe for use with resource limits.
func (lr *Runtime) SetGoFunction(name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	goFunc := rt.NewGoFunction(fn, name, nArgs, hasVarArgs)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	lr.runtime.GlobalEnv().Set(rt.StringValue(name), rt.FunctionValue(goFunc))
}

// SetGlobal sets a global variable in the Lua environment.
func (lr *Runtime) SetGlobal(name string, value rt.Value) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.runtime.GlobalEnv().Set(rt.StringValue(name), value)
}

// GetGlobal retrieves a global variable from the Lua environment.
func (lr *Runtime) GetGlobal(name string) rt.Value {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.runtime.GlobalEnv().Get(rt.StringValue(name))
}

// Output returns the captured output from Lua print statements.
func (lr *Runtime) Output() string {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.output.String()
}

// Close releases resources associated with the runtime.
// The runtime should not be used after calling Close.
func (lr *Runtime) Close() error {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	if lr.cleanup != nil {
		lr.cleanup()
		lr.cleanup = nil
	}
	return nil
}
