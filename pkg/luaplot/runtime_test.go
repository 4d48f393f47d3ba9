package luaplot

import (
	"bytes"
	"os"
	"strings"
	"testing"

	rt "github.com/arnodel/golua/runtime"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	config := DefaultRuntimeConfig()

	if config.CPULimit != 10_000_000 {
		t.Errorf("expected CPULimit 10000000, got %d", config.CPULimit)
	}
	if config.MemoryLimit != 50*1024*1024 {
		t.Errorf("expected MemoryLimit %d, got %d", 50*1024*1024, config.MemoryLimit)
	}
	if config.Stdout != os.Stdout {
		t.Error("expected Stdout to be os.Stdout")
	}
}

func TestRuntimeOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRuntime(RuntimeConfig{CPULimit: 1_000_000, MemoryLimit: 10 * 1024 * 1024, Stdout: buf})
	defer r.Close()

	if err := r.Exec("test", []byte(`print("hello from lua")`)); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if buf.String() != "hello from lua\n" {
		t.Errorf("stdout = %q", buf.String())
	}
	if r.Output() != "hello from lua\n" {
		t.Errorf("Output() = %q", r.Output())
	}
}

func TestRuntimeCall(t *testing.T) {
	r := NewRuntime(RuntimeConfig{})
	defer r.Close()

	if err := r.Exec("test", []byte(`function pair(a) return a * 2, a + 1 end`)); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if !r.HasFunction("pair") || r.HasFunction("missing") {
		t.Error("HasFunction() reports the wrong functions")
	}

	res, err := r.Call("pair", 3, rt.IntValue(5))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(res) != 3 {
		t.Fatalf("results = %d, want 3", len(res))
	}
	if v, ok := res[0].TryInt(); !ok || v != 10 {
		t.Errorf("first result = %v", res[0])
	}
	if v, ok := res[1].TryInt(); !ok || v != 6 {
		t.Errorf("second result = %v", res[1])
	}
	if res[2] != rt.NilValue {
		t.Errorf("missing result = %v, want nil", res[2])
	}

	if _, err := r.Call("missing", 0); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Call(missing) error = %v", err)
	}
}

func TestRuntimeGoFunction(t *testing.T) {
	r := NewRuntime(RuntimeConfig{})
	defer r.Close()

	r.SetGoFunction("double", func(th *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		f, err := getFloatArg(getAllArgs(c), 0)
		if err != nil {
			return nil, err
		}
		return c.PushingNext1(th.Runtime, rt.FloatValue(2*f)), nil
	}, 1, false)
	r.SetGlobal("base", rt.IntValue(4))

	if err := r.Exec("test", []byte(`result = double(base)`)); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if v, ok := r.GetGlobal("result").TryFloat(); !ok || v != 8 {
		t.Errorf("result = %v, want 8", r.GetGlobal("result"))
	}
}
