package profiling

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigEnabled(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   bool
	}{
		{"empty", Config{}, false},
		{"cpu only", Config{CPUProfilePath: "cpu.prof"}, true},
		{"memory only", Config{MemProfilePath: "mem.prof"}, true},
		{"both", Config{CPUProfilePath: "cpu.prof", MemProfilePath: "mem.prof"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	config := Config{
		CPUProfilePath: filepath.Join(dir, "cpu.prof"),
		MemProfilePath: filepath.Join(dir, "mem.prof"),
	}

	s, err := Start(config)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	sum := 0
	for i := 0; i < 100000; i++ {
		sum += i
	}
	_ = sum

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !s.Stopped() {
		t.Error("Stopped() = false after Stop()")
	}

	for _, path := range []string{config.CPUProfilePath, config.MemProfilePath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("profile %s not written: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("profile %s is empty", path)
		}
	}

	if err := s.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestSessionWithoutProfiles(t *testing.T) {
	s, err := Start(Config{})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestStartInvalidPath(t *testing.T) {
	_, err := Start(Config{CPUProfilePath: filepath.Join(t.TempDir(), "missing", "cpu.prof")})
	if err == nil {
		t.Error("Start() should fail for an unwritable path")
	}
}

func TestStopReportsHeapProfileError(t *testing.T) {
	s, err := Start(Config{MemProfilePath: filepath.Join(t.TempDir(), "missing", "mem.prof")})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Stop(); err == nil {
		t.Error("Stop() should report the failed heap profile")
	}
}

func TestWriteHeapProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.prof")
	if err := WriteHeapProfile(path); err != nil {
		t.Fatalf("WriteHeapProfile() error = %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("heap profile not written: %v", err)
	}
}
