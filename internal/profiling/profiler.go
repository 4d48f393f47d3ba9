// Package profiling writes pprof CPU and heap profiles for plotdemo and
// watches heap growth while the window is open.
package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// Config names the profile files. An empty path disables that profile.
type Config struct {
	// CPUProfilePath receives the CPU profile when the session stops.
	CPUProfilePath string
	// MemProfilePath receives a heap profile when the session stops.
	MemProfilePath string
}

// Enabled reports whether any profile is configured.
func (c Config) Enabled() bool {
	return c.CPUProfilePath != "" || c.MemProfilePath != ""
}

// Session is a running profiling session.
type Session struct {
	config  Config
	cpuFile *os.File
	mu      sync.Mutex
	stopped bool
}

// Start begins CPU profiling when a CPU profile path is configured. Only
// one CPU profile can run per process.
func Start(config Config) (*Session, error) {
	s := &Session{config: config}
	if config.CPUProfilePath == "" {
		return s, nil
	}

	f, err := os.Create(config.CPUProfilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CPU profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}
	s.cpuFile = f
	return s, nil
}

// Stop ends CPU profiling and writes the heap profile. Calling Stop again
// does nothing.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true

	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := s.cpuFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close CPU profile file: %w", err))
		}
		s.cpuFile = nil
	}
	if s.config.MemProfilePath != "" {
		if err := WriteHeapProfile(s.config.MemProfilePath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Stopped reports whether Stop was called.
func (s *Session) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// WriteHeapProfile collects garbage and writes a heap profile to path.
func WriteHeapProfile(path string) error {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create memory profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write memory profile: %w", err)
	}
	return nil
}
