// Package main provides plotdemo, a window showing a scatter plot of
// normally distributed points with the histogram of each coordinate, drawn
// through go-chart onto an ebiten window. An optional Lua script draws a
// second plot below it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-plotkit/internal/config"
	"github.com/opd-ai/go-plotkit/internal/profiling"
	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// Version is the current version of plotdemo.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("c", "", "Path to YAML configuration file")
	scriptPath := flag.String("script", "", "Lua plot script drawn below the distribution (overrides script.path)")
	pngPath := flag.String("png", "", "Render one frame to a PNG file and exit")
	version := flag.Bool("v", false, "Print version and exit")
	cpuProfile := flag.String("cpuprofile", "", "Write CPU profile to file")
	memProfile := flag.String("memprofile", "", "Write memory profile to file")
	debug := flag.Bool("debug", false, "Log at debug level and warn about heap growth")
	flag.Parse()

	if *version {
		fmt.Printf("plotdemo version %s\n", Version)
		return 0
	}

	logger := toolkit.DefaultLogger()
	if *debug {
		logger = toolkit.DebugLogger()
	}

	profConfig := profiling.Config{
		CPUProfilePath: *cpuProfile,
		MemProfilePath: *memProfile,
	}
	if profConfig.Enabled() {
		session, err := profiling.Start(profConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := session.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	if *scriptPath != "" {
		cfg.Script.Path = *scriptPath
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating plot: %v\n", err)
		return 1
	}
	defer a.Close()

	if *pngPath != "" {
		if err := a.WritePNG(*pngPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *pngPath, err)
			return 1
		}
		logger.Info("wrote plot", "path", *pngPath)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	win := a.Window()
	win.SetContext(ctx)

	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath, config.WatchOptions{
			OnReload: func(next *config.Config) {
				a.Apply(next)
				win.UpdateData(func(pc *config.PlotConfig) { *pc = next.Plot })
			},
			OnError: func(err error) {
				logger.Warn("configuration reload failed", "error", err)
			},
		})
		if err != nil {
			logger.Warn("configuration hot reload disabled", "error", err)
		} else {
			watcher.Start(ctx)
			defer watcher.Stop()
		}
	}

	if *debug {
		heap := profiling.NewWatch(profiling.DefaultWatchConfig(), logger)
		heap.Start(ctx)
		defer heap.Stop()
	}

	logger.Info("plotdemo starting", "version", Version, "config", *configPath)
	if err := win.Run(); err != nil && !errors.Is(err, toolkit.ErrWindowClosed) {
		fmt.Fprintf(os.Stderr, "Window error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig loads path, or returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	return config.Load(path)
}
