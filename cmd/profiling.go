package cmd

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// profiler writes CPU, heap and execution-trace profiles around one command.
type profiler struct {
	cpuPath   string
	memPath   string
	tracePath string

	stops []func()
}

// newProfiler returns a profiler for opts. Empty paths disable a profile.
func newProfiler(opts *Options) *profiler {
	return &profiler{
		cpuPath:   opts.CPUProfile,
		memPath:   opts.MemProfile,
		tracePath: opts.Trace,
	}
}

// Start begins CPU profiling and tracing. A failure stops whatever was
// already started.
func (p *profiler) Start() error {
	if p.cpuPath != "" {
		f, err := os.Create(p.cpuPath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			closeQuietly(f, "CPU profile")
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		p.stops = append(p.stops, func() {
			pprof.StopCPUProfile()
			closeQuietly(f, "CPU profile")
		})
	}

	if p.tracePath != "" {
		f, err := os.Create(p.tracePath)
		if err != nil {
			p.Stop()
			return fmt.Errorf("could not create trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			closeQuietly(f, "trace")
			p.Stop()
			return fmt.Errorf("could not start trace: %w", err)
		}
		p.stops = append(p.stops, func() {
			trace.Stop()
			closeQuietly(f, "trace")
		})
	}
	return nil
}

// Stop ends profiling in reverse start order, then writes the heap profile.
func (p *profiler) Stop() {
	for i := len(p.stops) - 1; i >= 0; i-- {
		p.stops[i]()
	}
	p.stops = nil

	if p.memPath == "" {
		return
	}
	f, err := os.Create(p.memPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
		return
	}
	defer closeQuietly(f, "memory profile")
	runtime.GC() // up-to-date statistics
	if err := pprof.WriteHeapProfile(f); err != nil {
		fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
	}
}

func closeQuietly(f *os.File, what string) {
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "could not close %s file: %v\n", what, err)
	}
}
