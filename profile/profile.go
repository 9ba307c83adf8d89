package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiler writes the profiles enabled in its [Config].
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile   *os.File
	traceFile *os.File
	Config
}

// Start begins CPU profiling and tracing if enabled. On error anything
// already started is stopped again.
func (p *Profiler) Start() error {
	if p.MemProfileRate > 0 {
		runtime.MemProfileRate = p.MemProfileRate
	}

	if p.CPUProfile != "" {
		f, err := os.Create(p.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("create CPU profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return errors.Join(fmt.Errorf("start CPU profile: %w", err), f.Close())
		}

		p.cpuFile = f
	}

	if p.Trace != "" {
		f, err := os.Create(p.Trace) //nolint:gosec // Trace path from CLI flag is expected.
		if err != nil {
			return errors.Join(fmt.Errorf("create trace: %w", err), p.stopCPU())
		}

		err = trace.Start(f)
		if err != nil {
			return errors.Join(fmt.Errorf("start trace: %w", err), f.Close(), p.stopCPU())
		}

		p.traceFile = f
	}

	return nil
}

// Stop ends CPU profiling and tracing and writes the snapshot profiles.
// Calling Stop without a successful [Profiler.Start] only writes snapshots.
func (p *Profiler) Stop() error {
	errs := []error{p.stopTrace(), p.stopCPU()}

	for _, snap := range []struct{ name, path string }{
		{"heap", p.HeapProfile},
		{"goroutine", p.GoroutineProfile},
	} {
		if snap.path == "" {
			continue
		}

		errs = append(errs, writeProfile(snap.name, snap.path))
	}

	return errors.Join(errs...)
}

func (p *Profiler) stopCPU() error {
	if p.cpuFile == nil {
		return nil
	}

	pprof.StopCPUProfile()

	err := p.cpuFile.Close()
	p.cpuFile = nil

	if err != nil {
		return fmt.Errorf("close CPU profile: %w", err)
	}

	return nil
}

func (p *Profiler) stopTrace() error {
	if p.traceFile == nil {
		return nil
	}

	trace.Stop()

	err := p.traceFile.Close()
	p.traceFile = nil

	if err != nil {
		return fmt.Errorf("close trace: %w", err)
	}

	return nil
}

func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
