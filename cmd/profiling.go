package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spiffcs/ghlens/internal/log"
)

// Profiler writes the optional CPU, heap and execution-trace profiles
// requested with --cpuprofile, --memprofile and --trace.
type Profiler struct {
	cpuProfile string
	memProfile string
	tracePath  string

	open []*os.File
	stop []func()
}

// NewProfiler creates a profiler. Empty paths disable that profile.
func NewProfiler(cpuProfile, memProfile, tracePath string) *Profiler {
	return &Profiler{
		cpuProfile: cpuProfile,
		memProfile: memProfile,
		tracePath:  tracePath,
	}
}

// Start begins CPU profiling and tracing. On failure everything already
// started is stopped again.
func (p *Profiler) Start() error {
	if p.cpuProfile != "" {
		if err := p.begin(p.cpuProfile, pprof.StartCPUProfile, pprof.StopCPUProfile); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
	}
	if p.tracePath != "" {
		if err := p.begin(p.tracePath, trace.Start, trace.Stop); err != nil {
			p.halt()
			return fmt.Errorf("could not start trace: %w", err)
		}
	}
	return nil
}

func (p *Profiler) begin(path string, start func(w io.Writer) error, stop func()) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := start(f); err != nil {
		_ = f.Close()
		return err
	}
	p.open = append(p.open, f)
	p.stop = append(p.stop, stop)
	return nil
}

// halt stops running profiles in reverse start order and closes their files.
func (p *Profiler) halt() error {
	for i := len(p.stop) - 1; i >= 0; i-- {
		p.stop[i]()
	}
	var errs []error
	for _, f := range p.open {
		errs = append(errs, f.Close())
	}
	p.open, p.stop = nil, nil
	return errors.Join(errs...)
}

// Stop ends profiling and writes the heap profile if one was requested.
// Failures are logged; profiling never fails a command after it ran.
func (p *Profiler) Stop() {
	if err := p.halt(); err != nil {
		log.Warn("could not close profile", "error", err)
	}
	if p.memProfile == "" {
		return
	}
	if err := writeHeapProfile(p.memProfile); err != nil {
		log.Warn("could not write memory profile", "path", p.memProfile, "error", err)
	}
}

func writeHeapProfile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	runtime.GC() // Get up-to-date statistics
	return pprof.WriteHeapProfile(f)
}
