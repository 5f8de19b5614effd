package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spiffcs/ghlens/config"
	"github.com/spiffcs/ghlens/internal/api"
	"github.com/spiffcs/ghlens/internal/cache"
	"github.com/spiffcs/ghlens/internal/log"
	"github.com/spiffcs/ghlens/internal/output"
	"github.com/spiffcs/ghlens/internal/service"
	"github.com/spiffcs/ghlens/internal/tui"
)

// session bundles the state threaded through a data command: the TUI
// progress display, the loaded config and the backend client.
type session struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan error

	cfg    *config.Config
	client *api.Client
	format output.Format
}

// setupSession starts profiling, initializes logging, loads config and
// builds the backend client. The returned cleanup stops profiling.
func setupSession(opts *Options) (*session, func(), error) {
	profiler := NewProfiler(opts.CPUProfile, opts.MemProfile, opts.Trace)
	if err := profiler.Start(); err != nil {
		return nil, nil, err
	}

	rt, err := newSession(opts)
	if err != nil {
		profiler.Stop()
		return nil, nil, err
	}
	return rt, profiler.Stop, nil
}

func newSession(opts *Options) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	formatName := opts.Format
	if formatName == "" {
		formatName = cfg.DefaultFormat
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	// The progress display only makes sense for the table view; json and
	// markdown are usually piped.
	useTUI := shouldUseTUI(opts) && format == output.FormatTable

	// Suppress logs during TUI to avoid interleaving with the display
	if useTUI {
		log.Initialize(opts.Verbosity, io.Discard)
	} else {
		log.Initialize(opts.Verbosity, os.Stderr)
	}

	client, err := newClient(cfg, opts.APIURL)
	if err != nil {
		return nil, err
	}

	return &session{
		useTUI: useTUI,
		cfg:    cfg,
		client: client,
		format: format,
	}, nil
}

// newClient builds the backend client from config and the --api-url flag.
func newClient(cfg *config.Config, flagURL string) (*api.Client, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	baseURL := cfg.ResolveAPIURL(flagURL)
	log.Debug("using backend", "url", baseURL, "timeout", timeout)
	return api.NewClient(baseURL, api.WithTimeout(timeout))
}

// newService wires the backend client to the analysis cache. A cache that
// cannot be opened disables caching rather than failing the command.
func (rt *session) newService() *service.Service {
	if !rt.cfg.AnalysisCacheEnabled() {
		return service.New(rt.client, nil)
	}
	ttl, err := rt.cfg.CacheTTL()
	if err != nil {
		log.Warn("invalid analysis cache ttl", "error", err)
		return service.New(rt.client, nil)
	}
	c, err := cache.NewCache(ttl)
	if err != nil {
		log.Warn("failed to initialize cache", "error", err)
		return service.New(rt.client, nil)
	}
	return service.New(rt.client, c)
}

// startTUI initializes and starts the TUI goroutine if TUI mode is enabled.
func (rt *session) startTUI(opts ...tui.ModelOption) {
	if !rt.useTUI {
		return
	}
	rt.events = make(chan tui.Event, 100)
	rt.tuiDone = make(chan error, 1)
	go func() {
		rt.tuiDone <- tui.Run(rt.events, opts...)
	}()
}

// close closes the event channel and waits for the TUI to finish.
func (rt *session) close() {
	if rt.events == nil {
		return
	}
	close(rt.events)
	if rt.tuiDone != nil {
		if err := <-rt.tuiDone; err != nil {
			log.Debug("tui exited with error", "error", err)
		}
	}
	rt.events = nil
}

// sendEvent sends a task event to the TUI channel if it exists.
func (rt *session) sendEvent(task tui.TaskID, status tui.TaskStatus, opts ...tui.TaskEventOption) {
	if rt.events == nil {
		return
	}
	tui.SendTaskEvent(rt.events, task, status, opts...)
}

// step reports a blocking step both to the TUI and, without it, to the log.
func (rt *session) step(task tui.TaskID, msg string, args ...any) {
	rt.sendEvent(task, tui.StatusRunning)
	if !rt.useTUI {
		log.Info(msg, args...)
	}
}

// fail marks task as failed and shuts the TUI down so the error prints
// below it.
func (rt *session) fail(task tui.TaskID, err error) {
	rt.sendEvent(task, tui.StatusError, tui.WithError(err))
	rt.close()
}

// formatter returns the formatter for the selected output format.
func (rt *session) formatter() output.Formatter {
	return output.NewFormatter(rt.format)
}
