package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spiffcs/ghlens/internal/calendar"
	"golang.org/x/term"
)

// ciEnv lists variables whose presence means nobody is watching the terminal.
var ciEnv = []string{"CI", "GITHUB_ACTIONS", "JENKINS_URL", "TRAVIS", "CIRCLECI", "GITLAB_CI", "BUILDKITE"}

// Run renders the progress view inline and blocks until the event channel
// closes or a DoneEvent arrives.
func Run(events <-chan Event, opts ...ModelOption) error {
	_, err := tea.NewProgram(NewModel(events, opts...)).Run()
	return err
}

// RunCalendar opens the interactive calendar on the alternate screen and
// blocks until the user quits or ctx is canceled.
func RunCalendar(ctx context.Context, loader *calendar.Loader, username string, year, currentYear int, opts ...CalendarOption) error {
	m := NewCalendarModel(ctx, loader, username, year, currentYear, opts...)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// ShouldUseTUI reports whether stdout is an interactive terminal outside CI.
func ShouldUseTUI() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	for _, v := range ciEnv {
		if os.Getenv(v) != "" {
			return false
		}
	}
	return true
}

// SendEvent delivers e without blocking. Events are dropped when the channel
// is full or nil.
func SendEvent(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- e:
	default:
	}
}

// TaskEventOption customizes a TaskEvent built by SendTaskEvent.
type TaskEventOption func(*TaskEvent)

// SendTaskEvent builds a TaskEvent for task and sends it with SendEvent.
func SendTaskEvent(ch chan<- Event, task TaskID, status TaskStatus, opts ...TaskEventOption) {
	e := TaskEvent{Task: task, Status: status}
	for _, opt := range opts {
		opt(&e)
	}
	SendEvent(ch, e)
}

// WithMessage sets the status text shown next to the task.
func WithMessage(msg string) TaskEventOption {
	return func(e *TaskEvent) { e.Message = msg }
}

// WithCount sets the item count shown once the task completes.
func WithCount(count int) TaskEventOption {
	return func(e *TaskEvent) { e.Count = count }
}

// WithProgress sets the fraction of the task done, between 0 and 1.
func WithProgress(progress float64) TaskEventOption {
	return func(e *TaskEvent) { e.Progress = progress }
}

// WithError attaches the failure shown for StatusError.
func WithError(err error) TaskEventOption {
	return func(e *TaskEvent) { e.Error = err }
}
