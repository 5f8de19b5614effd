package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the inline progress view shown while a command fetches from the
// backend. It consumes Events until the channel closes or a DoneEvent arrives.
type Model struct {
	tasks    []Task
	title    string
	spinner  spinner.Model
	progress progress.Model
	events   <-chan Event
	done     bool
	width    int
}

// doneMsg signals that the event channel was closed.
type doneMsg struct{}

// ModelOption customizes a Model.
type ModelOption func(*Model)

// WithTasks sets the tasks to display in the TUI.
func WithTasks(tasks []Task) ModelOption {
	return func(m *Model) { m.tasks = tasks }
}

// WithTitle sets a heading shown above the tasks.
func WithTitle(title string) ModelOption {
	return func(m *Model) { m.title = title }
}

// DashboardTasks returns the task list for the profile command.
func DashboardTasks() []Task {
	return []Task{
		NewTask(TaskProfile, "Fetching profile"),
		NewTask(TaskRepositories, "Fetching repositories"),
		NewTask(TaskRender, "Preparing output"),
	}
}

// RepositoryTasks returns the task list for the repo command.
func RepositoryTasks() []Task {
	return []Task{
		NewTask(TaskRepositories, "Resolving repository"),
		NewTask(TaskSections, "Fetching details and analysis"),
		NewTask(TaskRender, "Preparing output"),
	}
}

// NewModel returns a progress view over events. Without WithTasks it shows
// DashboardTasks.
func NewModel(events <-chan Event, opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	p := progress.New(
		progress.WithScaledGradient("#0e4429", "#39d353"),
		progress.WithWidth(25),
		progress.WithoutPercentage(),
	)

	m := Model{
		tasks:    DashboardTasks(),
		spinner:  s,
		progress: p,
		events:   events,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Init starts the spinner and the event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case TaskEvent:
		var cmd tea.Cmd
		m, cmd = m.updateTask(msg)
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case DoneEvent, doneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// updateTask applies e to the matching task. A progress change also
// animates the shared bar.
func (m Model) updateTask(e TaskEvent) (Model, tea.Cmd) {
	for i := range m.tasks {
		if m.tasks[i].ID == e.Task {
			m.tasks[i].apply(e)
			if e.Progress > 0 {
				return m, m.progress.SetPercent(e.Progress)
			}
			break
		}
	}
	return m, nil
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString("  " + titleStyle.Render(m.title) + "\n")
	}
	for _, task := range m.tasks {
		b.WriteString(task.View(m.spinner.View(), m.progress))
		b.WriteByte('\n')
	}

	if !m.done {
		b.WriteString(footerStyle.Render("  Press Ctrl+C to cancel"))
	}
	b.WriteByte('\n')

	return b.String()
}

// waitForEvent reads one Event. A closed channel becomes doneMsg.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return event
	}
}
