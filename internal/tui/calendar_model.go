package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spiffcs/ghlens/internal/calendar"
	"github.com/spiffcs/ghlens/internal/format"
	"github.com/spiffcs/ghlens/internal/output"
)

// calendarLoadedMsg carries the outcome of a calendar request back into the
// update loop.
type calendarLoadedMsg struct {
	result calendar.Result
}

// CalendarModel is an interactive contribution calendar. Switching to a year
// already seen is served from the loader's cache without a request.
type CalendarModel struct {
	ctx     context.Context
	view    *calendar.View
	loader  *calendar.Loader
	deriver *calendar.Deriver
	spinner spinner.Model
	colored bool
	width   int

	initial    calendar.Request
	hasInitial bool
}

// CalendarOption configures a CalendarModel.
type CalendarOption func(*CalendarModel)

// WithColor toggles colored heatmap cells.
func WithColor(colored bool) CalendarOption {
	return func(m *CalendarModel) {
		m.colored = colored
	}
}

// NewCalendarModel creates a calendar model that starts on year. The view
// shares the loader's cache.
func NewCalendarModel(ctx context.Context, loader *calendar.Loader, username string, year, currentYear int, opts ...CalendarOption) CalendarModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	view := calendar.NewView(username, loader.Cache(), currentYear)
	req, ok := view.Select(year)

	m := CalendarModel{
		ctx:        ctx,
		view:       view,
		loader:     loader,
		deriver:    calendar.NewDeriver(),
		spinner:    s,
		colored:    true,
		initial:    req,
		hasInitial: ok,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init issues the first request unless the starting year is cached.
func (m CalendarModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.hasInitial {
		cmds = append(cmds, m.load(m.initial))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case calendarLoadedMsg:
		m.view.Resolve(msg.result)
		return m, nil
	}
	return m, nil
}

func (m CalendarModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		if year, ok := m.view.Older(); ok {
			return m, m.selectYear(year)
		}
	case "right", "l":
		if year, ok := m.view.Newer(); ok {
			return m, m.selectYear(year)
		}
	case "r":
		if m.view.Err() != nil {
			return m, m.selectYear(m.view.Year())
		}
	}
	return m, nil
}

func (m CalendarModel) selectYear(year int) tea.Cmd {
	req, ok := m.view.Select(year)
	if !ok {
		return nil
	}
	return m.load(req)
}

// load runs the request through the loader. The loader caches successful
// responses, so a response for a year the user has left is kept for later.
func (m CalendarModel) load(req calendar.Request) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		data, _, err := loader.Load(ctx, req.Key.Username, req.Key.Year)
		return calendarLoadedMsg{result: calendar.Result{Request: req, Data: data, Err: err}}
	}
}

// View renders the model.
func (m CalendarModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.view.Username()) + "  " + m.yearBar() + "\n\n")

	switch {
	case m.view.Loading():
		fmt.Fprintf(&b, "%s Loading %d contributions...\n", spinnerStyle.Render(m.spinner.View()), m.view.Year())
	case m.view.Err() != nil:
		b.WriteString(errorStyle.Render("Failed to load contributions: "+m.view.Err().Error()) + "\n")
		b.WriteString(messageStyle.Render("Press r to retry") + "\n")
	case m.view.Data() != nil:
		b.WriteString(calendarBoxStyle.Render(strings.TrimRight(m.heatmap(), "\n")) + "\n")
	}

	b.WriteString(footerStyle.Render("←/h older • →/l newer • r retry • q quit"))
	b.WriteByte('\n')
	return b.String()
}

func (m CalendarModel) heatmap() string {
	d := m.deriver.Derive(m.view.Data())
	s := output.RenderHeatmap(d, m.view.Year(), m.colored)
	if c, ok := d.Busiest(); ok {
		s += messageStyle.Render(fmt.Sprintf("Busiest day: %s (%s)",
			c.FormatDate(), format.Plural(c.Count, "contribution", "contributions")))
	}
	return s
}

// yearBar lists the selectable years oldest to newest with the selection
// highlighted.
func (m CalendarModel) yearBar() string {
	years := m.view.Years()
	if len(years) == 0 {
		return yearStyle.Render(strconv.Itoa(m.view.Year()))
	}
	parts := make([]string, 0, len(years))
	for i := len(years) - 1; i >= 0; i-- {
		y := strconv.Itoa(years[i])
		if years[i] == m.view.Year() {
			parts = append(parts, yearStyle.Render(y))
		} else {
			parts = append(parts, yearDimStyle.Render(y))
		}
	}
	return strings.Join(parts, " ")
}
