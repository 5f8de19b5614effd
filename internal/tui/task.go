package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

// Task is one row of the progress view.
type Task struct {
	ID       TaskID
	Name     string
	Status   TaskStatus
	Message  string
	Count    int
	Progress float64
	Error    error
}

// NewTask returns a pending task.
func NewTask(id TaskID, name string) Task {
	return Task{ID: id, Name: name, Status: StatusPending}
}

// apply folds e into t. Zero fields in e leave the previous value in place.
func (t *Task) apply(e TaskEvent) {
	t.Status = e.Status
	if e.Message != "" {
		t.Message = e.Message
	}
	if e.Count > 0 {
		t.Count = e.Count
	}
	if e.Progress > 0 {
		t.Progress = e.Progress
	}
	if e.Error != nil {
		t.Error = e.Error
	}
}

// View renders the task on one line: icon, name, then either a progress bar,
// the status message or the item count, and finally any error.
func (t Task) View(spinnerFrame string, bar progress.Model) string {
	nameStyle := taskNameStyle
	if t.Status == StatusPending || t.Status == StatusSkipped {
		nameStyle = taskDimStyle
	}
	line := "  " + StatusIcon(t.Status, spinnerFrame) + " " + nameStyle.Render(t.Name)

	var detail string
	switch {
	case t.Status == StatusRunning && t.Progress > 0:
		line += fmt.Sprintf(" %s %d%%", bar.ViewAs(t.Progress), int(t.Progress*100))
		if t.Message != "" {
			detail = "(" + t.Message + ")"
		}
	case t.Message != "":
		detail = t.Message
	case t.Count > 0:
		detail = fmt.Sprintf("(%d)", t.Count)
	}
	if detail != "" {
		line += " " + messageStyle.Render(detail)
	}
	if t.Error != nil {
		line += " " + errorStyle.Render(t.Error.Error())
	}
	return line
}
