package tui

// TaskID names one step of a fetch shown in the progress view.
type TaskID int

const (
	TaskProfile      TaskID = iota // profile lookup
	TaskRepositories               // repository list, or resolving a single repository
	TaskSections                   // repository sections fetched in parallel
	TaskRender                     // building the output
)

// TaskStatus is where a step is in its lifecycle.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusRunning
	StatusComplete
	StatusError
	StatusSkipped
)

// Event is a message fed to the progress view.
type Event interface {
	isEvent()
}

// TaskEvent moves a step to a new status.
type TaskEvent struct {
	Task     TaskID
	Status   TaskStatus
	Message  string
	Count    int     // repositories, sections, ...
	Progress float64 // 0..1, drawn as a bar while running
	Error    error   // set with StatusError
}

// DoneEvent ends the progress view.
type DoneEvent struct{}

func (TaskEvent) isEvent() {}
func (DoneEvent) isEvent() {}
