package selection

import (
	"notion-task-automation/internal/model"
)

// Source identifies which partition the selected task came from.
type Source string

const (
	SourceInProgress Source = "in_progress"
	SourceNotStarted Source = "not_started"
)

// OrderCreated selects the candidate with the earliest creation time.
// Currently the only ordering policy.
const OrderCreated = "created"

// Config carries the board's user-customizable labels. Labels are compared
// case-sensitively; validation happens at config load, not here.
type Config struct {
	NotStarted string // Status label for queued tasks
	InProgress string // Status label for tasks being worked
	Done       string // Status label for finished tasks
	EpicType   string // Type label marking a task as an epic
	Order      string // Ordering policy within a partition
}

// Result is the selector's output. Task is nil when no eligible task exists.
type Result struct {
	Task   *model.Task
	Source Source
}

// EpicCompletion reports whether all of an epic's children are done.
// Children always holds the full set of direct children found, so callers
// can report counts without a second scan.
type EpicCompletion struct {
	AllDone  bool
	Children []model.Task
}
