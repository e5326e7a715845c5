package automation

import (
	"notion-task-automation/internal/model"
	"notion-task-automation/internal/selection"
)

// Statuses carries the status labels the automation loop writes back to the
// board when it promotes or closes tasks.
type Statuses struct {
	InProgress string
	Done       string
}

// CycleResult is the outcome of one selection cycle.
type CycleResult struct {
	CycleID    string           // Unique id carried through logs for this cycle
	Dispatched bool             // Whether a task was handed to the agent
	Task       *model.Task      // The dispatched task, nil when none
	Source     selection.Source // Which partition the task came from
	Message    string           // Human-readable summary
}

// EpicCloseResult is the outcome of a post-completion epic evaluation.
type EpicCloseResult struct {
	EpicID        string // Parent epic id, empty when the task has no parent
	Closed        bool   // Whether the epic was moved to done
	ChildrenDone  int
	ChildrenTotal int
	Message       string
}
