package automation

import (
	"context"
)

type UseCase interface {
	// RunCycle performs one selection cycle: load the board, pick the next
	// task, and dispatch it to the coding agent. At most one dispatch runs at
	// a time; a cycle arriving while one is in flight is skipped, not queued.
	RunCycle(ctx context.Context) (CycleResult, error)

	// HandleTaskCompleted re-evaluates the completed task's parent epic and
	// closes it when every child is done.
	HandleTaskCompleted(ctx context.Context, taskID string) (EpicCloseResult, error)
}
