package automation

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"notion-task-automation/internal/agent"
	"notion-task-automation/internal/board"
	"notion-task-automation/internal/model"
	"notion-task-automation/internal/selection"
	pkgLog "notion-task-automation/pkg/log"
)

type usecase struct {
	repo     board.Repository
	selector selection.Service
	runner   agent.Runner
	statuses Statuses
	l        pkgLog.Logger

	// dispatchMu enforces single-flight dispatch: the board must not hand two
	// tasks to the agent at once.
	dispatchMu sync.Mutex
}

// RunCycle performs one selection cycle and dispatches at most one task.
func (uc *usecase) RunCycle(ctx context.Context) (CycleResult, error) {
	cycleID := uuid.NewString()

	if !uc.dispatchMu.TryLock() {
		uc.l.Infof(ctx, "Cycle %s skipped: dispatch already in flight", cycleID)
		return CycleResult{CycleID: cycleID, Message: "dispatch already in flight"}, nil
	}
	defer uc.dispatchMu.Unlock()

	tasks, err := uc.repo.ListTasks(ctx)
	if err != nil {
		return CycleResult{CycleID: cycleID}, fmt.Errorf("failed to list board tasks: %w", err)
	}

	picked := uc.selector.PickNext(tasks)
	if picked.Task == nil {
		uc.l.Infof(ctx, "Cycle %s: no eligible task on board (%d total)", cycleID, len(tasks))
		return CycleResult{CycleID: cycleID, Message: "no eligible task"}, nil
	}

	task := *picked.Task
	uc.l.Infof(ctx, "Cycle %s: selected task %s (%q) from %s", cycleID, task.ID, task.Name, picked.Source)

	// A freshly started task is moved to in-progress before dispatch so a
	// crash between the two leaves the board claiming the work, not losing it.
	if picked.Source == selection.SourceNotStarted {
		if err := uc.repo.UpdateTaskStatus(ctx, task.ID, uc.statuses.InProgress); err != nil {
			return CycleResult{CycleID: cycleID}, fmt.Errorf("failed to move task %s to in progress: %w", task.ID, err)
		}
		task.Status = uc.statuses.InProgress
	}

	if err := uc.runner.RunTask(ctx, task); err != nil {
		return CycleResult{CycleID: cycleID}, fmt.Errorf("agent dispatch failed for task %s: %w", task.ID, err)
	}

	return CycleResult{
		CycleID:    cycleID,
		Dispatched: true,
		Task:       &task,
		Source:     picked.Source,
		Message:    fmt.Sprintf("dispatched task %s", task.ID),
	}, nil
}

// HandleTaskCompleted evaluates the completed task's parent epic.
func (uc *usecase) HandleTaskCompleted(ctx context.Context, taskID string) (EpicCloseResult, error) {
	if taskID == "" {
		return EpicCloseResult{}, board.ErrEmptyTaskID
	}

	tasks, err := uc.repo.ListTasks(ctx)
	if err != nil {
		return EpicCloseResult{}, fmt.Errorf("failed to list board tasks: %w", err)
	}

	completed, ok := findTask(tasks, taskID)
	if !ok {
		return EpicCloseResult{}, fmt.Errorf("completed task %s: %w", taskID, board.ErrTaskNotFound)
	}

	if completed.ParentID == "" {
		return EpicCloseResult{Message: "task has no parent epic"}, nil
	}

	parent, ok := findTask(tasks, completed.ParentID)
	if !ok {
		// Dangling reference: the parent card was deleted or never existed.
		uc.l.Warnf(ctx, "Task %s references missing parent %s", taskID, completed.ParentID)
		return EpicCloseResult{Message: "parent epic not found on board"}, nil
	}

	completion := uc.selector.EpicChildrenDone(parent, tasks)
	result := EpicCloseResult{
		EpicID:        parent.ID,
		ChildrenTotal: len(completion.Children),
	}
	for _, child := range completion.Children {
		if child.Status == uc.statuses.Done {
			result.ChildrenDone++
		}
	}

	if !completion.AllDone {
		result.Message = fmt.Sprintf("epic %s has %d/%d children done", parent.ID, result.ChildrenDone, result.ChildrenTotal)
		uc.l.Infof(ctx, "%s, leaving open", result.Message)
		return result, nil
	}

	if parent.Status == uc.statuses.Done {
		result.Message = fmt.Sprintf("epic %s already closed", parent.ID)
		return result, nil
	}

	if err := uc.repo.UpdateTaskStatus(ctx, parent.ID, uc.statuses.Done); err != nil {
		return result, fmt.Errorf("failed to close epic %s: %w", parent.ID, err)
	}

	result.Closed = true
	result.Message = fmt.Sprintf("closed epic %s (%d children done)", parent.ID, result.ChildrenTotal)
	uc.l.Infof(ctx, "Closed epic %s: all %d children done", parent.ID, result.ChildrenTotal)
	return result, nil
}

func findTask(tasks []model.Task, id string) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
