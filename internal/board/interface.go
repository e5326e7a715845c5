package board

import (
	"context"

	"notion-task-automation/internal/model"
)

// Repository is the interface for board data access. Concrete backends
// (Notion database, markdown directory) live outside this module; automation
// and webhook layers only consume this contract.
type Repository interface {
	// ListTasks returns the full flat collection, epics and children included.
	ListTasks(ctx context.Context) ([]model.Task, error)

	GetTask(ctx context.Context, id string) (model.Task, error)

	// UpdateTaskStatus moves a task to the given status label.
	UpdateTaskStatus(ctx context.Context, id, status string) error
}
