package agent

import (
	"context"

	"notion-task-automation/internal/model"
)

// Runner dispatches a selected task to the coding agent. Process supervision
// of the agent lives outside this module; this is the seam the automation
// loop calls through. RunTask blocks until the agent accepts the work.
type Runner interface {
	RunTask(ctx context.Context, task model.Task) error
}
