package board

import "errors"

// Domain-specific errors for the board package.
var (
	ErrTaskNotFound = errors.New("task not found on board")
	ErrEmptyTaskID  = errors.New("task id is empty")
)
