package automation

import (
	"notion-task-automation/internal/agent"
	"notion-task-automation/internal/board"
	"notion-task-automation/internal/selection"
	pkgLog "notion-task-automation/pkg/log"
)

func New(
	repo board.Repository,
	selector selection.Service,
	runner agent.Runner,
	statuses Statuses,
	l pkgLog.Logger,
) UseCase {
	return &usecase{
		repo:     repo,
		selector: selector,
		runner:   runner,
		statuses: statuses,
		l:        l,
	}
}
