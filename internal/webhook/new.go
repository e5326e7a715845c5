package webhook

import (
	"notion-task-automation/internal/automation"
	"notion-task-automation/internal/board"
	pkgLog "notion-task-automation/pkg/log"
)

// Config carries the board schema settings the handler needs.
type Config struct {
	StatusProperty string // Name of the board property holding task status
	DoneStatus     string // Status label that marks a task finished
}

type Handler struct {
	automationUC automation.UseCase
	cache        *board.Cache
	security     *SecurityValidator
	parser       *NotionWebhookParser
	cfg          Config
	l            pkgLog.Logger
}

func NewHandler(
	automationUC automation.UseCase,
	cache *board.Cache,
	securityConfig SecurityConfig,
	cfg Config,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		automationUC: automationUC,
		cache:        cache,
		security:     NewSecurityValidator(securityConfig),
		parser:       NewNotionParser(),
		cfg:          cfg,
		l:            l,
	}
}
