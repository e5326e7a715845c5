package webhook

import (
	"context"
	"fmt"
)

// Process handles one webhook delivery end to end: validate, summarize,
// invalidate the board cache entry, and kick off epic evaluation when a task
// reached the done status. The HTTP receiver that produces Delivery values
// lives outside this module.
func (h *Handler) Process(ctx context.Context, d Delivery) (ProcessResult, error) {
	if err := h.security.ValidateIPAddress(d.SourceIP); err != nil {
		h.l.Warnf(ctx, "Webhook rejected: %v", err)
		return ProcessResult{}, err
	}

	if err := h.security.ValidateSignature(d.Body, d.Signature); err != nil {
		h.l.Errorf(ctx, "Webhook signature verification failed: %v", err)
		return ProcessResult{}, err
	}

	if err := h.security.CheckRateLimit(d.SourceIP); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		return ProcessResult{}, err
	}

	summary, err := h.parser.ParseEvent(d.Body, h.cfg.StatusProperty)
	if err != nil {
		h.l.Errorf(ctx, "Failed to parse webhook event: %v", err)
		return ProcessResult{}, err
	}

	result := ProcessResult{Summary: summary}

	// A delivery that resolved neither a task nor a status has nothing for us.
	if summary.TaskID == NotAvailable && summary.Status == NotAvailable {
		h.l.Infof(ctx, "Ignoring webhook event %s: no task or status", summary.EventType)
		result.Message = "event carries no task or status"
		return result, nil
	}
	result.Relevant = true

	if summary.TaskID != NotAvailable {
		h.cache.Invalidate(summary.TaskID)
		result.CacheInvalidated = true
		h.l.Infof(ctx, "Invalidated board cache for task %s (%s)", summary.TaskID, summary.EventType)
	}

	// A task reaching done may complete its parent epic.
	if summary.TaskID != NotAvailable && summary.Status == h.cfg.DoneStatus {
		closeRes, err := h.automationUC.HandleTaskCompleted(ctx, summary.TaskID)
		if err != nil {
			h.l.Errorf(ctx, "Epic evaluation failed for task %s: %v", summary.TaskID, err)
			return result, fmt.Errorf("failed to evaluate parent epic: %w", err)
		}
		result.EpicClosed = closeRes.Closed
		result.Message = closeRes.Message
		return result, nil
	}

	result.Message = fmt.Sprintf("processed %s for task %s", summary.EventType, summary.TaskID)
	return result, nil
}
