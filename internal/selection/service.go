package selection

import (
	"notion-task-automation/internal/model"
)

type Service interface {
	// IsEpic reports whether a task is a parent: explicitly typed as an epic,
	// or referenced as parentId by at least one other task.
	IsEpic(task model.Task, all []model.Task) bool

	// PickNext returns the single next task to work on, or a nil-task Result
	// when no eligible candidate exists. In-progress work always takes
	// priority over unstarted work.
	PickNext(all []model.Task) Result

	// EpicChildrenDone reports whether every direct child of the epic is in
	// the done status. An epic with zero children is never AllDone.
	EpicChildrenDone(epic model.Task, all []model.Task) EpicCompletion
}

type service struct {
	cfg Config
}

func New(cfg Config) Service {
	return &service{cfg: cfg}
}

// childIndex maps a task ID to its direct children. Built once per call so
// classification stays O(1) per task instead of rescanning the collection.
// Dangling parentId references land on keys no task owns, which is harmless.
func childIndex(all []model.Task) map[string][]model.Task {
	idx := make(map[string][]model.Task)
	for _, t := range all {
		if t.ParentID != "" {
			idx[t.ParentID] = append(idx[t.ParentID], t)
		}
	}
	return idx
}

func (s *service) IsEpic(task model.Task, all []model.Task) bool {
	return s.isEpic(task, childIndex(all))
}

func (s *service) isEpic(task model.Task, children map[string][]model.Task) bool {
	// Type tagging is the primary signal, but real boards contain untyped
	// parent cards. A task someone points at via parentId is a parent
	// regardless of its own type.
	if s.cfg.EpicType != "" && task.Type == s.cfg.EpicType {
		return true
	}
	return len(children[task.ID]) > 0
}

// PickNext partitions non-epic tasks by status and selects one candidate.
// Epics are containers, never directly worked, so they are excluded from
// both partitions no matter what status they carry.
func (s *service) PickNext(all []model.Task) Result {
	children := childIndex(all)

	var inProgress, notStarted []model.Task
	for _, t := range all {
		if s.isEpic(t, children) {
			continue
		}
		switch t.Status {
		case s.cfg.InProgress:
			inProgress = append(inProgress, t)
		case s.cfg.NotStarted:
			notStarted = append(notStarted, t)
		}
	}

	if task := s.pickByOrder(inProgress); task != nil {
		return Result{Task: task, Source: SourceInProgress}
	}
	if task := s.pickByOrder(notStarted); task != nil {
		return Result{Task: task, Source: SourceNotStarted}
	}
	return Result{}
}

// pickByOrder selects one candidate according to the ordering policy.
// Unknown policies fall back to created ordering: earliest CreatedTime wins,
// input order breaks ties. RFC3339 strings compare correctly as strings.
func (s *service) pickByOrder(candidates []model.Task) *model.Task {
	if len(candidates) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].CreatedTime < candidates[best].CreatedTime {
			best = i
		}
	}

	picked := candidates[best]
	return &picked
}

func (s *service) EpicChildrenDone(epic model.Task, all []model.Task) EpicCompletion {
	children := childIndex(all)[epic.ID]
	out := EpicCompletion{Children: children}

	// A childless epic is never auto-closed; that call is left to the caller.
	if len(children) == 0 {
		return out
	}

	out.AllDone = true
	for _, child := range children {
		if child.Status != s.cfg.Done {
			out.AllDone = false
			break
		}
	}
	return out
}
