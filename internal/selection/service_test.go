package selection

import (
	"testing"

	"notion-task-automation/internal/model"
)

func testConfig() Config {
	return Config{
		NotStarted: "Not Started",
		InProgress: "In Progress",
		Done:       "Done",
		EpicType:   "Epic",
		Order:      OrderCreated,
	}
}

func TestIsEpic(t *testing.T) {
	svc := New(testConfig())

	t.Run("epic by type", func(t *testing.T) {
		epic := model.Task{ID: "e1", Type: "Epic", Status: "Not Started"}
		if !svc.IsEpic(epic, []model.Task{epic}) {
			t.Error("expected task typed Epic to be classified as epic")
		}
	})

	t.Run("epic by back-reference with blank type", func(t *testing.T) {
		parent := model.Task{ID: "p1", Type: "", Status: "In Progress"}
		child := model.Task{ID: "c1", ParentID: "p1", Status: "Not Started"}
		if !svc.IsEpic(parent, []model.Task{parent, child}) {
			t.Error("expected untyped parent referenced by parentId to be classified as epic")
		}
	})

	t.Run("regular task is not epic", func(t *testing.T) {
		task := model.Task{ID: "t1", Type: "Task", Status: "Not Started"}
		other := model.Task{ID: "t2", Status: "Done"}
		if svc.IsEpic(task, []model.Task{task, other}) {
			t.Error("expected plain task to not be classified as epic")
		}
	})

	t.Run("dangling parentId does not make the referencing task an epic", func(t *testing.T) {
		task := model.Task{ID: "t1", ParentID: "missing", Status: "Not Started"}
		if svc.IsEpic(task, []model.Task{task}) {
			t.Error("task referencing a missing parent is not itself an epic")
		}
	})

	t.Run("blank type never matches blank epic config", func(t *testing.T) {
		svc := New(Config{NotStarted: "Not Started", InProgress: "In Progress", Done: "Done"})
		task := model.Task{ID: "t1", Type: "", Status: "Not Started"}
		if svc.IsEpic(task, []model.Task{task}) {
			t.Error("blank type must not be treated as the epic type")
		}
	})
}

func TestPickNext(t *testing.T) {
	svc := New(testConfig())

	t.Run("in-progress beats older not-started", func(t *testing.T) {
		tasks := []model.Task{
			{ID: "t1", Name: "Old queued", Status: "Not Started", CreatedTime: "2026-01-01T00:00:00Z"},
			{ID: "t2", Name: "Running", Status: "In Progress", CreatedTime: "2026-02-01T00:00:00Z"},
		}
		res := svc.PickNext(tasks)
		if res.Task == nil || res.Task.ID != "t2" {
			t.Fatalf("expected t2, got %+v", res.Task)
		}
		if res.Source != SourceInProgress {
			t.Errorf("expected source %q, got %q", SourceInProgress, res.Source)
		}
	})

	t.Run("epic ignored, earliest not-started wins", func(t *testing.T) {
		tasks := []model.Task{
			{ID: "e1", Type: "Epic", Status: "Not Started", CreatedTime: "2026-01-01T00:00:00Z"},
			{ID: "t1", Status: "Not Started", CreatedTime: "2026-01-03T00:00:00Z"},
			{ID: "t2", Status: "Not Started", CreatedTime: "2026-01-02T00:00:00Z"},
		}
		res := svc.PickNext(tasks)
		if res.Task == nil || res.Task.ID != "t2" {
			t.Fatalf("expected t2, got %+v", res.Task)
		}
		if res.Source != SourceNotStarted {
			t.Errorf("expected source %q, got %q", SourceNotStarted, res.Source)
		}
	})

	t.Run("untyped in-progress parent skipped, child selected", func(t *testing.T) {
		tasks := []model.Task{
			{ID: "p1", Type: "", Status: "In Progress", CreatedTime: "2026-01-01T00:00:00Z"},
			{ID: "c1", ParentID: "p1", Status: "Not Started", CreatedTime: "2026-01-02T00:00:00Z"},
			{ID: "t1", Status: "Not Started", CreatedTime: "2026-01-03T00:00:00Z"},
		}
		res := svc.PickNext(tasks)
		if res.Task == nil || res.Task.ID != "c1" {
			t.Fatalf("expected c1, got %+v", res.Task)
		}
		if res.Source != SourceNotStarted {
			t.Errorf("expected source %q, got %q", SourceNotStarted, res.Source)
		}
	})

	t.Run("earliest in-progress wins within partition", func(t *testing.T) {
		tasks := []model.Task{
			{ID: "t1", Status: "In Progress", CreatedTime: "2026-01-05T00:00:00Z"},
			{ID: "t2", Status: "In Progress", CreatedTime: "2026-01-02T00:00:00Z"},
			{ID: "t3", Status: "In Progress", CreatedTime: "2026-01-04T00:00:00Z"},
		}
		res := svc.PickNext(tasks)
		if res.Task == nil || res.Task.ID != "t2" {
			t.Fatalf("expected t2, got %+v", res.Task)
		}
	})

	t.Run("equal timestamps keep input order", func(t *testing.T) {
		tasks := []model.Task{
			{ID: "t1", Status: "Not Started", CreatedTime: "2026-01-01T00:00:00Z"},
			{ID: "t2", Status: "Not Started", CreatedTime: "2026-01-01T00:00:00Z"},
		}
		res := svc.PickNext(tasks)
		if res.Task == nil || res.Task.ID != "t1" {
			t.Fatalf("expected t1, got %+v", res.Task)
		}
	})

	t.Run("empty collection yields nil result", func(t *testing.T) {
		res := svc.PickNext(nil)
		if res.Task != nil || res.Source != "" {
			t.Errorf("expected empty result, got %+v", res)
		}
	})

	t.Run("all-epic collection yields nil result", func(t *testing.T) {
		tasks := []model.Task{
			{ID: "e1", Type: "Epic", Status: "Not Started", CreatedTime: "2026-01-01T00:00:00Z"},
			{ID: "e2", Type: "Epic", Status: "In Progress", CreatedTime: "2026-01-02T00:00:00Z"},
		}
		res := svc.PickNext(tasks)
		if res.Task != nil || res.Source != "" {
			t.Errorf("expected empty result, got %+v", res)
		}
	})

	t.Run("done and unknown statuses are never candidates", func(t *testing.T) {
		tasks := []model.Task{
			{ID: "t1", Status: "Done", CreatedTime: "2026-01-01T00:00:00Z"},
			{ID: "t2", Status: "Blocked", CreatedTime: "2026-01-02T00:00:00Z"},
		}
		res := svc.PickNext(tasks)
		if res.Task != nil {
			t.Errorf("expected no candidate, got %+v", res.Task)
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		tasks := []model.Task{
			{ID: "t1", Status: "Not Started", CreatedTime: "2026-01-01T00:00:00Z"},
		}
		res := svc.PickNext(tasks)
		if res.Task == nil {
			t.Fatal("expected a selection")
		}
		res.Task.Status = "Done"
		if tasks[0].Status != "Not Started" {
			t.Error("selector must return a copy, not alias the input slice")
		}
	})
}

func TestEpicChildrenDone(t *testing.T) {
	svc := New(testConfig())

	t.Run("all children done", func(t *testing.T) {
		epic := model.Task{ID: "e1", Type: "Epic", Status: "In Progress"}
		tasks := []model.Task{
			epic,
			{ID: "c1", ParentID: "e1", Status: "Done"},
			{ID: "c2", ParentID: "e1", Status: "Done"},
		}
		res := svc.EpicChildrenDone(epic, tasks)
		if !res.AllDone {
			t.Error("expected AllDone true")
		}
		if len(res.Children) != 2 {
			t.Errorf("expected 2 children, got %d", len(res.Children))
		}
	})

	t.Run("one pending child blocks completion", func(t *testing.T) {
		epic := model.Task{ID: "e1", Type: "Epic"}
		tasks := []model.Task{
			epic,
			{ID: "c1", ParentID: "e1", Status: "Done"},
			{ID: "c2", ParentID: "e1", Status: "In Progress"},
		}
		res := svc.EpicChildrenDone(epic, tasks)
		if res.AllDone {
			t.Error("expected AllDone false")
		}
		if len(res.Children) != 2 {
			t.Errorf("children must be returned regardless of AllDone, got %d", len(res.Children))
		}
	})

	t.Run("childless epic is never done", func(t *testing.T) {
		epic := model.Task{ID: "e1", Type: "Epic"}
		res := svc.EpicChildrenDone(epic, []model.Task{epic})
		if res.AllDone {
			t.Error("childless epic must not report AllDone")
		}
		if len(res.Children) != 0 {
			t.Errorf("expected no children, got %d", len(res.Children))
		}
	})

	t.Run("children set matches parentId exactly", func(t *testing.T) {
		epic := model.Task{ID: "e1", Type: "Epic"}
		tasks := []model.Task{
			epic,
			{ID: "c1", ParentID: "e1", Status: "Done"},
			{ID: "x1", ParentID: "other", Status: "Done"},
			{ID: "x2", Status: "Done"},
		}
		res := svc.EpicChildrenDone(epic, tasks)
		if len(res.Children) != 1 || res.Children[0].ID != "c1" {
			t.Errorf("expected exactly [c1], got %+v", res.Children)
		}
	})
}
