package board

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"notion-task-automation/internal/model"
)

const listCacheKey = "board"

// Cache is a read-through cache over a Repository. Selection cycles read the
// board many times between changes; webhook events invalidate entries so the
// next read sees the change. Cache itself satisfies Repository.
type Cache struct {
	repo  Repository
	tasks *expirable.LRU[string, model.Task]
	list  *expirable.LRU[string, []model.Task]
}

// NewCache wraps repo with an expiring cache. size bounds the per-task
// entries, ttl bounds how stale a snapshot may get without an invalidation.
func NewCache(repo Repository, size int, ttl time.Duration) *Cache {
	return &Cache{
		repo:  repo,
		tasks: expirable.NewLRU[string, model.Task](size, nil, ttl),
		list:  expirable.NewLRU[string, []model.Task](1, nil, ttl),
	}
}

func (c *Cache) ListTasks(ctx context.Context) ([]model.Task, error) {
	if tasks, ok := c.list.Get(listCacheKey); ok {
		return tasks, nil
	}

	tasks, err := c.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	c.list.Add(listCacheKey, tasks)
	for _, t := range tasks {
		c.tasks.Add(t.ID, t)
	}
	return tasks, nil
}

func (c *Cache) GetTask(ctx context.Context, id string) (model.Task, error) {
	if id == "" {
		return model.Task{}, ErrEmptyTaskID
	}

	if task, ok := c.tasks.Get(id); ok {
		return task, nil
	}

	task, err := c.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	c.tasks.Add(id, task)
	return task, nil
}

func (c *Cache) UpdateTaskStatus(ctx context.Context, id, status string) error {
	if err := c.repo.UpdateTaskStatus(ctx, id, status); err != nil {
		return err
	}
	c.Invalidate(id)
	return nil
}

// Invalidate drops the cached entry for a changed task. The list snapshot
// goes with it: a stale list must not survive a known change.
func (c *Cache) Invalidate(id string) {
	c.tasks.Remove(id)
	c.list.Remove(listCacheKey)
}
