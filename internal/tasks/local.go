package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/nmwangi/todoq/internal/model"
	"github.com/nmwangi/todoq/internal/storage"
)

// LocalBackend keeps the list in the injected persistence slot.
// Every mutation is followed by a full-list save.
type LocalBackend struct {
	store storage.Store
	now   func() time.Time
}

func NewLocalBackend(store storage.Store, now func() time.Time) *LocalBackend {
	if now == nil {
		now = time.Now
	}
	return &LocalBackend{store: store, now: now}
}

func (b *LocalBackend) Name() string { return "local" }

func (b *LocalBackend) List(ctx context.Context, prior []model.Task) ([]model.Task, error) {
	return b.store.Load(ctx)
}

func (b *LocalBackend) Create(ctx context.Context, prior []model.Task, text string, due *time.Time) ([]model.Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return prior, model.ErrEmptyText
	}
	now := b.now()
	task := model.Task{
		ID:        nextID(prior, now),
		Text:      trimmed,
		Completed: false,
		Timestamp: model.FormatTimestamp(now),
		DueDate:   due,
	}
	next := append(cloneTasks(prior), task)
	if err := b.store.Save(ctx, next); err != nil {
		return prior, err
	}
	return next, nil
}

func (b *LocalBackend) Toggle(ctx context.Context, prior []model.Task, id int) ([]model.Task, error) {
	idx := indexByID(prior, id)
	if idx < 0 {
		return prior, nil
	}
	next := cloneTasks(prior)
	next[idx].Completed = !next[idx].Completed
	if err := b.store.Save(ctx, next); err != nil {
		return prior, err
	}
	return next, nil
}

func (b *LocalBackend) Edit(ctx context.Context, prior []model.Task, id int, text string, due *time.Time, timestamp string) ([]model.Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return prior, model.ErrEmptyText
	}
	idx := indexByID(prior, id)
	if idx < 0 {
		return prior, nil
	}
	next := cloneTasks(prior)
	next[idx].Text = trimmed
	next[idx].DueDate = due
	if timestamp != "" {
		next[idx].Timestamp = timestamp
	}
	if err := b.store.Save(ctx, next); err != nil {
		return prior, err
	}
	return next, nil
}

func (b *LocalBackend) Delete(ctx context.Context, prior []model.Task, id int) ([]model.Task, error) {
	next := make([]model.Task, 0, len(prior))
	for _, t := range prior {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if err := b.store.Save(ctx, next); err != nil {
		return prior, err
	}
	return next, nil
}

// nextID derives a unique integer id from the creation time, bumping
// past any collision with ids already in the list.
func nextID(prior []model.Task, now time.Time) int {
	id := int(now.UnixMilli())
	for indexByID(prior, id) >= 0 {
		id++
	}
	return id
}

func cloneTasks(tasks []model.Task) []model.Task {
	return append([]model.Task(nil), tasks...)
}

func indexByID(tasks []model.Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
