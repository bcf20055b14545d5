package remote

import (
	"context"
	"strings"
	"time"

	"github.com/nmwangi/todoq/internal/model"
)

// Gateway translates task-list intents into remote calls and folds
// the results back into view state. The caller owns the list; every
// operation takes the prior list and returns the next one, leaving
// the prior list untouched on failure.
type Gateway struct {
	api API
	now func() time.Time
}

func NewGateway(api API) *Gateway {
	return NewGatewayWithClock(api, time.Now)
}

func NewGatewayWithClock(api API, now func() time.Time) *Gateway {
	return &Gateway{api: api, now: now}
}

// Reconcile merges a server snapshot with the last known local list.
// Server fields win; the client-only due date is re-attached by id.
// A task the client has never seen gets no due date.
func Reconcile(server []ProjectTask, prior []model.Task, now time.Time) []model.Task {
	priorByID := make(map[int]model.Task, len(prior))
	for _, t := range prior {
		priorByID[t.ID] = t
	}
	next := make([]model.Task, 0, len(server))
	for _, pt := range server {
		task := model.Task{
			ID:        pt.ID,
			Text:      pt.Name,
			Completed: model.Status(pt.Status).Completed(),
		}
		if pt.DateCreated != nil && *pt.DateCreated != "" {
			task.Timestamp = *pt.DateCreated
		}
		if prev, ok := priorByID[pt.ID]; ok {
			task.DueDate = prev.DueDate
			if task.Timestamp == "" {
				task.Timestamp = prev.Timestamp
			}
		}
		if task.Timestamp == "" {
			task.Timestamp = model.FormatTimestamp(now)
		}
		next = append(next, task)
	}
	return next
}

func (g *Gateway) List(ctx context.Context, prior []model.Task) ([]model.Task, error) {
	server, err := g.api.RetrieveProjectTasks(ctx, TaskFilter{})
	if err != nil {
		return prior, err
	}
	return Reconcile(server, prior, g.now()), nil
}

// Create submits only the fields the remote schema understands and
// synthesizes the full record from the server-assigned id, the
// client-only due date, and a locally generated timestamp.
func (g *Gateway) Create(ctx context.Context, prior []model.Task, text string, due *time.Time) ([]model.Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return prior, model.ErrEmptyText
	}
	created, err := g.api.CreateProjectTask(ctx, CreateProjectTaskInput{Name: trimmed})
	if err != nil {
		return prior, err
	}
	task := model.Task{
		ID:        created.ID,
		Text:      trimmed,
		Completed: false,
		Timestamp: model.FormatTimestamp(g.now()),
		DueDate:   due,
	}
	return append(cloneTasks(prior), task), nil
}

// Toggle submits only the status field, flipping PENDING and
// COMPLETED. An unknown id is a local no-op and issues no call.
func (g *Gateway) Toggle(ctx context.Context, prior []model.Task, id int) ([]model.Task, error) {
	idx := indexByID(prior, id)
	if idx < 0 {
		return prior, nil
	}
	status := ProjectTaskStatus(model.StatusForCompleted(!prior[idx].Completed))
	_, err := g.api.UpdateProjectTask(ctx, UpdateProjectTaskInput{ID: id, Status: &status})
	if err != nil {
		return prior, err
	}
	next := cloneTasks(prior)
	next[idx].Completed = !next[idx].Completed
	return next, nil
}

// Edit submits the new name and merges the new due date into the
// matching record by id. The completed flag is never touched; the
// timestamp changes only when the edit supplies one.
func (g *Gateway) Edit(ctx context.Context, prior []model.Task, id int, text string, due *time.Time, timestamp string) ([]model.Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return prior, model.ErrEmptyText
	}
	name := trimmed
	_, err := g.api.UpdateProjectTask(ctx, UpdateProjectTaskInput{ID: id, Name: &name})
	if err != nil {
		return prior, err
	}
	next := cloneTasks(prior)
	if idx := indexByID(next, id); idx >= 0 {
		next[idx].Text = trimmed
		next[idx].DueDate = due
		if timestamp != "" {
			next[idx].Timestamp = timestamp
		}
	}
	return next, nil
}

// Delete always issues the remote call; removal by id is idempotent
// on the local list.
func (g *Gateway) Delete(ctx context.Context, prior []model.Task, id int) ([]model.Task, error) {
	if _, err := g.api.DeleteProjectTask(ctx, id); err != nil {
		return prior, err
	}
	next := make([]model.Task, 0, len(prior))
	for _, t := range prior {
		if t.ID != id {
			next = append(next, t)
		}
	}
	return next, nil
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
