// Package tasks defines the seam between the todo controller and the
// store that backs it, so the same controller runs against the local
// slot or the remote task service.
package tasks

import (
	"context"
	"time"

	"github.com/nmwangi/todoq/internal/model"
)

// Backend synchronizes the controller-owned task list with a store.
// Mutations take the prior list and return the next one; on failure
// the prior list comes back untouched. Backends are never an
// independent source of truth.
type Backend interface {
	Name() string
	List(ctx context.Context, prior []model.Task) ([]model.Task, error)
	Create(ctx context.Context, prior []model.Task, text string, due *time.Time) ([]model.Task, error)
	Toggle(ctx context.Context, prior []model.Task, id int) ([]model.Task, error)
	Edit(ctx context.Context, prior []model.Task, id int, text string, due *time.Time, timestamp string) ([]model.Task, error)
	Delete(ctx context.Context, prior []model.Task, id int) ([]model.Task, error)
}
