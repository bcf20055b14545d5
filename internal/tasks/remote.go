package tasks

import (
	"context"
	"time"

	"github.com/nmwangi/todoq/internal/model"
	"github.com/nmwangi/todoq/internal/remote"
)

// RemoteBackend delegates to the GraphQL gateway, which owns the
// due-date reconciliation rules.
type RemoteBackend struct {
	gw *remote.Gateway
}

func NewRemoteBackend(gw *remote.Gateway) *RemoteBackend {
	return &RemoteBackend{gw: gw}
}

func (b *RemoteBackend) Name() string { return "remote" }

func (b *RemoteBackend) List(ctx context.Context, prior []model.Task) ([]model.Task, error) {
	return b.gw.List(ctx, prior)
}

func (b *RemoteBackend) Create(ctx context.Context, prior []model.Task, text string, due *time.Time) ([]model.Task, error) {
	return b.gw.Create(ctx, prior, text, due)
}

func (b *RemoteBackend) Toggle(ctx context.Context, prior []model.Task, id int) ([]model.Task, error) {
	return b.gw.Toggle(ctx, prior, id)
}

func (b *RemoteBackend) Edit(ctx context.Context, prior []model.Task, id int, text string, due *time.Time, timestamp string) ([]model.Task, error) {
	return b.gw.Edit(ctx, prior, id, text, due, timestamp)
}

func (b *RemoteBackend) Delete(ctx context.Context, prior []model.Task, id int) ([]model.Task, error) {
	return b.gw.Delete(ctx, prior, id)
}
