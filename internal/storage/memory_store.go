package storage

import (
	"context"

	"github.com/nmwangi/todoq/internal/model"
)

// MemoryStore is an in-memory Store, used in tests and wherever no
// durable slot is configured.
type MemoryStore struct {
	Tasks     []model.Task
	SaveCalls int
	LoadErr   error
	SaveErr   error
}

func NewMemoryStore(tasks ...model.Task) *MemoryStore {
	return &MemoryStore{Tasks: append([]model.Task(nil), tasks...)}
}

func (s *MemoryStore) Load(ctx context.Context) ([]model.Task, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]model.Task(nil), s.Tasks...), nil
}

func (s *MemoryStore) Save(ctx context.Context, tasks []model.Task) error {
	s.SaveCalls++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Tasks = append([]model.Task(nil), tasks...)
	return nil
}
