package remote

import (
	"context"
)

// ProjectTask is the task entity as the server returns it. There is
// no due date field anywhere in the remote schema.
type ProjectTask struct {
	ID          int
	Name        string
	Description string
	Status      ProjectTaskStatus
	DateCreated *string
}

// ProjectTaskStatus mirrors the server-side status enumeration.
type ProjectTaskStatus string

type CreateProjectTaskInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ProjectID   *int   `json:"projectId,omitempty"`
}

type UpdateProjectTaskInput struct {
	ID     int                `json:"id"`
	Name   *string            `json:"name,omitempty"`
	Status *ProjectTaskStatus `json:"status,omitempty"`
}

// TaskFilter carries the retrieveProjectTasks arguments. The client
// lists everything, so all fields are optional.
type TaskFilter struct {
	Status *ProjectTaskStatus
	Search *string
	Limit  *int
	Offset *int
}

// API is the remote surface the gateway talks to. Tests swap in a
// fake; production uses the GraphQL client.
type API interface {
	RetrieveProjectTasks(ctx context.Context, filter TaskFilter) ([]ProjectTask, error)
	CreateProjectTask(ctx context.Context, in CreateProjectTaskInput) (ProjectTask, error)
	UpdateProjectTask(ctx context.Context, in UpdateProjectTaskInput) (ProjectTask, error)
	DeleteProjectTask(ctx context.Context, taskID int) (bool, error)
}
