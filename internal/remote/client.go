package remote

import (
	"context"
	"errors"
	"fmt"

	graphql "github.com/hasura/go-graphql-client"
	"golang.org/x/oauth2"
)

var ErrUnauthorized = errors.New("remote: login rejected")

// Client issues GraphQL calls against the task service. Every call
// carries the bearer token it was constructed with; the token is
// opaque to the client.
type Client struct {
	gql *graphql.Client
}

func NewClient(endpoint, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)
	return &Client{gql: graphql.NewClient(endpoint, httpClient)}
}

// Login exchanges credentials for a token on an unauthenticated
// client. The token contents are never inspected here.
func Login(ctx context.Context, endpoint, email, password string) (string, error) {
	client := graphql.NewClient(endpoint, nil)
	var mutation struct {
		Login struct {
			JwtToken string
			Message  string
		} `graphql:"login(email: $email, password: $password)"`
	}
	vars := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	if err := client.Mutate(ctx, &mutation, vars); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if mutation.Login.JwtToken == "" {
		if mutation.Login.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrUnauthorized, mutation.Login.Message)
		}
		return "", ErrUnauthorized
	}
	return mutation.Login.JwtToken, nil
}

func (c *Client) RetrieveProjectTasks(ctx context.Context, filter TaskFilter) ([]ProjectTask, error) {
	var query struct {
		RetrieveProjectTasks []ProjectTask `graphql:"retrieveProjectTasks(status: $status, search: $search, limit: $limit, offset: $offset)"`
	}
	vars := map[string]interface{}{
		"status": filter.Status,
		"search": filter.Search,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	}
	if err := c.gql.Query(ctx, &query, vars); err != nil {
		return nil, fmt.Errorf("retrieve project tasks: %w", err)
	}
	return query.RetrieveProjectTasks, nil
}

func (c *Client) CreateProjectTask(ctx context.Context, in CreateProjectTaskInput) (ProjectTask, error) {
	var mutation struct {
		CreateProjectTask ProjectTask `graphql:"createProjectTask(args: $args)"`
	}
	vars := map[string]interface{}{"args": in}
	if err := c.gql.Mutate(ctx, &mutation, vars); err != nil {
		return ProjectTask{}, fmt.Errorf("create project task: %w", err)
	}
	return mutation.CreateProjectTask, nil
}

func (c *Client) UpdateProjectTask(ctx context.Context, in UpdateProjectTaskInput) (ProjectTask, error) {
	var mutation struct {
		UpdateProjectTask ProjectTask `graphql:"updateProjectTask(args: $args)"`
	}
	vars := map[string]interface{}{"args": in}
	if err := c.gql.Mutate(ctx, &mutation, vars); err != nil {
		return ProjectTask{}, fmt.Errorf("update project task: %w", err)
	}
	return mutation.UpdateProjectTask, nil
}

func (c *Client) DeleteProjectTask(ctx context.Context, taskID int) (bool, error) {
	var mutation struct {
		DeleteProjectTask bool `graphql:"deleteProjectTask(taskId: $taskId)"`
	}
	vars := map[string]interface{}{"taskId": taskID}
	if err := c.gql.Mutate(ctx, &mutation, vars); err != nil {
		return false, fmt.Errorf("delete project task: %w", err)
	}
	return mutation.DeleteProjectTask, nil
}
