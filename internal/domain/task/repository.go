package task

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateTask(ctx context.Context, t *Task) error
	GetTaskByID(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context, householdID string, filter ListFilter) ([]Task, int64, error)
	UpdateTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, id string) (bool, error)
}
