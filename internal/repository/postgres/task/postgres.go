package task

import (
	"context"
	"errors"

	"gorm.io/gorm"
	taskdomain "roomies-go/internal/domain/task"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(taskdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateTask(ctx context.Context, t *taskdomain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *PostgresRepository) GetTaskByID(ctx context.Context, id string) (*taskdomain.Task, error) {
	var t taskdomain.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskdomain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) ListTasks(ctx context.Context, householdID string, filter taskdomain.ListFilter) ([]taskdomain.Task, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&taskdomain.Task{}).
		Where("household_id = ?", householdID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AssigneeID != "" {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("due_date asc nulls last, created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var tasks []taskdomain.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *PostgresRepository) UpdateTask(ctx context.Context, t *taskdomain.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *PostgresRepository) DeleteTask(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&taskdomain.Task{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
