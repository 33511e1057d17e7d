package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"roomies-go/internal/apperr"
	"roomies-go/internal/domain/household"
)

// MembershipGuard is the slice of the household service the task flow needs
// for authorization.
type MembershipGuard interface {
	RequireMember(ctx context.Context, householdID, userID string) (*household.Membership, error)
}

type Service struct {
	repo    Repository
	members MembershipGuard
}

func NewService(repo Repository, members MembershipGuard) *Service {
	return &Service{repo: repo, members: members}
}

func (s *Service) Create(ctx context.Context, input CreateTaskInput) (*Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Validation("invalid_request", "title is required")
	}
	if strings.TrimSpace(input.HouseholdID) == "" {
		return nil, apperr.Validation("invalid_request", "householdId is required")
	}

	priority := strings.ToUpper(strings.TrimSpace(input.Priority))
	if priority == "" {
		priority = PriorityMedium
	}
	if !IsValidPriority(priority) {
		return nil, apperr.Validation("invalid_priority", "priority must be LOW, MEDIUM, HIGH or URGENT")
	}

	if _, err := s.members.RequireMember(ctx, input.HouseholdID, input.CreatorID); err != nil {
		return nil, err
	}
	if input.AssigneeID != nil {
		if _, err := s.members.RequireMember(ctx, input.HouseholdID, *input.AssigneeID); err != nil {
			return nil, apperr.Validation("invalid_assignee", "assignee must be a household member")
		}
	}

	rule := ""
	if input.Recurring {
		parsed, err := ParseRecurrenceRule(input.RecurrenceRule)
		if err != nil {
			return nil, err
		}
		rule = parsed
	}

	t := Task{
		ID:             uuid.NewString(),
		HouseholdID:    input.HouseholdID,
		CreatorID:      input.CreatorID,
		AssigneeID:     input.AssigneeID,
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		Status:         StatusPending,
		Priority:       priority,
		DueDate:        input.DueDate,
		Recurring:      input.Recurring,
		RecurrenceRule: rule,
	}
	if err := s.repo.CreateTask(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) List(ctx context.Context, householdID, userID string, filter ListFilter) ([]Task, int64, error) {
	if _, err := s.members.RequireMember(ctx, householdID, userID); err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, apperr.Validation("invalid_status", "unknown task status")
	}
	return s.repo.ListTasks(ctx, householdID, filter)
}

func (s *Service) Get(ctx context.Context, taskID, userID string) (*Task, error) {
	t, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.RequireMember(ctx, t.HouseholdID, userID); err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a partial update. Any household member may update a task.
func (s *Service) Update(ctx context.Context, input UpdateTaskInput) (*Task, error) {
	t, err := s.repo.GetTaskByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.RequireMember(ctx, t.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperr.Validation("invalid_request", "title cannot be empty")
		}
		t.Title = title
	}
	if input.Description != nil {
		t.Description = strings.TrimSpace(*input.Description)
	}
	if input.AssigneeSet {
		if input.AssigneeID != nil {
			if _, err := s.members.RequireMember(ctx, t.HouseholdID, *input.AssigneeID); err != nil {
				return nil, apperr.Validation("invalid_assignee", "assignee must be a household member")
			}
		}
		t.AssigneeID = input.AssigneeID
	}
	if input.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*input.Status))
		if !IsValidStatus(status) {
			return nil, apperr.Validation("invalid_status", "unknown task status")
		}
		applyStatus(t, status)
	}
	if input.Priority != nil {
		priority := strings.ToUpper(strings.TrimSpace(*input.Priority))
		if !IsValidPriority(priority) {
			return nil, apperr.Validation("invalid_priority", "priority must be LOW, MEDIUM, HIGH or URGENT")
		}
		t.Priority = priority
	}
	if input.DueDateSet {
		t.DueDate = input.DueDate
	}
	if input.Recurring != nil {
		t.Recurring = *input.Recurring
		if !t.Recurring {
			t.RecurrenceRule = ""
		}
	}
	if input.RecurrenceRule != nil && t.Recurring {
		rule, err := ParseRecurrenceRule(*input.RecurrenceRule)
		if err != nil {
			return nil, err
		}
		t.RecurrenceRule = rule
	}
	if t.Recurring && t.RecurrenceRule == "" {
		return nil, ErrInvalidRecurrenceRule
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Complete marks the task COMPLETED. For a recurring task with a due date, a
// successor PENDING task is created in the same transaction, its due date
// advanced by the recurrence rule.
func (s *Service) Complete(ctx context.Context, taskID, actorID string) (*Task, error) {
	t, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.RequireMember(ctx, t.HouseholdID, actorID); err != nil {
		return nil, err
	}
	if t.Status == StatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	now := time.Now().UTC()
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdateTask(ctx, t); err != nil {
			return err
		}
		if !t.Recurring || t.DueDate == nil {
			return nil
		}

		next := NextDueDate(t.RecurrenceRule, *t.DueDate)
		successor := Task{
			ID:             uuid.NewString(),
			HouseholdID:    t.HouseholdID,
			CreatorID:      t.CreatorID,
			AssigneeID:     t.AssigneeID,
			Title:          t.Title,
			Description:    t.Description,
			Status:         StatusPending,
			Priority:       t.Priority,
			DueDate:        &next,
			Recurring:      true,
			RecurrenceRule: t.RecurrenceRule,
		}
		return tx.CreateTask(ctx, &successor)
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Delete removes a task; only the creator or a household admin may delete.
func (s *Service) Delete(ctx context.Context, taskID, actorID string) error {
	t, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return err
	}
	member, err := s.members.RequireMember(ctx, t.HouseholdID, actorID)
	if err != nil {
		return err
	}
	if actorID != t.CreatorID && member.Role != household.RoleAdmin {
		return ErrEditForbidden
	}

	deleted, err := s.repo.DeleteTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

func applyStatus(t *Task, status string) {
	if status == StatusCompleted && t.Status != StatusCompleted {
		now := time.Now().UTC()
		t.CompletedAt = &now
	}
	if status != StatusCompleted {
		t.CompletedAt = nil
	}
	t.Status = status
}
