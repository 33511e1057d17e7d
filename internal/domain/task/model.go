package task

import "time"

const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusSkipped    = "SKIPPED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

type Task struct {
	ID             string  `gorm:"type:uuid;primaryKey"`
	HouseholdID    string  `gorm:"type:uuid;index;not null"`
	CreatorID      string  `gorm:"type:text;not null"`
	AssigneeID     *string `gorm:"type:text"`
	Title          string  `gorm:"not null"`
	Description    string  `gorm:"not null;default:''"`
	Status         string  `gorm:"type:varchar(16);not null"`
	Priority       string  `gorm:"type:varchar(16);not null"`
	DueDate        *time.Time
	Recurring      bool   `gorm:"not null;default:false"`
	RecurrenceRule string `gorm:"not null;default:''"`
	CompletedAt    *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

type CreateTaskInput struct {
	HouseholdID    string
	CreatorID      string
	AssigneeID     *string
	Title          string
	Description    string
	Priority       string
	DueDate        *time.Time
	Recurring      bool
	RecurrenceRule string
}

// UpdateTaskInput carries a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	ID             string
	ActorID        string
	Title          *string
	Description    *string
	AssigneeID     *string
	AssigneeSet    bool
	Status         *string
	Priority       *string
	DueDate        *time.Time
	DueDateSet     bool
	Recurring      *bool
	RecurrenceRule *string
}

type ListFilter struct {
	Status     string
	AssigneeID string
	Limit      int
	Offset     int
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
