package expense

import "time"

const (
	SplitTypeEqual      = "EQUAL"
	SplitTypePercentage = "PERCENTAGE"
	SplitTypeCustom     = "CUSTOM"
)

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentDeclined  = "DECLINED"
)

type Expense struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	HouseholdID string    `gorm:"type:uuid;index;not null"`
	CreatorID   string    `gorm:"type:text;not null"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	Amount      float64   `gorm:"type:numeric(12,2);not null"`
	Date        time.Time `gorm:"type:date;not null"`
	SplitType   string    `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Split is one member's attributed share of an expense.
type Split struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	ExpenseID string  `gorm:"type:uuid;index;not null"`
	UserID    string  `gorm:"type:text;not null"`
	Amount    float64 `gorm:"type:numeric(12,2);not null"`
}

// Payment tracks settlement of a split towards the expense creator.
type Payment struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	ExpenseID string  `gorm:"type:uuid;index;not null"`
	UserID    string  `gorm:"type:text;not null"`
	Amount    float64 `gorm:"type:numeric(12,2);not null"`
	Status    string  `gorm:"type:varchar(16);not null;default:'PENDING'"`
}

type ExpenseWithDetails struct {
	Expense
	Splits   []Split
	Payments []Payment
}

// SplitInput carries one participant's share. Amount is read for CUSTOM,
// Percentage for PERCENTAGE; EQUAL uses only the UserID.
type SplitInput struct {
	UserID     string
	Amount     float64
	Percentage float64
}

type CreateExpenseInput struct {
	HouseholdID string
	CreatorID   string
	Title       string
	Description string
	Amount      float64
	Date        time.Time
	SplitType   string
	Splits      []SplitInput
}

type UpdateExpenseInput struct {
	ID          string
	ActorID     string
	Title       string
	Description string
	Amount      float64
	Date        time.Time
	SplitType   string
	Splits      []SplitInput
}

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
