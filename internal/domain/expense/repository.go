package expense

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateExpense(ctx context.Context, exp *Expense) error
	CreateSplits(ctx context.Context, splits []Split) error
	CreatePayments(ctx context.Context, payments []Payment) error
	GetExpenseByID(ctx context.Context, id string) (*Expense, error)
	ListExpenses(ctx context.Context, householdID string, filter ListFilter) ([]Expense, int64, error)
	GetSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]Split, error)
	GetPaymentsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]Payment, error)
	UpdateExpense(ctx context.Context, exp *Expense) error
	DeleteSplitsByExpense(ctx context.Context, expenseID string) error
	DeletePaymentsByExpense(ctx context.Context, expenseID string) error
	DeleteExpense(ctx context.Context, id string) (bool, error)
	GetPaymentByID(ctx context.Context, id string) (*Payment, error)
	UpdatePaymentStatus(ctx context.Context, id, from, to string) (bool, error)
}
