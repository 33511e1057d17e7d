package expense

import (
	"context"
	"errors"

	"gorm.io/gorm"
	expensedomain "roomies-go/internal/domain/expense"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(expensedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, exp *expensedomain.Expense) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

func (r *PostgresRepository) CreateSplits(ctx context.Context, splits []expensedomain.Split) error {
	if len(splits) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&splits).Error
}

func (r *PostgresRepository) CreatePayments(ctx context.Context, payments []expensedomain.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&payments).Error
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, id string) (*expensedomain.Expense, error) {
	var exp expensedomain.Expense
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&exp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensedomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &exp, nil
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, householdID string, filter expensedomain.ListFilter) ([]expensedomain.Expense, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&expensedomain.Expense{}).
		Where("household_id = ?", householdID)

	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date desc, created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var expenses []expensedomain.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *PostgresRepository) GetSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]expensedomain.Split, error) {
	var splits []expensedomain.Split
	if err := r.db.WithContext(ctx).Where("expense_id IN ?", expenseIDs).Find(&splits).Error; err != nil {
		return nil, err
	}

	byExpense := make(map[string][]expensedomain.Split, len(expenseIDs))
	for _, split := range splits {
		byExpense[split.ExpenseID] = append(byExpense[split.ExpenseID], split)
	}
	return byExpense, nil
}

func (r *PostgresRepository) GetPaymentsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]expensedomain.Payment, error) {
	var payments []expensedomain.Payment
	if err := r.db.WithContext(ctx).Where("expense_id IN ?", expenseIDs).Find(&payments).Error; err != nil {
		return nil, err
	}

	byExpense := make(map[string][]expensedomain.Payment, len(expenseIDs))
	for _, payment := range payments {
		byExpense[payment.ExpenseID] = append(byExpense[payment.ExpenseID], payment)
	}
	return byExpense, nil
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, exp *expensedomain.Expense) error {
	return r.db.WithContext(ctx).Save(exp).Error
}

func (r *PostgresRepository) DeleteSplitsByExpense(ctx context.Context, expenseID string) error {
	return r.db.WithContext(ctx).Where("expense_id = ?", expenseID).Delete(&expensedomain.Split{}).Error
}

func (r *PostgresRepository) DeletePaymentsByExpense(ctx context.Context, expenseID string) error {
	return r.db.WithContext(ctx).Where("expense_id = ?", expenseID).Delete(&expensedomain.Payment{}).Error
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&expensedomain.Expense{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) GetPaymentByID(ctx context.Context, id string) (*expensedomain.Payment, error) {
	var payment expensedomain.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensedomain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, id, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&expensedomain.Payment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
