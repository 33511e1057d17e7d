package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"roomies-go/internal/apperr"
	"roomies-go/internal/domain/household"
)

// MembershipGuard is the slice of the household service the expense flow
// needs for authorization.
type MembershipGuard interface {
	RequireMember(ctx context.Context, householdID, userID string) (*household.Membership, error)
	AreAllMembers(ctx context.Context, householdID string, userIDs []string) (bool, error)
}

type Service struct {
	repo    Repository
	members MembershipGuard
}

func NewService(repo Repository, members MembershipGuard) *Service {
	return &Service{repo: repo, members: members}
}

// Create validates and inserts an expense with its splits, plus a PENDING
// payment per non-creator split, all in one transaction.
func (s *Service) Create(ctx context.Context, input CreateExpenseInput) (*ExpenseWithDetails, error) {
	if err := validateExpenseFields(input.Title, input.HouseholdID, input.Date); err != nil {
		return nil, err
	}

	if _, err := s.members.RequireMember(ctx, input.HouseholdID, input.CreatorID); err != nil {
		return nil, err
	}

	computed, err := ComputeSplits(input.SplitType, input.Amount, input.Splits)
	if err != nil {
		return nil, err
	}

	if err := s.checkParticipants(ctx, input.HouseholdID, computed); err != nil {
		return nil, err
	}

	exp := Expense{
		ID:          uuid.NewString(),
		HouseholdID: input.HouseholdID,
		CreatorID:   input.CreatorID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Date:        input.Date,
		SplitType:   input.SplitType,
	}
	splits, payments := buildRows(&exp, computed)

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateExpense(ctx, &exp); err != nil {
			return err
		}
		if err := tx.CreateSplits(ctx, splits); err != nil {
			return err
		}
		return tx.CreatePayments(ctx, payments)
	})
	if err != nil {
		return nil, err
	}

	return &ExpenseWithDetails{Expense: exp, Splits: splits, Payments: payments}, nil
}

// List returns a household's expenses, newest date first, with splits and
// payments attached.
func (s *Service) List(ctx context.Context, householdID, userID string, filter ListFilter) ([]ExpenseWithDetails, int64, error) {
	if _, err := s.members.RequireMember(ctx, householdID, userID); err != nil {
		return nil, 0, err
	}

	expenses, total, err := s.repo.ListExpenses(ctx, householdID, filter)
	if err != nil {
		return nil, 0, err
	}
	details, err := s.attachDetails(ctx, expenses)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *Service) Get(ctx context.Context, expenseID, userID string) (*ExpenseWithDetails, error) {
	exp, err := s.repo.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.RequireMember(ctx, exp.HouseholdID, userID); err != nil {
		return nil, err
	}

	details, err := s.attachDetails(ctx, []Expense{*exp})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Update replaces the expense's fields and recomputes its splits and
// payments. Only the creator or a household admin may update.
func (s *Service) Update(ctx context.Context, input UpdateExpenseInput) (*ExpenseWithDetails, error) {
	exp, err := s.repo.GetExpenseByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEditRights(ctx, exp, input.ActorID); err != nil {
		return nil, err
	}
	if err := validateExpenseFields(input.Title, exp.HouseholdID, input.Date); err != nil {
		return nil, err
	}

	computed, err := ComputeSplits(input.SplitType, input.Amount, input.Splits)
	if err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, exp.HouseholdID, computed); err != nil {
		return nil, err
	}

	exp.Title = strings.TrimSpace(input.Title)
	exp.Description = strings.TrimSpace(input.Description)
	exp.Amount = input.Amount
	exp.Date = input.Date
	exp.SplitType = input.SplitType
	exp.UpdatedAt = time.Now().UTC()

	splits, payments := buildRows(exp, computed)

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdateExpense(ctx, exp); err != nil {
			return err
		}
		if err := tx.DeleteSplitsByExpense(ctx, exp.ID); err != nil {
			return err
		}
		if err := tx.DeletePaymentsByExpense(ctx, exp.ID); err != nil {
			return err
		}
		if err := tx.CreateSplits(ctx, splits); err != nil {
			return err
		}
		return tx.CreatePayments(ctx, payments)
	})
	if err != nil {
		return nil, err
	}

	return &ExpenseWithDetails{Expense: *exp, Splits: splits, Payments: payments}, nil
}

func (s *Service) Delete(ctx context.Context, expenseID, actorID string) error {
	exp, err := s.repo.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if err := s.requireEditRights(ctx, exp, actorID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

// UpdatePaymentStatus settles or declines a PENDING payment. Only the payer
// or the expense creator may act.
func (s *Service) UpdatePaymentStatus(ctx context.Context, paymentID, actorID, status string) (*Payment, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != PaymentCompleted && status != PaymentDeclined {
		return nil, apperr.Validation("invalid_status", "status must be COMPLETED or DECLINED")
	}

	payment, err := s.repo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	exp, err := s.repo.GetExpenseByID(ctx, payment.ExpenseID)
	if err != nil {
		return nil, err
	}
	if actorID != payment.UserID && actorID != exp.CreatorID {
		return nil, ErrPaymentForbidden
	}

	changed, err := s.repo.UpdatePaymentStatus(ctx, paymentID, PaymentPending, status)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrPaymentNotPending
	}

	payment.Status = status
	return payment, nil
}

// Balances computes per-member net balances and suggested settlement edges
// for a household.
func (s *Service) Balances(ctx context.Context, householdID, userID string) ([]MemberBalance, []DebtEdge, error) {
	if _, err := s.members.RequireMember(ctx, householdID, userID); err != nil {
		return nil, nil, err
	}

	expenses, _, err := s.repo.ListExpenses(ctx, householdID, ListFilter{})
	if err != nil {
		return nil, nil, err
	}
	details, err := s.attachDetails(ctx, expenses)
	if err != nil {
		return nil, nil, err
	}

	balances, edges := ComputeBalances(details)
	return balances, edges, nil
}

func (s *Service) requireEditRights(ctx context.Context, exp *Expense, actorID string) error {
	member, err := s.members.RequireMember(ctx, exp.HouseholdID, actorID)
	if err != nil {
		return err
	}
	if actorID != exp.CreatorID && member.Role != household.RoleAdmin {
		return ErrEditForbidden
	}
	return nil
}

func (s *Service) checkParticipants(ctx context.Context, householdID string, computed []ComputedSplit) error {
	userIDs := make([]string, 0, len(computed))
	for _, split := range computed {
		userIDs = append(userIDs, split.UserID)
	}
	ok, err := s.members.AreAllMembers(ctx, householdID, userIDs)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("invalid_splits", "all split participants must be household members")
	}
	return nil
}

func (s *Service) attachDetails(ctx context.Context, expenses []Expense) ([]ExpenseWithDetails, error) {
	if len(expenses) == 0 {
		return []ExpenseWithDetails{}, nil
	}

	ids := make([]string, 0, len(expenses))
	for _, exp := range expenses {
		ids = append(ids, exp.ID)
	}

	splitsByExpense, err := s.repo.GetSplitsByExpenseIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	paymentsByExpense, err := s.repo.GetPaymentsByExpenseIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]ExpenseWithDetails, 0, len(expenses))
	for _, exp := range expenses {
		details = append(details, ExpenseWithDetails{
			Expense:  exp,
			Splits:   splitsByExpense[exp.ID],
			Payments: paymentsByExpense[exp.ID],
		})
	}
	return details, nil
}

func buildRows(exp *Expense, computed []ComputedSplit) ([]Split, []Payment) {
	splits := make([]Split, 0, len(computed))
	payments := make([]Payment, 0, len(computed))
	for _, c := range computed {
		splits = append(splits, Split{
			ID:        uuid.NewString(),
			ExpenseID: exp.ID,
			UserID:    c.UserID,
			Amount:    c.Amount,
		})
		if c.UserID == exp.CreatorID {
			continue
		}
		payments = append(payments, Payment{
			ID:        uuid.NewString(),
			ExpenseID: exp.ID,
			UserID:    c.UserID,
			Amount:    c.Amount,
			Status:    PaymentPending,
		})
	}
	return splits, payments
}

func validateExpenseFields(title, householdID string, date time.Time) error {
	if strings.TrimSpace(householdID) == "" {
		return apperr.Validation("invalid_request", "householdId is required")
	}
	if strings.TrimSpace(title) == "" {
		return apperr.Validation("invalid_request", "title is required")
	}
	if date.IsZero() {
		return apperr.Validation("invalid_request", "date is required")
	}
	return nil
}
