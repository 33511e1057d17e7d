package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomies-go/internal/domain/household"
)

type fakeExpenseRepo struct {
	expenses map[string]*Expense
	splits   map[string][]Split
	payments map[string][]Payment
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{
		expenses: make(map[string]*Expense),
		splits:   make(map[string][]Split),
		payments: make(map[string][]Payment),
	}
}

func (r *fakeExpenseRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeExpenseRepo) CreateExpense(ctx context.Context, exp *Expense) error {
	clone := *exp
	r.expenses[exp.ID] = &clone
	return nil
}

func (r *fakeExpenseRepo) CreateSplits(ctx context.Context, splits []Split) error {
	for _, s := range splits {
		r.splits[s.ExpenseID] = append(r.splits[s.ExpenseID], s)
	}
	return nil
}

func (r *fakeExpenseRepo) CreatePayments(ctx context.Context, payments []Payment) error {
	for _, p := range payments {
		r.payments[p.ExpenseID] = append(r.payments[p.ExpenseID], p)
	}
	return nil
}

func (r *fakeExpenseRepo) GetExpenseByID(ctx context.Context, id string) (*Expense, error) {
	exp, ok := r.expenses[id]
	if !ok {
		return nil, ErrExpenseNotFound
	}
	clone := *exp
	return &clone, nil
}

func (r *fakeExpenseRepo) ListExpenses(ctx context.Context, householdID string, filter ListFilter) ([]Expense, int64, error) {
	result := make([]Expense, 0)
	for _, exp := range r.expenses {
		if exp.HouseholdID == householdID {
			result = append(result, *exp)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeExpenseRepo) GetSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]Split, error) {
	result := make(map[string][]Split)
	for _, id := range expenseIDs {
		result[id] = r.splits[id]
	}
	return result, nil
}

func (r *fakeExpenseRepo) GetPaymentsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]Payment, error) {
	result := make(map[string][]Payment)
	for _, id := range expenseIDs {
		result[id] = r.payments[id]
	}
	return result, nil
}

func (r *fakeExpenseRepo) UpdateExpense(ctx context.Context, exp *Expense) error {
	if _, ok := r.expenses[exp.ID]; !ok {
		return ErrExpenseNotFound
	}
	clone := *exp
	r.expenses[exp.ID] = &clone
	return nil
}

func (r *fakeExpenseRepo) DeleteSplitsByExpense(ctx context.Context, expenseID string) error {
	delete(r.splits, expenseID)
	return nil
}

func (r *fakeExpenseRepo) DeletePaymentsByExpense(ctx context.Context, expenseID string) error {
	delete(r.payments, expenseID)
	return nil
}

func (r *fakeExpenseRepo) DeleteExpense(ctx context.Context, id string) (bool, error) {
	if _, ok := r.expenses[id]; !ok {
		return false, nil
	}
	delete(r.expenses, id)
	delete(r.splits, id)
	delete(r.payments, id)
	return true, nil
}

func (r *fakeExpenseRepo) GetPaymentByID(ctx context.Context, id string) (*Payment, error) {
	for _, payments := range r.payments {
		for _, p := range payments {
			if p.ID == id {
				clone := p
				return &clone, nil
			}
		}
	}
	return nil, ErrPaymentNotFound
}

func (r *fakeExpenseRepo) UpdatePaymentStatus(ctx context.Context, id, from, to string) (bool, error) {
	for expID, payments := range r.payments {
		for i, p := range payments {
			if p.ID == id && p.Status == from {
				r.payments[expID][i].Status = to
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeMembers struct {
	roles map[string]string // userID -> role within hh-1
}

func (g *fakeMembers) RequireMember(ctx context.Context, householdID, userID string) (*household.Membership, error) {
	role, ok := g.roles[userID]
	if !ok {
		return nil, household.ErrNotMember
	}
	return &household.Membership{HouseholdID: householdID, UserID: userID, Role: role}, nil
}

func (g *fakeMembers) AreAllMembers(ctx context.Context, householdID string, userIDs []string) (bool, error) {
	for _, id := range userIDs {
		if _, ok := g.roles[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func newExpenseService(repo *fakeExpenseRepo) *Service {
	return NewService(repo, &fakeMembers{roles: map[string]string{
		"alice": household.RoleAdmin,
		"bob":   household.RoleMember,
		"carol": household.RoleMember,
	}})
}

func createInput(splitType string, splits []SplitInput) CreateExpenseInput {
	return CreateExpenseInput{
		HouseholdID: "hh-1",
		CreatorID:   "alice",
		Title:       "Groceries",
		Amount:      90,
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		SplitType:   splitType,
		Splits:      splits,
	}
}

func TestCreateExpensePaymentsForNonCreatorSplits(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := newExpenseService(repo)

	result, err := svc.Create(context.Background(), createInput(SplitTypeEqual, []SplitInput{
		{UserID: "alice"}, {UserID: "bob"}, {UserID: "carol"},
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.Splits) != 3 {
		t.Fatalf("expected 3 splits, got %d", len(result.Splits))
	}
	if len(result.Payments) != 2 {
		t.Fatalf("expected payments for the two non-creator splits, got %d", len(result.Payments))
	}
	for _, p := range result.Payments {
		if p.UserID == "alice" {
			t.Fatalf("creator must not owe a payment")
		}
		if p.Status != PaymentPending {
			t.Fatalf("expected PENDING payment, got %q", p.Status)
		}
	}
}

func TestCreateExpenseNonMemberCreator(t *testing.T) {
	svc := newExpenseService(newFakeExpenseRepo())

	input := createInput(SplitTypeEqual, []SplitInput{{UserID: "alice"}})
	input.CreatorID = "stranger"
	_, err := svc.Create(context.Background(), input)
	if !errors.Is(err, household.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestCreateExpenseNonMemberParticipant(t *testing.T) {
	svc := newExpenseService(newFakeExpenseRepo())

	_, err := svc.Create(context.Background(), createInput(SplitTypeEqual, []SplitInput{
		{UserID: "alice"}, {UserID: "stranger"},
	}))
	if err == nil {
		t.Fatalf("expected validation error for non-member participant")
	}
}

func TestExpenseRoundTrip(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := newExpenseService(repo)

	created, err := svc.Create(context.Background(), createInput(SplitTypeCustom, []SplitInput{
		{UserID: "alice", Amount: 50},
		{UserID: "bob", Amount: 40},
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := svc.Get(context.Background(), created.ID, "bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Amount != 90 {
		t.Fatalf("expected amount 90, got %v", fetched.Amount)
	}
	var sum float64
	for _, s := range fetched.Splits {
		sum += s.Amount
	}
	if sum != 90 {
		t.Fatalf("expected splits to sum to the amount, got %v", sum)
	}
}

func TestUpdateExpenseReplacesSplitsAndPayments(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := newExpenseService(repo)

	created, err := svc.Create(context.Background(), createInput(SplitTypeEqual, []SplitInput{
		{UserID: "alice"}, {UserID: "bob"}, {UserID: "carol"},
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), UpdateExpenseInput{
		ID:        created.ID,
		ActorID:   "alice",
		Title:     "Groceries v2",
		Amount:    60,
		Date:      created.Date,
		SplitType: SplitTypeEqual,
		Splits:    []SplitInput{{UserID: "alice"}, {UserID: "bob"}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Splits) != 2 {
		t.Fatalf("expected splits replaced, got %d", len(updated.Splits))
	}
	if len(repo.splits[created.ID]) != 2 {
		t.Fatalf("expected old splits removed, got %d", len(repo.splits[created.ID]))
	}
	if len(repo.payments[created.ID]) != 1 {
		t.Fatalf("expected payments reset to one, got %d", len(repo.payments[created.ID]))
	}
}

func TestUpdateExpenseForbiddenForOtherMembers(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := newExpenseService(repo)

	created, err := svc.Create(context.Background(), createInput(SplitTypeEqual, []SplitInput{
		{UserID: "alice"}, {UserID: "bob"},
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), UpdateExpenseInput{
		ID:        created.ID,
		ActorID:   "bob",
		Title:     "Hijacked",
		Amount:    90,
		Date:      created.Date,
		SplitType: SplitTypeEqual,
		Splits:    []SplitInput{{UserID: "bob"}},
	})
	if !errors.Is(err, ErrEditForbidden) {
		t.Fatalf("expected ErrEditForbidden, got %v", err)
	}
}

func TestDeleteExpenseCreatorOrAdmin(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := NewService(repo, &fakeMembers{roles: map[string]string{
		"creator": household.RoleMember,
		"admin":   household.RoleAdmin,
		"bob":     household.RoleMember,
	}})

	input := createInput(SplitTypeEqual, []SplitInput{{UserID: "creator"}, {UserID: "bob"}})
	input.CreatorID = "creator"

	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID, "bob"); !errors.Is(err, ErrEditForbidden) {
		t.Fatalf("expected ErrEditForbidden for plain member, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, "admin"); err != nil {
		t.Fatalf("expected admin delete to succeed, got %v", err)
	}
}

func TestUpdatePaymentStatusRules(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := newExpenseService(repo)

	created, err := svc.Create(context.Background(), createInput(SplitTypeEqual, []SplitInput{
		{UserID: "alice"}, {UserID: "bob"},
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	paymentID := created.Payments[0].ID

	if _, err := svc.UpdatePaymentStatus(context.Background(), paymentID, "carol", PaymentCompleted); !errors.Is(err, ErrPaymentForbidden) {
		t.Fatalf("expected ErrPaymentForbidden for third party, got %v", err)
	}

	result, err := svc.UpdatePaymentStatus(context.Background(), paymentID, "bob", "completed")
	if err != nil {
		t.Fatalf("expected payer to settle, got %v", err)
	}
	if result.Status != PaymentCompleted {
		t.Fatalf("expected COMPLETED, got %q", result.Status)
	}

	if _, err := svc.UpdatePaymentStatus(context.Background(), paymentID, "bob", PaymentDeclined); !errors.Is(err, ErrPaymentNotPending) {
		t.Fatalf("expected ErrPaymentNotPending on second transition, got %v", err)
	}

	if _, err := svc.UpdatePaymentStatus(context.Background(), paymentID, "bob", "PENDING"); err == nil {
		t.Fatalf("expected validation error for PENDING target")
	}
}

func TestBalancesRequiresMembership(t *testing.T) {
	svc := newExpenseService(newFakeExpenseRepo())

	_, _, err := svc.Balances(context.Background(), "hh-1", "stranger")
	if !errors.Is(err, household.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}
