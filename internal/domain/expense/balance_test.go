package expense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expenseWith(creator string, amount float64, splits []Split, payments []Payment) ExpenseWithDetails {
	return ExpenseWithDetails{
		Expense:  Expense{ID: "exp", CreatorID: creator, Amount: amount},
		Splits:   splits,
		Payments: payments,
	}
}

func balanceFor(t *testing.T, balances []MemberBalance, userID string) MemberBalance {
	t.Helper()
	for _, b := range balances {
		if b.UserID == userID {
			return b
		}
	}
	t.Fatalf("no balance for %s", userID)
	return MemberBalance{}
}

func TestComputeBalancesSingleExpense(t *testing.T) {
	expenses := []ExpenseWithDetails{
		expenseWith("alice", 90,
			[]Split{
				{UserID: "alice", Amount: 30},
				{UserID: "bob", Amount: 30},
				{UserID: "carol", Amount: 30},
			},
			[]Payment{
				{UserID: "bob", Amount: 30, Status: PaymentPending},
				{UserID: "carol", Amount: 30, Status: PaymentPending},
			},
		),
	}

	balances, edges := ComputeBalances(expenses)

	alice := balanceFor(t, balances, "alice")
	assert.Equal(t, 90.0, alice.Paid)
	assert.Equal(t, 30.0, alice.Owed)
	assert.Equal(t, 60.0, alice.Net)

	bob := balanceFor(t, balances, "bob")
	assert.Equal(t, -30.0, bob.Net)

	require.Len(t, edges, 2)
	for _, edge := range edges {
		assert.Equal(t, "alice", edge.ToUserID)
		assert.Equal(t, 30.0, edge.Amount)
	}
}

func TestComputeBalancesCompletedPaymentSettles(t *testing.T) {
	expenses := []ExpenseWithDetails{
		expenseWith("alice", 60,
			[]Split{
				{UserID: "alice", Amount: 30},
				{UserID: "bob", Amount: 30},
			},
			[]Payment{
				{UserID: "bob", Amount: 30, Status: PaymentCompleted},
			},
		),
	}

	balances, edges := ComputeBalances(expenses)

	assert.Equal(t, 0.0, balanceFor(t, balances, "alice").Net)
	assert.Equal(t, 0.0, balanceFor(t, balances, "bob").Net)
	assert.Empty(t, edges)
}

func TestComputeBalancesNetsAcrossExpenses(t *testing.T) {
	expenses := []ExpenseWithDetails{
		expenseWith("alice", 40,
			[]Split{{UserID: "alice", Amount: 20}, {UserID: "bob", Amount: 20}},
			[]Payment{{UserID: "bob", Amount: 20, Status: PaymentPending}},
		),
		expenseWith("bob", 10,
			[]Split{{UserID: "alice", Amount: 5}, {UserID: "bob", Amount: 5}},
			[]Payment{{UserID: "alice", Amount: 5, Status: PaymentPending}},
		),
	}

	balances, edges := ComputeBalances(expenses)

	assert.Equal(t, 15.0, balanceFor(t, balances, "alice").Net)
	assert.Equal(t, -15.0, balanceFor(t, balances, "bob").Net)

	require.Len(t, edges, 1)
	assert.Equal(t, "bob", edges[0].FromUserID)
	assert.Equal(t, "alice", edges[0].ToUserID)
	assert.Equal(t, 15.0, edges[0].Amount)
}

func TestSettleEdgesGreedyMatching(t *testing.T) {
	balances := []MemberBalance{
		{UserID: "a", Net: 50},
		{UserID: "b", Net: 10},
		{UserID: "c", Net: -40},
		{UserID: "d", Net: -20},
	}

	edges := settleEdges(balances)

	require.Len(t, edges, 3)
	assert.Equal(t, DebtEdge{FromUserID: "c", ToUserID: "a", Amount: 40}, edges[0])
	assert.Equal(t, DebtEdge{FromUserID: "d", ToUserID: "a", Amount: 10}, edges[1])
	assert.Equal(t, DebtEdge{FromUserID: "d", ToUserID: "b", Amount: 10}, edges[2])

	var total float64
	for _, edge := range edges {
		total += edge.Amount
	}
	assert.Equal(t, 60.0, total)
}

func TestComputeBalancesEmpty(t *testing.T) {
	balances, edges := ComputeBalances(nil)
	assert.Empty(t, balances)
	assert.Empty(t, edges)
}
