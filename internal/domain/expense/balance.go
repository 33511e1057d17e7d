package expense

import "sort"

// MemberBalance aggregates what one member paid and owes across a household's
// expenses. Net > 0 means the member is owed money.
type MemberBalance struct {
	UserID string
	Paid   float64
	Owed   float64
	Net    float64
}

// DebtEdge is one suggested settlement transfer.
type DebtEdge struct {
	FromUserID string
	ToUserID   string
	Amount     float64
}

// ComputeBalances derives per-member net balances and a simplified
// who-pays-whom edge list from expenses, their splits and COMPLETED payments.
//
// The expense creator fronted the full amount; each split holder owes their
// share; a completed payment moves money from the payer back to the creator.
// Settlement edges are produced by greedily matching debtors against
// creditors, both ordered by magnitude.
func ComputeBalances(expenses []ExpenseWithDetails) ([]MemberBalance, []DebtEdge) {
	paid := make(map[string]int64)
	owed := make(map[string]int64)

	for _, exp := range expenses {
		paid[exp.CreatorID] += toCents(exp.Amount)
		for _, split := range exp.Splits {
			owed[split.UserID] += toCents(split.Amount)
		}
		for _, payment := range exp.Payments {
			if payment.Status != PaymentCompleted {
				continue
			}
			cents := toCents(payment.Amount)
			paid[payment.UserID] += cents
			owed[exp.CreatorID] += cents
		}
	}

	members := make(map[string]struct{}, len(paid)+len(owed))
	for id := range paid {
		members[id] = struct{}{}
	}
	for id := range owed {
		members[id] = struct{}{}
	}

	balances := make([]MemberBalance, 0, len(members))
	for id := range members {
		balances = append(balances, MemberBalance{
			UserID: id,
			Paid:   fromCents(paid[id]),
			Owed:   fromCents(owed[id]),
			Net:    fromCents(paid[id] - owed[id]),
		})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].UserID < balances[j].UserID })

	return balances, settleEdges(balances)
}

type partyBalance struct {
	userID string
	cents  int64
}

func settleEdges(balances []MemberBalance) []DebtEdge {
	var debtors, creditors []partyBalance
	for _, bal := range balances {
		cents := toCents(bal.Net)
		switch {
		case cents < 0:
			debtors = append(debtors, partyBalance{userID: bal.UserID, cents: -cents})
		case cents > 0:
			creditors = append(creditors, partyBalance{userID: bal.UserID, cents: cents})
		}
	}

	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].cents != debtors[j].cents {
			return debtors[i].cents > debtors[j].cents
		}
		return debtors[i].userID < debtors[j].userID
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].cents != creditors[j].cents {
			return creditors[i].cents > creditors[j].cents
		}
		return creditors[i].userID < creditors[j].userID
	})

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].cents
		if creditors[j].cents < amount {
			amount = creditors[j].cents
		}

		if amount > 0 {
			edges = append(edges, DebtEdge{
				FromUserID: debtors[i].userID,
				ToUserID:   creditors[j].userID,
				Amount:     fromCents(amount),
			})
		}

		debtors[i].cents -= amount
		creditors[j].cents -= amount
		if debtors[i].cents == 0 {
			i++
		}
		if creditors[j].cents == 0 {
			j++
		}
	}

	return edges
}
