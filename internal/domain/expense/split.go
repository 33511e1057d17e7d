package expense

import (
	"math"

	"roomies-go/internal/apperr"
)

// ComputedSplit is a participant share produced by ComputeSplits, before IDs
// are assigned.
type ComputedSplit struct {
	UserID string
	Amount float64
}

// ComputeSplits turns the raw split inputs into per-member amounts that sum
// exactly to the expense amount. All arithmetic happens in integer cents.
//
//   - EQUAL: the amount is divided evenly; leftover cents go to the earliest
//     participants, one each.
//   - PERCENTAGE: percentages must sum to 100 (within a cent's tolerance);
//     shares are floored and leftover cents go to the largest remainders, so
//     no share can round below zero.
//   - CUSTOM: the given amounts must sum to the expense amount.
func ComputeSplits(splitType string, amount float64, inputs []SplitInput) ([]ComputedSplit, error) {
	if amount <= 0 {
		return nil, apperr.Validation("invalid_amount", "amount must be positive")
	}
	if len(inputs) == 0 {
		return nil, apperr.Validation("invalid_splits", "at least one split participant is required")
	}

	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		if input.UserID == "" {
			return nil, apperr.Validation("invalid_splits", "split userId is required")
		}
		if _, ok := seen[input.UserID]; ok {
			return nil, apperr.Validation("invalid_splits", "duplicate split participant")
		}
		seen[input.UserID] = struct{}{}
	}

	totalCents := toCents(amount)

	switch splitType {
	case SplitTypeEqual:
		return equalSplits(totalCents, inputs), nil
	case SplitTypePercentage:
		return percentageSplits(totalCents, inputs)
	case SplitTypeCustom:
		return customSplits(totalCents, inputs)
	default:
		return nil, apperr.Validation("invalid_split_type", "splitType must be EQUAL, PERCENTAGE or CUSTOM")
	}
}

func equalSplits(totalCents int64, inputs []SplitInput) []ComputedSplit {
	n := int64(len(inputs))
	base := totalCents / n
	remainder := totalCents % n

	result := make([]ComputedSplit, 0, len(inputs))
	for i, input := range inputs {
		share := base
		if int64(i) < remainder {
			share++
		}
		result = append(result, ComputedSplit{UserID: input.UserID, Amount: fromCents(share)})
	}
	return result
}

func percentageSplits(totalCents int64, inputs []SplitInput) ([]ComputedSplit, error) {
	var totalPct float64
	for _, input := range inputs {
		if input.Percentage <= 0 {
			return nil, apperr.Validation("invalid_splits", "split percentages must be positive")
		}
		totalPct += input.Percentage
	}
	if math.Abs(totalPct-100) > 0.01 {
		return nil, apperr.Validation("invalid_splits", "split percentages must sum to 100")
	}

	shares := make([]int64, len(inputs))
	remainders := make([]float64, len(inputs))
	var assigned int64
	for i, input := range inputs {
		exact := float64(totalCents) * input.Percentage / 100
		shares[i] = int64(math.Floor(exact))
		remainders[i] = exact - float64(shares[i])
		assigned += shares[i]
	}

	// Flooring leaves a few cents unassigned; hand them out by largest
	// remainder so every share stays non-negative and the sum is exact.
	leftover := totalCents - assigned
	for ; leftover > 0; leftover-- {
		best := 0
		for i := 1; i < len(remainders); i++ {
			if remainders[i] > remainders[best] {
				best = i
			}
		}
		shares[best]++
		remainders[best] = -1
	}
	for ; leftover < 0; leftover++ {
		best := 0
		for i := 1; i < len(shares); i++ {
			if shares[i] > shares[best] {
				best = i
			}
		}
		shares[best]--
	}

	result := make([]ComputedSplit, 0, len(inputs))
	for i, input := range inputs {
		result = append(result, ComputedSplit{UserID: input.UserID, Amount: fromCents(shares[i])})
	}
	return result, nil
}

func customSplits(totalCents int64, inputs []SplitInput) ([]ComputedSplit, error) {
	result := make([]ComputedSplit, 0, len(inputs))
	var sum int64
	for _, input := range inputs {
		if input.Amount <= 0 {
			return nil, apperr.Validation("invalid_splits", "split amounts must be positive")
		}
		cents := toCents(input.Amount)
		sum += cents
		result = append(result, ComputedSplit{UserID: input.UserID, Amount: fromCents(cents)})
	}
	if sum != totalCents {
		return nil, apperr.Validation("invalid_splits", "split amounts must sum to the expense amount")
	}
	return result, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
