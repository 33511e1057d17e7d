package task

import (
	"strconv"
	"strings"
	"time"

	"roomies-go/internal/apperr"
)

const (
	RuleDaily      = "DAILY"
	RuleWeekly     = "WEEKLY"
	RuleBiweekly   = "BIWEEKLY"
	RuleMonthly    = "MONTHLY"
	ruleEveryNDays = "EVERY_N_DAYS"
)

var ErrInvalidRecurrenceRule = apperr.Validation("invalid_recurrence_rule", "recurrence rule must be DAILY, WEEKLY, BIWEEKLY, MONTHLY or EVERY_N_DAYS:n")

// ParseRecurrenceRule validates a rule string and normalizes its casing.
func ParseRecurrenceRule(rule string) (string, error) {
	rule = strings.ToUpper(strings.TrimSpace(rule))
	switch rule {
	case RuleDaily, RuleWeekly, RuleBiweekly, RuleMonthly:
		return rule, nil
	}

	prefix, arg, ok := strings.Cut(rule, ":")
	if !ok || prefix != ruleEveryNDays {
		return "", ErrInvalidRecurrenceRule
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return "", ErrInvalidRecurrenceRule
	}
	return ruleEveryNDays + ":" + strconv.Itoa(n), nil
}

// NextDueDate advances a due date by one recurrence interval. The rule must
// have passed ParseRecurrenceRule.
func NextDueDate(rule string, from time.Time) time.Time {
	switch rule {
	case RuleDaily:
		return from.AddDate(0, 0, 1)
	case RuleWeekly:
		return from.AddDate(0, 0, 7)
	case RuleBiweekly:
		return from.AddDate(0, 0, 14)
	case RuleMonthly:
		return from.AddDate(0, 1, 0)
	}

	if _, arg, ok := strings.Cut(rule, ":"); ok {
		if n, err := strconv.Atoi(arg); err == nil && n >= 1 {
			return from.AddDate(0, 0, n)
		}
	}
	return from.AddDate(0, 0, 1)
}
