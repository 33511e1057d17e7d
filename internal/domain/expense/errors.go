package expense

import "roomies-go/internal/apperr"

var (
	ErrExpenseNotFound   = apperr.NotFound("expense_not_found", "expense not found")
	ErrPaymentNotFound   = apperr.NotFound("payment_not_found", "payment not found")
	ErrEditForbidden     = apperr.Authorization("expense_edit_forbidden", "only the creator or a household admin can modify this expense")
	ErrPaymentForbidden  = apperr.Authorization("payment_forbidden", "only the payer or the expense creator can update this payment")
	ErrPaymentNotPending = apperr.Conflict("payment_not_pending", "payment has already been settled")
)
