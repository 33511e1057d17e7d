package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	expensedomain "roomies-go/internal/domain/expense"
	"roomies-go/internal/transport/httpserver/middleware"
)

type splitRequest struct {
	UserID     string  `json:"userId"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type expenseRequest struct {
	HouseholdID string         `json:"householdId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	Date        string         `json:"date"`
	SplitType   string         `json:"splitType"`
	Splits      []splitRequest `json:"splits"`
}

type updatePaymentRequest struct {
	Status string `json:"status"`
}

type splitResponse struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
}

type paymentResponse struct {
	ID        string  `json:"id"`
	ExpenseID string  `json:"expenseId"`
	UserID    string  `json:"userId"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

type expenseResponse struct {
	ID          string            `json:"id"`
	HouseholdID string            `json:"householdId"`
	CreatorID   string            `json:"creatorId"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Amount      float64           `json:"amount"`
	Date        string            `json:"date"`
	SplitType   string            `json:"splitType"`
	Splits      []splitResponse   `json:"splits"`
	Payments    []paymentResponse `json:"payments"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type expenseListResponse struct {
	Expenses []expenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
}

type balanceResponse struct {
	UserID string  `json:"userId"`
	Paid   float64 `json:"paid"`
	Owed   float64 `json:"owed"`
	Net    float64 `json:"net"`
}

type debtEdgeResponse struct {
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	Amount     float64 `json:"amount"`
}

type balancesResponse struct {
	Balances    []balanceResponse  `json:"balances"`
	Settlements []debtEdgeResponse `json:"settlements"`
}

func toPaymentResponse(p *expensedomain.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		ExpenseID: p.ExpenseID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		Status:    p.Status,
	}
}

func toExpenseResponse(e *expensedomain.ExpenseWithDetails) expenseResponse {
	splits := make([]splitResponse, 0, len(e.Splits))
	for _, s := range e.Splits {
		splits = append(splits, splitResponse{ID: s.ID, UserID: s.UserID, Amount: s.Amount})
	}
	payments := make([]paymentResponse, 0, len(e.Payments))
	for i := range e.Payments {
		payments = append(payments, toPaymentResponse(&e.Payments[i]))
	}
	return expenseResponse{
		ID:          e.ID,
		HouseholdID: e.HouseholdID,
		CreatorID:   e.CreatorID,
		Title:       e.Title,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date.Format("2006-01-02"),
		SplitType:   e.SplitType,
		Splits:      splits,
		Payments:    payments,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toSplitInputs(splits []splitRequest) []expensedomain.SplitInput {
	inputs := make([]expensedomain.SplitInput, 0, len(splits))
	for _, s := range splits {
		inputs = append(inputs, expensedomain.SplitInput{
			UserID:     s.UserID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		})
	}
	return inputs
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	result, err := h.Expenses.Create(r.Context(), expensedomain.CreateExpenseInput{
		HouseholdID: req.HouseholdID,
		CreatorID:   user.ID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		SplitType:   strings.ToUpper(strings.TrimSpace(req.SplitType)),
		Splits:      toSplitInputs(req.Splits),
	})
	if err != nil {
		h.respondError(w, err, "expenses.create",
			"household_id", req.HouseholdID, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(result))
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	householdID := r.URL.Query().Get("householdId")
	if householdID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "householdId is required")
		return
	}

	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must be YYYY-MM-DD")
		return
	}
	limit, err := parseIntParam(r.URL.Query().Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "limit must be an integer")
		return
	}
	offset, err := parseIntParam(r.URL.Query().Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "offset must be an integer")
		return
	}

	result, total, err := h.Expenses.List(r.Context(), householdID, user.ID, expensedomain.ListFilter{
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.respondError(w, err, "expenses.list", "household_id", householdID, "user_id", user.ID)
		return
	}

	response := expenseListResponse{Expenses: make([]expenseResponse, 0, len(result)), Total: total}
	for i := range result {
		response.Expenses = append(response.Expenses, toExpenseResponse(&result[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	expenseID := chi.URLParam(r, "id")

	result, err := h.Expenses.Get(r.Context(), expenseID, user.ID)
	if err != nil {
		h.respondError(w, err, "expenses.get", "expense_id", expenseID, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(result))
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	expenseID := chi.URLParam(r, "id")
	result, err := h.Expenses.Update(r.Context(), expensedomain.UpdateExpenseInput{
		ID:          expenseID,
		ActorID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		SplitType:   strings.ToUpper(strings.TrimSpace(req.SplitType)),
		Splits:      toSplitInputs(req.Splits),
	})
	if err != nil {
		h.respondError(w, err, "expenses.update", "expense_id", expenseID, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(result))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	expenseID := chi.URLParam(r, "id")

	if err := h.Expenses.Delete(r.Context(), expenseID, user.ID); err != nil {
		h.respondError(w, err, "expenses.delete", "expense_id", expenseID, "user_id", user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	paymentID := chi.URLParam(r, "id")
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	result, err := h.Expenses.UpdatePaymentStatus(r.Context(), paymentID, user.ID, status)
	if err != nil {
		h.respondError(w, err, "payments.update",
			"payment_id", paymentID, "user_id", user.ID, "status", status)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(result))
}

func (h *Handlers) HouseholdBalances(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	householdID := r.URL.Query().Get("householdId")
	if householdID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "householdId is required")
		return
	}

	balances, edges, err := h.Expenses.Balances(r.Context(), householdID, user.ID)
	if err != nil {
		h.respondError(w, err, "expenses.balances", "household_id", householdID, "user_id", user.ID)
		return
	}

	response := balancesResponse{
		Balances:    make([]balanceResponse, 0, len(balances)),
		Settlements: make([]debtEdgeResponse, 0, len(edges)),
	}
	for _, b := range balances {
		response.Balances = append(response.Balances, balanceResponse{
			UserID: b.UserID,
			Paid:   b.Paid,
			Owed:   b.Owed,
			Net:    b.Net,
		})
	}
	for _, e := range edges {
		response.Settlements = append(response.Settlements, debtEdgeResponse{
			FromUserID: e.FromUserID,
			ToUserID:   e.ToUserID,
			Amount:     e.Amount,
		})
	}
	writeJSON(w, http.StatusOK, response)
}
