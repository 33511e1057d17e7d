package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	taskdomain "roomies-go/internal/domain/task"
	"roomies-go/internal/transport/httpserver/middleware"
)

type createTaskRequest struct {
	HouseholdID    string  `json:"householdId"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	AssigneeID     *string `json:"assigneeId"`
	Priority       string  `json:"priority"`
	DueDate        *string `json:"dueDate"`
	Recurring      bool    `json:"recurring"`
	RecurrenceRule string  `json:"recurrenceRule"`
}

type updateTaskRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	AssigneeID     *string `json:"assigneeId"`
	Status         *string `json:"status"`
	Priority       *string `json:"priority"`
	DueDate        *string `json:"dueDate"`
	Recurring      *bool   `json:"recurring"`
	RecurrenceRule *string `json:"recurrenceRule"`
}

type taskResponse struct {
	ID             string     `json:"id"`
	HouseholdID    string     `json:"householdId"`
	CreatorID      string     `json:"creatorId"`
	AssigneeID     *string    `json:"assigneeId,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Recurring      bool       `json:"recurring"`
	RecurrenceRule string     `json:"recurrenceRule,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type taskListResponse struct {
	Tasks []taskResponse `json:"tasks"`
	Total int64          `json:"total"`
}

func toTaskResponse(t *taskdomain.Task) taskResponse {
	return taskResponse{
		ID:             t.ID,
		HouseholdID:    t.HouseholdID,
		CreatorID:      t.CreatorID,
		AssigneeID:     t.AssigneeID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		DueDate:        t.DueDate,
		Recurring:      t.Recurring,
		RecurrenceRule: t.RecurrenceRule,
		CompletedAt:    t.CompletedAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := parseDateParam(*req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "dueDate must be a date or RFC 3339 timestamp")
			return
		}
		dueDate = parsed
	}

	result, err := h.Tasks.Create(r.Context(), taskdomain.CreateTaskInput{
		HouseholdID:    req.HouseholdID,
		CreatorID:      user.ID,
		AssigneeID:     req.AssigneeID,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       strings.ToUpper(strings.TrimSpace(req.Priority)),
		DueDate:        dueDate,
		Recurring:      req.Recurring,
		RecurrenceRule: strings.ToUpper(strings.TrimSpace(req.RecurrenceRule)),
	})
	if err != nil {
		h.respondError(w, err, "tasks.create", "household_id", req.HouseholdID, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(result))
}

func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
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

	result, total, err := h.Tasks.List(r.Context(), householdID, user.ID, taskdomain.ListFilter{
		Status:     strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))),
		AssigneeID: r.URL.Query().Get("assigneeId"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.respondError(w, err, "tasks.list", "household_id", householdID, "user_id", user.ID)
		return
	}

	response := taskListResponse{Tasks: make([]taskResponse, 0, len(result)), Total: total}
	for i := range result {
		response.Tasks = append(response.Tasks, toTaskResponse(&result[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	taskID := chi.URLParam(r, "id")

	result, err := h.Tasks.Get(r.Context(), taskID, user.ID)
	if err != nil {
		h.respondError(w, err, "tasks.get", "task_id", taskID, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(result))
}

func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	// Raw map pass to distinguish absent fields from explicit nulls for
	// assigneeId and dueDate.
	var raw map[string]any
	if err := decodeRawJSON(r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := taskdomain.UpdateTaskInput{
		ID:      chi.URLParam(r, "id"),
		ActorID: user.ID,
	}
	if _, present := raw["assigneeId"]; present {
		input.AssigneeSet = true
	}
	if _, present := raw["dueDate"]; present {
		input.DueDateSet = true
	}

	var req updateTaskRequest
	if err := remarshal(raw, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input.Title = req.Title
	input.Description = req.Description
	input.AssigneeID = req.AssigneeID
	input.Recurring = req.Recurring
	input.RecurrenceRule = req.RecurrenceRule
	if req.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*req.Status))
		input.Status = &status
	}
	if req.Priority != nil {
		priority := strings.ToUpper(strings.TrimSpace(*req.Priority))
		input.Priority = &priority
	}
	if req.DueDate != nil {
		parsed, err := parseDateParam(*req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "dueDate must be a date or RFC 3339 timestamp")
			return
		}
		input.DueDate = parsed
	}

	result, err := h.Tasks.Update(r.Context(), input)
	if err != nil {
		h.respondError(w, err, "tasks.update", "task_id", input.ID, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(result))
}

func (h *Handlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	taskID := chi.URLParam(r, "id")

	result, err := h.Tasks.Complete(r.Context(), taskID, user.ID)
	if err != nil {
		h.respondError(w, err, "tasks.complete", "task_id", taskID, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(result))
}

func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	taskID := chi.URLParam(r, "id")

	if err := h.Tasks.Delete(r.Context(), taskID, user.ID); err != nil {
		h.respondError(w, err, "tasks.delete", "task_id", taskID, "user_id", user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
