package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	householddomain "roomies-go/internal/domain/household"
	"roomies-go/internal/transport/httpserver/middleware"
)

type createHouseholdRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type updateHouseholdRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

type householdResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type memberResponse struct {
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
}

func toHouseholdResponse(h *householddomain.Household) householdResponse {
	return householdResponse{
		ID:        h.ID,
		Name:      h.Name,
		Address:   h.Address,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

func toMemberResponse(m householddomain.MemberProfile) memberResponse {
	return memberResponse{
		UserID:    m.UserID,
		Role:      m.Role,
		JoinedAt:  m.JoinedAt,
		Name:      m.Name,
		Email:     m.Email,
		AvatarURL: m.AvatarURL,
	}
}

func (h *Handlers) CreateHousehold(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createHouseholdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	result, err := h.Households.Create(r.Context(), user.ID, req.Name, req.Address)
	if err != nil {
		h.respondError(w, err, "households.create", "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toHouseholdResponse(result))
}

func (h *Handlers) ListHouseholds(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Households.ListForUser(r.Context(), user.ID)
	if err != nil {
		h.respondError(w, err, "households.list", "user_id", user.ID)
		return
	}

	response := make([]householdResponse, 0, len(result))
	for i := range result {
		response = append(response, toHouseholdResponse(&result[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetHousehold(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	householdID := chi.URLParam(r, "id")

	result, err := h.Households.Get(r.Context(), householdID, user.ID)
	if err != nil {
		h.respondError(w, err, "households.get", "household_id", householdID, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toHouseholdResponse(result))
}

func (h *Handlers) UpdateHousehold(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateHouseholdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Households.Update(r.Context(), user.ID, householddomain.UpdateHouseholdInput{
		ID:      chi.URLParam(r, "id"),
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		h.respondError(w, err, "households.update", "household_id", chi.URLParam(r, "id"), "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toHouseholdResponse(result))
}

func (h *Handlers) ListHouseholdMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	householdID := chi.URLParam(r, "id")

	result, err := h.Households.ListMembers(r.Context(), householdID, user.ID)
	if err != nil {
		h.respondError(w, err, "households.members", "household_id", householdID, "user_id", user.ID)
		return
	}

	response := make([]memberResponse, 0, len(result))
	for _, member := range result {
		response = append(response, toMemberResponse(member))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) RemoveHouseholdMember(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	householdID := chi.URLParam(r, "id")
	targetID := chi.URLParam(r, "user_id")

	if err := h.Households.RemoveMember(r.Context(), householdID, user.ID, targetID); err != nil {
		h.respondError(w, err, "households.remove_member",
			"household_id", householdID, "user_id", user.ID, "target_id", targetID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
