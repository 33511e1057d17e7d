package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	invitationdomain "roomies-go/internal/domain/invitation"
	"roomies-go/internal/transport/httpserver/middleware"
)

type createInvitationRequest struct {
	Email       string `json:"email"`
	HouseholdID string `json:"householdId"`
	Role        string `json:"role"`
	Message     string `json:"message"`
}

type respondInvitationRequest struct {
	Status string `json:"status"`
}

type invitationResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	HouseholdID string    `json:"householdId"`
	InviterID   string    `json:"inviterId"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type invitationSummary struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
}

type invitationDetailResponse struct {
	invitationResponse
	Household invitationSummary `json:"household"`
	Inviter   invitationSummary `json:"inviter"`
}

func toInvitationResponse(inv *invitationdomain.Invitation) invitationResponse {
	return invitationResponse{
		ID:          inv.ID,
		Email:       inv.Email,
		HouseholdID: inv.HouseholdID,
		InviterID:   inv.InviterID,
		Role:        inv.Role,
		Status:      inv.Status,
		Message:     inv.Message,
		CreatedAt:   inv.CreatedAt,
		ExpiresAt:   inv.ExpiresAt,
	}
}

func toInvitationDetailResponse(detail invitationdomain.Detail) invitationDetailResponse {
	return invitationDetailResponse{
		invitationResponse: toInvitationResponse(&detail.Invitation),
		Household: invitationSummary{
			Name:    detail.HouseholdName,
			Address: detail.HouseholdAddress,
		},
		Inviter: invitationSummary{
			Name:  detail.InviterName,
			Email: detail.InviterEmail,
		},
	}
}

// ListInvitations returns invitations addressed to the session email.
func (h *Handlers) ListInvitations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Invitations.ListForEmail(r.Context(), user.Email)
	if err != nil {
		h.respondError(w, err, "invitations.list", "user_id", user.ID)
		return
	}

	response := make([]invitationDetailResponse, 0, len(result))
	for _, detail := range result {
		response = append(response, toInvitationDetailResponse(detail))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createInvitationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Invitations.Create(r.Context(), invitationdomain.CreateInvitationInput{
		HouseholdID: req.HouseholdID,
		InviterID:   user.ID,
		Email:       req.Email,
		Role:        req.Role,
		Message:     req.Message,
	})
	if err != nil {
		h.respondError(w, err, "invitations.create",
			"household_id", req.HouseholdID, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toInvitationResponse(result))
}

func (h *Handlers) RespondInvitation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req respondInvitationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	invitationID := chi.URLParam(r, "id")
	result, err := h.Invitations.Respond(r.Context(), invitationID, user.ID, user.Email, req.Status)
	if err != nil {
		h.respondError(w, err, "invitations.respond",
			"invitation_id", invitationID, "user_id", user.ID, "status", req.Status)
		return
	}

	writeJSON(w, http.StatusOK, toInvitationResponse(result))
}
