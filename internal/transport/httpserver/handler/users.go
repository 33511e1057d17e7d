package handler

import (
	"net/http"

	userdomain "roomies-go/internal/domain/user"
)

type provisionUserRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type provisionUserResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// ProvisionUser registers a credential-less account with a caller-chosen ID.
func (h *Handlers) ProvisionUser(w http.ResponseWriter, r *http.Request) {
	var req provisionUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing_fields", "Missing required fields")
		return
	}

	result, err := h.Users.Provision(r.Context(), userdomain.ProvisionInput{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(w, err, "users.provision", "user_id", req.ID)
		return
	}

	writeJSON(w, http.StatusCreated, provisionUserResponse{
		Message: "User registered successfully",
		User:    toUserResponse(result),
	})
}
