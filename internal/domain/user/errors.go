package user

import "roomies-go/internal/apperr"

var (
	ErrUserNotFound = apperr.NotFound("user_not_found", "user not found")
	ErrEmailTaken   = apperr.Conflict("email_taken", "email already registered")
	ErrIDTaken      = apperr.Conflict("user_id_taken", "user id already registered")
)
