package household

import "roomies-go/internal/apperr"

var (
	ErrHouseholdNotFound = apperr.NotFound("household_not_found", "household not found")
	ErrMemberNotFound    = apperr.NotFound("member_not_found", "member not found")
	ErrNotMember         = apperr.Authorization("not_member", "not a member of this household")
	ErrNotAdmin          = apperr.Authorization("not_admin", "admin role required")
	ErrAlreadyMember     = apperr.Conflict("already_member", "already a member of this household")
	ErrCannotRemoveAdmin = apperr.Conflict("cannot_remove_admin", "admins cannot be removed")
)
