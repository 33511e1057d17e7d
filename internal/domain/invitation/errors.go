package invitation

import "roomies-go/internal/apperr"

var (
	ErrInvitationNotFound = apperr.NotFound("invitation_not_found", "invitation not found")
	ErrDuplicatePending   = apperr.Conflict("duplicate_invitation", "a pending invitation already exists for this email")
	ErrNotInvitee         = apperr.Authorization("not_invitee", "invitation is addressed to someone else")
	ErrNotPending         = apperr.Conflict("invitation_not_pending", "invitation has already been responded to")
	ErrInvitationExpired  = apperr.Conflict("invitation_expired", "invitation has expired")
)
