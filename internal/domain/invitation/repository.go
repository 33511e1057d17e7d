package invitation

import (
	"context"
	"time"

	"roomies-go/internal/domain/household"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// CreateInvitation returns ErrDuplicatePending when the partial unique
	// index on (household_id, email, status=PENDING) rejects the row.
	CreateInvitation(ctx context.Context, inv *Invitation) error
	GetInvitationByID(ctx context.Context, id string) (*Invitation, error)
	GetDetailByID(ctx context.Context, id string) (*Detail, error)
	ListInvitationsByEmail(ctx context.Context, email string) ([]Detail, error)
	// UpdateStatus transitions id from one status to another, reporting
	// whether a row actually changed.
	UpdateStatus(ctx context.Context, id, from, to string) (bool, error)
	IsMember(ctx context.Context, householdID, userID string) (bool, error)
	CreateMembership(ctx context.Context, m *household.Membership) error
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
}
