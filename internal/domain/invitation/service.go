package invitation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"roomies-go/internal/apperr"
	"roomies-go/internal/domain/household"
	"roomies-go/internal/domain/user"
	"roomies-go/internal/email"
	"roomies-go/pkg/logger"
)

// MembershipGuard is the slice of the household service the invitation flow
// needs for authorization.
type MembershipGuard interface {
	RequireAdmin(ctx context.Context, householdID, userID string) error
}

type Service struct {
	repo    Repository
	members MembershipGuard
	mailer  email.Mailer
	ttl     time.Duration
	log     logger.Logger
}

func NewService(repo Repository, members MembershipGuard, mailer email.Mailer, ttl time.Duration, log logger.Logger) *Service {
	return &Service{
		repo:    repo,
		members: members,
		mailer:  mailer,
		ttl:     ttl,
		log:     log,
	}
}

// ListForEmail returns invitations addressed to the given email, newest first,
// joined with household and inviter summaries.
func (s *Service) ListForEmail(ctx context.Context, inviteeEmail string) ([]Detail, error) {
	return s.repo.ListInvitationsByEmail(ctx, user.NormalizeEmail(inviteeEmail))
}

// Create inserts a PENDING invitation. The inviter must be an ADMIN of the
// household; duplicate-pending detection is the store's unique index, not a
// pre-check. The notification email is sent after the insert and its failure
// is logged, never propagated.
func (s *Service) Create(ctx context.Context, input CreateInvitationInput) (*Invitation, error) {
	invEmail := user.NormalizeEmail(input.Email)
	if invEmail == "" || !user.IsValidEmail(invEmail) {
		return nil, apperr.Validation("invalid_email", "a valid email is required")
	}
	if strings.TrimSpace(input.HouseholdID) == "" {
		return nil, apperr.Validation("invalid_request", "householdId is required")
	}

	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if role == "" {
		role = household.RoleMember
	}
	if !household.IsValidRole(role) {
		return nil, apperr.Validation("invalid_role", "role must be ADMIN or MEMBER")
	}

	if err := s.members.RequireAdmin(ctx, input.HouseholdID, input.InviterID); err != nil {
		return nil, err
	}

	inv := Invitation{
		ID:          uuid.NewString(),
		Email:       invEmail,
		HouseholdID: input.HouseholdID,
		InviterID:   input.InviterID,
		Role:        role,
		Status:      StatusPending,
		Message:     strings.TrimSpace(input.Message),
		ExpiresAt:   time.Now().UTC().Add(s.ttl),
	}
	if err := s.repo.CreateInvitation(ctx, &inv); err != nil {
		return nil, err
	}

	s.notify(ctx, &inv)

	return &inv, nil
}

func (s *Service) notify(ctx context.Context, inv *Invitation) {
	msg := email.InvitationMessage{
		To:      inv.Email,
		Message: inv.Message,
	}
	if detail, err := s.repo.GetDetailByID(ctx, inv.ID); err == nil {
		msg.HouseholdName = detail.HouseholdName
		msg.InviterName = detail.InviterName
	}

	if err := s.mailer.SendInvitation(ctx, msg); err != nil {
		s.log.Warn("invitations: email send failed", "err", err, "invitation_id", inv.ID)
	}
}

// Respond transitions a PENDING invitation to ACCEPTED or DECLINED on behalf
// of the invitee. Accepting creates the membership in the same transaction;
// an invitee who is already a member still consumes the invitation.
func (s *Service) Respond(ctx context.Context, invitationID, callerID, callerEmail, status string) (*Invitation, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != StatusAccepted && status != StatusDeclined {
		return nil, apperr.Validation("invalid_status", "status must be ACCEPTED or DECLINED")
	}

	var result Invitation
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		inv, err := tx.GetInvitationByID(ctx, invitationID)
		if err != nil {
			return err
		}
		if !strings.EqualFold(inv.Email, callerEmail) {
			return ErrNotInvitee
		}
		if inv.Status != StatusPending {
			return ErrNotPending
		}
		if time.Now().After(inv.ExpiresAt) {
			return ErrInvitationExpired
		}

		changed, err := tx.UpdateStatus(ctx, inv.ID, StatusPending, status)
		if err != nil {
			return err
		}
		if !changed {
			return ErrNotPending
		}

		if status == StatusAccepted {
			isMember, err := tx.IsMember(ctx, inv.HouseholdID, callerID)
			if err != nil {
				return err
			}
			if !isMember {
				member := household.Membership{
					HouseholdID: inv.HouseholdID,
					UserID:      callerID,
					Role:        inv.Role,
				}
				if err := tx.CreateMembership(ctx, &member); err != nil {
					return err
				}
			}
		}

		inv.Status = status
		result = *inv
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvitationExpired) {
			if _, merr := s.repo.UpdateStatus(ctx, invitationID, StatusPending, StatusExpired); merr != nil {
				s.log.Warn("invitations: expiry mark failed", "err", merr, "invitation_id", invitationID)
			}
		}
		return nil, err
	}

	return &result, nil
}

// ExpireOverdue marks PENDING invitations past their expiry as EXPIRED,
// returning how many rows changed. Run periodically by the scheduler.
func (s *Service) ExpireOverdue(ctx context.Context) (int64, error) {
	return s.repo.ExpirePending(ctx, time.Now().UTC())
}
