package household

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"roomies-go/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts the household and the creator's ADMIN membership in one
// transaction.
func (s *Service) Create(ctx context.Context, userID, name, address string) (*Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("invalid_request", "name is required")
	}

	h := Household{
		ID:      uuid.NewString(),
		Name:    name,
		Address: strings.TrimSpace(address),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateHousehold(ctx, &h); err != nil {
			return err
		}
		return tx.AddMember(ctx, &Membership{
			HouseholdID: h.ID,
			UserID:      userID,
			Role:        RoleAdmin,
		})
	})
	if err != nil {
		return nil, err
	}

	return &h, nil
}

// Get returns the household if the caller is a member.
func (s *Service) Get(ctx context.Context, householdID, userID string) (*Household, error) {
	if _, err := s.RequireMember(ctx, householdID, userID); err != nil {
		return nil, err
	}
	return s.repo.GetHouseholdByID(ctx, householdID)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Household, error) {
	return s.repo.ListHouseholdsByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, input UpdateHouseholdInput) (*Household, error) {
	if err := s.RequireAdmin(ctx, input.ID, userID); err != nil {
		return nil, err
	}

	h, err := s.repo.GetHouseholdByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.Validation("invalid_request", "name cannot be empty")
		}
		h.Name = name
	}
	if input.Address != nil {
		h.Address = strings.TrimSpace(*input.Address)
	}

	if err := s.repo.UpdateHousehold(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) ListMembers(ctx context.Context, householdID, userID string) ([]MemberProfile, error) {
	if _, err := s.RequireMember(ctx, householdID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListMemberProfiles(ctx, householdID)
}

// AddMember records a membership; used by the invitation accept flow.
func (s *Service) AddMember(ctx context.Context, householdID, userID, role string) error {
	if !IsValidRole(role) {
		role = RoleMember
	}
	return s.repo.AddMember(ctx, &Membership{
		HouseholdID: householdID,
		UserID:      userID,
		Role:        role,
	})
}

// RemoveMember removes targetID from the household. Admins may remove any
// non-admin member; any member may remove themselves, admins included only
// when leaving themselves.
func (s *Service) RemoveMember(ctx context.Context, householdID, callerID, targetID string) error {
	target, err := s.repo.GetMember(ctx, householdID, targetID)
	if err != nil {
		return err
	}

	if callerID != targetID {
		if err := s.RequireAdmin(ctx, householdID, callerID); err != nil {
			return err
		}
		if target.Role == RoleAdmin {
			return ErrCannotRemoveAdmin
		}
	}

	deleted, err := s.repo.DeleteMember(ctx, householdID, targetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}

// GetMember looks up a membership row; ErrNotMember when absent.
func (s *Service) GetMember(ctx context.Context, householdID, userID string) (*Membership, error) {
	member, err := s.repo.GetMember(ctx, householdID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return member, nil
}

func (s *Service) RequireMember(ctx context.Context, householdID, userID string) (*Membership, error) {
	return s.GetMember(ctx, householdID, userID)
}

func (s *Service) RequireAdmin(ctx context.Context, householdID, userID string) error {
	member, err := s.GetMember(ctx, householdID, userID)
	if err != nil {
		return err
	}
	if member.Role != RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}

// AreAllMembers reports whether every userID belongs to the household.
func (s *Service) AreAllMembers(ctx context.Context, householdID string, userIDs []string) (bool, error) {
	if len(userIDs) == 0 {
		return true, nil
	}
	seen := make(map[string]struct{}, len(userIDs))
	unique := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	count, err := s.repo.CountMembersByIDs(ctx, householdID, unique)
	if err != nil {
		return false, err
	}
	return count == int64(len(unique)), nil
}
