package household

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateHousehold(ctx context.Context, h *Household) error
	GetHouseholdByID(ctx context.Context, id string) (*Household, error)
	ListHouseholdsByUser(ctx context.Context, userID string) ([]Household, error)
	UpdateHousehold(ctx context.Context, h *Household) error
	AddMember(ctx context.Context, m *Membership) error
	GetMember(ctx context.Context, householdID, userID string) (*Membership, error)
	ListMemberProfiles(ctx context.Context, householdID string) ([]MemberProfile, error)
	DeleteMember(ctx context.Context, householdID, userID string) (bool, error)
	CountMembersByIDs(ctx context.Context, householdID string, userIDs []string) (int64, error)
}
