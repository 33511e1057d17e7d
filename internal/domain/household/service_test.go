package household

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memberKey struct {
	householdID string
	userID      string
}

type fakeHouseholdRepo struct {
	households map[string]*Household
	members    map[memberKey]*Membership
}

func newFakeHouseholdRepo() *fakeHouseholdRepo {
	return &fakeHouseholdRepo{
		households: make(map[string]*Household),
		members:    make(map[memberKey]*Membership),
	}
}

func (r *fakeHouseholdRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeHouseholdRepo) CreateHousehold(ctx context.Context, h *Household) error {
	clone := *h
	r.households[h.ID] = &clone
	return nil
}

func (r *fakeHouseholdRepo) GetHouseholdByID(ctx context.Context, id string) (*Household, error) {
	h, ok := r.households[id]
	if !ok {
		return nil, ErrHouseholdNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *fakeHouseholdRepo) ListHouseholdsByUser(ctx context.Context, userID string) ([]Household, error) {
	result := make([]Household, 0)
	for key, member := range r.members {
		if member.UserID != userID {
			continue
		}
		if h, ok := r.households[key.householdID]; ok {
			result = append(result, *h)
		}
	}
	return result, nil
}

func (r *fakeHouseholdRepo) UpdateHousehold(ctx context.Context, h *Household) error {
	if _, ok := r.households[h.ID]; !ok {
		return ErrHouseholdNotFound
	}
	clone := *h
	r.households[h.ID] = &clone
	return nil
}

func (r *fakeHouseholdRepo) AddMember(ctx context.Context, m *Membership) error {
	key := memberKey{householdID: m.HouseholdID, userID: m.UserID}
	if _, ok := r.members[key]; ok {
		return ErrAlreadyMember
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	clone := *m
	r.members[key] = &clone
	return nil
}

func (r *fakeHouseholdRepo) GetMember(ctx context.Context, householdID, userID string) (*Membership, error) {
	m, ok := r.members[memberKey{householdID: householdID, userID: userID}]
	if !ok {
		return nil, ErrMemberNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeHouseholdRepo) ListMemberProfiles(ctx context.Context, householdID string) ([]MemberProfile, error) {
	result := make([]MemberProfile, 0)
	for key, m := range r.members {
		if key.householdID == householdID {
			result = append(result, MemberProfile{
				UserID:   m.UserID,
				Role:     m.Role,
				JoinedAt: m.JoinedAt,
			})
		}
	}
	return result, nil
}

func (r *fakeHouseholdRepo) DeleteMember(ctx context.Context, householdID, userID string) (bool, error) {
	key := memberKey{householdID: householdID, userID: userID}
	if _, ok := r.members[key]; !ok {
		return false, nil
	}
	delete(r.members, key)
	return true, nil
}

func (r *fakeHouseholdRepo) CountMembersByIDs(ctx context.Context, householdID string, userIDs []string) (int64, error) {
	var count int64
	for _, id := range userIDs {
		if _, ok := r.members[memberKey{householdID: householdID, userID: id}]; ok {
			count++
		}
	}
	return count, nil
}

func TestCreateHouseholdMakesCreatorAdmin(t *testing.T) {
	repo := newFakeHouseholdRepo()
	svc := NewService(repo)

	result, err := svc.Create(context.Background(), "user-1", "  Flat 5 ", " Elm Street 1 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Name != "Flat 5" {
		t.Fatalf("expected name trimmed, got %q", result.Name)
	}
	if result.Address != "Elm Street 1" {
		t.Fatalf("expected address trimmed, got %q", result.Address)
	}

	member, ok := repo.members[memberKey{householdID: result.ID, userID: "user-1"}]
	if !ok {
		t.Fatalf("expected creator membership")
	}
	if member.Role != RoleAdmin {
		t.Fatalf("expected ADMIN role, got %q", member.Role)
	}
}

func TestCreateHouseholdEmptyName(t *testing.T) {
	svc := NewService(newFakeHouseholdRepo())
	if _, err := svc.Create(context.Background(), "user-1", "   ", ""); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestGetHouseholdNonMember(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.households["hh-1"] = &Household{ID: "hh-1", Name: "Flat"}
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), "hh-1", "stranger")
	if !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestUpdateHouseholdRequiresAdmin(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.households["hh-1"] = &Household{ID: "hh-1", Name: "Flat"}
	repo.members[memberKey{householdID: "hh-1", userID: "user-1"}] = &Membership{
		HouseholdID: "hh-1", UserID: "user-1", Role: RoleMember,
	}
	svc := NewService(repo)

	name := "Renamed"
	_, err := svc.Update(context.Background(), "user-1", UpdateHouseholdInput{ID: "hh-1", Name: &name})
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestUpdateHouseholdPartial(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.households["hh-1"] = &Household{ID: "hh-1", Name: "Flat", Address: "Old St 1"}
	repo.members[memberKey{householdID: "hh-1", userID: "admin"}] = &Membership{
		HouseholdID: "hh-1", UserID: "admin", Role: RoleAdmin,
	}
	svc := NewService(repo)

	name := " New Name "
	result, err := svc.Update(context.Background(), "admin", UpdateHouseholdInput{ID: "hh-1", Name: &name})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Name != "New Name" {
		t.Fatalf("expected updated name, got %q", result.Name)
	}
	if result.Address != "Old St 1" {
		t.Fatalf("expected address untouched, got %q", result.Address)
	}
}

func TestRemoveMemberRules(t *testing.T) {
	setup := func() (*fakeHouseholdRepo, *Service) {
		repo := newFakeHouseholdRepo()
		repo.households["hh-1"] = &Household{ID: "hh-1", Name: "Flat"}
		repo.members[memberKey{householdID: "hh-1", userID: "admin"}] = &Membership{
			HouseholdID: "hh-1", UserID: "admin", Role: RoleAdmin,
		}
		repo.members[memberKey{householdID: "hh-1", userID: "admin-2"}] = &Membership{
			HouseholdID: "hh-1", UserID: "admin-2", Role: RoleAdmin,
		}
		repo.members[memberKey{householdID: "hh-1", userID: "member"}] = &Membership{
			HouseholdID: "hh-1", UserID: "member", Role: RoleMember,
		}
		return repo, NewService(repo)
	}

	t.Run("admin removes member", func(t *testing.T) {
		repo, svc := setup()
		if err := svc.RemoveMember(context.Background(), "hh-1", "admin", "member"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := repo.members[memberKey{householdID: "hh-1", userID: "member"}]; ok {
			t.Fatalf("expected member removed")
		}
	})

	t.Run("member cannot remove others", func(t *testing.T) {
		_, svc := setup()
		err := svc.RemoveMember(context.Background(), "hh-1", "member", "admin")
		if !errors.Is(err, ErrNotAdmin) {
			t.Fatalf("expected ErrNotAdmin, got %v", err)
		}
	})

	t.Run("admins cannot be removed by others", func(t *testing.T) {
		_, svc := setup()
		err := svc.RemoveMember(context.Background(), "hh-1", "admin", "admin-2")
		if !errors.Is(err, ErrCannotRemoveAdmin) {
			t.Fatalf("expected ErrCannotRemoveAdmin, got %v", err)
		}
	})

	t.Run("member leaves", func(t *testing.T) {
		repo, svc := setup()
		if err := svc.RemoveMember(context.Background(), "hh-1", "member", "member"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := repo.members[memberKey{householdID: "hh-1", userID: "member"}]; ok {
			t.Fatalf("expected member removed")
		}
	})

	t.Run("admin leaves", func(t *testing.T) {
		_, svc := setup()
		if err := svc.RemoveMember(context.Background(), "hh-1", "admin", "admin"); err != nil {
			t.Fatalf("expected admins to be able to leave, got %v", err)
		}
	})
}

func TestAreAllMembersDeduplicates(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.members[memberKey{householdID: "hh-1", userID: "a"}] = &Membership{HouseholdID: "hh-1", UserID: "a", Role: RoleMember}
	repo.members[memberKey{householdID: "hh-1", userID: "b"}] = &Membership{HouseholdID: "hh-1", UserID: "b", Role: RoleMember}
	svc := NewService(repo)

	ok, err := svc.AreAllMembers(context.Background(), "hh-1", []string{"a", "a", "b"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatalf("expected all members")
	}

	ok, err = svc.AreAllMembers(context.Background(), "hh-1", []string{"a", "stranger"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatalf("expected stranger to fail membership check")
	}
}
