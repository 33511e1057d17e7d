package household

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	householddomain "roomies-go/internal/domain/household"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(householddomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateHousehold(ctx context.Context, h *householddomain.Household) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *PostgresRepository) GetHouseholdByID(ctx context.Context, id string) (*householddomain.Household, error) {
	var h householddomain.Household
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, householddomain.ErrHouseholdNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *PostgresRepository) ListHouseholdsByUser(ctx context.Context, userID string) ([]householddomain.Household, error) {
	var households []householddomain.Household
	err := r.db.WithContext(ctx).
		Table("households").
		Select("households.*").
		Joins("join memberships on memberships.household_id = households.id").
		Where("memberships.user_id = ?", userID).
		Order("memberships.joined_at asc").
		Find(&households).Error
	if err != nil {
		return nil, err
	}
	return households, nil
}

func (r *PostgresRepository) UpdateHousehold(ctx context.Context, h *householddomain.Household) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *PostgresRepository) AddMember(ctx context.Context, m *householddomain.Membership) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return householddomain.ErrAlreadyMember
	}
	return err
}

func (r *PostgresRepository) GetMember(ctx context.Context, householdID, userID string) (*householddomain.Membership, error) {
	var m householddomain.Membership
	err := r.db.WithContext(ctx).
		Where("household_id = ? AND user_id = ?", householdID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, householddomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) ListMemberProfiles(ctx context.Context, householdID string) ([]householddomain.MemberProfile, error) {
	type memberRow struct {
		UserID    string    `gorm:"column:user_id"`
		Role      string    `gorm:"column:role"`
		JoinedAt  time.Time `gorm:"column:joined_at"`
		Name      string    `gorm:"column:name"`
		Email     string    `gorm:"column:email"`
		AvatarURL *string   `gorm:"column:avatar_url"`
	}

	var rows []memberRow
	err := r.db.WithContext(ctx).
		Table("memberships").
		Select("memberships.user_id, memberships.role, memberships.joined_at, users.name, users.email, users.avatar_url").
		Joins("join users on users.id = memberships.user_id").
		Where("memberships.household_id = ?", householdID).
		Order("memberships.joined_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	members := make([]householddomain.MemberProfile, 0, len(rows))
	for _, row := range rows {
		members = append(members, householddomain.MemberProfile{
			UserID:    row.UserID,
			Role:      row.Role,
			JoinedAt:  row.JoinedAt,
			Name:      row.Name,
			Email:     row.Email,
			AvatarURL: row.AvatarURL,
		})
	}
	return members, nil
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, householdID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("household_id = ? AND user_id = ?", householdID, userID).
		Delete(&householddomain.Membership{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) CountMembersByIDs(ctx context.Context, householdID string, userIDs []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&householddomain.Membership{}).
		Where("household_id = ? AND user_id IN ?", householdID, userIDs).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
