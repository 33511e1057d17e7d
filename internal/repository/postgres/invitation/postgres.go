package invitation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	householddomain "roomies-go/internal/domain/household"
	invitationdomain "roomies-go/internal/domain/invitation"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(invitationdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateInvitation(ctx context.Context, inv *invitationdomain.Invitation) error {
	err := r.db.WithContext(ctx).Create(inv).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return invitationdomain.ErrDuplicatePending
	}
	return err
}

func (r *PostgresRepository) GetInvitationByID(ctx context.Context, id string) (*invitationdomain.Invitation, error) {
	var inv invitationdomain.Invitation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitationdomain.ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

const detailSelect = `invitations.*,
	households.name as household_name, households.address as household_address,
	users.name as inviter_name, users.email as inviter_email`

type detailRow struct {
	invitationdomain.Invitation
	HouseholdName    string `gorm:"column:household_name"`
	HouseholdAddress string `gorm:"column:household_address"`
	InviterName      string `gorm:"column:inviter_name"`
	InviterEmail     string `gorm:"column:inviter_email"`
}

func (r *PostgresRepository) GetDetailByID(ctx context.Context, id string) (*invitationdomain.Detail, error) {
	var row detailRow
	err := r.detailQuery(ctx).
		Where("invitations.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitationdomain.ErrInvitationNotFound
		}
		return nil, err
	}
	detail := toDetail(row)
	return &detail, nil
}

func (r *PostgresRepository) ListInvitationsByEmail(ctx context.Context, email string) ([]invitationdomain.Detail, error) {
	var rows []detailRow
	err := r.detailQuery(ctx).
		Where("lower(invitations.email) = lower(?)", email).
		Order("invitations.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	details := make([]invitationdomain.Detail, 0, len(rows))
	for _, row := range rows {
		details = append(details, toDetail(row))
	}
	return details, nil
}

func (r *PostgresRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("invitations").
		Select(detailSelect).
		Joins("join households on households.id = invitations.household_id").
		Joins("join users on users.id = invitations.inviter_id")
}

func toDetail(row detailRow) invitationdomain.Detail {
	return invitationdomain.Detail{
		Invitation:       row.Invitation,
		HouseholdName:    row.HouseholdName,
		HouseholdAddress: row.HouseholdAddress,
		InviterName:      row.InviterName,
		InviterEmail:     row.InviterEmail,
	}
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&invitationdomain.Invitation{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) IsMember(ctx context.Context, householdID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&householddomain.Membership{}).
		Where("household_id = ? AND user_id = ?", householdID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateMembership(ctx context.Context, m *householddomain.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&invitationdomain.Invitation{}).
		Where("status = ? AND expires_at < ?", invitationdomain.StatusPending, cutoff).
		Update("status", invitationdomain.StatusExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
