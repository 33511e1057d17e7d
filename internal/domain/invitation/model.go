package invitation

import "time"

const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusDeclined = "DECLINED"
	StatusExpired  = "EXPIRED"
)

type Invitation struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Email       string    `gorm:"not null"`
	HouseholdID string    `gorm:"type:uuid;index;not null"`
	InviterID   string    `gorm:"type:text;not null"`
	Role        string    `gorm:"type:varchar(16);not null"`
	Status      string    `gorm:"type:varchar(16);not null"`
	Message     string    `gorm:"not null;default:''"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	ExpiresAt   time.Time `gorm:"not null"`
}

// Detail is an invitation joined with household and inviter summaries, the
// shape returned to invitees.
type Detail struct {
	Invitation
	HouseholdName    string
	HouseholdAddress string
	InviterName      string
	InviterEmail     string
}

type CreateInvitationInput struct {
	HouseholdID string
	InviterID   string
	Email       string
	Role        string
	Message     string
}
