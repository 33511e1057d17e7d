package household

import "time"

const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

type Household struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Address   string    `gorm:"not null;default:''"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Membership struct {
	HouseholdID string    `gorm:"type:uuid;primaryKey"`
	UserID      string    `gorm:"type:text;primaryKey"`
	Role        string    `gorm:"type:varchar(16);not null"`
	JoinedAt    time.Time `gorm:"autoCreateTime"`
}

// MemberProfile is a membership joined with the member's user summary.
type MemberProfile struct {
	UserID    string
	Role      string
	JoinedAt  time.Time
	Name      string
	Email     string
	AvatarURL *string
}

type UpdateHouseholdInput struct {
	ID      string
	Name    *string
	Address *string
}

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}
