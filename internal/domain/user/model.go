package user

import "time"

type User struct {
	ID           string    `gorm:"type:text;primaryKey"`
	Email        string    `gorm:"not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null;default:''"`
	AvatarURL    *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// ProvisionInput creates an account with a caller-chosen ID and no
// credential. Such accounts cannot log in until a password is set.
type ProvisionInput struct {
	ID    string
	Name  string
	Email string
}
