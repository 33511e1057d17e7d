package user

import "context"

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsersByIDs(ctx context.Context, ids []string) ([]User, error)
	UpdateUser(ctx context.Context, user *User) error
}
