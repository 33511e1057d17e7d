package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"roomies-go/internal/apperr"
	"roomies-go/internal/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || !IsValidEmail(email) {
		return nil, apperr.Validation("invalid_email", "a valid email is required")
	}
	if name == "" {
		return nil, apperr.Validation("invalid_request", "name is required")
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// Provision creates a credential-less account with a caller-supplied ID.
func (s *Service) Provision(ctx context.Context, input ProvisionInput) (*User, error) {
	id := strings.TrimSpace(input.ID)
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)
	if id == "" || name == "" || email == "" {
		return nil, apperr.Validation("missing_fields", "Missing required fields")
	}
	if !IsValidEmail(email) {
		return nil, apperr.Validation("invalid_email", "a valid email is required")
	}

	if existing, err := s.repo.GetUserByID(ctx, id); err == nil && existing != nil {
		return nil, ErrIDTaken
	} else if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	u := User{
		ID:    id,
		Email: email,
		Name:  name,
	}
	if err := s.repo.CreateUser(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// Authenticate verifies email and password. Unknown email, wrong password and
// credential-less accounts all fail with the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}
	return s.repo.ListUsersByIDs(ctx, ids)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if strings.Contains(domain, "@") || !strings.Contains(domain, ".") {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}
