package user

import (
	"context"
	"errors"

	userRepo "clinicportal/database/repository/user"
	"clinicportal/models"
)

// ErrUnknownUser is returned when token issuance or login targets an email
// with no account.
var ErrUnknownUser = errors.New("no account for this email")

// ErrBadCredentials is returned when a password does not match.
var ErrBadCredentials = errors.New("invalid email or password")

// ErrEmailRequired is returned when signup lacks an email address.
var ErrEmailRequired = errors.New("email is required")

// UserService defines business logic for portal accounts.
type UserService interface {
	// SaveUser records an account at signup. Saving an email that already
	// exists is a no-op returning the existing account.
	SaveUser(ctx context.Context, name, email, password string) (*models.User, error)
	// IssueToken signs a JWT for an existing account's email.
	IssueToken(ctx context.Context, email string) (string, error)
	// Authenticate verifies a password login and returns the account with
	// a fresh token.
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
	// IsAdmin reports whether the email belongs to an admin account.
	IsAdmin(ctx context.Context, email string) (bool, error)
	// GetAllUsers lists every account (admin operation).
	GetAllUsers(ctx context.Context) ([]models.User, error)
	// DeleteUser removes an account (admin operation).
	DeleteUser(ctx context.Context, id string) error
	// GrantAdmin promotes an account to the admin role (admin operation).
	GrantAdmin(ctx context.Context, id string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
