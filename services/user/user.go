package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinicportal/models"
	"clinicportal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

func (s *DefaultUserService) SaveUser(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	u := models.User{
		Name:  name,
		Email: email,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("signup: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.Repo.Create(ctx, &u); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	utils.GetLogger().Info("user saved", zap.String("userId", u.ID))
	return &u, nil
}

func (s *DefaultUserService) IssueToken(ctx context.Context, email string) (string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("token issuance: %w", err)
	}
	if u == nil {
		return "", ErrUnknownUser
	}
	return utils.GenerateToken(u.ID, u.Email, tokenLifetime)
}

func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if u == nil {
		return nil, "", ErrUnknownUser
	}
	if u.PasswordHash == "" {
		return nil, "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, tokenLifetime)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	return u, token, nil
}

func (s *DefaultUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("admin check: %w", err)
	}
	return u.IsAdmin(), nil
}

func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("user listing: %w", err)
	}
	return users, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("user deletion: %w", err)
	}
	return nil
}

func (s *DefaultUserService) GrantAdmin(ctx context.Context, id string) error {
	if err := s.Repo.SetRole(ctx, id, models.RoleAdmin); err != nil {
		return fmt.Errorf("admin grant: %w", err)
	}
	utils.GetLogger().Info("admin granted", zap.String("userId", id))
	return nil
}
