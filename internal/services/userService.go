package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository"
)

type UserService struct {
	users  repository.UserStore
	tokens *TokenService
}

func NewUserService(users repository.UserStore, tokens *TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Upsert creates or updates the user keyed by email. The role in the
// payload is ignored; it only changes through Promote.
func (s *UserService) Upsert(ctx context.Context, user models.User) (*models.User, error) {
	user.Email = normalizeEmail(user.Email)
	if user.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	user.Role = ""
	stored, err := s.users.UpsertByEmail(ctx, &user)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return stored, nil
}

// SignIn upserts the user and issues an access token for it.
func (s *UserService) SignIn(ctx context.Context, user models.User) (*models.User, string, error) {
	stored, err := s.Upsert(ctx, user)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(stored.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return stored, token, nil
}

// IssueToken returns a token for an already registered email.
func (s *UserService) IssueToken(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrUnknownIdentity
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	return s.tokens.Issue(user.Email)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, normalizeEmail(email))
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, objID)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, name string, profile models.Profile) (*models.User, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateProfile(ctx, objID, name, profile)
}

// Promote grants the admin role. Promoting an admin again is a no-op.
func (s *UserService) Promote(ctx context.Context, id string) (*models.User, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.users.SetRole(ctx, objID, models.RoleAdmin)
}

// PromoteByEmail is used by the CLI to bootstrap the first admin.
func (s *UserService) PromoteByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return s.users.SetRole(ctx, user.ID, models.RoleAdmin)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, objID)
}

// IsAdmin reports false, without error, for unknown emails.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
