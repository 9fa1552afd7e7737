// Package users implements the identity store: registration, credential
// verification, token issuance and profile management.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
	"github.com/mzhadan/pomotrack/internal/server/auth"
	"github.com/mzhadan/pomotrack/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken and ErrUsernameTaken both match common.ErrorConflict;
	// they exist so the transport layer can word the two 409s differently.
	ErrEmailTaken    = fmt.Errorf("email already registered: %w", common.ErrorConflict)
	ErrUsernameTaken = fmt.Errorf("username already taken: %w", common.ErrorConflict)
)

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
	}
}

// Register creates a new account. Email is checked before username so the
// caller always learns about an email conflict first.
func (s *Service) Register(ctx context.Context, email, username, password, name string) (*User, error) {

	if email == "" || username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if taken {
		return nil, ErrEmailTaken
	}

	taken, err = s.repo.UsernameExists(ctx, username, "")
	if err != nil {
		return nil, common.ErrorInternal
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	now := time.Now().UTC()
	user := &User{
		Email:        email,
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		UserType:     UserTypeUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastLoginAt:  now,
		Version:      1,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, common.ErrorConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a bearer token whose subject is
// the user id. A successful login counts as a mutation: lastLoginAt,
// updatedAt and version are bumped atomically before the token is returned.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	if err := s.repo.TouchLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile changes name and/or username; nil leaves a field untouched.
// Email, credentials and user type are immutable through this path.
func (s *Service) UpdateProfile(ctx context.Context, userID string, name, username *string) error {

	if name == nil && username == nil {
		return common.ErrorNoChange
	}

	if username != nil {
		if *username == "" {
			return common.ErrorValidation
		}
		taken, err := s.repo.UsernameExists(ctx, *username, userID)
		if err != nil {
			return common.ErrorInternal
		}
		if taken {
			return ErrUsernameTaken
		}
	}

	err := s.repo.UpdateProfile(ctx, userID, name, username, time.Now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}
