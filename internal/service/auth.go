package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"employee-directory/internal/config"
	"employee-directory/internal/domain"
	"employee-directory/internal/logging"
	"employee-directory/internal/model"
	"employee-directory/internal/repository"
	"employee-directory/internal/util"

	"gorm.io/gorm"
)

type AuthService struct {
	users     *repository.UserRepository
	secret    []byte
	ttl       time.Duration
	cost      int
	dummyHash string
	log       logging.Logger
}

func NewAuthService(users *repository.UserRepository, cfg config.JWTConfig, log logging.Logger) (*AuthService, error) {
	// Compared against on unknown emails so that both login failure
	// branches do one bcrypt comparison.
	dummy, err := util.HashPassword("employee-directory/dummy", cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("init dummy hash: %w", err)
	}

	ttl := cfg.TokenTTL()
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &AuthService{
		users:     users,
		secret:    []byte(cfg.Secret),
		ttl:       ttl,
		cost:      cfg.BcryptCost,
		dummyHash: dummy,
		log:       log,
	}, nil
}

// Register creates the user and returns a token for it.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", domain.NewValidationError("Please provide all required fields")
	}
	if len(s.secret) == 0 {
		return "", domain.NewServerConfigError("Server configuration error: JWT secret is not set")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", domain.NewInternalError("Server error", err)
	}
	if exists {
		return "", domain.NewConflictError("User already exists")
	}

	hash, err := util.HashPassword(password, s.cost)
	if err != nil {
		return "", domain.NewInternalError("Server error", err)
	}

	user := &model.User{Username: username, Email: email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", domain.NewConflictError("User already exists")
		}
		return "", domain.NewInternalError("Server error", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(user.ID)
}

// Login verifies the credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.NewValidationError("Please provide both email and password")
	}
	if len(s.secret) == 0 {
		return "", domain.NewServerConfigError("Server configuration error: JWT secret is not set")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return "", domain.NewInternalError("Server error", err)
		}
		_ = util.CheckPassword(s.dummyHash, password)
		return "", domain.NewAuthError("Invalid credentials")
	}

	if err := util.CheckPassword(user.Password, password); err != nil {
		return "", domain.NewAuthError("Invalid credentials")
	}

	return s.issue(user.ID)
}

// Me returns the user a validated token belongs to.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("User not found")
		}
		return nil, domain.NewInternalError("Server error", err)
	}
	return user, nil
}

// TTL is the lifetime of tokens this service issues.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

func (s *AuthService) issue(userID string) (string, error) {
	token, err := util.GenerateToken(userID, s.secret, s.ttl)
	if err != nil {
		return "", domain.NewInternalError("Server error", err)
	}
	return token, nil
}
