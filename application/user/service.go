// Package user handles account registration, authentication, and password
// changes. Passwords are stored as bcrypt hashes; sessions are stateless
// JWTs issued at login.
package user

import (
	"context"
	"errors"

	"bookstore/domain/shared"
	"bookstore/domain/user"
	"bookstore/pkg/auth"
	"bookstore/pkg/clock"
	"bookstore/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ApplicationService coordinates user account operations.
type ApplicationService struct {
	userRepo  user.Repository
	tokens    *auth.TokenService
	publisher EventPublisher
	uow       shared.UnitOfWork
	clock     clock.Clock
}

// NewApplicationService creates the user application service.
func NewApplicationService(
	userRepo user.Repository,
	tokens *auth.TokenService,
	publisher EventPublisher,
	uow shared.UnitOfWork,
	clk clock.Clock,
) *ApplicationService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &ApplicationService{
		userRepo:  userRepo,
		tokens:    tokens,
		publisher: publisher,
		uow:       uow,
		clock:     clk,
	}
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register creates a USER account. The email must be unused, compared
// case-insensitively. A registration event is published after the account
// is committed; a broker failure is logged, not surfaced.
func (s *ApplicationService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var u *user.User
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.FindByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		if existing != nil {
			return user.ErrEmailExists
		}

		now := s.clock.Now()
		u = &user.User{
			ID:        s.userRepo.NextIdentity(),
			Email:     req.Email,
			Password:  string(hash),
			Role:      user.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.userRepo.Save(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	event := UserRegisteredEvent{Email: u.Email, RegisteredAt: u.CreatedAt}
	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		logger.Warn("Failed to publish registration event",
			zap.String("email", u.Email),
			zap.Error(err),
		)
	}

	return toResponse(u), nil
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Login verifies the credentials and issues a JWT. Unknown email and wrong
// password both come back as ErrBadCredentials.
func (s *ApplicationService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return nil, user.ErrBadCredentials
	}

	token, err := s.tokens.GenerateToken(u.Email, u.Role, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: *toResponse(u)}, nil
}

// ChangePasswordRequest is the payload for changing the own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword rehashes the principal's password after verifying the
// current one.
func (s *ApplicationService) ChangePassword(ctx context.Context, principal user.Principal, req ChangePasswordRequest) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.FindByEmail(ctx, principal.Email)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)) != nil {
			return user.ErrBadCredentials
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.UpdatedAt = s.clock.Now()
		return s.userRepo.Save(ctx, u)
	})
}

// EnsureAdmin creates the configured admin account at startup if no
// account with that email exists yet.
func (s *ApplicationService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	admin := &user.User{
		ID:        s.userRepo.NextIdentity(),
		Email:     email,
		Password:  string(hash),
		Role:      user.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		return err
	}
	logger.Info("Admin account created", zap.String("email", email))
	return nil
}

func toResponse(u *user.User) *UserResponse {
	return &UserResponse{ID: u.ID, Email: u.Email, Role: string(u.Role)}
}
