// Package identity handles login, registration and logout, and owns the
// persisted session record.
package identity

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/brewleaf/client/internal/domain/identity"
	"github.com/brewleaf/client/internal/domain/shared"
)

// Validation errors surfaced to the user before any backend call is made
var (
	ErrPasswordMismatch   = shared.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match!")
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "A valid email and password are required")
	ErrInvalidProfile     = shared.NewDomainError("INVALID_PROFILE", "Name, a valid email and a password of at least 6 characters are required")
)

// API exchanges credentials with the backend
type API interface {
	Login(ctx context.Context, email, password string) (*identity.Session, error)
	Register(ctx context.Context, name, email, password string) (*identity.Session, error)
}

// SessionStore persists the session record
type SessionStore interface {
	Get() (*identity.Session, error)
	Set(session *identity.Session) error
	Clear() error
}

// loginInput carries login form fields through validation
type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// registerInput carries registration form fields through validation
type registerInput struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// Service is the auth controller: anonymous → authenticated on success,
// unchanged on failure.
type Service struct {
	api      API
	sessions SessionStore
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new identity service
func NewService(api API, sessions SessionStore, logger *zap.Logger) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		now:      time.Now,
	}
}

// Login validates the credentials, exchanges them with the backend and
// persists the returned session. On failure the stored session is untouched.
func (s *Service) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	input := loginInput{Email: email, Password: password}
	if err := s.validate.Struct(input); err != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Debug("Login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	if err := s.sessions.Set(session); err != nil {
		return nil, err
	}

	s.logger.Info("Logged in", zap.String("name", session.Name))
	return session, nil
}

// Register validates the form, creates the account and persists the
// returned session. The password confirmation check runs client-side before
// anything is sent.
func (s *Service) Register(ctx context.Context, name, email, password, confirmPassword string) (*identity.Session, error) {
	input := registerInput{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}
	if err := s.validate.Struct(input); err != nil {
		if password != confirmPassword {
			return nil, ErrPasswordMismatch
		}
		return nil, ErrInvalidProfile
	}

	session, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.logger.Debug("Registration failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	if err := s.sessions.Set(session); err != nil {
		return nil, err
	}

	s.logger.Info("Registered", zap.String("name", session.Name))
	return session, nil
}

// Logout removes the local session. No server-side invalidation call is
// made; the token simply stops being used.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// Current returns the active session, or nil when none exists or the
// stored one has expired.
func (s *Service) Current() (*identity.Session, error) {
	session, err := s.sessions.Get()
	if err != nil {
		return nil, err
	}
	if !session.Active(s.now()) {
		return nil, nil
	}
	return session, nil
}
