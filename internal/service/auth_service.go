package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/bloodconnect/internal/auth"
	"github.com/spec-kit/bloodconnect/internal/config"
	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/repository"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

// User-facing messages for session flows.
const (
	MsgRegistered         = "Registration successful! Please login."
	MsgLoggedIn           = "Successfully logged in!"
	MsgLoggedOut          = "Successfully logged out!"
	MsgInvalidCredentials = "Invalid email or password."
)

// RegistrationInput carries the sign-up form.
type RegistrationInput struct {
	Email           string
	Username        string
	UserType        domain.UserType
	FirstName       string
	LastName        string
	PhoneNumber     string
	Address         string
	City            string
	State           string
	Country         string
	Password        string
	PasswordConfirm string
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	revoked    auth.RevocationStore
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.RevocationStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoked:    deps.Revocations,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterUser creates a donor or receiver account with a hashed password.
func (s *AuthService) RegisterUser(ctx context.Context, input RegistrationInput) (*domain.User, error) {
	user := &domain.User{
		Email:    strings.TrimSpace(input.Email),
		Username: strings.TrimSpace(input.Username),
		UserType: input.UserType,
	}
	user.ApplyContactDetails(domain.ContactDetails{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		Country:     input.Country,
	})

	if errs := domain.ValidateRegistration(user, input.Password, input.PasswordConfirm); !errs.Empty() {
		return nil, apperrors.NewFieldValidationError(errs, nil)
	}

	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return nil, emailTaken()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTaken()
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates by email and password and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
		}
		return nil, nil, apperrors.MapError(err)
	}
	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	if !ok {
		return nil, nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
	}
	session, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	return user, session, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if s.revoked == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func emailTaken() error {
	return apperrors.NewFieldValidationError(map[string]string{"email": "A user with that email already exists."}, nil)
}
