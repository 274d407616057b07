package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodconnect/internal/api/dto"
	"github.com/spec-kit/bloodconnect/internal/auth"
	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/service"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

// UsersHandler exposes registration and session endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if fields := dto.Validate(req); fields != nil {
		return apperrors.NewFieldValidationError(fields, req.Echo())
	}

	user, err := h.auth.RegisterUser(c.UserContext(), service.RegistrationInput{
		Email:           req.Email,
		Username:        req.Username,
		UserType:        domain.UserType(req.UserType),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Country:         req.Country,
		Password:        req.Password1,
		PasswordConfirm: req.Password2,
	})
	if err != nil {
		return withForm(err, req.Echo())
	}

	return c.Status(http.StatusCreated).JSON(dto.Success(userResponse(user), "/login", service.MsgRegistered))
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if fields := dto.Validate(req); fields != nil {
		return apperrors.NewFieldValidationError(fields, map[string]any{"email": req.Email})
	}

	user, session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.Success(fiber.Map{
		"user": userResponse(user),
		"auth": dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	}, "/", service.MsgLoggedIn))
}

// Logout handles POST /auth/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.UserContext(), principal.Claims); err != nil {
		return err
	}
	return c.JSON(dto.Success(nil, "/", service.MsgLoggedOut))
}
