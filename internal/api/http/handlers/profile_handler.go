package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodconnect/internal/api/dto"
	"github.com/spec-kit/bloodconnect/internal/auth"
	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/service"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

// ProfileHandler serves the account profile.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// View GET /profile.
func (h *ProfileHandler) View(c *fiber.Ctx) error {
	view, err := h.profiles.ViewProfile(c.UserContext(), auth.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProfileResponse{
		User:         userResponse(view.User),
		DonorProfile: donorProfileResponse(view.DonorProfile),
		Requests:     bloodRequestResponses(view.Requests),
	}})
}

// Edit PUT /profile.
func (h *ProfileHandler) Edit(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if fields := dto.Validate(req); fields != nil {
		return apperrors.NewFieldValidationError(fields, req)
	}

	user, err := h.profiles.EditProfile(c.UserContext(), auth.CurrentUser(c), domain.ContactDetails{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
	})
	if err != nil {
		return withForm(err, req)
	}
	return c.JSON(dto.Success(userResponse(user), "/profile", service.MsgProfileUpdated))
}
