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

// DonorsHandler serves donor registration and the donor profile.
type DonorsHandler struct {
	donors *service.DonorService
}

// NewDonorsHandler constructs handler.
func NewDonorsHandler(donors *service.DonorService) *DonorsHandler {
	return &DonorsHandler{donors: donors}
}

// Register POST /donor/register.
func (h *DonorsHandler) Register(c *fiber.Ctx) error {
	req, input, err := parseDonorProfile(c)
	if err != nil {
		return err
	}
	profile, err := h.donors.RegisterAsDonor(c.UserContext(), auth.CurrentUser(c), input)
	if err != nil {
		return withForm(err, req)
	}
	return c.Status(http.StatusCreated).JSON(dto.Success(donorProfileResponse(profile), "/profile", service.MsgDonorRegistered))
}

// View GET /donor/profile.
func (h *DonorsHandler) View(c *fiber.Ctx) error {
	profile, err := h.donors.GetDonorProfile(c.UserContext(), auth.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": donorProfileResponse(profile)})
}

// Edit PUT /donor/profile.
func (h *DonorsHandler) Edit(c *fiber.Ctx) error {
	req, input, err := parseDonorProfile(c)
	if err != nil {
		return err
	}
	profile, err := h.donors.EditDonorProfile(c.UserContext(), auth.CurrentUser(c), input)
	if err != nil {
		return withForm(err, req)
	}
	return c.JSON(dto.Success(donorProfileResponse(profile), "/donor/profile", service.MsgDonorProfileUpdated))
}

func parseDonorProfile(c *fiber.Ctx) (dto.DonorProfileRequest, service.DonorProfileInput, error) {
	var req dto.DonorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return req, service.DonorProfileInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if fields := dto.Validate(req); fields != nil {
		return req, service.DonorProfileInput{}, apperrors.NewFieldValidationError(fields, req)
	}
	lastDonation, err := parseDate(req.LastDonationDate)
	if err != nil {
		return req, service.DonorProfileInput{}, apperrors.NewFieldValidationError(
			map[string]string{"last_donation_date": "Enter a valid date."}, req)
	}
	return req, service.DonorProfileInput{
		BloodGroup:        domain.BloodGroup(req.BloodGroup),
		Gender:            domain.Gender(req.Gender),
		Age:               req.Age,
		MedicalConditions: req.MedicalConditions,
		IsAvailable:       req.IsAvailable,
		LastDonationDate:  lastDonation,
	}, nil
}
