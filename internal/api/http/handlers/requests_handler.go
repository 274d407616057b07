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

// RequestsHandler manages blood request endpoints.
type RequestsHandler struct {
	service *service.BloodRequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.BloodRequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// List GET /requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	var query dto.BloodRequestListQuery
	if err := c.QueryParser(&query); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	list, err := h.service.ListPending(c.UserContext(), service.RequestListFilter{
		BloodGroup: query.BloodGroup,
		City:       query.City,
		Urgency:    query.Urgency,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": bloodRequestResponses(list),
		"filters": fiber.Map{
			"blood_groups": domain.BloodGroups,
			"urgencies":    domain.Urgencies,
		},
	})
}

// Create POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	actor := auth.CurrentUser(c)
	if err := h.service.AuthorizeCreate(actor); err != nil {
		return err
	}
	var req dto.CreateBloodRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if fields := dto.Validate(req); fields != nil {
		return apperrors.NewFieldValidationError(fields, req)
	}
	requiredDate, err := parseDate(req.RequiredDate)
	if err != nil || requiredDate == nil {
		return apperrors.NewFieldValidationError(map[string]string{"required_date": "Enter a valid date."}, req)
	}

	created, err := h.service.CreateRequest(c.UserContext(), actor, service.BloodRequestInput{
		BloodGroup:      domain.BloodGroup(req.BloodGroup),
		UnitsNeeded:     req.UnitsNeeded,
		HospitalName:    req.HospitalName,
		HospitalAddress: req.HospitalAddress,
		Reason:          req.Reason,
		Urgency:         domain.Urgency(req.Urgency),
		RequiredDate:    *requiredDate,
	})
	if err != nil {
		return withForm(err, req)
	}
	return c.Status(http.StatusCreated).JSON(dto.Success(bloodRequestResponse(created), detailPath(created.ID), service.MsgRequestCreated))
}

// Get GET /requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	view, err := h.service.GetRequest(c.UserContext(), auth.CurrentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BloodRequestDetailResponse{
		BloodRequestResponse: bloodRequestResponse(view.Request),
		CanAccept:            view.CanAccept,
	}})
}

// Accept POST /requests/:id/accept.
func (h *RequestsHandler) Accept(c *fiber.Ctx) error {
	updated, err := h.service.Accept(c.UserContext(), auth.CurrentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(bloodRequestResponse(updated), detailPath(updated.ID), service.MsgRequestAccepted))
}

// Complete POST /requests/:id/complete.
func (h *RequestsHandler) Complete(c *fiber.Ctx) error {
	updated, err := h.service.Complete(c.UserContext(), auth.CurrentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(bloodRequestResponse(updated), detailPath(updated.ID), service.MsgRequestCompleted))
}

// Cancel POST /requests/:id/cancel.
func (h *RequestsHandler) Cancel(c *fiber.Ctx) error {
	updated, err := h.service.Cancel(c.UserContext(), auth.CurrentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(bloodRequestResponse(updated), "/requests", service.MsgRequestCancelled))
}

func detailPath(id string) string {
	return "/requests/" + id
}
