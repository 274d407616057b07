package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/bloodconnect/internal/config"
	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/events"
	"github.com/spec-kit/bloodconnect/internal/repository"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

// User-facing messages for the request lifecycle.
const (
	MsgRequestCreated          = "Blood request created successfully!"
	MsgRequestAccepted         = "You have accepted the blood request."
	MsgRequestCompleted        = "Blood request marked as completed."
	MsgRequestCancelled        = "Blood request cancelled successfully."
	MsgOnlyReceiversCanRequest = "Only users with receiver type can create blood requests."
	MsgOnlyDonorsCanAccept     = "Only donors can accept blood requests."
	MsgNoLongerAvailable       = "This request is no longer available."
	MsgDonorUnavailable        = "You are currently marked as unavailable."
	MsgCannotComplete          = "This request cannot be marked as completed."
	MsgNotAllowedToComplete    = "You are not authorized to complete this request."
	MsgCannotCancel            = "This request cannot be cancelled."
	MsgNotAllowedToCancel      = "You are not authorized to cancel this request."
)

// BloodRequestInput carries the request form.
type BloodRequestInput struct {
	BloodGroup      domain.BloodGroup
	UnitsNeeded     int
	HospitalName    string
	HospitalAddress string
	Reason          string
	Urgency         domain.Urgency
	RequiredDate    time.Time
}

// RequestListFilter describes the public listing filters. Empty strings are ignored.
type RequestListFilter struct {
	BloodGroup string
	City       string
	Urgency    string
	Page       int
	PageSize   int
}

// RequestView is a request as seen by a particular viewer.
type RequestView struct {
	Request   *domain.BloodRequest
	CanAccept bool
}

// BloodRequestService runs the request lifecycle: create, accept, complete, cancel.
type BloodRequestService struct {
	requests   repository.BloodRequestRepository
	donors     repository.DonorProfileRepository
	dispatcher events.Dispatcher
	listing    config.ListingConfig
}

// BloodRequestDependencies bundles collaborators for the lifecycle service.
type BloodRequestDependencies struct {
	BloodRequestRepo repository.BloodRequestRepository
	DonorProfileRepo repository.DonorProfileRepository
	Dispatcher       events.Dispatcher
	Listing          config.ListingConfig
}

// NewBloodRequestService constructs the service.
func NewBloodRequestService(deps BloodRequestDependencies) *BloodRequestService {
	return &BloodRequestService{
		requests:   deps.BloodRequestRepo,
		donors:     deps.DonorProfileRepo,
		dispatcher: deps.Dispatcher,
		listing:    deps.Listing,
	}
}

// AuthorizeCreate reports whether actor may file requests. It runs ahead of form validation.
func (s *BloodRequestService) AuthorizeCreate(actor *domain.User) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !actor.IsReceiver() {
		return apperrors.NewValidationError(MsgOnlyReceiversCanRequest, map[string]any{
			"fields": map[string]string{"user_type": MsgOnlyReceiversCanRequest},
		})
	}
	return nil
}

// CreateRequest files a new pending request on behalf of a receiver.
func (s *BloodRequestService) CreateRequest(ctx context.Context, actor *domain.User, input BloodRequestInput) (*domain.BloodRequest, error) {
	if err := s.AuthorizeCreate(actor); err != nil {
		return nil, err
	}

	req := &domain.BloodRequest{
		RequesterID:     actor.ID,
		BloodGroup:      input.BloodGroup,
		UnitsNeeded:     input.UnitsNeeded,
		HospitalName:    strings.TrimSpace(input.HospitalName),
		HospitalAddress: strings.TrimSpace(input.HospitalAddress),
		Reason:          strings.TrimSpace(input.Reason),
		Urgency:         input.Urgency,
		Status:          domain.RequestStatusPending,
		RequiredDate:    input.RequiredDate,
	}
	if req.Urgency == "" {
		req.Urgency = domain.UrgencyNormal
	}
	if errs := domain.ValidateBloodRequest(req); !errs.Empty() {
		return nil, apperrors.NewFieldValidationError(errs, nil)
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: req.ID,
		Actor:     actorOf(actor),
		Payload: events.RequestCreatedPayload{
			BloodGroup:   req.BloodGroup,
			UnitsNeeded:  req.UnitsNeeded,
			Urgency:      req.Urgency,
			HospitalName: req.HospitalName,
		},
	})
	return req, nil
}

// GetRequest returns a request and whether viewer may accept it. viewer may be nil.
func (s *BloodRequestService) GetRequest(ctx context.Context, viewer *domain.User, id string) (*RequestView, error) {
	req, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &RequestView{Request: req}
	if viewer.IsDonor() && req.Status == domain.RequestStatusPending {
		profile, err := s.donors.GetByUserID(ctx, viewer.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.MapError(err)
		}
		view.CanAccept = domain.CanAccept(viewer, profile, req)
	}
	return view, nil
}

// ListPending returns pending requests matching filter, newest first.
func (s *BloodRequestService) ListPending(ctx context.Context, filter RequestListFilter) ([]domain.BloodRequest, error) {
	pageSize := s.listing.PageSize(filter.PageSize)
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	repoFilter := repository.BloodRequestFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if v := strings.TrimSpace(filter.BloodGroup); v != "" {
		group := domain.BloodGroup(v)
		repoFilter.BloodGroup = &group
	}
	if v := strings.TrimSpace(filter.Urgency); v != "" {
		urgency := domain.Urgency(v)
		repoFilter.Urgency = &urgency
	}
	if v := strings.TrimSpace(filter.City); v != "" {
		repoFilter.City = &v
	}

	list, err := s.requests.ListPending(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Accept binds the acting donor to a pending request.
func (s *BloodRequestService) Accept(ctx context.Context, actor *domain.User, id string) (*domain.BloodRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !actor.IsDonor() {
		return nil, apperrors.NewForbidden(MsgOnlyDonorsCanAccept)
	}
	req, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestStatusPending {
		return nil, stateError(MsgNoLongerAvailable, req)
	}

	profile, err := s.donors.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("donor profile", map[string]any{"user_id": actor.ID})
		}
		return nil, apperrors.MapError(err)
	}
	if !profile.IsAvailable {
		return nil, apperrors.NewAvailabilityError(MsgDonorUnavailable)
	}

	return s.transition(ctx, actor, req, domain.RequestStatusAccepted, &profile.ID, MsgNoLongerAvailable)
}

// Complete closes an accepted request. Only the requester or the bound donor may do so.
func (s *BloodRequestService) Complete(ctx context.Context, actor *domain.User, id string) (*domain.BloodRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	req, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.IsRequester(actor) && !req.IsBoundDonor(actor) {
		return nil, apperrors.NewForbidden(MsgNotAllowedToComplete)
	}
	if req.Status != domain.RequestStatusAccepted {
		return nil, stateError(MsgCannotComplete, req)
	}
	return s.transition(ctx, actor, req, domain.RequestStatusCompleted, nil, MsgCannotComplete)
}

// Cancel withdraws a pending request. Only the requester may do so.
func (s *BloodRequestService) Cancel(ctx context.Context, actor *domain.User, id string) (*domain.BloodRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	req, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.IsRequester(actor) {
		return nil, apperrors.NewForbidden(MsgNotAllowedToCancel)
	}
	if req.Status != domain.RequestStatusPending {
		return nil, stateError(MsgCannotCancel, req)
	}
	return s.transition(ctx, actor, req, domain.RequestStatusCancelled, nil, MsgCannotCancel)
}

// transition performs the conditional write. The status check above is only a
// fast path; the repository's compare-and-set decides races.
func (s *BloodRequestService) transition(ctx context.Context, actor *domain.User, req *domain.BloodRequest, next domain.RequestStatus, donorID *string, conflictMsg string) (*domain.BloodRequest, error) {
	if !domain.CanTransition(req.Status, next) {
		return nil, stateError(conflictMsg, req)
	}
	updated, err := s.requests.Transition(ctx, req.ID, req.Status, next, donorID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, apperrors.NewStateError(conflictMsg, map[string]any{"request_id": req.ID})
		case errors.Is(err, repository.ErrDonorUnavailable):
			return nil, apperrors.NewAvailabilityError(MsgDonorUnavailable)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFound("blood request", map[string]any{"request_id": req.ID})
		default:
			return nil, apperrors.MapError(err)
		}
	}
	if err := updated.CheckDonorInvariant(); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      transitionEvents[next],
		RequestID: updated.ID,
		Actor:     actorOf(actor),
		Payload: events.RequestStatusChangedPayload{
			OldStatus:   req.Status,
			NewStatus:   updated.Status,
			RequesterID: updated.RequesterID,
			DonorID:     updated.DonorID,
		},
	})
	return updated, nil
}

func (s *BloodRequestService) load(ctx context.Context, id string) (*domain.BloodRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("blood request", map[string]any{"request_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return req, nil
}

var transitionEvents = map[domain.RequestStatus]events.EventType{
	domain.RequestStatusAccepted:  events.EventRequestAccepted,
	domain.RequestStatusCompleted: events.EventRequestCompleted,
	domain.RequestStatusCancelled: events.EventRequestCancelled,
}

func stateError(message string, req *domain.BloodRequest) error {
	return apperrors.NewStateError(message, map[string]any{
		"request_id": req.ID,
		"status":     req.Status,
	})
}

func (s *BloodRequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(user *domain.User) events.Actor {
	return events.Actor{UserID: user.ID, UserType: user.UserType}
}
