package service

import (
	"context"
	"errors"

	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/repository"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

// MsgProfileUpdated confirms a contact details edit.
const MsgProfileUpdated = "Profile updated successfully!"

// ProfileView aggregates what a user sees on their profile page.
type ProfileView struct {
	User         *domain.User
	DonorProfile *domain.DonorProfile
	// Requests holds every request the user created or was bound to as donor.
	Requests []domain.BloodRequest
}

// ProfileService serves account profile pages.
type ProfileService struct {
	users    repository.UserRepository
	donors   repository.DonorProfileRepository
	requests repository.BloodRequestRepository
}

// ProfileDependencies bundles repositories for the profile service.
type ProfileDependencies struct {
	UserRepo         repository.UserRepository
	DonorProfileRepo repository.DonorProfileRepository
	BloodRequestRepo repository.BloodRequestRepository
}

// NewProfileService constructs the service.
func NewProfileService(deps ProfileDependencies) *ProfileService {
	return &ProfileService{
		users:    deps.UserRepo,
		donors:   deps.DonorProfileRepo,
		requests: deps.BloodRequestRepo,
	}
}

// ViewProfile returns the actor's account, donor profile and related requests.
func (s *ProfileService) ViewProfile(ctx context.Context, actor *domain.User) (*ProfileView, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	view := &ProfileView{User: actor}

	if actor.IsDonor() {
		profile, err := s.donors.GetByUserID(ctx, actor.ID)
		switch {
		case err == nil:
			view.DonorProfile = profile
		case !errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.MapError(err)
		}
	}

	requests, err := s.requests.ListForUser(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	view.Requests = requests
	return view, nil
}

// EditProfile updates the actor's contact details.
func (s *ProfileService) EditProfile(ctx context.Context, actor *domain.User, details domain.ContactDetails) (*domain.User, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": actor.ID})
		}
		return nil, apperrors.MapError(err)
	}
	user.ApplyContactDetails(details)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
