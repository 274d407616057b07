package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/repository"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

// User-facing messages for donor profile flows.
const (
	MsgDonorRegistered         = "Donor registration successful!"
	MsgDonorProfileUpdated     = "Donor profile updated successfully!"
	MsgAlreadyDonor            = "You are already registered as a donor."
	MsgOnlyDonorsCanRegister   = "Only users with donor type can register as donors."
	MsgOnlyDonorsCanAccessPage = "Only users registered as donors can access this page."
)

// DonorProfileInput carries the donor form. Nil pointers leave the stored
// value unchanged on edit.
type DonorProfileInput struct {
	BloodGroup        domain.BloodGroup
	Gender            domain.Gender
	Age               int
	MedicalConditions string
	IsAvailable       *bool
	LastDonationDate  *time.Time
}

// DonorService manages donor profiles.
type DonorService struct {
	donors repository.DonorProfileRepository
}

// NewDonorService constructs the service.
func NewDonorService(donors repository.DonorProfileRepository) *DonorService {
	return &DonorService{donors: donors}
}

// RegisterAsDonor creates the actor's donor profile. New donors start available.
func (s *DonorService) RegisterAsDonor(ctx context.Context, actor *domain.User, input DonorProfileInput) (*domain.DonorProfile, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !actor.IsDonor() {
		return nil, apperrors.NewForbidden(MsgOnlyDonorsCanRegister)
	}
	if _, err := s.donors.GetByUserID(ctx, actor.ID); err == nil {
		return nil, apperrors.NewConflict(MsgAlreadyDonor, nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	profile := &domain.DonorProfile{UserID: actor.ID, IsAvailable: true}
	applyDonorInput(profile, input)
	if errs := domain.ValidateDonorProfile(profile); !errs.Empty() {
		return nil, apperrors.NewFieldValidationError(errs, nil)
	}

	if err := s.donors.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(MsgAlreadyDonor, nil)
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// GetDonorProfile returns the actor's donor profile.
func (s *DonorService) GetDonorProfile(ctx context.Context, actor *domain.User) (*domain.DonorProfile, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !actor.IsDonor() {
		return nil, apperrors.NewForbidden(MsgOnlyDonorsCanAccessPage)
	}
	profile, err := s.donors.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("donor profile", map[string]any{"user_id": actor.ID})
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// EditDonorProfile updates the actor's donor profile, re-validating age.
func (s *DonorService) EditDonorProfile(ctx context.Context, actor *domain.User, input DonorProfileInput) (*domain.DonorProfile, error) {
	profile, err := s.GetDonorProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	applyDonorInput(profile, input)
	if errs := domain.ValidateDonorProfile(profile); !errs.Empty() {
		return nil, apperrors.NewFieldValidationError(errs, nil)
	}
	if err := s.donors.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

func applyDonorInput(profile *domain.DonorProfile, input DonorProfileInput) {
	profile.BloodGroup = input.BloodGroup
	profile.Gender = input.Gender
	profile.Age = input.Age
	profile.MedicalConditions = strings.TrimSpace(input.MedicalConditions)
	if input.IsAvailable != nil {
		profile.IsAvailable = *input.IsAvailable
	}
	if input.LastDonationDate != nil {
		date := *input.LastDonationDate
		profile.LastDonationDate = &date
	}
}
