package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/bloodconnect/internal/api/dto"
	"github.com/spec-kit/bloodconnect/internal/domain"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

// withForm attaches the submitted form to validation errors so clients can re-render it.
func withForm(err error, form any) error {
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeValidation {
		return err
	}
	if domainErr.Details == nil {
		domainErr.Details = map[string]any{}
	}
	if _, ok := domainErr.Details["form"]; !ok {
		domainErr.Details["form"] = form
	}
	return err
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		UserType:    u.UserType,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		City:        u.City,
		State:       u.State,
		Country:     u.Country,
		CreatedAt:   u.CreatedAt,
	}
}

func donorProfileResponse(p *domain.DonorProfile) *dto.DonorProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.DonorProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		BloodGroup:        p.BloodGroup,
		Gender:            p.Gender,
		Age:               p.Age,
		LastDonationDate:  p.LastDonationDate,
		IsAvailable:       p.IsAvailable,
		MedicalConditions: p.MedicalConditions,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func bloodRequestResponse(r *domain.BloodRequest) dto.BloodRequestResponse {
	return dto.BloodRequestResponse{
		ID:              r.ID,
		RequesterID:     r.RequesterID,
		BloodGroup:      r.BloodGroup,
		UnitsNeeded:     r.UnitsNeeded,
		HospitalName:    r.HospitalName,
		HospitalAddress: r.HospitalAddress,
		Reason:          r.Reason,
		Urgency:         r.Urgency,
		Status:          r.Status,
		RequiredDate:    r.RequiredDate.Format(dto.DateLayout),
		DonorID:         r.DonorID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func bloodRequestResponses(list []domain.BloodRequest) []dto.BloodRequestResponse {
	items := make([]dto.BloodRequestResponse, 0, len(list))
	for i := range list {
		items = append(items, bloodRequestResponse(&list[i]))
	}
	return items
}
