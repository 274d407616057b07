package dto

import (
	"time"

	"github.com/spec-kit/bloodconnect/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Username    string `json:"username" validate:"required,max=150"`
	UserType    string `json:"user_type" validate:"required"`
	FirstName   string `json:"first_name" validate:"max=150"`
	LastName    string `json:"last_name" validate:"max=150"`
	PhoneNumber string `json:"phone_number" validate:"max=15"`
	Address     string `json:"address"`
	City        string `json:"city" validate:"max=100"`
	State       string `json:"state" validate:"max=100"`
	Country     string `json:"country" validate:"max=100"`
	Password1   string `json:"password1" validate:"required"`
	Password2   string `json:"password2"`
}

// Echo returns the submitted form without its password fields.
func (r UserRegisterRequest) Echo() map[string]any {
	return map[string]any{
		"email":        r.Email,
		"username":     r.Username,
		"user_type":    r.UserType,
		"first_name":   r.FirstName,
		"last_name":    r.LastName,
		"phone_number": r.PhoneNumber,
		"address":      r.Address,
		"city":         r.City,
		"state":        r.State,
		"country":      r.Country,
	}
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest payload for contact detail edits.
type ProfileUpdateRequest struct {
	FirstName   string `json:"first_name" validate:"max=150"`
	LastName    string `json:"last_name" validate:"max=150"`
	PhoneNumber string `json:"phone_number" validate:"max=15"`
	Address     string `json:"address"`
	City        string `json:"city" validate:"max=100"`
	State       string `json:"state" validate:"max=100"`
	Country     string `json:"country" validate:"max=100"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	FullName    string          `json:"full_name"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	UserType    domain.UserType `json:"user_type"`
	PhoneNumber string          `json:"phone_number"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	Country     string          `json:"country"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProfileResponse bundles the profile page.
type ProfileResponse struct {
	User         UserResponse           `json:"user"`
	DonorProfile *DonorProfileResponse  `json:"donor_profile"`
	Requests     []BloodRequestResponse `json:"requests"`
}
