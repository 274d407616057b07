package domain

import (
	"strings"
	"time"
)

// UserType is the role tag carried by every account.
type UserType string

const (
	UserTypeDonor    UserType = "donor"
	UserTypeReceiver UserType = "receiver"
	UserTypeAdmin    UserType = "admin"
)

// Valid reports whether t is one of the known roles.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeDonor, UserTypeReceiver, UserTypeAdmin:
		return true
	default:
		return false
	}
}

// SelfAssignable reports whether a user may pick t at registration.
func (t UserType) SelfAssignable() bool {
	switch t {
	case UserTypeDonor, UserTypeReceiver:
		return true
	case UserTypeAdmin:
		return false
	default:
		return false
	}
}

// User is the identity record for donors, receivers and admins.
type User struct {
	ID           string
	Email        string
	Username     string
	FirstName    string
	LastName     string
	UserType     UserType
	PhoneNumber  string
	Address      string
	City         string
	State        string
	Country      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// IsDonor reports whether the user carries the donor role.
func (u *User) IsDonor() bool {
	return u != nil && u.UserType == UserTypeDonor
}

// IsReceiver reports whether the user carries the receiver role.
func (u *User) IsReceiver() bool {
	return u != nil && u.UserType == UserTypeReceiver
}

// ContactDetails holds the editable, display-only part of a user record.
type ContactDetails struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
	City        string
	State       string
	Country     string
}

// ApplyContactDetails overwrites the editable fields. Email and role are left untouched.
func (u *User) ApplyContactDetails(d ContactDetails) {
	u.FirstName = strings.TrimSpace(d.FirstName)
	u.LastName = strings.TrimSpace(d.LastName)
	u.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
	u.Address = strings.TrimSpace(d.Address)
	u.City = strings.TrimSpace(d.City)
	u.State = strings.TrimSpace(d.State)
	u.Country = strings.TrimSpace(d.Country)
}
