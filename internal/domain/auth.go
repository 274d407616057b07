package domain

import "time"

// Session describes an issued access token.
type Session struct {
	TokenID   string
	Token     string
	UserID    string
	UserType  UserType
	IssuedAt  time.Time
	ExpiresAt time.Time
}
