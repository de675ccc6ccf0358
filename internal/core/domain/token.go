package domain

import "time"

// Claims is the identity carried inside an authentication token.
type Claims struct {
	UserID    string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
