package domain

import "time"

// AccountEventType names a credential lifecycle transition.
type AccountEventType string

const (
	EventRegistered AccountEventType = "registered"
	EventLoggedIn   AccountEventType = "logged_in"
	EventDisabled   AccountEventType = "disabled"
	EventEnabled    AccountEventType = "enabled"
)

// AccountEvent is an entry in the account audit trail.
type AccountEvent struct {
	UserID     string
	Type       AccountEventType
	OccurredAt time.Time
}
