package domain

import "time"

// User models a registered blog author.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsDisabled   bool      `json:"isDisabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Field limits enforced on registration. The validate tags below carry the
// same numbers.
const (
	MaxNameLength     = 16
	MaxEmailLength    = 320
	MinPasswordLength = 6
	MaxPasswordLength = 50
)

// Registration is the validated input for creating a user.
type Registration struct {
	FirstName string `json:"firstName" validate:"required,max=16"       msg:"Please enter the first 1-16 characters of your first name"`
	LastName  string `json:"lastName"  validate:"required,max=16"       msg:"Please enter the first 1-16 characters of your last name"`
	Email     string `json:"email"     validate:"required,email,max=320" msg:"Please enter a valid email"`
	Password  string `json:"password"  validate:"min=6,max=50"          msg:"Please enter a password with 6-50 characters long"`
}

// Credentials is the validated input for a login attempt.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email" msg:"Please enter a valid email"`
	Password string `json:"password" validate:"required"       msg:"Password is required"`
}
