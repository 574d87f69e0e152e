package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PrincipalClass separates the two identity namespaces. A learner and an
// instructor may share an email address; their records, tokens and signing
// secrets never mix.
type PrincipalClass string

const (
	ClassLearner    PrincipalClass = "LEARNER"
	ClassInstructor PrincipalClass = "INSTRUCTOR"
)

// Learner represents a purchasing principal stored in the learners table.
type Learner struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Instructor represents a publishing principal stored in the instructors table.
type Instructor struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterRequest holds the signup payload for either principal class.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// LoginRequest holds credentials for authenticating a principal.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PrincipalInfo describes an authenticated principal in responses.
type PrincipalInfo struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Class     PrincipalClass `json:"class"`
}

// LoginResponse returns the issued token and principal info.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expires_in"`
	IssuedAt  time.Time     `json:"issued_at"`
	Principal PrincipalInfo `json:"principal"`
}

// Claims represents the JWT payload for access tokens.
type Claims struct {
	PrincipalID string         `json:"principal_id"`
	Class       PrincipalClass `json:"class"`
	Email       string         `json:"email"`
	jwt.RegisteredClaims
}
