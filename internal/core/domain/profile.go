package domain

import (
	"errors"
	"time"
)

// Role is the application-level authorization role stored on a Profile.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleTechSupport Role = "tech_support"
	RoleViewer      Role = "viewer"
)

// ValidRole reports whether r is one of the defined roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTechSupport, RoleViewer:
		return true
	}
	return false
}

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrNotAuthorized      = errors.New("profile not authorized")
	ErrProfileBlocked     = errors.New("profile blocked")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// Profile is the application authorization record, keyed 1:1 by the
// identity provider's user id. It is distinct from Session: the Session
// proves who the visitor is, the Profile decides what they may do.
//
// A Profile is created lazily on first successful login with
// Authorized=false; an administrator must flip Authorized before the
// request gate lets the account past protected routes.
type Profile struct {
	UserID     string `json:"user_id" bson:"_id"`
	Email      string `json:"email" bson:"email"`
	FirstName  string `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Role       Role   `json:"role" bson:"role"`
	Authorized bool   `json:"authorized" bson:"authorized"`
	IsBlocked  bool   `json:"is_blocked" bson:"is_blocked"`
	// PasswordHash is only set for local (dev / service) accounts that
	// authenticate with TokenLogin instead of the identity provider.
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// AllowedPast reports whether the request gate may let this profile
// through: approved by an admin and not revoked.
func (p *Profile) AllowedPast() bool {
	return p.Authorized && !p.IsBlocked
}
