package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// AuthService drives the login, callback and sign-out flows.
type AuthService interface {
	// LoginURL starts a provider login flow and returns the URL the
	// browser should be redirected to.
	LoginURL(ctx context.Context) (string, error)

	// HandleCallback completes the provider flow: exchanges the code,
	// creates the server-side session, and lazily creates the caller's
	// Profile on first login (authorized=false until an admin approves).
	HandleCallback(ctx context.Context, code, state string) (*domain.Session, error)

	// TokenLogin authenticates a local account (dev or service account)
	// and returns a signed bearer token for non-browser API clients.
	TokenLogin(ctx context.Context, email, password string) (string, *domain.Profile, error)

	// SignOut destroys the session and stops its idle monitor. Store
	// errors are reported but the local cleanup always happens.
	SignOut(ctx context.Context, sessionID string) error
}

// AdminService mutates authorization profiles. Admin role only.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.Profile, error)
	// Authorize approves the account so the request gate lets it past.
	Authorize(ctx context.Context, userID string) error
	// Block revokes access and destroys the user's live sessions.
	Block(ctx context.Context, userID string) error
	Unblock(ctx context.Context, userID string) error
	SetRole(ctx context.Context, userID string, role domain.Role) error
}
