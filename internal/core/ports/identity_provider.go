package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// BeginResult carries everything needed to start a provider login flow.
type BeginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// IdentityProvider initiates and completes an authentication flow
// against the hosted identity service.
type IdentityProvider interface {
	// Begin returns the provider auth URL plus the opaque state and
	// nonce bound to this flow.
	Begin(ctx context.Context) (BeginResult, error)

	// Exchange redeems the callback code, verifies the nonce, and
	// returns the authenticated identity.
	Exchange(ctx context.Context, code, nonce string) (domain.Identity, error)
}
