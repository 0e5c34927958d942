package devauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// Provider is a development-only identity provider that skips the
// hosted login entirely: Begin points the browser straight at the
// callback and Exchange always returns the configured static identity.
// Never enable it outside local development.
type Provider struct {
	identity    domain.Identity
	callbackURL string
}

func NewProvider(callbackURL, userID, email, name string) *Provider {
	first, last := splitName(name)
	return &Provider{
		identity: domain.Identity{
			UserID:    userID,
			Email:     email,
			FirstName: first,
			LastName:  last,
		},
		callbackURL: callbackURL,
	}
}

func (p *Provider) Begin(_ context.Context) (ports.BeginResult, error) {
	state, err := randomToken(16)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate state: %w", err)
	}
	return ports.BeginResult{
		AuthURL: fmt.Sprintf("%s?code=dev&state=%s", p.callbackURL, state),
		State:   state,
		Nonce:   "dev",
	}, nil
}

func (p *Provider) Exchange(_ context.Context, _, _ string) (domain.Identity, error) {
	id := p.identity
	id.ExpiresAt = time.Now().Add(8 * time.Hour)
	return id, nil
}

func splitName(name string) (first, last string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ' ' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
