package oidc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

// Config holds the settings for the hosted OIDC identity service.
type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       string // space separated, e.g. "openid profile email"
}

// Provider implements ports.IdentityProvider against a standard OIDC
// issuer using the authorization code flow.
type Provider struct {
	oauth    *oauth2.Config
	verifier *gooidc.IDTokenVerifier
}

// NewProvider fetches the issuer's discovery document once and builds
// the OAuth2 configuration from it.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.IssuerURL == "" {
		return nil, errors.New("issuer URL is required")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("client credentials are required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	op, err := gooidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	scopes := strings.Fields(cfg.Scopes)
	if len(scopes) == 0 {
		scopes = []string{gooidc.ScopeOpenID, "profile", "email"}
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     op.Endpoint(),
		},
		verifier: op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// Begin generates a fresh state and nonce and returns the provider auth
// URL bound to them.
func (p *Provider) Begin(_ context.Context) (ports.BeginResult, error) {
	state, err := randomToken(32)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomToken(32)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate nonce: %w", err)
	}

	authURL := p.oauth.AuthCodeURL(state, gooidc.Nonce(nonce))
	return ports.BeginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// Exchange redeems the callback code, verifies the ID token and its
// nonce, and returns the authenticated identity.
func (p *Provider) Exchange(ctx context.Context, code, nonce string) (domain.Identity, error) {
	if code == "" {
		return domain.Identity{}, errors.New("authorization code is required")
	}

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("exchange code: %w", err)
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return domain.Identity{}, errors.New("missing id_token in token response")
	}

	idToken, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("verify id_token: %w", err)
	}
	if nonce != "" && idToken.Nonce != nonce {
		return domain.Identity{}, errors.New("id_token nonce mismatch")
	}

	var claims struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return domain.Identity{}, fmt.Errorf("parse id_token claims: %w", err)
	}

	expiresAt := token.Expiry
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(time.Hour)
	}

	return domain.Identity{
		UserID:    idToken.Subject,
		Email:     claims.Email,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		ExpiresAt: expiresAt,
	}, nil
}

// randomToken returns a URL-safe random string of n bytes of entropy.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
