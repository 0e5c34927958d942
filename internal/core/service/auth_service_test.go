package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

type stubStateStore struct {
	states map[string]string
}

func newStubStateStore() *stubStateStore {
	return &stubStateStore{states: make(map[string]string)}
}

func (s *stubStateStore) Save(_ context.Context, state, nonce string) error {
	s.states[state] = nonce
	return nil
}

func (s *stubStateStore) Take(_ context.Context, state string) (string, error) {
	nonce, ok := s.states[state]
	if !ok {
		return "", errors.New("state not found")
	}
	delete(s.states, state)
	return nonce, nil
}

type stubProvider struct {
	identity domain.Identity
	begin    ports.BeginResult
	err      error
}

func (p *stubProvider) Begin(_ context.Context) (ports.BeginResult, error) {
	if p.err != nil {
		return ports.BeginResult{}, p.err
	}
	return p.begin, nil
}

func (p *stubProvider) Exchange(_ context.Context, _, _ string) (domain.Identity, error) {
	if p.err != nil {
		return domain.Identity{}, p.err
	}
	return p.identity, nil
}

type stubMonitor struct {
	tracked   []string
	forgotten []string
}

func (m *stubMonitor) Track(id string)    { m.tracked = append(m.tracked, id) }
func (m *stubMonitor) Activity(string)    {}
func (m *stubMonitor) Extend(string) bool { return true }
func (m *stubMonitor) State(string) (ports.SessionState, bool) {
	return ports.SessionState{}, false
}
func (m *stubMonitor) Terminate(_ context.Context, id string) error {
	m.forgotten = append(m.forgotten, id)
	return nil
}
func (m *stubMonitor) Forget(id string) { m.forgotten = append(m.forgotten, id) }

func newAuthFixture() (*AuthService, *stubProvider, *stubStateStore, *stubSessionStore, *stubProfileRepo, *stubMonitor) {
	provider := &stubProvider{
		begin: ports.BeginResult{AuthURL: "https://idp.example.cl/authorize?state=st", State: "st", Nonce: "nc"},
		identity: domain.Identity{
			UserID:    "u1",
			Email:     "ana@example.cl",
			FirstName: "Ana",
			LastName:  "Rojas",
			ExpiresAt: time.Now().Add(2 * time.Hour),
		},
	}
	states := newStubStateStore()
	sessions := newStubSessionStore()
	profiles := newStubProfileRepo()
	monitor := &stubMonitor{}
	svc := NewAuthService(provider, states, sessions, profiles, monitor, "secret", time.Hour, 8*time.Hour, zerolog.Nop())
	return svc, provider, states, sessions, profiles, monitor
}

func TestAuthService_LoginURLSavesState(t *testing.T) {
	svc, _, states, _, _, _ := newAuthFixture()

	url, err := svc.LoginURL(context.Background())
	if err != nil {
		t.Fatalf("LoginURL: %v", err)
	}
	if url == "" {
		t.Fatalf("expected auth url")
	}
	if states.states["st"] != "nc" {
		t.Fatalf("expected state/nonce cached for callback")
	}
}

func TestAuthService_CallbackCreatesProfileOnFirstLogin(t *testing.T) {
	svc, _, states, sessions, profiles, monitor := newAuthFixture()
	states.states["st"] = "nc"

	sess, err := svc.HandleCallback(context.Background(), "code", "st")
	if err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if sess.UserID != "u1" || sess.ID == "" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if _, ok := sessions.sessions[sess.ID]; !ok {
		t.Fatalf("session not persisted")
	}
	if len(monitor.tracked) != 1 || monitor.tracked[0] != sess.ID {
		t.Fatalf("idle monitor not started for session")
	}

	p := profiles.profiles["u1"]
	if p == nil {
		t.Fatalf("profile not auto-created")
	}
	if p.Authorized {
		t.Fatalf("auto-created profile must start unauthorized")
	}
	if p.IsBlocked {
		t.Fatalf("auto-created profile must not be blocked")
	}
	if p.FirstName != "Ana" || p.LastName != "Rojas" {
		t.Fatalf("name fields not populated from identity metadata: %+v", p)
	}
	if p.Role != domain.RoleViewer {
		t.Fatalf("expected viewer role, got %s", p.Role)
	}
}

func TestAuthService_CallbackCreatesExactlyOneProfile(t *testing.T) {
	svc, _, states, _, profiles, _ := newAuthFixture()

	for i, state := range []string{"st1", "st2"} {
		states.states[state] = "nc"
		if _, err := svc.HandleCallback(context.Background(), "code", state); err != nil {
			t.Fatalf("callback %d: %v", i, err)
		}
	}
	if len(profiles.profiles) != 1 {
		t.Fatalf("expected exactly one profile row, got %d", len(profiles.profiles))
	}
}

func TestAuthService_CallbackSyncsNames(t *testing.T) {
	svc, provider, states, _, profiles, _ := newAuthFixture()
	seedProfile(profiles, "u1", true, false)
	provider.identity.FirstName = "Ana María"
	states.states["st"] = "nc"

	if _, err := svc.HandleCallback(context.Background(), "code", "st"); err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if profiles.profiles["u1"].FirstName != "Ana María" {
		t.Fatalf("expected name sync on repeat login")
	}
	if !profiles.profiles["u1"].Authorized {
		t.Fatalf("name sync must not touch authorization flags")
	}
}

func TestAuthService_CallbackRejectsUnknownState(t *testing.T) {
	svc, _, _, _, _, _ := newAuthFixture()

	if _, err := svc.HandleCallback(context.Background(), "code", "forged"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown state, got %v", err)
	}
}

func TestAuthService_CallbackStateSingleUse(t *testing.T) {
	svc, _, states, _, _, _ := newAuthFixture()
	states.states["st"] = "nc"

	if _, err := svc.HandleCallback(context.Background(), "code", "st"); err != nil {
		t.Fatalf("first callback: %v", err)
	}
	if _, err := svc.HandleCallback(context.Background(), "code", "st"); err == nil {
		t.Fatalf("replayed state must be rejected")
	}
}

func TestAuthService_TokenLogin(t *testing.T) {
	svc, _, _, _, profiles, _ := newAuthFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	profiles.profiles["api-1"] = &domain.Profile{
		UserID:       "api-1",
		Email:        "api@example.cl",
		Role:         domain.RoleManager,
		Authorized:   true,
		PasswordHash: string(hash),
	}

	token, profile, err := svc.TokenLogin(context.Background(), "api@example.cl", "s3cret")
	if err != nil {
		t.Fatalf("TokenLogin: %v", err)
	}
	if profile.UserID != "api-1" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims["sub"] != "api-1" || claims["role"] != "manager" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthService_TokenLoginDeniedStates(t *testing.T) {
	svc, _, _, _, profiles, _ := newAuthFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)

	cases := []struct {
		name    string
		profile domain.Profile
		pass    string
		wantErr error
	}{
		{
			name:    "wrong password",
			profile: domain.Profile{UserID: "a", Email: "a@x.cl", Authorized: true, PasswordHash: string(hash)},
			pass:    "nope",
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "blocked",
			profile: domain.Profile{UserID: "b", Email: "b@x.cl", Authorized: true, IsBlocked: true, PasswordHash: string(hash)},
			pass:    "s3cret",
			wantErr: domain.ErrProfileBlocked,
		},
		{
			name:    "not yet authorized",
			profile: domain.Profile{UserID: "c", Email: "c@x.cl", PasswordHash: string(hash)},
			pass:    "s3cret",
			wantErr: domain.ErrNotAuthorized,
		},
		{
			name:    "provider account without password",
			profile: domain.Profile{UserID: "d", Email: "d@x.cl", Authorized: true},
			pass:    "s3cret",
			wantErr: domain.ErrInvalidCredentials,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.profile
			profiles.profiles[p.UserID] = &p
			if _, _, err := svc.TokenLogin(context.Background(), p.Email, tc.pass); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAuthService_SignOut(t *testing.T) {
	svc, _, _, sessions, _, monitor := newAuthFixture()
	seedSession(sessions, "s1", "u1")

	if err := svc.SignOut(context.Background(), "s1"); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, ok := sessions.sessions["s1"]; ok {
		t.Fatalf("session not deleted")
	}
	if len(monitor.forgotten) != 1 || monitor.forgotten[0] != "s1" {
		t.Fatalf("idle monitor not stopped")
	}
}
