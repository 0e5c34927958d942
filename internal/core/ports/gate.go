package ports

import (
	"context"

	"github.com/soportec/inventory-system/internal/core/domain"
)

// GateDecision is the outcome of the request gate for one request.
type GateDecision int

const (
	// DecisionAllow lets the request through to page logic.
	DecisionAllow GateDecision = iota
	// DecisionLogin denies with a redirect to the login path.
	DecisionLogin
	// DecisionUnauthorized denies with a redirect to the unauthorized
	// path; Reason may carry a marker such as "blocked".
	DecisionUnauthorized
)

// DecideInput carries everything the gate inspects for one request.
type DecideInput struct {
	Path string
	// SessionID is the value of the session cookie, empty when absent.
	SessionID string
	// APIUserID is the verified subject of a bearer token, empty when
	// the request carried none. Set only after signature verification.
	APIUserID string
}

// GateResult is the gate's verdict plus the resolved records, so page
// logic never re-fetches them.
type GateResult struct {
	Decision GateDecision
	Reason   string
	Session  *domain.Session
	Profile  *domain.Profile
}

// Gate decides, for every request to a protected path, whether the
// caller may proceed. It is stateless across requests: session and
// profile are fetched fresh each time, and every external-service error
// resolves to a deny.
type Gate interface {
	Decide(ctx context.Context, in DecideInput) GateResult
}
