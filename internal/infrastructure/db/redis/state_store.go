package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statePrefix = "oauth_state:"
	stateTTL    = 10 * time.Minute
)

var ErrStateNotFound = errors.New("login state not found")

// StateStore holds OAuth state → nonce pairs between the login redirect
// and the provider callback. Entries are single-use and expire on their
// own if the user abandons the flow.
type StateStore struct {
	client *redis.Client
}

func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

func (s *StateStore) Save(ctx context.Context, state, nonce string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}

	ok, err := s.client.SetNX(ctx, statePrefix+state, nonce, stateTTL).Result()
	if err != nil {
		return fmt.Errorf("save login state: %w", err)
	}
	if !ok {
		return fmt.Errorf("login state %q already pending", state)
	}
	return nil
}

// Take redeems state exactly once: the GETDEL makes a replayed callback
// fail even when two requests race.
func (s *StateStore) Take(ctx context.Context, state string) (string, error) {
	nonce, err := s.client.GetDel(ctx, statePrefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrStateNotFound
		}
		return "", fmt.Errorf("take login state: %w", err)
	}
	return nonce, nil
}
