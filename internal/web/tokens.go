package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"
)

// DefaultTokenTTL bounds how long a privileged-page token stays valid.
const DefaultTokenTTL = time.Minute

// tokenStore hands out single-use tokens for the privileged page.
type tokenStore struct {
	mu     sync.Mutex
	clock  clock.PassiveClock
	ttl    time.Duration
	tokens map[string]time.Time
}

func newTokenStore(clk clock.PassiveClock, ttl time.Duration) *tokenStore {
	return &tokenStore{
		clock:  clk,
		ttl:    ttl,
		tokens: make(map[string]time.Time),
	}
}

// Issue returns a fresh token and drops expired ones.
func (t *tokenStore) Issue() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	for tok, expires := range t.tokens {
		if !now.Before(expires) {
			delete(t.tokens, tok)
		}
	}
	tok := uuid.NewString()
	t.tokens[tok] = now.Add(t.ttl)
	return tok
}

// Redeem consumes token. It reports false for unknown, used or expired tokens.
func (t *tokenStore) Redeem(token string) bool {
	if token == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	expires, ok := t.tokens[token]
	if !ok {
		return false
	}
	delete(t.tokens, token)
	return t.clock.Now().Before(expires)
}

// Len returns the number of outstanding tokens.
func (t *tokenStore) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tokens)
}
