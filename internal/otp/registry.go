package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// Verification outcomes. Handlers discriminate with errors.Is to pick the
// user-facing message.
var (
	ErrNotFound = errors.New("no pending code")
	ErrExpired  = errors.New("code expired")
	ErrMismatch = errors.New("code mismatch")
)

type challenge struct {
	code      string
	expiresAt time.Time
}

// Registry tracks at most one pending numeric code per email address.
// Codes are single-use: a successful Verify consumes the entry, and a new
// Issue for the same email overwrites whatever was pending. Entries live
// only in memory and do not survive a restart.
type Registry struct {
	mu  sync.Mutex
	m   map[string]challenge
	ttl time.Duration
	now func() time.Time // overridable in tests
}

// NewRegistry creates a registry whose codes expire ttl after issuance.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		m:   make(map[string]challenge),
		ttl: ttl,
		now: time.Now,
	}
}

// Issue generates a uniformly random 6-digit code for email and stores it,
// replacing any code already pending for that address. The code is returned
// so the caller can put it in the outbound mail.
func (r *Registry) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	r.mu.Lock()
	r.m[email] = challenge{code: code, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()
	return code, nil
}

// Verify checks submitted against the pending code for email.
// Returns nil and consumes the entry on an exact match. ErrNotFound covers
// both "never requested" and "already consumed". An expired entry is deleted
// and reported as ErrExpired. On ErrMismatch the entry stays, so the caller
// may retry until the deadline.
func (r *Registry) Verify(email, submitted string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.m[email]
	if !ok {
		return ErrNotFound
	}
	if r.now().After(c.expiresAt) {
		delete(r.m, email)
		return ErrExpired
	}
	if c.code != submitted {
		return ErrMismatch
	}
	delete(r.m, email)
	return nil
}

// StartSweep launches a goroutine that drops expired entries every interval,
// bounding memory when codes are requested but never verified. Verify
// already rejects expired entries, so the sweep is purely housekeeping.
func (r *Registry) StartSweep(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			r.mu.Lock()
			now := r.now()
			for email, c := range r.m {
				if now.After(c.expiresAt) {
					delete(r.m, email)
				}
			}
			r.mu.Unlock()
		}
	}()
}
