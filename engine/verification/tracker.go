package verification

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/atomic"

	"github.com/arktech/studydao/model/verification"
)

// DefaultTrackerCapacity is the number of verified sessions remembered locally.
const DefaultTrackerCapacity = 1024

// Tracker holds the client-local state of sessions. A session is Verifying
// while an attempt for it is in flight in this process and Verified once a
// confirmed receipt has been observed. Sessions it knows nothing about are
// Logged.
//
// In-flight attempts are never evicted. Verified sessions are kept in a
// bounded LRU cache; forgetting one only means the contract will reject a
// repeated attempt instead of the tracker.
type Tracker struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
	verified *lru.Cache[string, struct{}]
	active   *atomic.Int64
}

func NewTracker(capacity int) (*Tracker, error) {
	if capacity <= 0 {
		capacity = DefaultTrackerCapacity
	}
	verified, err := lru.New[string, struct{}](capacity)
	if err != nil {
		return nil, fmt.Errorf("could not create verified session cache: %w", err)
	}
	return &Tracker{
		inFlight: make(map[string]struct{}),
		verified: verified,
		active:   atomic.NewInt64(0),
	}, nil
}

// Begin moves the session of req to Verifying.
//
// Expected errors:
//   - verification.ErrAttemptInProgress if an attempt for the session is in flight
//   - verification.IneligibleError if the session was verified by this process
func (t *Tracker) Begin(req verification.VerificationRequest) error {
	key := req.Key()

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.inFlight[key]; ok {
		return fmt.Errorf("%w: %s", verification.ErrAttemptInProgress, req)
	}
	if t.verified.Contains(key) {
		return verification.NewIneligibleError(verification.Ineligible(verification.ReasonAlreadyVerified, req.SessionIndex()))
	}
	t.inFlight[key] = struct{}{}
	t.active.Inc()
	return nil
}

// Finish ends the attempt for req. The session moves to Verified when
// verified is set and back to Logged otherwise. Finishing a session without
// an attempt in flight is a no-op.
func (t *Tracker) Finish(req verification.VerificationRequest, verified bool) {
	key := req.Key()

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.inFlight[key]; !ok {
		return
	}
	delete(t.inFlight, key)
	t.active.Dec()
	if verified {
		t.verified.Add(key, struct{}{})
	}
}

// State returns the local state of the session of req.
func (t *Tracker) State(req verification.VerificationRequest) verification.SessionState {
	key := req.Key()

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.inFlight[key]; ok {
		return verification.SessionVerifying
	}
	if t.verified.Contains(key) {
		return verification.SessionVerified
	}
	return verification.SessionLogged
}

// InFlight returns the number of attempts currently in flight. It does not
// take the tracker lock and may be called from a metrics scrape.
func (t *Tracker) InFlight() int64 {
	return t.active.Load()
}
