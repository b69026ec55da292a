package verification

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/utils/unittest"
)

func TestTracker_Transitions(t *testing.T) {
	tracker, err := NewTracker(8)
	require.NoError(t, err)
	req := unittest.VerificationRequestFixture(t, 2)

	assert.Equal(t, verification.SessionLogged, tracker.State(req))

	require.NoError(t, tracker.Begin(req))
	assert.Equal(t, verification.SessionVerifying, tracker.State(req))
	assert.Equal(t, int64(1), tracker.InFlight())

	// failed attempt returns the session to Logged
	tracker.Finish(req, false)
	assert.Equal(t, verification.SessionLogged, tracker.State(req))
	assert.Equal(t, int64(0), tracker.InFlight())

	require.NoError(t, tracker.Begin(req))
	tracker.Finish(req, true)
	assert.Equal(t, verification.SessionVerified, tracker.State(req))

	err = tracker.Begin(req)
	require.True(t, verification.IsIneligibleError(err))
	var ineligible verification.IneligibleError
	require.True(t, errors.As(err, &ineligible))
	assert.Equal(t, verification.ReasonAlreadyVerified, ineligible.Result.Reason)

	// finishing without an attempt changes nothing
	tracker.Finish(unittest.VerificationRequestFixture(t, 0), true)
	assert.Equal(t, int64(0), tracker.InFlight())
}

func TestTracker_SingleAttemptPerSession(t *testing.T) {
	tracker, err := NewTracker(8)
	require.NoError(t, err)
	req := unittest.VerificationRequestFixture(t, 1)

	var wg sync.WaitGroup
	var mu sync.Mutex
	started, rejected := 0, 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tracker.Begin(req)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				started++
				return
			}
			if errors.Is(err, verification.ErrAttemptInProgress) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, started)
	assert.Equal(t, 15, rejected)

	// other sessions of the same subject are independent
	next, err := verification.NewVerificationRequest(req.Subject().Hex(), big.NewInt(2))
	require.NoError(t, err)
	assert.NoError(t, tracker.Begin(next))
}

func TestTracker_EvictsOnlyVerified(t *testing.T) {
	tracker, err := NewTracker(1)
	require.NoError(t, err)

	first := unittest.VerificationRequestFixture(t, 0)
	second := unittest.VerificationRequestFixture(t, 0)
	inFlight := unittest.VerificationRequestFixture(t, 0)

	require.NoError(t, tracker.Begin(inFlight))

	require.NoError(t, tracker.Begin(first))
	tracker.Finish(first, true)
	require.NoError(t, tracker.Begin(second))
	tracker.Finish(second, true)

	assert.Equal(t, verification.SessionLogged, tracker.State(first), "evicted from the verified cache")
	assert.Equal(t, verification.SessionVerified, tracker.State(second))
	assert.Equal(t, verification.SessionVerifying, tracker.State(inFlight))
}
