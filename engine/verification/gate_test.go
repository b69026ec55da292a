package verification

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/module/metrics"
	mockmodule "github.com/arktech/studydao/module/mock"
	"github.com/arktech/studydao/utils/unittest"
)

// TestGate_NoSession checks that a subject without logged sessions is
// ineligible and that the contract's eligibility call is not needed.
func TestGate_NoSession(t *testing.T) {
	reader := mockmodule.NewSessionReader(t)
	subject := unittest.RandomAddress()
	reader.On("MemberStudySessions", mock.Anything, subject).Return([]verification.StudySession{}, nil)

	gate := NewGate(unittest.Logger(), reader, metrics.NewNoopCollector())
	result, err := gate.Check(context.Background(), subject)
	require.NoError(t, err)

	assert.False(t, result.CanVerify)
	assert.Equal(t, verification.ReasonNoSession, result.Reason)
	assert.Nil(t, result.SessionIndex)
	reader.AssertNotCalled(t, "CanVerifyRecentSession", mock.Anything, mock.Anything)
}

func TestGate_Reasons(t *testing.T) {
	cases := map[string]struct {
		sessions  []verification.StudySession
		canVerify bool
		expected  verification.EligibilityResult
	}{
		"eligible": {
			sessions:  []verification.StudySession{unittest.StudySessionFixture(true), unittest.StudySessionFixture(false)},
			canVerify: true,
			expected:  verification.Eligible(big.NewInt(1)),
		},
		"cooldown active": {
			sessions:  []verification.StudySession{unittest.StudySessionFixture(false)},
			canVerify: false,
			expected:  verification.Ineligible(verification.ReasonCooldownActive, big.NewInt(0)),
		},
		"already verified": {
			sessions:  []verification.StudySession{unittest.StudySessionFixture(false), unittest.StudySessionFixture(true)},
			canVerify: false,
			expected:  verification.Ineligible(verification.ReasonAlreadyVerified, big.NewInt(1)),
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			reader := mockmodule.NewSessionReader(t)
			subject := unittest.RandomAddress()
			reader.On("MemberStudySessions", mock.Anything, subject).Return(c.sessions, nil)
			reader.On("CanVerifyRecentSession", mock.Anything, subject).Return(c.canVerify, nil)

			gate := NewGate(unittest.Logger(), reader, metrics.NewNoopCollector())
			result, err := gate.Check(context.Background(), subject)
			require.NoError(t, err)
			assert.Equal(t, c.expected.CanVerify, result.CanVerify)
			assert.Equal(t, c.expected.Reason, result.Reason)
			assert.Equal(t, 0, c.expected.SessionIndex.Cmp(result.SessionIndex))
		})
	}
}

// TestGate_Idempotent checks that repeated checks against unchanged chain
// state give the same answer.
func TestGate_Idempotent(t *testing.T) {
	reader := mockmodule.NewSessionReader(t)
	subject := unittest.RandomAddress()
	reader.On("MemberStudySessions", mock.Anything, subject).Return([]verification.StudySession{unittest.StudySessionFixture(false)}, nil)
	reader.On("CanVerifyRecentSession", mock.Anything, subject).Return(false, nil)

	gate := NewGate(unittest.Logger(), reader, metrics.NewNoopCollector())
	first, err := gate.Check(context.Background(), subject)
	require.NoError(t, err)
	second, err := gate.Check(context.Background(), subject)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	reader.AssertNumberOfCalls(t, "MemberStudySessions", 2)
}

func TestGate_ReadError(t *testing.T) {
	reader := mockmodule.NewSessionReader(t)
	subject := unittest.RandomAddress()
	reader.On("MemberStudySessions", mock.Anything, subject).Return([]verification.StudySession{unittest.StudySessionFixture(false)}, nil)
	reader.On("CanVerifyRecentSession", mock.Anything, subject).Return(false, errors.New("header not found"))

	gate := NewGate(unittest.Logger(), reader, metrics.NewNoopCollector())
	_, err := gate.Check(context.Background(), subject)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header not found")
}
