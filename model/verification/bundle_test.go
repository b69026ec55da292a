package verification_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arktech/studydao/model/verification"
)

func TestKernelResultBundle_Immutable(t *testing.T) {
	req, err := verification.NewVerificationRequest(subject, big.NewInt(3))
	require.NoError(t, err)

	auth := []byte{0x01}
	responses := []byte{0x02}
	params := []byte{0x03}
	bundle := verification.NewKernelResultBundle(req, auth, responses, params)

	// mutate the caller's slices and the returned copies
	auth[0], responses[0], params[0] = 0xff, 0xff, 0xff
	bundle.Auth()[0] = 0xee
	bundle.Payload().KernelParams[0] = 0xee

	payload := bundle.Payload()
	assert.Equal(t, []byte{0x01}, payload.Auth)
	assert.Equal(t, []byte{0x02}, payload.KernelResponses)
	assert.Equal(t, []byte{0x03}, payload.KernelParams)
	assert.True(t, bundle.Request().Equal(req))
}

func TestEncodedParams_Immutable(t *testing.T) {
	data := []byte{1, 2, 3}
	p := verification.NewEncodedParams(data)
	data[0] = 9
	p.Bytes()[1] = 9

	assert.Equal(t, []byte{1, 2, 3}, p.Bytes())
	assert.True(t, p.Equal(verification.NewEncodedParams([]byte{1, 2, 3})))
	assert.Equal(t, 3, p.Len())
}

func TestErrors(t *testing.T) {
	t.Run("kernel execution error wraps upstream", func(t *testing.T) {
		upstream := errors.New("dial tcp: connection refused")
		err := verification.NewKernelExecutionError("could not call endpoint: %w", upstream)
		assert.True(t, verification.IsKernelExecutionError(err))
		assert.ErrorIs(t, err, upstream)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("rejection carries reason", func(t *testing.T) {
		hash := common.HexToHash("0x01")
		err := verification.NewSubmissionRejectedError("cooldown active", hash, errors.New("execution reverted"))
		assert.True(t, verification.IsSubmissionRejectedError(err))
		assert.Contains(t, err.Error(), "cooldown active")
		assert.Contains(t, err.Error(), hash.Hex())
	})

	t.Run("rejection without reason falls back to cause", func(t *testing.T) {
		err := verification.NewSubmissionRejectedError("", common.Hash{}, errors.New("insufficient funds"))
		assert.Contains(t, err.Error(), "insufficient funds")
	})

	t.Run("send failure is neither rejected nor timed out", func(t *testing.T) {
		upstream := errors.New("connection refused")
		err := verification.NewSubmissionFailedError(upstream)
		assert.True(t, verification.IsSubmissionFailedError(err))
		assert.False(t, verification.IsSubmissionRejectedError(err))
		assert.False(t, verification.IsSubmissionTimeoutError(err))
		assert.ErrorIs(t, err, upstream)
	})

	t.Run("ineligible carries reason", func(t *testing.T) {
		err := verification.NewIneligibleError(verification.Ineligible(verification.ReasonNoSession, nil))
		assert.True(t, verification.IsIneligibleError(err))
		assert.Contains(t, err.Error(), "no session")
	})
}
