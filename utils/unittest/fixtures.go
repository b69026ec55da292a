package unittest

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/arktech/studydao/model/verification"
)

// RandomAddress returns a random account address.
func RandomAddress() common.Address {
	var addr common.Address
	_, _ = rand.Read(addr[:])
	return addr
}

// RandomBytes returns n random bytes.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// VerificationRequestFixture returns a request for the given session of a random subject.
func VerificationRequestFixture(t testing.TB, sessionIndex int64) verification.VerificationRequest {
	req, err := verification.NewVerificationRequest(RandomAddress().Hex(), big.NewInt(sessionIndex))
	require.NoError(t, err)
	return req
}

// KernelResultBundleFixture returns a bundle with random attestation data for req.
func KernelResultBundleFixture(req verification.VerificationRequest) *verification.KernelResultBundle {
	return verification.NewKernelResultBundle(req, RandomBytes(65), RandomBytes(96), RandomBytes(64))
}

// StudySessionFixture returns a logged session with the given verified flag.
func StudySessionFixture(verified bool) verification.StudySession {
	return verification.StudySession{
		Duration:   big.NewInt(3600),
		StudyTopic: "distributed systems",
		Timestamp:  big.NewInt(1700000000),
		Verified:   verified,
	}
}
