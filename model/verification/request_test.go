package verification_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/arktech/studydao/model/verification"
)

const subject = "0xABCD00000000000000000000000000000000abcd"

// TestNewVerificationRequest tests the NewVerificationRequest constructor with valid and invalid inputs.
//
// Valid Cases:
//
// 1. Checksummed, lower case and unprefixed addresses with an index in range.
//
// Invalid Cases:
//
// 2. Malformed subject (wrong length, non-hex):
//   - Should return InvalidAddressError.
//
// 3. Negative, nil or oversized index:
//   - Should return InvalidIndexError.
func TestNewVerificationRequest(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		for _, s := range []string{subject, strings.ToLower(subject), strings.TrimPrefix(subject, "0x")} {
			req, err := verification.NewVerificationRequest(s, big.NewInt(3))
			require.NoError(t, err)
			assert.Equal(t, common.HexToAddress(subject), req.Subject())
			assert.Equal(t, int64(3), req.SessionIndex().Int64())
		}
	})

	t.Run("max uint256 index", func(t *testing.T) {
		_, err := verification.NewVerificationRequest(subject, math.MaxBig256)
		require.NoError(t, err)
	})

	t.Run("malformed subject", func(t *testing.T) {
		for _, s := range []string{"", "0x", "0x1234", subject + "00", "0xZZCD00000000000000000000000000000000abcd", "hello"} {
			_, err := verification.NewVerificationRequest(s, big.NewInt(1))
			require.Error(t, err, s)
			assert.True(t, verification.IsInvalidAddressError(err), s)
		}
	})

	t.Run("invalid index", func(t *testing.T) {
		tooLarge := new(big.Int).Add(math.MaxBig256, big.NewInt(1))
		for _, index := range []*big.Int{nil, big.NewInt(-1), tooLarge} {
			_, err := verification.NewVerificationRequest(subject, index)
			require.Error(t, err)
			assert.True(t, verification.IsInvalidIndexError(err))
		}
	})
}

// TestVerificationRequest_Immutable checks that mutating the input or the
// returned index does not affect the request.
func TestVerificationRequest_Immutable(t *testing.T) {
	index := big.NewInt(7)
	req, err := verification.NewVerificationRequest(subject, index)
	require.NoError(t, err)

	index.SetInt64(99)
	req.SessionIndex().SetInt64(100)

	assert.Equal(t, int64(7), req.SessionIndex().Int64())
}

func TestVerificationRequest_Equal(t *testing.T) {
	a, err := verification.NewVerificationRequest(subject, big.NewInt(3))
	require.NoError(t, err)
	b, err := verification.NewVerificationRequest(strings.ToLower(subject), big.NewInt(3))
	require.NoError(t, err)
	c, err := verification.NewVerificationRequest(subject, big.NewInt(4))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(verification.VerificationRequest{}))
	assert.Equal(t, a.Key(), b.Key())
}

func TestParseSessionIndex(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		for in, want := range map[string]int64{"0": 0, "3": 3, " 42 ": 42, "+5": 5} {
			got, err := verification.ParseSessionIndex(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got.Int64(), in)
		}
	})

	t.Run("negative or non-integral", func(t *testing.T) {
		for _, in := range []string{"-1", "1.5", "1e3", "0x10", "", "three", "NaN"} {
			_, err := verification.ParseSessionIndex(in)
			require.Error(t, err, in)
			assert.True(t, verification.IsInvalidIndexError(err), in)
		}
	})

	t.Run("overflow", func(t *testing.T) {
		tooLarge := new(big.Int).Add(math.MaxBig256, big.NewInt(1))
		_, err := verification.ParseSessionIndex(tooLarge.String())
		assert.True(t, verification.IsInvalidIndexError(err))
	})
}

// TestParseAddress_Property checks that every 20 byte value round trips and
// that every hex string of any other length is rejected.
func TestParseAddress_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), 20, 20).Draw(t, "raw")
		addr := common.BytesToAddress(raw)

		parsed, err := verification.ParseAddress(addr.Hex())
		if err != nil {
			t.Fatalf("valid address rejected: %v", err)
		}
		if parsed != addr {
			t.Fatalf("round trip mismatch: %s != %s", parsed.Hex(), addr.Hex())
		}

		n := rapid.IntRange(0, 40).Filter(func(n int) bool { return n != 20 }).Draw(t, "n")
		other := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "other")
		_, err = verification.ParseAddress(common.Bytes2Hex(other))
		if !verification.IsInvalidAddressError(err) {
			t.Fatalf("expected InvalidAddressError for %d bytes, got %v", n, err)
		}
	})
}
