package krnl

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/arktech/studydao/model/verification"
)

func TestEncode_KnownVector(t *testing.T) {
	subject := "0xABCD00000000000000000000000000000000abcd"
	params, err := Encode(subject, big.NewInt(3))
	require.NoError(t, err)

	data := params.Bytes()
	require.Len(t, data, 64)
	assert.Equal(t, make([]byte, 12), data[:12], "address must be left padded")
	assert.Equal(t, common.HexToAddress(subject).Bytes(), data[12:32])
	assert.Equal(t, make([]byte, 31), data[32:63])
	assert.Equal(t, byte(3), data[63])
}

func TestEncode_Validation(t *testing.T) {
	t.Run("invalid address", func(t *testing.T) {
		for _, s := range []string{"0x1234", "not-an-address", "0xABCD00000000000000000000000000000000abcdef"} {
			_, err := Encode(s, big.NewInt(1))
			assert.True(t, verification.IsInvalidAddressError(err), s)
		}
	})

	t.Run("invalid index", func(t *testing.T) {
		_, err := Encode("0xABCD00000000000000000000000000000000abcd", big.NewInt(-1))
		assert.True(t, verification.IsInvalidIndexError(err))
	})

	t.Run("zero request", func(t *testing.T) {
		_, err := EncodeParams(verification.VerificationRequest{})
		assert.True(t, verification.IsInvalidIndexError(err))
	})
}

// TestEncode_Deterministic checks that encoding the same logical request twice
// yields identical bytes, and that decoding recovers the request.
func TestEncode_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), 20, 20).Draw(t, "subject")
		indexBytes := rapid.SliceOfN(rapid.Byte(), 0, 32).Draw(t, "index")
		subject := common.BytesToAddress(raw)
		index := new(big.Int).SetBytes(indexBytes)

		first, err := Encode(subject.Hex(), index)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		// lower case spelling of the same address must not change the encoding
		second, err := Encode(common.Bytes2Hex(subject.Bytes()), new(big.Int).Set(index))
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		if !bytes.Equal(first.Bytes(), second.Bytes()) {
			t.Fatalf("non deterministic encoding for %s/%s", subject.Hex(), index)
		}

		decoded, err := DecodeParams(first)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if decoded.Subject() != subject || decoded.SessionIndex().Cmp(index) != 0 {
			t.Fatalf("round trip mismatch")
		}
	})
}

func TestEncode_MaxIndex(t *testing.T) {
	params, err := Encode("0xABCD00000000000000000000000000000000abcd", math.MaxBig256)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xff}, 32), params.Bytes()[32:])
}

func TestEncoder_Operations(t *testing.T) {
	encoder := NewEncoder()
	req, err := verification.NewVerificationRequest("0xABCD00000000000000000000000000000000abcd", big.NewInt(3))
	require.NoError(t, err)

	assert.True(t, encoder.Supports(FunctionVerifyStudySession))
	assert.False(t, encoder.Supports("createStudyGroup"))

	kernelParams, err := encoder.EncodeKernelParams(FunctionVerifyStudySession, req)
	require.NoError(t, err)
	functionParams, err := encoder.EncodeFunctionParams(FunctionVerifyStudySession, req)
	require.NoError(t, err)
	assert.True(t, kernelParams.Equal(functionParams))

	_, err = encoder.EncodeKernelParams("createStudyGroup", req)
	assert.True(t, verification.IsUnsupportedOperationError(err))
	_, err = encoder.EncodeFunctionParams("createStudyGroup", req)
	assert.True(t, verification.IsUnsupportedOperationError(err))
}

func TestCheckSameRequest(t *testing.T) {
	a, err := verification.NewVerificationRequest("0xABCD00000000000000000000000000000000abcd", big.NewInt(3))
	require.NoError(t, err)
	b, err := verification.NewVerificationRequest("0xABCD00000000000000000000000000000000abcd", big.NewInt(4))
	require.NoError(t, err)

	pa, err := EncodeParams(a)
	require.NoError(t, err)
	pb, err := EncodeParams(b)
	require.NoError(t, err)

	assert.NoError(t, checkSameRequest(a, pa, pa))
	assert.ErrorIs(t, checkSameRequest(a, pa, pb), verification.ErrParamsMismatch)
	assert.ErrorIs(t, checkSameRequest(a, verification.NewEncodedParams([]byte{0x01})), verification.ErrParamsMismatch)
}
