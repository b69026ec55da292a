package krnl

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/arktech/studydao/model/verification"
)

// FunctionVerifyStudySession is the logical name of the session verification
// operation, which is also the name of the contract method it targets.
const FunctionVerifyStudySession = "verifyStudySessionWithKRNL"

// paramsSchema is the fixed [address, uint256] schema shared by the kernel and
// the verification contract.
var paramsSchema = abi.Arguments{
	{Name: "member", Type: mustNewType("address")},
	{Name: "sessionIndex", Type: mustNewType("uint256")},
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("invalid abi type %s: %v", t, err))
	}
	return typ
}

// Encode validates subject and sessionIndex and returns their canonical
// encoding.
//
// Expected errors:
//   - InvalidAddressError if subject is not a well-formed address
//   - InvalidIndexError if sessionIndex is negative or out of range
func Encode(subject string, sessionIndex *big.Int) (verification.EncodedParams, error) {
	req, err := verification.NewVerificationRequest(subject, sessionIndex)
	if err != nil {
		return verification.EncodedParams{}, err
	}
	return EncodeParams(req)
}

// EncodeParams encodes a validated request. The result depends only on the
// request, encoding the same request twice yields identical bytes.
func EncodeParams(req verification.VerificationRequest) (verification.EncodedParams, error) {
	if req.IsZero() {
		return verification.EncodedParams{}, verification.NewInvalidIndexError("<nil>", "missing")
	}
	data, err := paramsSchema.Pack(req.Subject(), req.SessionIndex())
	if err != nil {
		// unreachable for a validated request
		return verification.EncodedParams{}, fmt.Errorf("could not pack verification params: %w", err)
	}
	return verification.NewEncodedParams(data), nil
}

// DecodeParams is the inverse of EncodeParams.
func DecodeParams(params verification.EncodedParams) (verification.VerificationRequest, error) {
	values, err := paramsSchema.Unpack(params.Bytes())
	if err != nil {
		return verification.VerificationRequest{}, fmt.Errorf("could not unpack verification params: %w", err)
	}
	member, ok := values[0].(common.Address)
	if !ok {
		return verification.VerificationRequest{}, fmt.Errorf("unexpected member type %T", values[0])
	}
	index, ok := values[1].(*big.Int)
	if !ok {
		return verification.VerificationRequest{}, fmt.Errorf("unexpected session index type %T", values[1])
	}
	return verification.NewVerificationRequest(member.Hex(), index)
}

// Encoder selects the per-operation encoding of kernel and function params.
type Encoder struct {
	kernel   map[string]encodeFunc
	function map[string]encodeFunc
}

type encodeFunc func(verification.VerificationRequest) (verification.EncodedParams, error)

func NewEncoder() *Encoder {
	return &Encoder{
		kernel: map[string]encodeFunc{
			FunctionVerifyStudySession: EncodeParams,
		},
		function: map[string]encodeFunc{
			FunctionVerifyStudySession: EncodeParams,
		},
	}
}

// Supports reports whether function has an encoding.
func (e *Encoder) Supports(function string) bool {
	_, kernel := e.kernel[function]
	_, fn := e.function[function]
	return kernel && fn
}

// EncodeKernelParams encodes the parameter block sent to the kernel.
func (e *Encoder) EncodeKernelParams(function string, req verification.VerificationRequest) (verification.EncodedParams, error) {
	encode, ok := e.kernel[function]
	if !ok {
		return verification.EncodedParams{}, verification.NewUnsupportedOperationError(function)
	}
	return encode(req)
}

// EncodeFunctionParams encodes the parameters in the shape the target
// contract expects.
func (e *Encoder) EncodeFunctionParams(function string, req verification.VerificationRequest) (verification.EncodedParams, error) {
	encode, ok := e.function[function]
	if !ok {
		return verification.EncodedParams{}, verification.NewUnsupportedOperationError(function)
	}
	return encode(req)
}
