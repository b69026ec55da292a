package verification

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EncodedParams is the ABI encoding of a VerificationRequest under the fixed
// [address, uint256] schema. It is an immutable value: the underlying bytes
// are copied on construction and on access.
type EncodedParams struct {
	data []byte
}

func NewEncodedParams(data []byte) EncodedParams {
	return EncodedParams{data: common.CopyBytes(data)}
}

// Bytes returns a copy of the encoded bytes.
func (p EncodedParams) Bytes() []byte {
	return common.CopyBytes(p.data)
}

func (p EncodedParams) Len() int {
	return len(p.data)
}

func (p EncodedParams) Equal(other EncodedParams) bool {
	return bytes.Equal(p.data, other.data)
}

// KernelResultBundle is the authenticated result of an off-chain kernel
// execution. The client treats its contents as opaque: they are relayed
// on-chain unmodified. The bundle carries the request it was produced for.
type KernelResultBundle struct {
	request         VerificationRequest
	auth            []byte
	kernelResponses []byte
	kernelParams    []byte
}

// NewKernelResultBundle copies the given byte slices so later mutation by the
// caller cannot alter the bundle.
func NewKernelResultBundle(request VerificationRequest, auth, kernelResponses, kernelParams []byte) *KernelResultBundle {
	return &KernelResultBundle{
		request:         request,
		auth:            common.CopyBytes(auth),
		kernelResponses: common.CopyBytes(kernelResponses),
		kernelParams:    common.CopyBytes(kernelParams),
	}
}

// Request returns the request the kernel computed against.
func (b *KernelResultBundle) Request() VerificationRequest {
	return b.request
}

// Auth returns a copy of the attestation produced by the kernel.
func (b *KernelResultBundle) Auth() []byte {
	return common.CopyBytes(b.auth)
}

// KernelResponses returns a copy of the kernel output.
func (b *KernelResultBundle) KernelResponses() []byte {
	return common.CopyBytes(b.kernelResponses)
}

// KernelParams returns a copy of the parameters echoed by the kernel.
func (b *KernelResultBundle) KernelParams() []byte {
	return common.CopyBytes(b.kernelParams)
}

// Payload repackages the bundle into the tuple shape expected by the
// verification contract.
func (b *KernelResultBundle) Payload() KrnlPayload {
	return KrnlPayload{
		Auth:            b.Auth(),
		KernelResponses: b.KernelResponses(),
		KernelParams:    b.KernelParams(),
	}
}

// KrnlPayload mirrors the contract tuple (bytes auth, bytes kernelResponses,
// bytes kernelParams). Field names must match the ABI component names.
type KrnlPayload struct {
	Auth            []byte
	KernelResponses []byte
	KernelParams    []byte
}

// Outcome describes a confirmed verification.
type Outcome struct {
	AttemptID   string
	Request     VerificationRequest
	TxHash      common.Hash
	BlockNumber *big.Int
	GasUsed     uint64
	State       SessionState
}
