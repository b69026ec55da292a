package krnl

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/arktech/studydao/model/verification"
)

// MethodExecuteKernels is the JSON-RPC method of the kernel execution endpoint.
const MethodExecuteKernels = "krnl_executeKernels"

// RequestEnvelope is the kernel request sent alongside the encoded function
// params.
type RequestEnvelope struct {
	SenderAddress common.Address          `json:"senderAddress"`
	KernelPayload map[string]KernelParams `json:"kernelPayload"`
}

// KernelParams is the per-kernel parameter block.
type KernelParams struct {
	FunctionParams hexutil.Bytes `json:"functionParams"`
}

func newRequestEnvelope(sender common.Address, kernelID uint64, params verification.EncodedParams) RequestEnvelope {
	return RequestEnvelope{
		SenderAddress: sender,
		KernelPayload: map[string]KernelParams{
			strconv.FormatUint(kernelID, 10): {FunctionParams: params.Bytes()},
		},
	}
}

// ExecuteKernelsResult is the response shape produced by the provider. Fields
// are pointers so a missing field can be told apart from an empty one.
type ExecuteKernelsResult struct {
	Auth            *string `json:"auth"`
	KernelResponses *string `json:"kernel_responses"`
	KernelParams    *string `json:"kernel_params"`
}

// decodeResult strictly decodes the provider response. Any missing, empty or
// non-hex field fails closed with a KernelExecutionError.
func decodeResult(raw json.RawMessage, req verification.VerificationRequest) (*verification.KernelResultBundle, error) {
	if len(raw) == 0 {
		return nil, verification.NewKernelExecutionError("empty response from kernel endpoint")
	}

	var result ExecuteKernelsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, verification.NewKernelExecutionError("malformed response from kernel endpoint: %w", err)
	}

	auth, err := decodeHexField("auth", result.Auth)
	if err != nil {
		return nil, err
	}
	responses, err := decodeHexField("kernel_responses", result.KernelResponses)
	if err != nil {
		return nil, err
	}
	params, err := decodeHexField("kernel_params", result.KernelParams)
	if err != nil {
		return nil, err
	}

	return verification.NewKernelResultBundle(req, auth, responses, params), nil
}

func decodeHexField(name string, value *string) ([]byte, error) {
	if value == nil {
		return nil, verification.NewKernelExecutionError("malformed response from kernel endpoint: missing field %s", name)
	}
	data, err := hexutil.Decode(*value)
	if err != nil {
		return nil, verification.NewKernelExecutionError("malformed response from kernel endpoint: field %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, verification.NewKernelExecutionError("malformed response from kernel endpoint: empty field %s", name)
	}
	return data, nil
}

func (e RequestEnvelope) String() string {
	return fmt.Sprintf("sender=%s kernels=%d", e.SenderAddress.Hex(), len(e.KernelPayload))
}
