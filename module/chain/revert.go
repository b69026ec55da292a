package chain

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

const executionReverted = "execution reverted"

// IsRevert reports whether err is the node refusing a call because the
// contract reverted, as opposed to a transport or node failure.
func IsRevert(err error) bool {
	if err == nil {
		return false
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return true
	}
	return strings.Contains(err.Error(), executionReverted)
}

// RevertReason extracts the revert reason from a node error. The ABI encoded
// Error(string) payload is preferred, the error message is the fallback.
func RevertReason(err error) string {
	if err == nil {
		return ""
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decodeErr := hexutil.Decode(data); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason
				}
			}
		}
	}

	msg := err.Error()
	i := strings.Index(msg, executionReverted)
	if i < 0 {
		return ""
	}
	reason := strings.TrimSpace(msg[i+len(executionReverted):])
	reason = strings.TrimSpace(strings.TrimPrefix(reason, ":"))
	return reason
}
