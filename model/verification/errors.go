package verification

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrParamsMismatch is returned when the parameters relayed on-chain do not
	// describe the same request as the parameters sent to the kernel. It is a
	// protocol violation and aborts the attempt before submission.
	ErrParamsMismatch = errors.New("verification parameters do not match the attested request")

	// ErrAttemptInProgress is returned when a verification attempt for the same
	// session is already in flight in this process.
	ErrAttemptInProgress = errors.New("verification attempt already in progress for session")
)

// InvalidAddressError indicates a malformed account address. It is a local
// validation failure and is never retried.
type InvalidAddressError struct {
	input string
}

func NewInvalidAddressError(input string) InvalidAddressError {
	return InvalidAddressError{input: input}
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %q: expected 20 byte hex account address", e.input)
}

func IsInvalidAddressError(err error) bool {
	var e InvalidAddressError
	return errors.As(err, &e)
}

// InvalidIndexError indicates a session index that is negative, non-integral
// or outside the uint256 range.
type InvalidIndexError struct {
	input  string
	reason string
}

func NewInvalidIndexError(input string, reason string) InvalidIndexError {
	return InvalidIndexError{input: input, reason: reason}
}

func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid session index %q: %s", e.input, e.reason)
}

func IsInvalidIndexError(err error) bool {
	var e InvalidIndexError
	return errors.As(err, &e)
}

// UnsupportedOperationError is returned for a logical function name that has
// no parameter encoding. It is raised before any network call is made.
type UnsupportedOperationError struct {
	Function string
}

func NewUnsupportedOperationError(function string) UnsupportedOperationError {
	return UnsupportedOperationError{Function: function}
}

func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation: %s", e.Function)
}

func IsUnsupportedOperationError(err error) bool {
	var e UnsupportedOperationError
	return errors.As(err, &e)
}

// KernelExecutionError indicates that the off-chain kernel call failed, timed
// out or returned malformed data. The off-chain step has no effect on
// contract state, so callers may retry it with the same parameters.
type KernelExecutionError struct {
	err error
}

func NewKernelExecutionError(msg string, args ...interface{}) KernelExecutionError {
	return KernelExecutionError{err: fmt.Errorf(msg, args...)}
}

func (e KernelExecutionError) Unwrap() error {
	return e.err
}

func (e KernelExecutionError) Error() string {
	return fmt.Sprintf("kernel execution failed: %s", e.err.Error())
}

func IsKernelExecutionError(err error) bool {
	var e KernelExecutionError
	return errors.As(err, &e)
}

// SubmissionRejectedError indicates the on-chain call reverted. Reason holds
// the decoded revert reason when the node provided one.
type SubmissionRejectedError struct {
	Reason string
	TxHash common.Hash
	err    error
}

func NewSubmissionRejectedError(reason string, txHash common.Hash, err error) SubmissionRejectedError {
	return SubmissionRejectedError{Reason: reason, TxHash: txHash, err: err}
}

func (e SubmissionRejectedError) Unwrap() error {
	return e.err
}

func (e SubmissionRejectedError) Error() string {
	msg := "submission rejected"
	if e.TxHash != (common.Hash{}) {
		msg = fmt.Sprintf("%s (tx %s)", msg, e.TxHash.Hex())
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s", msg, e.err.Error())
	}
	return msg
}

func IsSubmissionRejectedError(err error) bool {
	var e SubmissionRejectedError
	return errors.As(err, &e)
}

// SubmissionFailedError indicates that a transaction could not be handed to
// the node for a reason other than a revert, such as a transport failure.
// Nothing is known to have been broadcast.
type SubmissionFailedError struct {
	err error
}

func NewSubmissionFailedError(err error) SubmissionFailedError {
	return SubmissionFailedError{err: err}
}

func (e SubmissionFailedError) Unwrap() error {
	return e.err
}

func (e SubmissionFailedError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.err)
}

func IsSubmissionFailedError(err error) bool {
	var e SubmissionFailedError
	return errors.As(err, &e)
}

// SubmissionTimeoutError indicates that a transaction was broadcast but its
// confirmation was not observed within the wait policy. The outcome is
// ambiguous: the transaction may still be included later.
type SubmissionTimeoutError struct {
	TxHash common.Hash
	err    error
}

func NewSubmissionTimeoutError(txHash common.Hash, err error) SubmissionTimeoutError {
	return SubmissionTimeoutError{TxHash: txHash, err: err}
}

func (e SubmissionTimeoutError) Unwrap() error {
	return e.err
}

func (e SubmissionTimeoutError) Error() string {
	return fmt.Sprintf("confirmation of tx %s not observed in time: %v", e.TxHash.Hex(), e.err)
}

func IsSubmissionTimeoutError(err error) bool {
	var e SubmissionTimeoutError
	return errors.As(err, &e)
}

// IneligibleError is returned when the eligibility gate refuses an attempt.
type IneligibleError struct {
	Result EligibilityResult
}

func NewIneligibleError(result EligibilityResult) IneligibleError {
	return IneligibleError{Result: result}
}

func (e IneligibleError) Error() string {
	return fmt.Sprintf("session verification not permitted: %s", e.Result.Reason)
}

func IsIneligibleError(err error) bool {
	var e IneligibleError
	return errors.As(err, &e)
}
