package module

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/arktech/studydao/model/verification"
)

// KernelExecutor submits a verification request to the off-chain kernel
// endpoint and returns its authenticated result.
type KernelExecutor interface {

	// Execute sends req, encoded for the given logical function, on behalf of
	// sender. It makes exactly one call to the endpoint and never retries.
	//
	// Expected errors:
	//   - verification.UnsupportedOperationError before any network call
	//   - verification.KernelExecutionError if the call failed, timed out or returned malformed data
	Execute(ctx context.Context, sender common.Address, function string, req verification.VerificationRequest) (*verification.KernelResultBundle, error)
}

// VerificationSubmitter relays kernel results to the verification contract.
type VerificationSubmitter interface {

	// SubmitVerification submits bundle for req and blocks until the
	// transaction is confirmed or the wait policy expires. It must not be
	// retried with the same bundle.
	//
	// Expected errors:
	//   - verification.ErrParamsMismatch if req is not the request the bundle was produced for
	//   - verification.SubmissionRejectedError if the call reverted
	//   - verification.SubmissionTimeoutError if confirmation was not observed in time
	SubmitVerification(ctx context.Context, req verification.VerificationRequest, bundle *verification.KernelResultBundle) (*types.Receipt, error)
}

// SessionReader exposes the read-only session calls of the StudyDAO contract.
type SessionReader interface {

	// CanVerifyRecentSession returns true if the member's most recent session
	// may be verified now.
	CanVerifyRecentSession(ctx context.Context, member common.Address) (bool, error)

	// MemberStudySessions returns the sessions logged by member, oldest first.
	MemberStudySessions(ctx context.Context, member common.Address) ([]verification.StudySession, error)
}

// EligibilityGate answers whether a verification attempt is currently
// permitted. It has no side effects and its result is advisory.
type EligibilityGate interface {
	Check(ctx context.Context, subject common.Address) (verification.EligibilityResult, error)
}

// SessionVerifier runs the full verification pipeline for one session.
type SessionVerifier interface {

	// Verify runs eligibility check, kernel execution and on-chain submission
	// for req. When force is set, an ineligible gate result is logged but does
	// not stop the attempt.
	Verify(ctx context.Context, req verification.VerificationRequest, force bool) (*verification.Outcome, error)
}

// StudyGroupReader exposes the read-only group and member calls of the
// StudyDAO contract.
type StudyGroupReader interface {
	GroupCount(ctx context.Context) (*big.Int, error)
	StudyGroup(ctx context.Context, groupID *big.Int) (*verification.StudyGroup, error)
	Member(ctx context.Context, member common.Address) (*verification.Member, error)
}
