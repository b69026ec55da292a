package studydao

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/arktech/studydao/model/verification"
)

// SubmitVerification relays the kernel result for req to the contract and
// waits for the transaction to be confirmed. The bundle must have been
// produced for req. A submission is never retried.
//
// Expected errors:
//   - verification.ErrParamsMismatch if bundle was produced for a different request
//   - verification.SubmissionRejectedError if the contract rejected the call
//   - verification.SubmissionTimeoutError if confirmation was not observed in time
//   - ErrReadOnly if the client has no signer
func (c *Client) SubmitVerification(
	ctx context.Context,
	req verification.VerificationRequest,
	bundle *verification.KernelResultBundle,
) (*types.Receipt, error) {
	if bundle == nil {
		return nil, fmt.Errorf("%w: no kernel result", verification.ErrParamsMismatch)
	}
	if req.IsZero() || !bundle.Request().Equal(req) {
		return nil, fmt.Errorf("%w: kernel result was produced for %s, submitting %s",
			verification.ErrParamsMismatch, bundle.Request(), req)
	}

	c.log.Info().
		Str("subject", req.Subject().Hex()).
		Str("session_index", req.SessionIndex().String()).
		Msg("submitting session verification")

	return c.transact(ctx, MethodVerifyStudySession, nil, bundle.Payload(), req.Subject(), req.SessionIndex())
}
