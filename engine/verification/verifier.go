package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/module"
	"github.com/arktech/studydao/module/krnl"
	"github.com/arktech/studydao/module/metrics"
)

const tracerName = "github.com/arktech/studydao/engine/verification"

// RetryConfig bounds the retries of the kernel call within one attempt.
// Submission is never retried.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first call, zero disables retrying.
	MaxRetries    uint64
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	JitterPercent uint64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		JitterPercent: 15,
	}
}

// Verifier runs the verification pipeline for a session: eligibility check,
// kernel execution and on-chain submission, strictly in that order.
type Verifier struct {
	log       zerolog.Logger
	sender    common.Address
	gate      module.EligibilityGate
	kernel    module.KernelExecutor
	submitter module.VerificationSubmitter
	tracker   *Tracker
	metrics   module.VerificationMetrics
	tracer    otelTrace.Tracer
	retry     RetryConfig
}

var _ module.SessionVerifier = (*Verifier)(nil)

// NewVerifier returns a Verifier submitting kernel requests on behalf of sender.
func NewVerifier(
	log zerolog.Logger,
	sender common.Address,
	gate module.EligibilityGate,
	kernel module.KernelExecutor,
	submitter module.VerificationSubmitter,
	tracker *Tracker,
	metrics module.VerificationMetrics,
	retryConfig RetryConfig,
) *Verifier {
	if retryConfig.BaseDelay <= 0 {
		retryConfig.BaseDelay = DefaultRetryConfig().BaseDelay
	}
	return &Verifier{
		log:       log.With().Str("component", "session_verifier").Logger(),
		sender:    sender,
		gate:      gate,
		kernel:    kernel,
		submitter: submitter,
		tracker:   tracker,
		metrics:   metrics,
		tracer:    otel.Tracer(tracerName),
		retry:     retryConfig,
	}
}

// InFlight returns the number of attempts currently running.
func (v *Verifier) InFlight() int64 {
	return v.tracker.InFlight()
}

// Verify runs one verification attempt for req. When force is set, a negative
// eligibility answer is logged and the attempt proceeds; the contract then
// decides.
//
// Expected errors:
//   - verification.InvalidIndexError for an empty request
//   - verification.ErrAttemptInProgress if an attempt for the session is already in flight
//   - verification.IneligibleError if the gate refused the attempt
//   - verification.KernelExecutionError if the kernel call failed after all retries
//   - verification.ErrParamsMismatch if the kernel result does not describe req
//   - verification.SubmissionRejectedError, verification.SubmissionFailedError,
//     verification.SubmissionTimeoutError from submission
func (v *Verifier) Verify(ctx context.Context, req verification.VerificationRequest, force bool) (*verification.Outcome, error) {
	if req.IsZero() {
		return nil, verification.NewInvalidIndexError("", "empty verification request")
	}

	attemptID := uuid.NewString()
	lg := v.log.With().
		Str("attempt_id", attemptID).
		Str("subject", req.Subject().Hex()).
		Str("session_index", req.SessionIndex().String()).
		Logger()

	ctx, span := v.tracer.Start(ctx, "verify_session", otelTrace.WithAttributes(
		attribute.String("attempt_id", attemptID),
		attribute.String("subject", req.Subject().Hex()),
		attribute.String("session_index", req.SessionIndex().String()),
	))
	defer span.End()

	start := time.Now()
	outcome, err := v.verify(ctx, lg, attemptID, req, force)
	duration := time.Since(start)

	v.metrics.VerificationFinished(outcomeLabel(err), duration)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		lg.Warn().Err(err).Dur("duration", duration).Msg("session verification failed")
		return nil, err
	}

	lg.Info().
		Str("tx_hash", outcome.TxHash.Hex()).
		Dur("duration", duration).
		Msg("session verified")
	return outcome, nil
}

func (v *Verifier) verify(
	ctx context.Context,
	lg zerolog.Logger,
	attemptID string,
	req verification.VerificationRequest,
	force bool,
) (*verification.Outcome, error) {
	if err := v.tracker.Begin(req); err != nil {
		return nil, err
	}
	verified := false
	defer func() {
		v.tracker.Finish(req, verified)
	}()

	if err := v.checkEligibility(ctx, lg, req, force); err != nil {
		return nil, err
	}

	bundle, err := v.execute(ctx, lg, req)
	if err != nil {
		return nil, err
	}

	receipt, err := v.submit(ctx, req, bundle)
	if err != nil {
		return nil, err
	}
	verified = true

	return &verification.Outcome{
		AttemptID:   attemptID,
		Request:     req,
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
		State:       verification.SessionVerified,
	}, nil
}

// checkEligibility consults the gate. The requested index must exist, and
// the gate must permit the attempt unless force is set.
func (v *Verifier) checkEligibility(ctx context.Context, lg zerolog.Logger, req verification.VerificationRequest, force bool) error {
	ctx, span := v.tracer.Start(ctx, "check_eligibility")
	defer span.End()

	result, err := v.gate.Check(ctx, req.Subject())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("could not check eligibility: %w", err)
	}
	span.SetAttributes(attribute.Bool("can_verify", result.CanVerify), attribute.String("reason", string(result.Reason)))

	if result.SessionIndex == nil || req.SessionIndex().Cmp(result.SessionIndex) > 0 {
		return verification.NewIneligibleError(verification.Ineligible(verification.ReasonNoSession, req.SessionIndex()))
	}
	if result.CanVerify {
		if req.SessionIndex().Cmp(result.SessionIndex) != 0 {
			lg.Debug().Str("latest_index", result.SessionIndex.String()).Msg("verifying a session other than the most recent one")
		}
		return nil
	}
	if force {
		lg.Warn().Str("reason", string(result.Reason)).Msg("eligibility check failed, proceeding as forced")
		return nil
	}
	return verification.NewIneligibleError(result)
}

// execute calls the kernel, retrying only kernel execution failures with
// exponential backoff.
func (v *Verifier) execute(ctx context.Context, lg zerolog.Logger, req verification.VerificationRequest) (*verification.KernelResultBundle, error) {
	ctx, span := v.tracer.Start(ctx, "execute_kernel")
	defer span.End()

	backoff := retry.NewExponential(v.retry.BaseDelay)
	if v.retry.MaxDelay > 0 {
		backoff = retry.WithCappedDuration(v.retry.MaxDelay, backoff)
	}
	if v.retry.JitterPercent > 0 {
		backoff = retry.WithJitterPercent(v.retry.JitterPercent, backoff)
	}
	backoff = retry.WithMaxRetries(v.retry.MaxRetries, backoff)

	var bundle *verification.KernelResultBundle
	var lastErr error
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			v.metrics.KernelRetried()
			lg.Info().Int("attempt", attempt).Err(lastErr).Msg("retrying kernel execution")
		}

		var err error
		bundle, err = v.kernel.Execute(ctx, v.sender, krnl.FunctionVerifyStudySession, req)
		if err == nil {
			return nil
		}
		lastErr = err
		if verification.IsKernelExecutionError(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		// cancellation while backing off reports the context error, keep the kernel failure
		if lastErr != nil && !errors.Is(err, lastErr) && ctx.Err() != nil {
			err = fmt.Errorf("%w (%v)", lastErr, ctx.Err())
		}
		span.RecordError(err)
		span.SetAttributes(attribute.Int("attempts", attempt))
		return nil, err
	}
	span.SetAttributes(attribute.Int("attempts", attempt))
	return bundle, nil
}

// submit relays the bundle on-chain exactly once.
func (v *Verifier) submit(ctx context.Context, req verification.VerificationRequest, bundle *verification.KernelResultBundle) (*types.Receipt, error) {
	ctx, span := v.tracer.Start(ctx, "submit_verification")
	defer span.End()

	if !bundle.Request().Equal(req) {
		return nil, verification.ErrParamsMismatch
	}
	receipt, err := v.submitter.SubmitVerification(ctx, req, bundle)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("tx_hash", receipt.TxHash.Hex()))
	return receipt, nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeConfirmed
	case verification.IsIneligibleError(err):
		return metrics.OutcomeIneligible
	case verification.IsKernelExecutionError(err):
		return metrics.OutcomeKernel
	case verification.IsSubmissionRejectedError(err):
		return metrics.OutcomeRejected
	case verification.IsSubmissionTimeoutError(err):
		return metrics.OutcomeTimeout
	case verification.IsInvalidAddressError(err), verification.IsInvalidIndexError(err),
		errors.Is(err, verification.ErrParamsMismatch), errors.Is(err, verification.ErrAttemptInProgress):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
