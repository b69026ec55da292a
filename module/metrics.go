package module

import (
	"context"
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"
)

// KernelMetrics captures the off-chain kernel calls.
type KernelMetrics interface {
	// KernelCall records the duration of a single kernel call and whether it
	// produced a well-formed result.
	KernelCall(duration time.Duration, success bool)
}

// SubmissionMetrics captures on-chain transactions.
type SubmissionMetrics interface {
	// TransactionSubmitted records a broadcast transaction for the given contract method.
	TransactionSubmitted(method string)

	// TransactionFinalized records the outcome of a broadcast transaction and
	// the time it took to observe it. Outcome is one of confirmed, rejected or timeout.
	TransactionFinalized(method string, outcome string, duration time.Duration)
}

// VerificationMetrics captures the session verification pipeline.
type VerificationMetrics interface {
	KernelMetrics
	SubmissionMetrics

	// EligibilityChecked records the result of an eligibility check. Reason is
	// empty for eligible subjects.
	EligibilityChecked(eligible bool, reason string)

	// KernelRetried records a retry of the kernel call within one attempt.
	KernelRetried()

	// VerificationFinished records the outcome of a full verification attempt.
	VerificationFinished(outcome string, duration time.Duration)
}

type RestMetrics interface {
	// Example recorder taken from:
	// https://github.com/slok/go-http-metrics/blob/master/metrics/prometheus/prometheus.go
	httpmetrics.Recorder
	AddTotalRequests(ctx context.Context, method string, routeName string)
}
