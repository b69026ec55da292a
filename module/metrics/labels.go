package metrics

const (
	LabelOutcome = "outcome"
	LabelMethod  = "method"
	LabelReason  = "reason"
	LabelResult  = "result"
	LabelRoute   = "route"
)

// Verification and transaction outcomes.
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeRejected   = "rejected"
	OutcomeTimeout    = "timeout"
	OutcomeIneligible = "ineligible"
	OutcomeKernel     = "kernel_error"
	OutcomeInvalid    = "invalid"
	OutcomeError      = "error"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
