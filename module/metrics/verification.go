package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arktech/studydao/module"
)

// VerificationCollector implements metric collection for the session
// verification pipeline.
type VerificationCollector struct {
	registerer            prometheus.Registerer
	kernelCallDuration    *prometheus.HistogramVec
	kernelRetries         prometheus.Counter
	transactionsSubmitted *prometheus.CounterVec
	transactionsFinalized *prometheus.CounterVec
	confirmationDuration  *prometheus.HistogramVec
	eligibilityChecks     *prometheus.CounterVec
	verificationsFinished *prometheus.CounterVec
	verificationDuration  prometheus.Histogram
}

var _ module.VerificationMetrics = (*VerificationCollector)(nil)

func NewVerificationCollector(registerer prometheus.Registerer) *VerificationCollector {
	kernelCallDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemKernel,
		Name:      "call_duration_seconds",
		Help:      "duration of calls to the kernel execution endpoint",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{LabelResult})
	kernelRetries := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemKernel,
		Name:      "retries_total",
		Help:      "the number of kernel calls retried after a kernel execution error",
	})
	transactionsSubmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemSubmission,
		Name:      "transactions_submitted_total",
		Help:      "the number of transactions broadcast to the StudyDAO contracts",
	}, []string{LabelMethod})
	transactionsFinalized := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemSubmission,
		Name:      "transactions_finalized_total",
		Help:      "the number of broadcast transactions by observed outcome",
	}, []string{LabelMethod, LabelOutcome})
	confirmationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemSubmission,
		Name:      "confirmation_duration_seconds",
		Help:      "time between broadcasting a transaction and observing its outcome",
		Buckets:   []float64{1, 2, 5, 10, 20, 40, 80, 160, 320},
	}, []string{LabelMethod})
	eligibilityChecks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemVerification,
		Name:      "eligibility_checks_total",
		Help:      "the number of eligibility checks by reason, the reason is empty for eligible subjects",
	}, []string{LabelReason})
	verificationsFinished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemVerification,
		Name:      "attempts_total",
		Help:      "the number of verification attempts by outcome",
	}, []string{LabelOutcome})
	verificationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemVerification,
		Name:      "attempt_duration_seconds",
		Help:      "the duration of a full verification attempt",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
	})

	registerer.MustRegister(
		kernelCallDuration,
		kernelRetries,
		transactionsSubmitted,
		transactionsFinalized,
		confirmationDuration,
		eligibilityChecks,
		verificationsFinished,
		verificationDuration,
	)

	return &VerificationCollector{
		registerer:            registerer,
		kernelCallDuration:    kernelCallDuration,
		kernelRetries:         kernelRetries,
		transactionsSubmitted: transactionsSubmitted,
		transactionsFinalized: transactionsFinalized,
		confirmationDuration:  confirmationDuration,
		eligibilityChecks:     eligibilityChecks,
		verificationsFinished: verificationsFinished,
		verificationDuration:  verificationDuration,
	}
}

func (vc *VerificationCollector) KernelCall(duration time.Duration, success bool) {
	result := ResultFailure
	if success {
		result = ResultSuccess
	}
	vc.kernelCallDuration.WithLabelValues(result).Observe(duration.Seconds())
}

func (vc *VerificationCollector) KernelRetried() {
	vc.kernelRetries.Inc()
}

func (vc *VerificationCollector) TransactionSubmitted(method string) {
	vc.transactionsSubmitted.WithLabelValues(method).Inc()
}

func (vc *VerificationCollector) TransactionFinalized(method string, outcome string, duration time.Duration) {
	vc.transactionsFinalized.WithLabelValues(method, outcome).Inc()
	vc.confirmationDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (vc *VerificationCollector) EligibilityChecked(eligible bool, reason string) {
	if eligible {
		reason = ""
	}
	vc.eligibilityChecks.WithLabelValues(reason).Inc()
}

func (vc *VerificationCollector) VerificationFinished(outcome string, duration time.Duration) {
	vc.verificationsFinished.WithLabelValues(outcome).Inc()
	vc.verificationDuration.Observe(duration.Seconds())
}

// AttemptsInFlight exports inFlight, read on every scrape, as the number of
// verification attempts currently running. It may be called once per collector.
func (vc *VerificationCollector) AttemptsInFlight(inFlight func() int64) {
	vc.registerer.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemVerification,
		Name:      "attempts_in_flight",
		Help:      "the number of verification attempts currently running in this process",
	}, func() float64 {
		return float64(inFlight())
	}))
}
