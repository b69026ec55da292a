package metrics

import (
	"context"
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"

	"github.com/arktech/studydao/module"
)

type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

var _ module.VerificationMetrics = (*NoopCollector)(nil)
var _ module.RestMetrics = (*NoopCollector)(nil)

func (nc *NoopCollector) KernelCall(duration time.Duration, success bool)                            {}
func (nc *NoopCollector) TransactionSubmitted(method string)                                         {}
func (nc *NoopCollector) TransactionFinalized(method string, outcome string, duration time.Duration) {}
func (nc *NoopCollector) EligibilityChecked(eligible bool, reason string)                            {}
func (nc *NoopCollector) KernelRetried()                                                             {}
func (nc *NoopCollector) VerificationFinished(outcome string, duration time.Duration)                {}
func (nc *NoopCollector) ObserveHTTPRequestDuration(context.Context, httpmetrics.HTTPReqProperties, time.Duration) {
}
func (nc *NoopCollector) ObserveHTTPResponseSize(context.Context, httpmetrics.HTTPReqProperties, int64) {
}
func (nc *NoopCollector) AddInflightRequests(context.Context, httpmetrics.HTTPProperties, int) {}
func (nc *NoopCollector) AddTotalRequests(context.Context, string, string)                     {}
