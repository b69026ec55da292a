package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	httpmetrics "github.com/slok/go-http-metrics/metrics"
	metricsProm "github.com/slok/go-http-metrics/metrics/prometheus"

	"github.com/arktech/studydao/module"
)

// RestCollector records REST API metrics. Request duration, size and
// inflight counts come from the go-http-metrics prometheus recorder.
type RestCollector struct {
	httpmetrics.Recorder
	totalRequests *prometheus.CounterVec
}

var _ module.RestMetrics = (*RestCollector)(nil)

func NewRestCollector(registerer prometheus.Registerer) *RestCollector {
	totalRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceStudyDAO,
		Subsystem: subsystemRestAPI,
		Name:      "requests_total",
		Help:      "the number of requests handled by the REST API by method and route",
	}, []string{LabelMethod, LabelRoute})
	registerer.MustRegister(totalRequests)

	return &RestCollector{
		Recorder: metricsProm.NewRecorder(metricsProm.Config{
			Prefix:   namespaceStudyDAO + "_" + subsystemRestAPI,
			Registry: registerer,
		}),
		totalRequests: totalRequests,
	}
}

// AddTotalRequests increments the total requests counter for the route.
func (r *RestCollector) AddTotalRequests(_ context.Context, method string, routeName string) {
	r.totalRequests.WithLabelValues(method, routeName).Inc()
}
