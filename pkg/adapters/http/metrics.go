package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// parseTotal counts parse pipeline runs by endpoint and outcome, exposed on
// /metrics for authoring dashboards (how often do submitted scripts fail?).
var parseTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "varion",
		Name:      "parse_requests_total",
		Help:      "Number of script parse requests handled, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

func observeParse(endpoint, outcome string) {
	parseTotal.WithLabelValues(endpoint, outcome).Inc()
}
