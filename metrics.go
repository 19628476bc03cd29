package shodan

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	clienterrors "github.com/netscout/shodan/internal/errors"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shodan_client",
			Name:      "requests_total",
			Help:      "Requests that received an HTTP response, by endpoint and status code.",
		},
		[]string{"endpoint", "code"},
	)

	requestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shodan_client",
			Name:      "request_errors_total",
			Help:      "Requests that failed before a response arrived, by endpoint and error kind.",
		},
		[]string{"endpoint", "kind"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shodan_client",
			Name:      "request_duration_seconds",
			Help:      "Time until the response headers (and, for REST, the body) were read.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func observeRequest(endpoint string, code int, err error, elapsed time.Duration) {
	if err != nil {
		kind := "unknown"
		switch {
		case clienterrors.IsConfiguration(err):
			kind = "configuration"
		case clienterrors.IsTransport(err):
			kind = "transport"
		}
		requestErrorsTotal.WithLabelValues(endpoint, kind).Inc()
		return
	}
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
