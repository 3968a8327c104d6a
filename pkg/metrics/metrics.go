package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemoteErrCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classcal",
		Subsystem: "remote",
		Name:      "remote_err_count",
	}, []string{"method"})
	RemoteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "classcal",
		Subsystem: "remote",
		Name:      "remote_duration",
	}, []string{"method"})
	PgErrCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classcal",
		Subsystem: "pg",
		Name:      "pg_err_count",
	}, []string{"method"})
	PgDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "classcal",
		Subsystem: "pg",
		Name:      "pg_duration",
	}, []string{"method"})
)
