package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	protectedReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ocsd",
			Subsystem: "sync",
			Name:      "reads_total",
			Help:      "Torn-read-protected buffer reads.",
		},
		[]string{"success"},
	)
	publishes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ocsd",
			Subsystem: "sync",
			Name:      "writes_total",
			Help:      "Read-modify-write publish sequences.",
		},
		[]string{"success"},
	)
	tornRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ocsd",
			Subsystem: "sync",
			Name:      "torn_retries_total",
			Help:      "Retries caused by detected concurrent controller writes.",
		},
		[]string{"op"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(protectedReads, publishes, tornRetries)
	})
}

func RecordProtectedRead(success bool) {
	RegisterMetrics()
	protectedReads.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func RecordPublish(success bool) {
	RegisterMetrics()
	publishes.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func RecordTornRetry(op string) {
	RegisterMetrics()
	tornRetries.WithLabelValues(op).Inc()
}
