package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transportSendDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sms_center",
			Name:      "transport_send_duration_seconds",
			Help:      "Duration of transport send calls.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"transport"},
	)

	transportSendsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_center",
			Name:      "transport_sends_total",
			Help:      "Total transport send attempts.",
		},
		[]string{"transport", "status"}, // status: "success", "error"
	)
)
