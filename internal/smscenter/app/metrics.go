package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	routeDirect    = "direct"
	routeHeldFlush = "held_flush"
	routeBroadcast = "broadcast"
	routeGroup     = "group"
)

var (
	commandsProcessedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_center",
			Name:      "commands_processed_total",
			Help:      "Total commands applied to the SMS center.",
		},
		[]string{"kind", "status"}, // status: "success", "error"
	)

	transmissionsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_center",
			Name:      "transmissions_total",
			Help:      "Total messages handed to the transport.",
		},
		[]string{"route"},
	)

	messagesHeldCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sms_center",
			Name:      "messages_held_total",
			Help:      "Total messages held for unreachable recipients.",
		},
	)

	heldQueueDepthGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sms_center",
			Name:      "held_messages",
			Help:      "Messages currently waiting for their recipient to subscribe.",
		},
	)
)
