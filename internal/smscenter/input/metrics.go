package input

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sourceFile = "file"
	sourceNATS = "nats"
)

var (
	natsCommandMessagesReceivedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_center",
			Name:      "nats_command_messages_received_total",
			Help:      "Total NATS messages received on the command subject.",
		},
		[]string{"subject_pattern"},
	)

	commandsRejectedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_center",
			Name:      "command_lines_rejected_total",
			Help:      "Total command lines that could not be parsed.",
		},
		[]string{"source"},
	)
)
