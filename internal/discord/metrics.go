package discord

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesSeen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "despot_messages_seen_total",
		Help: "Inbound guild messages entering the pipeline.",
	})
	repliesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "despot_replies_sent_total",
		Help: "Persona replies produced by the pipeline.",
	})
	ignoresSet = promauto.NewCounter(prometheus.CounterOpts{
		Name: "despot_ignores_set_total",
		Help: "Ignore entries created by the annoyance detector.",
	})
)
