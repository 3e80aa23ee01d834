package mind

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	classifierFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "despot_classifier_failures_total",
		Help: "Classifier calls that failed closed to the default classification.",
	})
	responderFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "despot_responder_fallbacks_total",
		Help: "Persona replies degraded to the fixed fallback line.",
	})
)
