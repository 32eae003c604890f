package filemanager

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"transcriptfolder/internal/domain"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fm_mutations_total",
			Help: "Collection and selection mutations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	derivationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fm_derivation_duration_seconds",
			Help:    "Time spent recomputing a derived view.",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025},
		},
		[]string{"derivation"},
	)

	invariantViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fm_invariant_violations_total",
			Help: "Derivations aborted because the parent graph is corrupted.",
		},
		[]string{"derivation"},
	)

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fm_sessions_active",
		Help: "Sessions currently held by the registry.",
	})

	eventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_events_dropped_total",
		Help: "Events not delivered because a subscriber was not keeping up.",
	})
)

// outcomeOf classifies an operation result for the mutation counter
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func observeMutation(op string, err error) {
	mutationsTotal.WithLabelValues(op, outcomeOf(err)).Inc()
}
