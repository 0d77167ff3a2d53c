package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_searches_total",
			Help: "Total number of lead searches by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	DraftsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_drafts_total",
			Help: "Total number of outreach drafts generated",
		},
		[]string{"outcome"},
	)

	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_dispatch_total",
			Help: "Total number of dispatch calls by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outreach_collaborator_duration_seconds",
			Help:    "Latency of calls to external collaborators",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collaborator", "operation"},
	)
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// OutcomeOf maps an error to its outcome label.
func OutcomeOf(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
