package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels completed assessments.
	OutcomeSuccess = "success"
	// OutcomeError labels assessments that failed (telemetry unavailable).
	OutcomeError = "error"
)

var (
	assessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel_threat",
			Name:      "assessments_total",
			Help:      "Total number of threat assessments handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	assessmentDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sentinel_threat",
			Name:      "assessment_seconds",
			Help:      "Assessment latency in seconds, telemetry scan included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 10},
		},
	)

	findingsDetected = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "sentinel_threat",
			Name:      "findings",
			Help:      "Findings produced by the most recent assessment, partitioned by category.",
		},
		[]string{"category"},
	)
)

// Register attaches the engine collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		assessmentsTotal,
		assessmentDurationSeconds,
		findingsDetected,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAssessment records an assessment duration and outcome label.
func ObserveAssessment(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	assessmentsTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	assessmentDurationSeconds.Observe(duration.Seconds())
}

// SetFindings records the finding count of the latest assessment for one
// category.
func SetFindings(category string, count int) {
	findingsDetected.WithLabelValues(category).Set(float64(count))
}
