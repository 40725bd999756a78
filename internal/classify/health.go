package classify

import (
	"time"

	"github.com/sentinelstack/sentinel-engine/internal/catalog"
	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
)

// HealthClassifier derives an overall host health status from resource
// counters.
type HealthClassifier struct{}

// NewHealthClassifier creates a health classifier.
func NewHealthClassifier() *HealthClassifier {
	return &HealthClassifier{}
}

// Classify computes the health snapshot. The critical threshold takes
// precedence over warning; a counter the platform withheld reads as zero and
// can only lower pressure.
func (c *HealthClassifier) Classify(res telemetry.Resources, cat catalog.Catalog, now time.Time) models.HealthSnapshot {
	status := models.HealthHealthy
	warning := cat.Thresholds.HealthWarning
	critical := cat.Thresholds.HealthCritical

	if res.CPUPercent > warning || res.MemoryPercent > warning || res.DiskPercent > warning {
		status = models.HealthWarning
	}
	if res.CPUPercent > critical || res.MemoryPercent > critical || res.DiskPercent > critical {
		status = models.HealthCritical
	}

	var uptime float64
	if !res.BootTime.IsZero() {
		uptime = now.Sub(res.BootTime).Seconds()
	}

	return models.HealthSnapshot{
		Status:        status,
		CPUPercent:    res.CPUPercent,
		MemoryPercent: res.MemoryPercent,
		DiskPercent:   res.DiskPercent,
		UptimeSeconds: uptime,
		ProcessCount:  res.ProcessCount,
	}
}
