package classify

import (
	"fmt"
	"time"

	"github.com/sentinelstack/sentinel-engine/internal/catalog"
	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
)

// ProcessClassifier flags processes whose name matches a catalog fragment, or
// that burn high CPU while their command line carries a resource-abuse
// keyword.
type ProcessClassifier struct{}

// NewProcessClassifier creates a process classifier.
func NewProcessClassifier() *ProcessClassifier {
	return &ProcessClassifier{}
}

// Classify maps the process table to findings. A name match is critical; the
// high-CPU plus cmdline-keyword combination is high. Processes absent from
// the snapshot (inaccessible at capture time) produce nothing.
func (c *ProcessClassifier) Classify(procs []telemetry.Process, cat catalog.Catalog, now time.Time) []models.Finding {
	findings := make([]models.Finding, 0)

	for _, proc := range procs {
		nameMatch := cat.MatchesName(proc.Name)
		highCPU := proc.CPUPercent > cat.Thresholds.HighCPUPercent
		cmdlineMatch := cat.MatchesCmdline(proc.Cmdline)

		if !nameMatch && !(highCPU && cmdlineMatch) {
			continue
		}

		severity := models.SeverityHigh
		if nameMatch {
			severity = models.SeverityCritical
		}

		findings = append(findings, models.Finding{
			ID:          fmt.Sprintf("proc-%d", proc.PID),
			Category:    models.CategoryProcess,
			Severity:    severity,
			Description: fmt.Sprintf("Suspicious process detected: %s", proc.Name),
			DetectedAt:  now,
			Process: &models.ProcessSubject{
				PID:           proc.PID,
				Name:          proc.Name,
				CPUPercent:    proc.CPUPercent,
				MemoryPercent: proc.MemoryPercent,
			},
		})
	}

	return findings
}
