package engine

import (
	"sort"

	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
)

const topProcessLimit = 10

// ResourceSummary reports the top resource-consuming processes. Aggregate
// cpu/memory sums cover the whole process table; the reported list only
// includes processes above the catalog floor, sorted by descending CPU and
// truncated to the top ten.
func (e *Engine) ResourceSummary(snap telemetry.Snapshot) models.ProcessSummary {
	floor := e.catalog.Thresholds.ResourceReportFloor

	summary := models.ProcessSummary{
		ProcessCount: len(snap.Processes),
		TopProcesses: make([]models.ProcessUsage, 0),
	}

	for _, proc := range snap.Processes {
		summary.TotalCPUPercent += proc.CPUPercent
		summary.TotalMemoryPercent += proc.MemoryPercent

		if proc.CPUPercent > floor || proc.MemoryPercent > floor {
			summary.TopProcesses = append(summary.TopProcesses, models.ProcessUsage{
				PID:           proc.PID,
				Name:          proc.Name,
				CPUPercent:    proc.CPUPercent,
				MemoryPercent: proc.MemoryPercent,
			})
		}
	}

	// Stable sort keeps snapshot order for equal CPU readings.
	sort.SliceStable(summary.TopProcesses, func(i, j int) bool {
		return summary.TopProcesses[i].CPUPercent > summary.TopProcesses[j].CPUPercent
	})
	if len(summary.TopProcesses) > topProcessLimit {
		summary.TopProcesses = summary.TopProcesses[:topProcessLimit]
	}

	return summary
}
