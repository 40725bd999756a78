package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sentinelstack/sentinel-engine/internal/catalog"
	"github.com/sentinelstack/sentinel-engine/internal/classify"
	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
)

// Engine turns one telemetry snapshot into a threat assessment. It holds no
// state beyond its rule catalog, so the same snapshot always yields the same
// findings.
type Engine struct {
	logger    *slog.Logger
	catalog   catalog.Catalog
	processes *classify.ProcessClassifier
	network   *classify.NetworkClassifier
	files     *classify.FileClassifier
	health    *classify.HealthClassifier
}

// New constructs an engine over the given rule catalog.
func New(logger *slog.Logger, cat catalog.Catalog) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger:    logger,
		catalog:   cat,
		processes: classify.NewProcessClassifier(),
		network:   classify.NewNetworkClassifier(),
		files:     classify.NewFileClassifier(),
		health:    classify.NewHealthClassifier(),
	}
}

// Catalog returns the rule catalog the engine classifies against.
func (e *Engine) Catalog() catalog.Catalog {
	return e.catalog
}

// Assess runs all classifiers against the snapshot. The three category
// classifiers are independent pure functions over immutable input, so they
// run concurrently; within each category the emission order follows the
// snapshot.
func (e *Engine) Assess(snap telemetry.Snapshot) models.ThreatAssessment {
	now := snap.TakenAt
	if now.IsZero() {
		now = time.Now()
	}

	var (
		wg              sync.WaitGroup
		processFindings []models.Finding
		networkFindings []models.Finding
		fileFindings    []models.Finding
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		processFindings = e.processes.Classify(snap.Processes, e.catalog, now)
	}()
	go func() {
		defer wg.Done()
		networkFindings = e.network.Classify(snap.Connections, e.catalog, now)
	}()
	go func() {
		defer wg.Done()
		fileFindings = e.files.Classify(snap.Files, e.catalog, now)
	}()
	wg.Wait()

	e.logger.Debug("snapshot classified",
		slog.Int("process_findings", len(processFindings)),
		slog.Int("network_findings", len(networkFindings)),
		slog.Int("file_findings", len(fileFindings)),
	)

	return models.ThreatAssessment{
		ProcessFindings: processFindings,
		NetworkFindings: networkFindings,
		FileFindings:    fileFindings,
		Health:          e.health.Classify(snap.Resources, e.catalog, now),
		Connections:     activeConnections(snap.Connections),
		GeneratedAt:     now,
	}
}

// activeConnections reports the established connections with a resolved
// remote endpoint, as surfaced alongside the findings.
func activeConnections(conns []telemetry.Connection) []models.ActiveConnection {
	active := make([]models.ActiveConnection, 0, len(conns))
	for _, conn := range conns {
		if !strings.EqualFold(conn.Status, "ESTABLISHED") || conn.RemoteIP == "" {
			continue
		}
		active = append(active, models.ActiveConnection{
			LocalAddress:  fmt.Sprintf("%s:%d", conn.LocalIP, conn.LocalPort),
			RemoteAddress: fmt.Sprintf("%s:%d", conn.RemoteIP, conn.RemotePort),
			Status:        conn.Status,
			PID:           conn.PID,
		})
	}
	return active
}
