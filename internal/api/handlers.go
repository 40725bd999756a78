package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
)

// Version identifies the API surface in the service banner.
const Version = "1.0.0"

// AssessmentAPI defines the service behaviour the handlers depend on.
type AssessmentAPI interface {
	Assess(ctx context.Context) (models.ThreatAssessment, error)
	Dashboard(ctx context.Context) (models.DashboardStats, error)
	Summary(ctx context.Context) (models.ProcessSummary, error)
}

// Handler serves the read-only query endpoints.
type Handler struct {
	logger  *slog.Logger
	service AssessmentAPI
}

// NewHandler builds the route table for the query API.
func NewHandler(logger *slog.Logger, service AssessmentAPI) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger, service: service}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("GET /api/dashboard/summary", h.dashboardSummary)
	mux.HandleFunc("GET /api/threats", h.threats)
	mux.HandleFunc("GET /api/processes", h.processes)
	return mux
}

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "sentinel threat engine API",
		"version": Version,
		"status":  "active",
	})
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":       stats,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) threats(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.service.Assess(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	records := toThreatRecords(assessment)
	writeJSON(w, http.StatusOK, map[string]any{
		"threats":     records,
		"totalCount":  len(records),
		"totalPages":  1,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) processes(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// threatRecord is the flat wire shape of a finding in /api/threats.
type threatRecord struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	ThreatType  string          `json:"threat_type"`
	Severity    models.Severity `json:"severity"`
	Status      string          `json:"status"`
	Source      string          `json:"source"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Details     any             `json:"details"`
}

// toThreatRecords flattens an assessment into sequentially numbered threat
// records, in classifier emission order.
func toThreatRecords(assessment models.ThreatAssessment) []threatRecord {
	findings := assessment.Findings()
	records := make([]threatRecord, 0, len(findings))

	for i, finding := range findings {
		record := threatRecord{
			ID:          fmt.Sprintf("threat-%03d", i+1),
			Timestamp:   finding.DetectedAt,
			Severity:    finding.Severity,
			Status:      "active",
			Description: finding.Description,
		}
		switch finding.Category {
		case models.CategoryProcess:
			record.ThreatType = "suspicious_process"
			record.Source = "system_monitor"
			record.Title = fmt.Sprintf("Suspicious Process: %s", finding.Process.Name)
			record.Details = finding.Process
		case models.CategoryNetwork:
			record.ThreatType = "network_anomaly"
			record.Source = "network_monitor"
			record.Title = "Suspicious Network Activity"
			record.Details = finding.Network
		case models.CategoryFile:
			record.ThreatType = "file_anomaly"
			record.Source = "file_monitor"
			record.Title = "Suspicious File Activity"
			record.Details = finding.File
		}
		records = append(records, record)
	}
	return records
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, telemetry.ErrUnavailable) {
		status = http.StatusServiceUnavailable
	}
	h.logger.Error("request failed", slog.Any("error", err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
