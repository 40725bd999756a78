package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sentinelstack/sentinel-engine/internal/engine"
	"github.com/sentinelstack/sentinel-engine/internal/metrics"
	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
	"github.com/sentinelstack/sentinel-engine/internal/utils"
)

// AssessmentService is the facade the API layer calls. Every method triggers
// a fresh telemetry scan; nothing is retained between requests.
type AssessmentService struct {
	logger    *slog.Logger
	source    telemetry.Source
	engine    *engine.Engine
	latencies *utils.LatencyTracker
}

// NewAssessmentService constructs the service facade.
func NewAssessmentService(logger *slog.Logger, source telemetry.Source, eng *engine.Engine) *AssessmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssessmentService{
		logger:    logger,
		source:    source,
		engine:    eng,
		latencies: utils.NewLatencyTracker(1024),
	}
}

// Assess scans the host and classifies the snapshot into a threat
// assessment.
func (s *AssessmentService) Assess(ctx context.Context) (models.ThreatAssessment, error) {
	if s.source == nil || s.engine == nil {
		return models.ThreatAssessment{}, fmt.Errorf("assessment service not configured")
	}

	start := time.Now()
	snap, err := s.source.Snapshot(ctx, s.engine.Catalog().HighRiskDirs)
	if err != nil {
		metrics.ObserveAssessment(time.Since(start), metrics.OutcomeError)
		s.logger.Error("telemetry snapshot failed", slog.Any("error", err))
		return models.ThreatAssessment{}, err
	}

	assessment := s.engine.Assess(snap)
	duration := time.Since(start)

	s.latencies.Observe(duration)
	metrics.ObserveAssessment(duration, metrics.OutcomeSuccess)
	metrics.SetFindings(string(models.CategoryProcess), len(assessment.ProcessFindings))
	metrics.SetFindings(string(models.CategoryNetwork), len(assessment.NetworkFindings))
	metrics.SetFindings(string(models.CategoryFile), len(assessment.FileFindings))

	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		p95 := s.latencies.Percentile(95)
		s.logger.Info("assessment latency", slog.Duration("p95", p95), slog.Int("samples", count))
	}

	return assessment, nil
}

// Dashboard produces the summary statistics block from one fresh snapshot.
func (s *AssessmentService) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	if s.source == nil || s.engine == nil {
		return models.DashboardStats{}, fmt.Errorf("assessment service not configured")
	}

	start := time.Now()
	snap, err := s.source.Snapshot(ctx, s.engine.Catalog().HighRiskDirs)
	if err != nil {
		metrics.ObserveAssessment(time.Since(start), metrics.OutcomeError)
		s.logger.Error("telemetry snapshot failed", slog.Any("error", err))
		return models.DashboardStats{}, err
	}

	assessment := s.engine.Assess(snap)
	summary := s.engine.ResourceSummary(snap)
	metrics.ObserveAssessment(time.Since(start), metrics.OutcomeSuccess)

	return engine.DashboardStats(assessment, summary), nil
}

// Summary reports the top resource-consuming processes. No directory
// listings are required, so the scan skips them.
func (s *AssessmentService) Summary(ctx context.Context) (models.ProcessSummary, error) {
	if s.source == nil || s.engine == nil {
		return models.ProcessSummary{}, fmt.Errorf("assessment service not configured")
	}

	snap, err := s.source.Snapshot(ctx, nil)
	if err != nil {
		s.logger.Error("telemetry snapshot failed", slog.Any("error", err))
		return models.ProcessSummary{}, err
	}

	return s.engine.ResourceSummary(snap), nil
}

// LatencyP95 returns the current p95 assessment latency.
func (s *AssessmentService) LatencyP95() time.Duration {
	if s.latencies == nil {
		return 0
	}
	return s.latencies.Percentile(95)
}
