package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
)

type serviceStub struct {
	assessment models.ThreatAssessment
	stats      models.DashboardStats
	summary    models.ProcessSummary
	err        error
}

func (s *serviceStub) Assess(context.Context) (models.ThreatAssessment, error) {
	return s.assessment, s.err
}

func (s *serviceStub) Dashboard(context.Context) (models.DashboardStats, error) {
	return s.stats, s.err
}

func (s *serviceStub) Summary(context.Context) (models.ProcessSummary, error) {
	return s.summary, s.err
}

func testAssessment(now time.Time) models.ThreatAssessment {
	return models.ThreatAssessment{
		ProcessFindings: []models.Finding{
			{
				ID:          "proc-42",
				Category:    models.CategoryProcess,
				Severity:    models.SeverityCritical,
				Description: "Suspicious process detected: trojan-x",
				DetectedAt:  now,
				Process:     &models.ProcessSubject{PID: 42, Name: "trojan-x"},
			},
		},
		NetworkFindings: []models.Finding{
			{
				ID:          "net-51000-4444",
				Category:    models.CategoryNetwork,
				Severity:    models.SeverityHigh,
				Description: "Connection to suspicious port 4444",
				DetectedAt:  now,
				Network:     &models.NetworkSubject{LocalPort: 51000, RemoteIP: "203.0.113.5", RemotePort: 4444},
			},
		},
		GeneratedAt: now,
	}
}

func TestThreatsEndpoint(t *testing.T) {
	now := time.Now()
	handler := NewHandler(nil, &serviceStub{assessment: testAssessment(now)})

	req := httptest.NewRequest(http.MethodGet, "/api/threats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Threats []struct {
			ID         string `json:"id"`
			ThreatType string `json:"threat_type"`
			Severity   string `json:"severity"`
			Source     string `json:"source"`
			Title      string `json:"title"`
		} `json:"threats"`
		TotalCount int `json:"totalCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TotalCount != 2 || len(body.Threats) != 2 {
		t.Fatalf("expected 2 threats, got %d", body.TotalCount)
	}
	if body.Threats[0].ID != "threat-001" || body.Threats[1].ID != "threat-002" {
		t.Fatalf("expected sequential ids, got %s / %s", body.Threats[0].ID, body.Threats[1].ID)
	}
	if body.Threats[0].ThreatType != "suspicious_process" || body.Threats[0].Source != "system_monitor" {
		t.Fatalf("unexpected process record: %+v", body.Threats[0])
	}
	if body.Threats[0].Title != "Suspicious Process: trojan-x" {
		t.Fatalf("unexpected title: %s", body.Threats[0].Title)
	}
	if body.Threats[1].ThreatType != "network_anomaly" {
		t.Fatalf("unexpected network record: %+v", body.Threats[1])
	}
}

func TestDashboardEndpoint(t *testing.T) {
	stub := &serviceStub{stats: models.DashboardStats{
		TotalThreats:    3,
		CriticalThreats: 1,
		SystemStatus:    models.HealthHealthy,
		NetworkHealth:   90,
	}}
	handler := NewHandler(nil, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Stats       models.DashboardStats `json:"stats"`
		LastUpdated string                `json:"lastUpdated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Stats.TotalThreats != 3 || body.Stats.SystemStatus != models.HealthHealthy {
		t.Fatalf("unexpected stats: %+v", body.Stats)
	}
	if body.LastUpdated == "" {
		t.Fatalf("expected lastUpdated to be set")
	}
}

func TestProcessesEndpoint(t *testing.T) {
	stub := &serviceStub{summary: models.ProcessSummary{
		ProcessCount: 120,
		TopProcesses: []models.ProcessUsage{{PID: 1, Name: "heavy", CPUPercent: 55}},
	}}
	handler := NewHandler(nil, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/processes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var summary models.ProcessSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.ProcessCount != 120 || len(summary.TopProcesses) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestTelemetryUnavailableMapsTo503(t *testing.T) {
	stub := &serviceStub{err: fmt.Errorf("%w: sandbox denied", telemetry.ErrUnavailable)}
	handler := NewHandler(nil, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/threats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	handler := NewHandler(nil, &serviceStub{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
