package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sentinelstack/sentinel-engine/internal/catalog"
	"github.com/sentinelstack/sentinel-engine/internal/config"
	"github.com/sentinelstack/sentinel-engine/internal/engine"
	"github.com/sentinelstack/sentinel-engine/internal/models"
	"github.com/sentinelstack/sentinel-engine/internal/services"
	"github.com/sentinelstack/sentinel-engine/internal/telemetry"
	"github.com/sentinelstack/sentinel-engine/internal/utils"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a one-shot assessment and print it as JSON",
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level := "warn"
	if debugMode {
		level = "debug"
	}
	logger := utils.NewLogger(level, cfg.Logging.JSON)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	source := telemetry.NewHostSource(logger, telemetry.HostOptions{
		CPUSample: cfg.Telemetry.CPUSampleInterval,
		DiskPath:  cfg.Telemetry.DiskPath,
	})
	eng := engine.New(logger, cat)
	service := services.NewAssessmentService(logger, source, eng)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	assessment, err := service.Assess(ctx)
	if err != nil {
		return err
	}
	summary, err := service.Summary(ctx)
	if err != nil {
		return err
	}

	report := struct {
		Assessment models.ThreatAssessment `json:"assessment"`
		Processes  models.ProcessSummary   `json:"process_summary"`
		Stats      models.DashboardStats   `json:"stats"`
	}{
		Assessment: assessment,
		Processes:  summary,
		Stats:      engine.DashboardStats(assessment, summary),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
