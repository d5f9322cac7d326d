package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paccolajoao/yazio-consumer/config"
	"github.com/paccolajoao/yazio-consumer/models"
	"github.com/paccolajoao/yazio-consumer/utils"
)

// ExportService is the export use case: run the hydration pipeline, write
// the CSV artifacts, optionally push them to S3, record the run.
type ExportService struct {
	hydration *HydrationService
	exporter  *CsvExporter
	hub       *ProgressHub
}

type ExportResult struct {
	RunID      string   `json:"run_id"`
	Days       int      `json:"days"`
	Items      int      `json:"items"`
	Files      []string `json:"files"`
	RemoteURLs []string `json:"remote_urls,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

func NewExportService(hydration *HydrationService, exporter *CsvExporter, hub *ProgressHub) *ExportService {
	return &ExportService{hydration: hydration, exporter: exporter, hub: hub}
}

func (s *ExportService) Run(ctx context.Context, token models.AuthToken, start, end time.Time, outputDir string) (*ExportResult, error) {
	runID := uuid.NewString()
	startedAt := time.Now()

	// Per-run copy so concurrent exports each report under their own run id.
	hydration := *s.hydration
	hydration.OnProgress = func(stage string, done, total int) {
		s.broadcast(ProgressEvent{RunID: runID, Stage: stage, Completed: done, Total: total})
	}

	days, err := hydration.GetDaysData(ctx, token, start, end)
	if err != nil {
		s.broadcast(ProgressEvent{RunID: runID, Stage: "failed"})
		s.record(runID, start, end, 0, 0, "failed", nil, startedAt)
		return nil, err
	}

	files, err := s.exporter.Export(days, outputDir)
	if err != nil {
		s.broadcast(ProgressEvent{RunID: runID, Stage: "failed"})
		s.record(runID, start, end, len(days), countItems(days), "failed", nil, startedAt)
		return nil, err
	}
	s.broadcast(ProgressEvent{RunID: runID, Stage: "artifacts", Completed: len(files), Total: len(files)})

	var remote []string
	if utils.S3Enabled() {
		for _, f := range files {
			url, err := utils.UploadArtifact(ctx, f)
			if err != nil {
				log.Printf("artifact upload failed for %s: %v", f, err)
				continue
			}
			remote = append(remote, url)
		}
	}

	result := &ExportResult{
		RunID:      runID,
		Days:       len(days),
		Items:      countItems(days),
		Files:      files,
		RemoteURLs: remote,
		DurationMs: time.Since(startedAt).Milliseconds(),
	}
	s.record(runID, start, end, result.Days, result.Items, "completed", append(files, remote...), startedAt)
	s.broadcast(ProgressEvent{RunID: runID, Stage: "done", Completed: result.Days, Total: result.Days})
	return result, nil
}

// ListRecords returns recent export runs, newest first.
func (s *ExportService) ListRecords(limit int) ([]models.ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []models.ExportRecord
	err := config.DB.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (s *ExportService) record(runID string, start, end time.Time, days, items int, status string, artifacts []string, startedAt time.Time) {
	rec := models.ExportRecord{
		RunID:      runID,
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		Days:       days,
		Items:      items,
		Status:     status,
		Artifacts:  strings.Join(artifacts, ","),
		DurationMs: time.Since(startedAt).Milliseconds(),
	}
	if err := config.DB.Create(&rec).Error; err != nil {
		log.Printf("failed to persist export record %s: %v", runID, err)
	}
}

func (s *ExportService) broadcast(event ProgressEvent) {
	if s.hub != nil {
		s.hub.Broadcast(event)
	}
}

func countItems(days []models.DayLog) int {
	n := 0
	for _, d := range days {
		n += len(d.Items)
	}
	return n
}
