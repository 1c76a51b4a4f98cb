package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type ExportService interface {
	WriteEvaluationsCSV(ctx context.Context, w io.Writer, windowStart, windowEnd string) error
	WriteProductionCSV(ctx context.Context, w io.Writer, windowStart, windowEnd string) error
}

type exportService struct {
	backend store.Backend
	log     *logger.Logger
}

func NewExportService(backend store.Backend, log *logger.Logger) ExportService {
	return &exportService{
		backend: backend,
		log:     log.With("service", "ExportService"),
	}
}

var evaluationsHeader = []string{
	"Date", "Time Slot", "Agent", "Project", "Task", "Team Lead", "QC Checker",
	"Classification", "Score", "Rework Score", "Manual QC", "Notes",
}

func (s *exportService) WriteEvaluationsCSV(ctx context.Context, w io.Writer, windowStart, windowEnd string) error {
	records, err := s.backend.ListEvaluationRecords(ctx)
	if err != nil {
		return fmt.Errorf("listing evaluation records: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(evaluationsHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		if r == nil || !inWindow(r.Date, windowStart, windowEnd) {
			continue
		}
		reworkScore := ""
		if r.ReworkScore != nil {
			reworkScore = strconv.Itoa(*r.ReworkScore)
		}
		row := []string{
			r.Date,
			r.TimeSlot,
			r.AgentName,
			r.ProjectName,
			r.TaskName,
			r.TeamLeadName,
			r.QCCheckerName,
			r.Classification.Label(),
			strconv.Itoa(r.Score),
			reworkScore,
			strconv.FormatBool(r.ManualQC),
			r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var productionHeader = []string{
	"Date", "Total Target", "Total Actual", "Billable Hours", "Accuracy", "Required Remaining",
}

func (s *exportService) WriteProductionCSV(ctx context.Context, w io.Writer, windowStart, windowEnd string) error {
	logs, err := s.backend.ListProductionLogs(ctx)
	if err != nil {
		return fmt.Errorf("listing production logs: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(productionHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range SummarizeProduction(logs, windowStart, windowEnd) {
		out := []string{
			row.Date,
			strconv.Itoa(row.TotalTarget),
			strconv.Itoa(row.TotalActual),
			strconv.FormatFloat(row.BillableHours, 'f', 2, 64),
			strconv.Itoa(row.Accuracy),
			strconv.FormatFloat(row.RequiredRemaining, 'f', 2, 64),
		}
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
