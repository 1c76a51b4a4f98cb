package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
)

func TestEvaluationsCSVQuotesCommas(t *testing.T) {
	backend := store.NewMemory()
	svc := NewExportService(backend, testLogger(t))
	ctx := context.Background()

	if err := backend.UpsertEvaluationRecord(ctx, &types.EvaluationRecord{
		ID:             uuid.New(),
		Date:           "2026-08-30",
		TimeSlot:       types.TimeSlotNoon,
		AgentName:      "Smith, J.",
		ProjectName:    "Altrum",
		TaskName:       "Labeling",
		TeamLeadName:   "Kofi",
		QCCheckerName:  "Esi",
		Classification: types.ClassificationRegular,
		Score:          95,
		Notes:          "says \"ok\", mostly",
		CreatedAt:      time.Now(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.WriteEvaluationsCSV(ctx, &buf, "", ""); err != nil {
		t.Fatalf("export: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported csv must parse cleanly: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want header + 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][7] != "Classification" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	row := rows[1]
	if row[2] != "Smith, J." {
		t.Fatalf("comma in agent name must survive the round trip, got %q", row[2])
	}
	if row[11] != "says \"ok\", mostly" {
		t.Fatalf("quotes in notes must survive the round trip, got %q", row[11])
	}
	if row[8] != "95" || row[9] != "" {
		t.Fatalf("unexpected score cells %q / %q", row[8], row[9])
	}
}

func TestProductionCSVWindowed(t *testing.T) {
	backend := store.NewMemory()
	svc := NewExportService(backend, testLogger(t))
	ctx := context.Background()

	for _, l := range []*types.ProductionLog{
		{ID: uuid.New(), AgentName: "Ama", Date: "2026-08-30", ProjectName: "Altrum", Target: 50, Actual: 25},
		{ID: uuid.New(), AgentName: "Ama", Date: "2026-08-30", ProjectName: "Borealis", Target: 30, Actual: 30},
		{ID: uuid.New(), AgentName: "Ama", Date: "2026-07-01", ProjectName: "Altrum", Target: 50, Actual: 50},
	} {
		if err := backend.UpsertProductionLog(ctx, l); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := svc.WriteProductionCSV(ctx, &buf, "2026-08-01", "2026-08-31"); err != nil {
		t.Fatalf("export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported csv must parse cleanly: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("window should keep one group, got %d rows", len(rows)-1)
	}
	row := rows[1]
	if row[0] != "2026-08-30" || row[3] != "1.50" || row[5] != "7.50" {
		t.Fatalf("unexpected production row %v", row)
	}
}
