package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
)

func regularRecord(date, agent, project string, score int) *types.EvaluationRecord {
	return &types.EvaluationRecord{
		ID:             uuid.New(),
		Date:           date,
		TimeSlot:       types.TimeSlotNoon,
		AgentName:      agent,
		ProjectName:    project,
		Classification: types.ClassificationRegular,
		Score:          score,
		CreatedAt:      time.Now(),
	}
}

func TestSummarizeRecordsAveragesPerGroup(t *testing.T) {
	rework := 70
	records := []*types.EvaluationRecord{
		regularRecord("2026-08-30", "Ama", "Altrum", 90),
		regularRecord("2026-08-30", "Ama", "Altrum", 80),
		{
			ID:             uuid.New(),
			Date:           "2026-08-30",
			AgentName:      "Ama",
			ProjectName:    "Altrum",
			Classification: types.ClassificationRework,
			ReworkScore:    &rework,
		},
	}

	rows := SummarizeRecords(records, "", "")
	if len(rows) != 1 {
		t.Fatalf("want one group, got %d", len(rows))
	}
	row := rows[0]
	if row.Submissions != 3 {
		t.Fatalf("want 3 submissions, got %d", row.Submissions)
	}
	if row.RegularAverage == nil || *row.RegularAverage != 85 {
		t.Fatalf("want regular average 85, got %v", row.RegularAverage)
	}
	if row.ReworkAverage == nil || *row.ReworkAverage != 70 {
		t.Fatalf("want rework average 70, got %v", row.ReworkAverage)
	}
}

func TestEmptyGroupsKeepNilAverages(t *testing.T) {
	records := []*types.EvaluationRecord{
		{
			ID:             uuid.New(),
			Date:           "2026-08-30",
			AgentName:      "Ama",
			ProjectName:    "Altrum",
			Classification: types.ClassificationNoTarget,
			Score:          0,
		},
	}
	rows := SummarizeRecords(records, "", "")
	if len(rows) != 1 {
		t.Fatalf("want one group, got %d", len(rows))
	}
	if rows[0].RegularAverage != nil || rows[0].ReworkAverage != nil {
		t.Fatalf("no-target-only group must keep nil averages, got %+v", rows[0])
	}
}

func TestZeroScoreIsARealAverage(t *testing.T) {
	rows := SummarizeRecords([]*types.EvaluationRecord{
		regularRecord("2026-08-30", "Ama", "Altrum", 0),
	}, "", "")
	if rows[0].RegularAverage == nil || *rows[0].RegularAverage != 0 {
		t.Fatalf("a genuine zero average must not collapse to nil")
	}
}

func TestAveragesRoundToNearestInteger(t *testing.T) {
	rows := SummarizeRecords([]*types.EvaluationRecord{
		regularRecord("2026-08-30", "Ama", "Altrum", 90),
		regularRecord("2026-08-30", "Ama", "Altrum", 81),
	}, "", "")
	if rows[0].RegularAverage == nil || *rows[0].RegularAverage != 86 {
		t.Fatalf("85.5 must round to 86, got %v", rows[0].RegularAverage)
	}
}

func TestReworkAverageFallsBackToScore(t *testing.T) {
	records := []*types.EvaluationRecord{
		{
			ID:             uuid.New(),
			Date:           "2026-08-30",
			AgentName:      "Ama",
			ProjectName:    "Altrum",
			Classification: types.ClassificationRework,
			Score:          60, // legacy rework rows carry only a plain score
		},
	}
	rows := SummarizeRecords(records, "", "")
	if rows[0].ReworkAverage == nil || *rows[0].ReworkAverage != 60 {
		t.Fatalf("want fallback rework average 60, got %v", rows[0].ReworkAverage)
	}
}

func TestRowsSortNewestDateFirst(t *testing.T) {
	records := []*types.EvaluationRecord{
		regularRecord("2026-08-28", "Ama", "Altrum", 90),
		regularRecord("2026-08-30", "Ama", "Altrum", 90),
		regularRecord("2026-08-29", "Ama", "Altrum", 90),
	}
	rows := SummarizeRecords(records, "", "")
	want := []string{"2026-08-30", "2026-08-29", "2026-08-28"}
	for i, row := range rows {
		if row.Date != want[i] {
			t.Fatalf("row %d: want %s, got %s", i, want[i], row.Date)
		}
	}
}

func TestWindowFiltersInclusive(t *testing.T) {
	records := []*types.EvaluationRecord{
		regularRecord("2026-08-28", "Ama", "Altrum", 90),
		regularRecord("2026-08-29", "Ama", "Altrum", 90),
		regularRecord("2026-08-30", "Ama", "Altrum", 90),
	}
	rows := SummarizeRecords(records, "2026-08-29", "2026-08-29")
	if len(rows) != 1 || rows[0].Date != "2026-08-29" {
		t.Fatalf("inclusive window broke: %+v", rows)
	}
}

func TestProjectRollupsCountDistinctAgents(t *testing.T) {
	records := []*types.EvaluationRecord{
		regularRecord("2026-08-30", "Ama", "Altrum", 90),
		regularRecord("2026-08-30", "Ama", "Altrum", 80),
		regularRecord("2026-08-30", "Yaw", "Altrum", 70),
		regularRecord("2026-08-30", "Ama", "Borealis", 90),
	}
	rollups := ProjectRollups(records, "", "")
	if len(rollups) != 2 {
		t.Fatalf("want 2 projects, got %d", len(rollups))
	}
	if rollups[0].ProjectName != "Altrum" || rollups[0].DistinctAgents != 2 {
		t.Fatalf("unexpected rollup %+v", rollups[0])
	}
	if rollups[1].ProjectName != "Borealis" || rollups[1].DistinctAgents != 1 {
		t.Fatalf("unexpected rollup %+v", rollups[1])
	}
}

func TestRecentSeriesKeepsSevenDatesWithNoDataCells(t *testing.T) {
	var records []*types.EvaluationRecord
	for day := 1; day <= 8; day++ {
		r := regularRecord(fmt.Sprintf("2026-08-%02d", day), "Ama", "Altrum", 90)
		records = append(records, r)
	}
	points := RecentSeries(records)
	if len(points) != 7 {
		t.Fatalf("want 7 dates, got %d", len(points))
	}
	if points[0].Date != "2026-08-08" || points[6].Date != "2026-08-02" {
		t.Fatalf("series must hold the newest 7 dates, got %s..%s", points[0].Date, points[6].Date)
	}
	for _, cell := range points[0].Slots {
		if cell.TimeSlot == types.TimeSlotNoon {
			if !cell.HasData || cell.Average == nil || *cell.Average != 90 {
				t.Fatalf("noon slot should have data, got %+v", cell)
			}
		} else if cell.HasData || cell.Average != nil {
			t.Fatalf("empty slot must be an explicit no-data cell, got %+v", cell)
		}
	}
}

func TestSummarizeProductionBillableHours(t *testing.T) {
	logs := []*types.ProductionLog{
		{ID: uuid.New(), AgentName: "Ama", Date: "2026-08-30", ProjectName: "Altrum", Target: 50, Actual: 25},
		{ID: uuid.New(), AgentName: "Ama", Date: "2026-08-30", ProjectName: "Borealis", Target: 30, Actual: 30},
	}
	rows := SummarizeProduction(logs, "", "")
	if len(rows) != 1 {
		t.Fatalf("want one date group, got %d", len(rows))
	}
	row := rows[0]
	if row.BillableHours != 1.5 {
		t.Fatalf("want 1.5 billable hours, got %v", row.BillableHours)
	}
	if row.RequiredRemaining != 7.5 {
		t.Fatalf("want 7.5 required remaining, got %v", row.RequiredRemaining)
	}
	if row.TotalTarget != 80 || row.TotalActual != 55 {
		t.Fatalf("unexpected totals %+v", row)
	}
	// 55/80 = 68.75 rounds to 69
	if row.Accuracy != 69 {
		t.Fatalf("want accuracy 69, got %d", row.Accuracy)
	}
}

func TestProductionRollupSumsAllAgentsPerDate(t *testing.T) {
	logs := []*types.ProductionLog{
		{ID: uuid.New(), AgentName: "Ama", Date: "2026-08-30", ProjectName: "Altrum", Target: 50, Actual: 25},
		{ID: uuid.New(), AgentName: "Kofi", Date: "2026-08-30", ProjectName: "Borealis", Target: 30, Actual: 30},
		{ID: uuid.New(), AgentName: "Kofi", Date: "2026-08-29", ProjectName: "Borealis", Target: 40, Actual: 40},
	}
	rows := SummarizeProduction(logs, "", "")
	if len(rows) != 2 {
		t.Fatalf("two dates must yield two rows, got %d", len(rows))
	}
	row := rows[0]
	if row.Date != "2026-08-30" {
		t.Fatalf("rows must sort newest date first, got %s", row.Date)
	}
	if row.BillableHours != 1.5 {
		t.Fatalf("both agents' logs must sum into one row: want 1.5 billable hours, got %v", row.BillableHours)
	}
	if row.RequiredRemaining != 7.5 {
		t.Fatalf("want 7.5 required remaining, got %v", row.RequiredRemaining)
	}
}

func TestZeroTargetContributesNothing(t *testing.T) {
	logs := []*types.ProductionLog{
		{ID: uuid.New(), AgentName: "Ama", Date: "2026-08-30", ProjectName: "Adhoc", Target: 0, Actual: 40},
	}
	rows := SummarizeProduction(logs, "", "")
	if rows[0].BillableHours != 0 {
		t.Fatalf("zero-target log must add no billable hours, got %v", rows[0].BillableHours)
	}
	if rows[0].Accuracy != 0 {
		t.Fatalf("accuracy must be guarded when total target is 0, got %d", rows[0].Accuracy)
	}
}

func TestRequiredRemainingMayGoNegative(t *testing.T) {
	logs := []*types.ProductionLog{
		{ID: uuid.New(), AgentName: "Ama", Date: "2026-08-30", ProjectName: "Altrum", Target: 10, Actual: 100},
	}
	rows := SummarizeProduction(logs, "", "")
	if rows[0].RequiredRemaining != -1 {
		t.Fatalf("overshoot must go negative, got %v", rows[0].RequiredRemaining)
	}
}

func TestDashboardFetchesInParallel(t *testing.T) {
	backend := store.NewMemory()
	svc := NewSummaryService(backend, testLogger(t))
	ctx := context.Background()

	if err := backend.UpsertEvaluationRecord(ctx, regularRecord("2026-08-30", "Ama", "Altrum", 90)); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	if err := backend.UpsertProductionLog(ctx, &types.ProductionLog{
		ID: uuid.New(), AgentName: "Ama", Date: "2026-08-30", ProjectName: "Altrum", Target: 50, Actual: 25,
	}); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	summary, err := svc.Dashboard(ctx, "", "")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(summary.Rows) != 1 || summary.ProjectCount != 1 || len(summary.Production) != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
