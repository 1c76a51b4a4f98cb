package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/opsdeck/qcdesk-backend/internal/catalog"
	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
	"github.com/opsdeck/qcdesk-backend/internal/platform/ctxutil"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

const testCatalogYAML = `
error_types:
  - label: Minor Formatting
    short_label: Minor
    deduction: 10
    category: formatting
  - label: Major Deviation
    short_label: Major
    deduction: 25
    category: adherence
  - label: Fatal Error
    short_label: Fatal
    deduction: 100
    category: fatal
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("parsing test catalog: %v", err)
	}
	return cat
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func sessionCtx(role, name string) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		Role:        role,
		AccountName: name,
	})
}

func newEvaluationService(t *testing.T) (EvaluationService, *store.Memory) {
	t.Helper()
	backend := store.NewMemory()
	svc := NewEvaluationService(backend, testCatalog(t), rand.New(rand.NewSource(1)), testLogger(t))
	return svc, backend
}

func validInput() RecordInput {
	return RecordInput{
		Date:           "2026-08-30",
		TimeSlot:       types.TimeSlotNoon,
		AgentName:      "Ama",
		ProjectName:    "Altrum",
		TaskName:       "Labeling",
		TeamLeadName:   "Kofi",
		QCCheckerName:  "Esi",
		Classification: types.ClassificationRegular,
		Notes:          "all checks passed",
	}
}

func TestValidationReportsFirstFailingField(t *testing.T) {
	svc, _ := newEvaluationService(t)
	ctx := sessionCtx(types.RoleQC, "Esi")

	cases := []struct {
		name      string
		mutate    func(*RecordInput)
		wantField string
	}{
		{"missing date", func(in *RecordInput) { in.Date = "" }, "date"},
		{"malformed date", func(in *RecordInput) { in.Date = "30/08/2026" }, "date"},
		{"bad time slot", func(in *RecordInput) { in.TimeSlot = "9 AM" }, "time_slot"},
		{"missing agent", func(in *RecordInput) { in.AgentName = " " }, "agent_name"},
		{"missing project", func(in *RecordInput) { in.ProjectName = "" }, "project_name"},
		{"missing task", func(in *RecordInput) { in.TaskName = "" }, "task_name"},
		{"missing team lead", func(in *RecordInput) { in.TeamLeadName = "" }, "team_lead_name"},
		{"missing qc checker", func(in *RecordInput) { in.QCCheckerName = "" }, "qc_checker_name"},
		{"bad classification", func(in *RecordInput) { in.Classification = "redo" }, "classification"},
		{"short notes", func(in *RecordInput) { in.Notes = "ok  " }, "notes"},
		{"date beats later failures", func(in *RecordInput) { in.Date = ""; in.Notes = "" }, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Submit(ctx, in)
			if !apierr.IsValidation(err) {
				t.Fatalf("want validation error, got %v", err)
			}
			var apiErr *apierr.Error
			if !errors.As(err, &apiErr) || apiErr.Field != tc.wantField {
				t.Fatalf("want field %q, got %v", tc.wantField, err)
			}
		})
	}
}

func TestSubmitScoresServerSide(t *testing.T) {
	svc, _ := newEvaluationService(t)
	ctx := sessionCtx(types.RoleQC, "Esi")

	in := validInput()
	in.Samples = []*types.SampleResult{
		{SampleID: "A1", Errors: []string{"Minor Formatting"}, Score: 1}, // client score ignored
		{SampleID: "A2", Errors: []string{}, Score: 1},
	}
	record, err := svc.Submit(ctx, in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// samples rescore to 90 and 100, mean 95
	if record.Score != 95 {
		t.Fatalf("want score 95, got %d", record.Score)
	}
	if record.ReworkScore != nil {
		t.Fatalf("regular record should not carry a rework score")
	}
}

func TestReworkScoreRouting(t *testing.T) {
	svc, _ := newEvaluationService(t)
	ctx := sessionCtx(types.RoleQC, "Esi")

	in := validInput()
	in.Classification = types.ClassificationRework
	in.Samples = []*types.SampleResult{{SampleID: "A1", Errors: []string{"Major Deviation"}}}
	record, err := svc.Submit(ctx, in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if record.ReworkScore == nil || *record.ReworkScore != 75 {
		t.Fatalf("want rework score 75, got %v", record.ReworkScore)
	}
}

func TestEditRegularToReworkForksRecord(t *testing.T) {
	svc, backend := newEvaluationService(t)
	ctx := sessionCtx(types.RoleQC, "Esi")

	original, err := svc.Submit(ctx, validInput())
	if err != nil {
		t.Fatalf("initial submit: %v", err)
	}

	edit := validInput()
	edit.ID = &original.ID
	edit.Classification = types.ClassificationRework
	edit.Samples = []*types.SampleResult{{SampleID: "A1", Errors: []string{"Minor Formatting"}}}
	fork, err := svc.Submit(ctx, edit)
	if err != nil {
		t.Fatalf("fork submit: %v", err)
	}

	if fork.ID == original.ID {
		t.Fatalf("rework edit must insert a new record, reused id %s", fork.ID)
	}
	if fork.Score != original.Score {
		t.Fatalf("fork should carry the original score %d, got %d", original.Score, fork.Score)
	}
	if fork.ReworkScore == nil || *fork.ReworkScore != 90 {
		t.Fatalf("want fork rework score 90, got %v", fork.ReworkScore)
	}

	records, _ := backend.ListEvaluationRecords(context.Background())
	if len(records) != 2 {
		t.Fatalf("want both records kept, have %d", len(records))
	}
	kept, err := svc.Get(ctx, original.ID)
	if err != nil {
		t.Fatalf("original must survive the fork: %v", err)
	}
	if kept.Classification != types.ClassificationRegular {
		t.Fatalf("original classification changed to %s", kept.Classification)
	}
}

func TestEditOverwritesInPlace(t *testing.T) {
	svc, backend := newEvaluationService(t)
	ctx := sessionCtx(types.RoleQC, "Esi")

	original, err := svc.Submit(ctx, validInput())
	if err != nil {
		t.Fatalf("initial submit: %v", err)
	}

	edit := validInput()
	edit.ID = &original.ID
	edit.Notes = "corrected after review"
	updated, err := svc.Submit(ctx, edit)
	if err != nil {
		t.Fatalf("edit submit: %v", err)
	}
	if updated.ID != original.ID {
		t.Fatalf("plain edit must keep the id")
	}
	if !updated.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("plain edit must keep the original creation time")
	}
	records, _ := backend.ListEvaluationRecords(context.Background())
	if len(records) != 1 {
		t.Fatalf("overwrite must not duplicate, have %d records", len(records))
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	svc, backend := newEvaluationService(t)
	ctx := sessionCtx(types.RoleQC, "Esi")

	summary, err := svc.Preview(ctx, validInput())
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if summary.Score != 100 || summary.Classification != "Regular" {
		t.Fatalf("unexpected summary %+v", summary)
	}
	records, _ := backend.ListEvaluationRecords(context.Background())
	if len(records) != 0 {
		t.Fatalf("preview must not write, have %d records", len(records))
	}
}

func TestAgentsSeeOnlyTheirOwnHistory(t *testing.T) {
	svc, _ := newEvaluationService(t)
	qcCtx := sessionCtx(types.RoleQC, "Esi")

	mine := validInput()
	if _, err := svc.Submit(qcCtx, mine); err != nil {
		t.Fatalf("submit: %v", err)
	}
	other := validInput()
	other.AgentName = "Yaw"
	if _, err := svc.Submit(qcCtx, other); err != nil {
		t.Fatalf("submit: %v", err)
	}

	agentCtx := sessionCtx(types.RoleAgent, "Ama")
	records, err := svc.List(agentCtx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].AgentName != "Ama" {
		t.Fatalf("agent should see exactly their own record, got %d", len(records))
	}
}

func TestAgentsCannotSubmitOrDelete(t *testing.T) {
	svc, _ := newEvaluationService(t)
	qcCtx := sessionCtx(types.RoleQC, "Esi")
	record, err := svc.Submit(qcCtx, validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	agentCtx := sessionCtx(types.RoleAgent, "Ama")
	if _, err := svc.Submit(agentCtx, validInput()); err == nil {
		t.Fatalf("agent submit must be rejected")
	}
	if err := svc.Delete(agentCtx, record.ID); err == nil {
		t.Fatalf("agent delete must be rejected")
	}
	if err := svc.Delete(qcCtx, record.ID); err != nil {
		t.Fatalf("qc delete: %v", err)
	}
}
