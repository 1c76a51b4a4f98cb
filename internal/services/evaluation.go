package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdeck/qcdesk-backend/internal/catalog"
	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/domain/evaluation"
	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
	"github.com/opsdeck/qcdesk-backend/internal/platform/ctxutil"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
	"github.com/opsdeck/qcdesk-backend/internal/sampling"
	"github.com/opsdeck/qcdesk-backend/internal/scoring"
)

const minNotesLength = 5

type RecordInput struct {
	ID             *uuid.UUID            `json:"id"`
	Date           string                `json:"date"`
	TimeSlot       string                `json:"time_slot"`
	AgentName      string                `json:"agent_name"`
	ProjectName    string                `json:"project_name"`
	TaskName       string                `json:"task_name"`
	TeamLeadName   string                `json:"team_lead_name"`
	QCCheckerName  string                `json:"qc_checker_name"`
	Classification types.Classification  `json:"classification"`
	ManualQC       bool                  `json:"manual_qc"`
	ManualErrors   []string              `json:"manual_errors"`
	ManualFeedback string                `json:"manual_feedback"`
	Samples        []*types.SampleResult `json:"samples"`
	RangeStart     string                `json:"range_start"`
	RangeEnd       string                `json:"range_end"`
	Notes          string                `json:"notes"`
}

// ConfirmationSummary is what the dry-run submission returns for the
// operator to confirm before the record is committed.
type ConfirmationSummary struct {
	AgentName      string `json:"agent_name"`
	ProjectName    string `json:"project_name"`
	Classification string `json:"classification"`
	TimeSlot       string `json:"time_slot"`
	Score          int    `json:"score"`
}

type EvaluationService interface {
	List(ctx context.Context) ([]*types.EvaluationRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*types.EvaluationRecord, error)
	GenerateSamples(ctx context.Context, rangeStart, rangeEnd string) ([]*types.SampleResult, error)
	Preview(ctx context.Context, in RecordInput) (*ConfirmationSummary, error)
	Submit(ctx context.Context, in RecordInput) (*types.EvaluationRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ErrorTypes() []catalog.ErrorType
}

type evaluationService struct {
	backend store.Backend
	catalog *catalog.Catalog
	rng     sampling.Rand
	log     *logger.Logger
}

func NewEvaluationService(backend store.Backend, cat *catalog.Catalog, rng sampling.Rand, log *logger.Logger) EvaluationService {
	return &evaluationService{
		backend: backend,
		catalog: cat,
		rng:     rng,
		log:     log.With("service", "EvaluationService"),
	}
}

func (s *evaluationService) ErrorTypes() []catalog.ErrorType {
	return s.catalog.Types()
}

// List returns records newest-first. Agents only see their own history;
// every other role sees everything.
func (s *evaluationService) List(ctx context.Context) ([]*types.EvaluationRecord, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no session in context"))
	}
	records, err := s.backend.ListEvaluationRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing evaluation records: %w", err)
	}
	if rd.Role != types.RoleAgent {
		return records, nil
	}
	own := make([]*types.EvaluationRecord, 0, len(records))
	for _, r := range records {
		if r.AgentName == rd.AccountName {
			own = append(own, r)
		}
	}
	return own, nil
}

func (s *evaluationService) Get(ctx context.Context, id uuid.UUID) (*types.EvaluationRecord, error) {
	records, err := s.backend.ListEvaluationRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing evaluation records: %w", err)
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apierr.NotFound(fmt.Errorf("evaluation record %s not found", id))
}

func (s *evaluationService) GenerateSamples(ctx context.Context, rangeStart, rangeEnd string) ([]*types.SampleResult, error) {
	samples, err := sampling.Generate(s.rng, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	out := make([]*types.SampleResult, len(samples))
	for i := range samples {
		out[i] = &samples[i]
	}
	return out, nil
}

// validate applies the submission gate in its fixed field order and reports
// only the first failure.
func (s *evaluationService) validate(in *RecordInput) error {
	in.Date = strings.TrimSpace(in.Date)
	in.AgentName = strings.TrimSpace(in.AgentName)
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	in.TaskName = strings.TrimSpace(in.TaskName)
	in.TeamLeadName = strings.TrimSpace(in.TeamLeadName)
	in.QCCheckerName = strings.TrimSpace(in.QCCheckerName)

	if in.Date == "" {
		return apierr.Validation("date", fmt.Errorf("date is required"))
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return apierr.Validation("date", fmt.Errorf("date must be YYYY-MM-DD"))
	}
	if !types.ValidTimeSlot(in.TimeSlot) {
		return apierr.Validation("time_slot", fmt.Errorf("unknown time slot %q", in.TimeSlot))
	}
	if in.AgentName == "" {
		return apierr.Validation("agent_name", fmt.Errorf("agent name is required"))
	}
	if in.ProjectName == "" {
		return apierr.Validation("project_name", fmt.Errorf("project name is required"))
	}
	if in.TaskName == "" {
		return apierr.Validation("task_name", fmt.Errorf("task name is required"))
	}
	if in.TeamLeadName == "" {
		return apierr.Validation("team_lead_name", fmt.Errorf("team lead name is required"))
	}
	if in.QCCheckerName == "" {
		return apierr.Validation("qc_checker_name", fmt.Errorf("qc checker name is required"))
	}
	if !in.Classification.Valid() {
		return apierr.Validation("classification", fmt.Errorf("unknown classification %q", in.Classification))
	}
	if len(strings.TrimSpace(in.Notes)) < minNotesLength {
		return apierr.Validation("notes", fmt.Errorf("notes must be at least %d characters", minNotesLength))
	}
	return nil
}

// score rescores every sample from its error labels and computes the record
// score server-side. Client-sent scores are never trusted.
func (s *evaluationService) score(in *RecordInput) int {
	samples := make([]types.SampleResult, 0, len(in.Samples))
	for _, sample := range in.Samples {
		if sample == nil {
			continue
		}
		scoring.Rescore(s.catalog, sample)
		samples = append(samples, *sample)
	}
	return scoring.ComputeScore(s.catalog, samples, in.ManualQC, in.ManualErrors)
}

func (s *evaluationService) Preview(ctx context.Context, in RecordInput) (*ConfirmationSummary, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	return &ConfirmationSummary{
		AgentName:      in.AgentName,
		ProjectName:    in.ProjectName,
		Classification: in.Classification.Label(),
		TimeSlot:       in.TimeSlot,
		Score:          s.score(&in),
	}, nil
}

func (s *evaluationService) Submit(ctx context.Context, in RecordInput) (*types.EvaluationRecord, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no session in context"))
	}
	if rd.Role == types.RoleAgent {
		return nil, apierr.Forbidden(fmt.Errorf("agents cannot submit evaluations"))
	}
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	computed := s.score(&in)
	record := &types.EvaluationRecord{
		ID:             uuid.New(),
		Date:           in.Date,
		TimeSlot:       in.TimeSlot,
		AgentName:      in.AgentName,
		ProjectName:    in.ProjectName,
		TaskName:       in.TaskName,
		TeamLeadName:   in.TeamLeadName,
		QCCheckerName:  in.QCCheckerName,
		Classification: in.Classification,
		ManualQC:       in.ManualQC,
		ManualFeedback: in.ManualFeedback,
		RangeStart:     in.RangeStart,
		RangeEnd:       in.RangeEnd,
		Notes:          in.Notes,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	record.ManualErrors = evaluation.EncodeLabels(in.ManualErrors)
	samples := make([]types.SampleResult, 0, len(in.Samples))
	for _, sample := range in.Samples {
		if sample != nil {
			samples = append(samples, *sample)
		}
	}
	record.Samples = evaluation.EncodeSamples(samples)

	if in.Classification == types.ClassificationRework {
		record.ReworkScore = &computed
	} else {
		record.Score = computed
	}

	if in.ID != nil {
		existing, gErr := s.Get(ctx, *in.ID)
		if gErr != nil {
			return nil, gErr
		}
		forked := existing.Classification == types.ClassificationRegular &&
			in.Classification == types.ClassificationRework
		if forked {
			// The regular record stays as history; the rework gets a new
			// identity and carries the original score alongside its own.
			record.Score = existing.Score
		} else {
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt
			if in.Classification == types.ClassificationRework {
				record.Score = existing.Score
			}
		}
	}

	if err := s.backend.UpsertEvaluationRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("saving evaluation record: %w", err)
	}
	return record, nil
}

func (s *evaluationService) Delete(ctx context.Context, id uuid.UUID) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return apierr.Forbidden(fmt.Errorf("no session in context"))
	}
	if rd.Role == types.RoleAgent {
		return apierr.Forbidden(fmt.Errorf("agents cannot delete evaluations"))
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.backend.DeleteEvaluationRecord(ctx, id); err != nil {
		return fmt.Errorf("deleting evaluation record: %w", err)
	}
	return nil
}
