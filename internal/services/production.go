package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
	"github.com/opsdeck/qcdesk-backend/internal/platform/ctxutil"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type ProductionLogInput struct {
	ID          *uuid.UUID `json:"id"`
	AgentName   string     `json:"agent_name"`
	Date        string     `json:"date"`
	ProjectName string     `json:"project_name"`
	Target      int        `json:"target"`
	Actual      int        `json:"actual"`
}

type ProjectTargetInput struct {
	Name          string `json:"name"`
	DefaultTarget int    `json:"default_target"`
}

type ProductionService interface {
	ListLogs(ctx context.Context) ([]*types.ProductionLog, error)
	SaveLog(ctx context.Context, in ProductionLogInput) (*types.ProductionLog, error)
	DeleteLog(ctx context.Context, id uuid.UUID) error
	ListTargets(ctx context.Context) ([]*types.ProjectTarget, error)
	SaveTarget(ctx context.Context, in ProjectTargetInput) (*types.ProjectTarget, error)
	DefaultTargetFor(ctx context.Context, projectName string) (int, error)
}

type productionService struct {
	backend store.Backend
	log     *logger.Logger
	now     func() time.Time
}

func NewProductionService(backend store.Backend, log *logger.Logger) ProductionService {
	return &productionService{
		backend: backend,
		log:     log.With("service", "ProductionService"),
		now:     time.Now,
	}
}

func (s *productionService) ListLogs(ctx context.Context) ([]*types.ProductionLog, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no session in context"))
	}
	logs, err := s.backend.ListProductionLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing production logs: %w", err)
	}
	if rd.Role != types.RoleAgent {
		return logs, nil
	}
	own := make([]*types.ProductionLog, 0, len(logs))
	for _, l := range logs {
		if l.AgentName == rd.AccountName {
			own = append(own, l)
		}
	}
	return own, nil
}

func (s *productionService) validateLog(in *ProductionLogInput) error {
	in.AgentName = strings.TrimSpace(in.AgentName)
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	in.Date = strings.TrimSpace(in.Date)
	if in.AgentName == "" {
		return apierr.Validation("agent_name", fmt.Errorf("agent name is required"))
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return apierr.Validation("date", fmt.Errorf("date must be YYYY-MM-DD"))
	}
	if in.ProjectName == "" {
		return apierr.Validation("project_name", fmt.Errorf("project name is required"))
	}
	if in.Target < 0 {
		return apierr.Validation("target", fmt.Errorf("target cannot be negative"))
	}
	if in.Actual < 0 {
		return apierr.Validation("actual", fmt.Errorf("actual cannot be negative"))
	}
	if in.Target > 0 && in.Actual > 2*in.Target {
		return apierr.Validation("actual", fmt.Errorf("actual cannot exceed twice the target"))
	}
	return nil
}

// SaveLog creates or overwrites a production log. Agents may only touch
// their own entries for today; manager and admin may write any agent and
// any date.
func (s *productionService) SaveLog(ctx context.Context, in ProductionLogInput) (*types.ProductionLog, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no session in context"))
	}
	if err := s.validateLog(&in); err != nil {
		return nil, err
	}
	if !types.Elevated(rd.Role) {
		if in.AgentName != rd.AccountName {
			return nil, apierr.Forbidden(fmt.Errorf("agents can only log their own production"))
		}
		today := s.now().Format("2006-01-02")
		if in.Date != today {
			return nil, apierr.Forbidden(fmt.Errorf("agents can only log production for today"))
		}
	}

	entry := &types.ProductionLog{
		ID:          uuid.New(),
		AgentName:   in.AgentName,
		Date:        in.Date,
		ProjectName: in.ProjectName,
		Target:      in.Target,
		Actual:      in.Actual,
		LoggedAt:    s.now(),
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if in.ID != nil {
		existing, err := s.getLog(ctx, *in.ID)
		if err != nil {
			return nil, err
		}
		if !types.Elevated(rd.Role) && existing.AgentName != rd.AccountName {
			return nil, apierr.Forbidden(fmt.Errorf("agents can only edit their own production"))
		}
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}
	if err := s.backend.UpsertProductionLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving production log: %w", err)
	}
	return entry, nil
}

func (s *productionService) getLog(ctx context.Context, id uuid.UUID) (*types.ProductionLog, error) {
	logs, err := s.backend.ListProductionLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing production logs: %w", err)
	}
	for _, l := range logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, apierr.NotFound(fmt.Errorf("production log %s not found", id))
}

func (s *productionService) DeleteLog(ctx context.Context, id uuid.UUID) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return apierr.Forbidden(fmt.Errorf("no session in context"))
	}
	if !types.Elevated(rd.Role) {
		return apierr.Forbidden(fmt.Errorf("only manager or admin can delete production logs"))
	}
	if _, err := s.getLog(ctx, id); err != nil {
		return err
	}
	if err := s.backend.DeleteProductionLog(ctx, id); err != nil {
		return fmt.Errorf("deleting production log: %w", err)
	}
	return nil
}

func (s *productionService) ListTargets(ctx context.Context) ([]*types.ProjectTarget, error) {
	targets, err := s.backend.ListProjectTargets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing project targets: %w", err)
	}
	return targets, nil
}

// SaveTarget sets a project's default target for future logs. Existing logs
// keep the target they were created with.
func (s *productionService) SaveTarget(ctx context.Context, in ProjectTargetInput) (*types.ProjectTarget, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no session in context"))
	}
	if !types.Elevated(rd.Role) {
		return nil, apierr.Forbidden(fmt.Errorf("only manager or admin can edit project targets"))
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apierr.Validation("name", fmt.Errorf("project name is required"))
	}
	if in.DefaultTarget < 0 {
		return nil, apierr.Validation("default_target", fmt.Errorf("default target cannot be negative"))
	}

	target := &types.ProjectTarget{
		ID:            uuid.New(),
		Name:          in.Name,
		DefaultTarget: in.DefaultTarget,
		CreatedAt:     s.now(),
		UpdatedAt:     s.now(),
	}
	existing, err := s.backend.ListProjectTargets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing project targets: %w", err)
	}
	for _, t := range existing {
		if t.Name == in.Name {
			target.ID = t.ID
			target.CreatedAt = t.CreatedAt
			break
		}
	}
	if err := s.backend.UpsertProjectTarget(ctx, target); err != nil {
		return nil, fmt.Errorf("saving project target: %w", err)
	}
	return target, nil
}

// DefaultTargetFor seeds a new log's target from the project defaults.
// Unknown projects get 0; the operator fills it in by hand.
func (s *productionService) DefaultTargetFor(ctx context.Context, projectName string) (int, error) {
	targets, err := s.backend.ListProjectTargets(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing project targets: %w", err)
	}
	for _, t := range targets {
		if t.Name == projectName {
			return t.DefaultTarget, nil
		}
	}
	return 0, nil
}
