package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

const defaultProbeTimeout = 2 * time.Second

// remoteThenLocal prefers the remote backend and falls back to the local one
// without surfacing the failure. Reads run against the remote under a short
// timeout; writes go remote-first and are mirrored to local so the fallback
// copy stays warm. A remote write failure degrades to a local-only write.
type remoteThenLocal struct {
	remote       Backend
	local        Backend
	probeTimeout time.Duration
	log          *logger.Logger
}

func NewRemoteThenLocal(remote, local Backend, baseLog *logger.Logger) Backend {
	return &remoteThenLocal{
		remote:       remote,
		local:        local,
		probeTimeout: defaultProbeTimeout,
		log:          baseLog.With("backend", "remote_then_local"),
	}
}

func (s *remoteThenLocal) Ping(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	if err := s.remote.Ping(probeCtx); err != nil {
		s.log.Warn("remote unreachable, serving local store", "error", err)
		return s.local.Ping(ctx)
	}
	return nil
}

// read runs fn against the remote under the probe timeout and falls back to
// the local store when it fails. The fallback is logged, never returned.
func read[T any](ctx context.Context, s *remoteThenLocal, op string,
	fn func(ctx context.Context, b Backend) ([]T, error)) ([]T, error) {

	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	results, err := fn(probeCtx, s.remote)
	if err == nil {
		return results, nil
	}
	s.log.Warn("remote read failed, falling back to local", "op", op, "error", err)
	return fn(ctx, s.local)
}

// write applies fn remote-first and mirrors it to local. Mirror failures are
// logged; a remote failure degrades to a local-only write so the caller never
// sees the outage.
func (s *remoteThenLocal) write(ctx context.Context, op string,
	fn func(ctx context.Context, b Backend) error) error {

	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	remoteErr := fn(probeCtx, s.remote)
	cancel()
	if remoteErr != nil {
		s.log.Warn("remote write failed, writing local only", "op", op, "error", remoteErr)
		return fn(ctx, s.local)
	}
	if err := fn(ctx, s.local); err != nil {
		s.log.Warn("local mirror write failed", "op", op, "error", err)
	}
	return nil
}

func (s *remoteThenLocal) ListAccounts(ctx context.Context) ([]*types.Account, error) {
	return read(ctx, s, "list_accounts", func(ctx context.Context, b Backend) ([]*types.Account, error) {
		return b.ListAccounts(ctx)
	})
}

func (s *remoteThenLocal) UpsertAccount(ctx context.Context, acct *types.Account) error {
	return s.write(ctx, "upsert_account", func(ctx context.Context, b Backend) error {
		return b.UpsertAccount(ctx, acct)
	})
}

func (s *remoteThenLocal) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.write(ctx, "delete_account", func(ctx context.Context, b Backend) error {
		return b.DeleteAccount(ctx, id)
	})
}

func (s *remoteThenLocal) ListEvaluationRecords(ctx context.Context) ([]*types.EvaluationRecord, error) {
	return read(ctx, s, "list_evaluation_records", func(ctx context.Context, b Backend) ([]*types.EvaluationRecord, error) {
		return b.ListEvaluationRecords(ctx)
	})
}

func (s *remoteThenLocal) UpsertEvaluationRecord(ctx context.Context, record *types.EvaluationRecord) error {
	return s.write(ctx, "upsert_evaluation_record", func(ctx context.Context, b Backend) error {
		return b.UpsertEvaluationRecord(ctx, record)
	})
}

func (s *remoteThenLocal) DeleteEvaluationRecord(ctx context.Context, id uuid.UUID) error {
	return s.write(ctx, "delete_evaluation_record", func(ctx context.Context, b Backend) error {
		return b.DeleteEvaluationRecord(ctx, id)
	})
}

func (s *remoteThenLocal) ListProductionLogs(ctx context.Context) ([]*types.ProductionLog, error) {
	return read(ctx, s, "list_production_logs", func(ctx context.Context, b Backend) ([]*types.ProductionLog, error) {
		return b.ListProductionLogs(ctx)
	})
}

func (s *remoteThenLocal) UpsertProductionLog(ctx context.Context, plog *types.ProductionLog) error {
	return s.write(ctx, "upsert_production_log", func(ctx context.Context, b Backend) error {
		return b.UpsertProductionLog(ctx, plog)
	})
}

func (s *remoteThenLocal) DeleteProductionLog(ctx context.Context, id uuid.UUID) error {
	return s.write(ctx, "delete_production_log", func(ctx context.Context, b Backend) error {
		return b.DeleteProductionLog(ctx, id)
	})
}

func (s *remoteThenLocal) ListProjectTargets(ctx context.Context) ([]*types.ProjectTarget, error) {
	return read(ctx, s, "list_project_targets", func(ctx context.Context, b Backend) ([]*types.ProjectTarget, error) {
		return b.ListProjectTargets(ctx)
	})
}

func (s *remoteThenLocal) UpsertProjectTarget(ctx context.Context, target *types.ProjectTarget) error {
	return s.write(ctx, "upsert_project_target", func(ctx context.Context, b Backend) error {
		return b.UpsertProjectTarget(ctx, target)
	})
}
