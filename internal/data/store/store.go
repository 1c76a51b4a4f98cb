// Package store defines the persistence boundary the services consume. A
// Backend is one durable home for the record set; RemoteThenLocal composes
// the primary postgres backend with the local sqlite fallback so a transport
// failure never reaches the end user.
package store

import (
	"context"

	"github.com/google/uuid"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
)

// Backend is the abstract persistence contract. Upserts are keyed by id:
// absence means insert, presence means full-row replace. Every call may fail
// with a transport error; callers degrade rather than propagate.
type Backend interface {
	Ping(ctx context.Context) error

	ListAccounts(ctx context.Context) ([]*types.Account, error)
	UpsertAccount(ctx context.Context, acct *types.Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error

	ListEvaluationRecords(ctx context.Context) ([]*types.EvaluationRecord, error)
	UpsertEvaluationRecord(ctx context.Context, record *types.EvaluationRecord) error
	DeleteEvaluationRecord(ctx context.Context, id uuid.UUID) error

	ListProductionLogs(ctx context.Context) ([]*types.ProductionLog, error)
	UpsertProductionLog(ctx context.Context, plog *types.ProductionLog) error
	DeleteProductionLog(ctx context.Context, id uuid.UUID) error

	ListProjectTargets(ctx context.Context) ([]*types.ProjectTarget, error)
	UpsertProjectTarget(ctx context.Context, target *types.ProjectTarget) error
}
