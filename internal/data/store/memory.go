package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
)

// Memory is a map-backed Backend. It backs PERSISTENCE_MODE=memory for local
// development and the fallback tests; ordering matches the gorm backend
// (records newest-first, accounts and targets by name, logs by date).
type Memory struct {
	mu       sync.Mutex
	failing  bool
	accounts map[uuid.UUID]types.Account
	records  map[uuid.UUID]types.EvaluationRecord
	logs     map[uuid.UUID]types.ProductionLog
	targets  map[uuid.UUID]types.ProjectTarget
}

func NewMemory() *Memory {
	return &Memory{
		accounts: map[uuid.UUID]types.Account{},
		records:  map[uuid.UUID]types.EvaluationRecord{},
		logs:     map[uuid.UUID]types.ProductionLog{},
		targets:  map[uuid.UUID]types.ProjectTarget{},
	}
}

// SetFailing makes every subsequent call return errFailing. Test hook for the
// fallback composite.
func (m *Memory) SetFailing(failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = failing
}

func (m *Memory) check() error {
	if m.failing {
		return errFailing
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.check()
}

func (m *Memory) ListAccounts(ctx context.Context) ([]*types.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	out := make([]*types.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		cp := a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) UpsertAccount(ctx context.Context, acct *types.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	m.accounts[acct.ID] = *acct
	return nil
}

func (m *Memory) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	delete(m.accounts, id)
	return nil
}

func (m *Memory) ListEvaluationRecords(ctx context.Context) ([]*types.EvaluationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	out := make([]*types.EvaluationRecord, 0, len(m.records))
	for _, r := range m.records {
		cp := r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) UpsertEvaluationRecord(ctx context.Context, record *types.EvaluationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	m.records[record.ID] = *record
	return nil
}

func (m *Memory) DeleteEvaluationRecord(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) ListProductionLogs(ctx context.Context) ([]*types.ProductionLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	out := make([]*types.ProductionLog, 0, len(m.logs))
	for _, l := range m.logs {
		cp := l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) UpsertProductionLog(ctx context.Context, plog *types.ProductionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	m.logs[plog.ID] = *plog
	return nil
}

func (m *Memory) DeleteProductionLog(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	delete(m.logs, id)
	return nil
}

func (m *Memory) ListProjectTargets(ctx context.Context) ([]*types.ProjectTarget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	out := make([]*types.ProjectTarget, 0, len(m.targets))
	for _, t := range m.targets {
		cp := t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) UpsertProjectTarget(ctx context.Context, target *types.ProjectTarget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	m.targets[target.ID] = *target
	return nil
}
