package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

func newComposite(t *testing.T) (Backend, *Memory, *Memory) {
	t.Helper()
	remote := NewMemory()
	local := NewMemory()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewRemoteThenLocal(remote, local, log), remote, local
}

func record(agent string) *types.EvaluationRecord {
	return &types.EvaluationRecord{
		ID:             uuid.New(),
		Date:           "2026-08-31",
		AgentName:      agent,
		ProjectName:    "Altrum",
		Classification: types.ClassificationRegular,
		Score:          90,
		CreatedAt:      time.Now(),
	}
}

func TestWriteMirrorsToLocal(t *testing.T) {
	ctx := context.Background()
	composite, remote, local := newComposite(t)

	if err := composite.UpsertEvaluationRecord(ctx, record("Ama")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	for name, b := range map[string]*Memory{"remote": remote, "local": local} {
		got, err := b.ListEvaluationRecords(ctx)
		if err != nil {
			t.Fatalf("%s list: %v", name, err)
		}
		if len(got) != 1 {
			t.Fatalf("%s has %d records, want 1", name, len(got))
		}
	}
}

func TestReadFallsBackWhenRemoteDown(t *testing.T) {
	ctx := context.Background()
	composite, remote, local := newComposite(t)

	if err := local.UpsertEvaluationRecord(ctx, record("Ama")); err != nil {
		t.Fatalf("seed local: %v", err)
	}
	remote.SetFailing(true)

	got, err := composite.ListEvaluationRecords(ctx)
	if err != nil {
		t.Fatalf("list should fall back silently, got %v", err)
	}
	if len(got) != 1 || got[0].AgentName != "Ama" {
		t.Fatalf("expected the local record, got %+v", got)
	}
}

func TestWriteDegradesToLocalOnly(t *testing.T) {
	ctx := context.Background()
	composite, remote, local := newComposite(t)
	remote.SetFailing(true)

	if err := composite.UpsertEvaluationRecord(ctx, record("Kofi")); err != nil {
		t.Fatalf("upsert should degrade silently, got %v", err)
	}

	remote.SetFailing(false)
	remoteGot, _ := remote.ListEvaluationRecords(ctx)
	if len(remoteGot) != 0 {
		t.Fatalf("remote should have been skipped, has %d records", len(remoteGot))
	}
	localGot, _ := local.ListEvaluationRecords(ctx)
	if len(localGot) != 1 {
		t.Fatalf("local should hold the degraded write, has %d records", len(localGot))
	}
}

func TestDeleteAppliesToBothStores(t *testing.T) {
	ctx := context.Background()
	composite, remote, local := newComposite(t)

	r := record("Ama")
	if err := composite.UpsertEvaluationRecord(ctx, r); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := composite.DeleteEvaluationRecord(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for name, b := range map[string]*Memory{"remote": remote, "local": local} {
		got, _ := b.ListEvaluationRecords(ctx)
		if len(got) != 0 {
			t.Fatalf("%s still holds %d records after delete", name, len(got))
		}
	}
}

func TestPingFallsBack(t *testing.T) {
	ctx := context.Background()
	composite, remote, _ := newComposite(t)

	if err := composite.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	remote.SetFailing(true)
	if err := composite.Ping(ctx); err != nil {
		t.Fatalf("ping should fall back to local, got %v", err)
	}
}
