package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
	"github.com/opsdeck/qcdesk-backend/internal/platform/ctxutil"
)

// stubVerifier accepts exactly one code and records whether it was asked.
type stubVerifier struct {
	accepted string
	asked    bool
}

func (v *stubVerifier) Request(ctx context.Context, email string) error { return nil }

func (v *stubVerifier) Confirm(ctx context.Context, email, code string) error {
	v.asked = true
	if code != v.accepted {
		return apierr.Validation("verification_code", errCodeMismatch)
	}
	return nil
}

var errCodeMismatch = errors.New("verification code does not match")

func newAccountService(t *testing.T) (AccountService, *store.Memory, *stubVerifier) {
	t.Helper()
	backend := store.NewMemory()
	verifier := &stubVerifier{accepted: "123456"}
	return NewAccountService(backend, verifier, testLogger(t)), backend, verifier
}

func adminCtx(id uuid.UUID) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		AccountID:   id,
		Role:        types.RoleAdmin,
		AccountName: "Root",
	})
}

func seedAdmin(t *testing.T, backend *store.Memory) (*types.Account, context.Context) {
	t.Helper()
	admin := &types.Account{
		ID:    uuid.New(),
		Name:  "Root",
		Role:  types.RoleAdmin,
		Email: "root@qcdesk.io",
	}
	if err := backend.UpsertAccount(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin, adminCtx(admin.ID)
}

func TestCreateAccountRequiresAdmin(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := sessionCtx(types.RoleManager, "Kofi")
	_, err := svc.Create(ctx, AccountInput{Name: "Ama", Role: types.RoleAgent, Email: "ama@qcdesk.io", Password: "pw"})
	if err == nil {
		t.Fatalf("non-admin create must be rejected")
	}
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	svc, backend, _ := newAccountService(t)
	_, ctx := seedAdmin(t, backend)

	in := AccountInput{Name: "Ama", Role: types.RoleAgent, Gender: "f", Email: "ama@qcdesk.io", Password: "pw"}
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}
	in.Name = "Other"
	if _, err := svc.Create(ctx, in); !apierr.IsValidation(err) {
		t.Fatalf("duplicate email must be a validation error, got %v", err)
	}
}

func TestRoleChangeNeedsVerificationCode(t *testing.T) {
	svc, backend, verifier := newAccountService(t)
	_, ctx := seedAdmin(t, backend)

	created, err := svc.Create(ctx, AccountInput{Name: "Ama", Role: types.RoleAgent, Email: "ama@qcdesk.io", Password: "pw"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	promote := AccountInput{Name: "Ama", Role: types.RoleManager, Email: "ama@qcdesk.io"}
	if _, err := svc.Update(ctx, created.ID, promote, "999999"); err == nil {
		t.Fatalf("wrong verification code must be rejected")
	}
	updated, err := svc.Update(ctx, created.ID, promote, "123456")
	if err != nil {
		t.Fatalf("update with valid code: %v", err)
	}
	if !verifier.asked {
		t.Fatalf("role change must consult the verifier")
	}
	if updated.Role != types.RoleManager {
		t.Fatalf("want role manager, got %s", updated.Role)
	}
}

func TestPlainEditSkipsVerification(t *testing.T) {
	svc, backend, verifier := newAccountService(t)
	_, ctx := seedAdmin(t, backend)

	created, err := svc.Create(ctx, AccountInput{Name: "Ama", Role: types.RoleAgent, Email: "ama@qcdesk.io", Password: "pw"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	rename := AccountInput{Name: "Ama Mensah", Role: types.RoleAgent, Email: "ama@qcdesk.io"}
	if _, err := svc.Update(ctx, created.ID, rename, ""); err != nil {
		t.Fatalf("rename without code: %v", err)
	}
	if verifier.asked {
		t.Fatalf("plain rename must not consult the verifier")
	}
}

func TestDeleteAccountNeedsVerificationCode(t *testing.T) {
	svc, backend, _ := newAccountService(t)
	_, ctx := seedAdmin(t, backend)

	created, err := svc.Create(ctx, AccountInput{Name: "Ama", Role: types.RoleAgent, Email: "ama@qcdesk.io", Password: "pw"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID, "000000"); err == nil {
		t.Fatalf("wrong code delete must be rejected")
	}
	if err := svc.Delete(ctx, created.ID, "123456"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err == nil {
		t.Fatalf("deleted account must be gone")
	}
}
