package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
	"github.com/opsdeck/qcdesk-backend/internal/platform/ctxutil"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type AccountInput struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Gender      string `json:"gender"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type AccountService interface {
	List(ctx context.Context) ([]*types.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Account, error)
	Create(ctx context.Context, in AccountInput) (*types.Account, error)
	Update(ctx context.Context, id uuid.UUID, in AccountInput, verificationCode string) (*types.Account, error)
	Delete(ctx context.Context, id uuid.UUID, verificationCode string) error
}

type accountService struct {
	backend      store.Backend
	verification VerificationService
	log          *logger.Logger
}

func NewAccountService(backend store.Backend, verification VerificationService, log *logger.Logger) AccountService {
	return &accountService{
		backend:      backend,
		verification: verification,
		log:          log.With("service", "AccountService"),
	}
}

func requireAdmin(ctx context.Context) (*ctxutil.RequestData, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no session in context"))
	}
	if rd.Role != types.RoleAdmin {
		return nil, apierr.Forbidden(fmt.Errorf("admin role required"))
	}
	return rd, nil
}

func validateAccountInput(in *AccountInput, creating bool) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if in.Name == "" {
		return apierr.Validation("name", fmt.Errorf("name is required"))
	}
	if !types.ValidRole(in.Role) {
		return apierr.Validation("role", fmt.Errorf("unknown role %q", in.Role))
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return apierr.Validation("email", fmt.Errorf("a valid email is required"))
	}
	if creating && in.Password == "" {
		return apierr.Validation("password", fmt.Errorf("password is required"))
	}
	return nil
}

func (s *accountService) List(ctx context.Context) ([]*types.Account, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Forbidden(fmt.Errorf("no session in context"))
	}
	accounts, err := s.backend.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) Get(ctx context.Context, id uuid.UUID) (*types.Account, error) {
	accounts, err := s.backend.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apierr.NotFound(fmt.Errorf("account %s not found", id))
}

func (s *accountService) emailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	accounts, err := s.backend.ListAccounts(ctx)
	if err != nil {
		return false, fmt.Errorf("listing accounts: %w", err)
	}
	for _, a := range accounts {
		if a.ID != exclude && a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *accountService) Create(ctx context.Context, in AccountInput) (*types.Account, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateAccountInput(&in, true); err != nil {
		return nil, err
	}
	taken, err := s.emailTaken(ctx, in.Email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apierr.Validation("email", fmt.Errorf("email already in use"))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	acct := &types.Account{
		ID:           uuid.New(),
		Name:         in.Name,
		Role:         in.Role,
		Gender:       in.Gender,
		Email:        in.Email,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.backend.UpsertAccount(ctx, acct); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	return acct, nil
}

// Update replaces the stored account. Role and password changes are
// sensitive: the caller has to present a verification code issued to their
// own email first.
func (s *accountService) Update(ctx context.Context, id uuid.UUID, in AccountInput, verificationCode string) (*types.Account, error) {
	rd, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateAccountInput(&in, false); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sensitive := in.Role != existing.Role || in.Password != ""
	if sensitive {
		if err := s.confirmOperator(ctx, rd, verificationCode); err != nil {
			return nil, err
		}
	}
	taken, err := s.emailTaken(ctx, in.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apierr.Validation("email", fmt.Errorf("email already in use"))
	}

	existing.Name = in.Name
	existing.Role = in.Role
	existing.Gender = in.Gender
	existing.Email = in.Email
	existing.PhoneNumber = in.PhoneNumber
	if in.Password != "" {
		hash, hErr := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if hErr != nil {
			return nil, fmt.Errorf("hashing password: %w", hErr)
		}
		existing.PasswordHash = string(hash)
	}
	existing.UpdatedAt = time.Now()
	if err := s.backend.UpsertAccount(ctx, existing); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	return existing, nil
}

func (s *accountService) Delete(ctx context.Context, id uuid.UUID, verificationCode string) error {
	rd, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.confirmOperator(ctx, rd, verificationCode); err != nil {
		return err
	}
	if err := s.backend.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	return nil
}

func (s *accountService) confirmOperator(ctx context.Context, rd *ctxutil.RequestData, code string) error {
	if s.verification == nil {
		return apierr.Validation("verification_code", fmt.Errorf("verification is not configured"))
	}
	operator, err := s.Get(ctx, rd.AccountID)
	if err != nil {
		return err
	}
	return s.verification.Confirm(ctx, operator.Email, code)
}
