package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

const (
	verificationTTL       = 60 * time.Second
	verificationKeyPrefix = "qcdesk:verify:"
)

// CodeSender delivers a verification code to the operator performing a
// sensitive change. The default sender logs the code; SMS/email delivery
// plugs in here.
type CodeSender interface {
	Send(ctx context.Context, accountEmail, code string) error
}

type logSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) CodeSender {
	return &logSender{log: log.With("sender", "log")}
}

func (s *logSender) Send(ctx context.Context, accountEmail, code string) error {
	s.log.Info("verification code issued", "email", accountEmail, "verification_code", code)
	return nil
}

// VerificationService issues short-lived codes guarding sensitive account
// changes. Codes live in redis under a per-email key and expire after 60s;
// a successful confirm consumes the code.
type VerificationService interface {
	Request(ctx context.Context, accountEmail string) error
	Confirm(ctx context.Context, accountEmail, code string) error
}

type verificationService struct {
	rdb    *redis.Client
	sender CodeSender
	log    *logger.Logger
}

func NewVerificationService(rdb *redis.Client, sender CodeSender, log *logger.Logger) VerificationService {
	return &verificationService{
		rdb:    rdb,
		sender: sender,
		log:    log.With("service", "VerificationService"),
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generating verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (vs *verificationService) Request(ctx context.Context, accountEmail string) error {
	if accountEmail == "" {
		return apierr.Validation("email", fmt.Errorf("email is required"))
	}
	code, err := generateCode()
	if err != nil {
		return err
	}
	key := verificationKeyPrefix + accountEmail
	if err := vs.rdb.Set(ctx, key, code, verificationTTL).Err(); err != nil {
		return fmt.Errorf("storing verification code: %w", err)
	}
	if err := vs.sender.Send(ctx, accountEmail, code); err != nil {
		vs.log.Warn("verification code delivery failed", "error", err)
		return fmt.Errorf("delivering verification code: %w", err)
	}
	return nil
}

func (vs *verificationService) Confirm(ctx context.Context, accountEmail, code string) error {
	if code == "" {
		return apierr.Validation("verification_code", fmt.Errorf("verification code is required"))
	}
	key := verificationKeyPrefix + accountEmail
	stored, err := vs.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return apierr.Validation("verification_code", fmt.Errorf("verification code expired"))
	}
	if err != nil {
		return fmt.Errorf("loading verification code: %w", err)
	}
	if stored != code {
		return apierr.Validation("verification_code", fmt.Errorf("verification code does not match"))
	}
	if err := vs.rdb.Del(ctx, key).Err(); err != nil {
		vs.log.Warn("deleting consumed verification code failed", "error", err)
	}
	return nil
}
