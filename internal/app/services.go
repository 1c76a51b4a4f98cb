package app

import (
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/opsdeck/qcdesk-backend/internal/catalog"
	"github.com/opsdeck/qcdesk-backend/internal/data/repos"
	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
	"github.com/opsdeck/qcdesk-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Account      services.AccountService
	Evaluation   services.EvaluationService
	Production   services.ProductionService
	Summary      services.SummaryService
	Export       services.ExportService
	Verification services.VerificationService
}

func wireServices(
	cfg Config,
	log *logger.Logger,
	authDB *gorm.DB,
	backend store.Backend,
	cat *catalog.Catalog,
	rdb *redis.Client,
) Services {
	reposet := repos.NewSet(authDB, log)

	var verification services.VerificationService
	if rdb != nil {
		verification = services.NewVerificationService(rdb, services.NewLogSender(log), log)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return Services{
		Auth: services.NewAuthService(
			authDB, log, reposet.Accounts, reposet.Tokens,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
		),
		Account:      services.NewAccountService(backend, verification, log),
		Evaluation:   services.NewEvaluationService(backend, cat, rng, log),
		Production:   services.NewProductionService(backend, log),
		Summary:      services.NewSummaryService(backend, log),
		Export:       services.NewExportService(backend, log),
		Verification: verification,
	}
}
