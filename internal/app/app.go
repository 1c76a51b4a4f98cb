// Package app wires the whole service together: config, stores, services,
// handlers, router.
package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/opsdeck/qcdesk-backend/internal/catalog"
	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	internalhttp "github.com/opsdeck/qcdesk-backend/internal/http"
	httpMW "github.com/opsdeck/qcdesk-backend/internal/http/middleware"
	"github.com/opsdeck/qcdesk-backend/internal/observability"
	"github.com/opsdeck/qcdesk-backend/internal/platform/envutil"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Backend  store.Backend
	AuthDB   *gorm.DB
	Server   *internalhttp.Server
	Services Services

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig()

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "qcdesk",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load defect catalog: %w", err)
	}
	log.Info("defect catalog loaded", "error_types", len(cat.Types()))

	backend, authDB, err := wireStore(cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	rdb, err := wireRedis(cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	svcs := wireServices(cfg, log, authDB, backend, cat, rdb)
	handlerset := wireHandlers(svcs, backend)
	authMW := httpMW.NewAuthMiddleware(log, svcs.Auth)

	server := internalhttp.NewServer(internalhttp.RouterConfig{
		Log:            log,
		TracingEnabled: envutil.Bool("OTEL_ENABLED", false),
		ServiceName:    "qcdesk",

		AuthHandler:         handlerset.Auth,
		AuthMiddleware:      authMW,
		AccountHandler:      handlerset.Account,
		EvaluationHandler:   handlerset.Evaluation,
		ProductionHandler:   handlerset.Production,
		SummaryHandler:      handlerset.Summary,
		ExportHandler:       handlerset.Export,
		VerificationHandler: handlerset.Verification,
		HealthHandler:       handlerset.Health,
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Backend:      backend,
		AuthDB:       authDB,
		Server:       server,
		Services:     svcs,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	a.Log.Info("server listening", "port", a.Cfg.Port, "persistence_mode", a.Cfg.PersistenceMode)
	return a.Server.Run(":" + a.Cfg.Port)
}

func (a *App) Shutdown(ctx context.Context) {
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
