package app

import (
	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	"github.com/opsdeck/qcdesk-backend/internal/http/handlers"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Account      *handlers.AccountHandler
	Evaluation   *handlers.EvaluationHandler
	Production   *handlers.ProductionHandler
	Summary      *handlers.SummaryHandler
	Export       *handlers.ExportHandler
	Verification *handlers.VerificationHandler
	Health       *handlers.HealthHandler
}

func wireHandlers(svcs Services, backend store.Backend) Handlers {
	h := Handlers{
		Auth:       handlers.NewAuthHandler(svcs.Auth),
		Account:    handlers.NewAccountHandler(svcs.Account),
		Evaluation: handlers.NewEvaluationHandler(svcs.Evaluation),
		Production: handlers.NewProductionHandler(svcs.Production),
		Summary:    handlers.NewSummaryHandler(svcs.Summary),
		Export:     handlers.NewExportHandler(svcs.Export),
		Health:     handlers.NewHealthHandler(backend),
	}
	if svcs.Verification != nil {
		h.Verification = handlers.NewVerificationHandler(svcs.Verification, svcs.Account)
	}
	return h
}
