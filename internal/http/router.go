package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	httpH "github.com/opsdeck/qcdesk-backend/internal/http/handlers"
	httpMW "github.com/opsdeck/qcdesk-backend/internal/http/middleware"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	TracingEnabled bool
	ServiceName    string

	AuthHandler         *httpH.AuthHandler
	AuthMiddleware      *httpMW.AuthMiddleware
	AccountHandler      *httpH.AccountHandler
	EvaluationHandler   *httpH.EvaluationHandler
	ProductionHandler   *httpH.ProductionHandler
	SummaryHandler      *httpH.SummaryHandler
	ExportHandler       *httpH.ExportHandler
	VerificationHandler *httpH.VerificationHandler
	HealthHandler       *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		if cfg.AccountHandler != nil {
			protected.GET("/me", cfg.AccountHandler.GetMe)
		}

		if cfg.EvaluationHandler != nil {
			protected.GET("/evaluations", cfg.EvaluationHandler.List)
			protected.GET("/evaluations/:id", cfg.EvaluationHandler.Get)
			protected.GET("/error-types", cfg.EvaluationHandler.ErrorTypes)
			protected.POST("/evaluations/samples", cfg.EvaluationHandler.GenerateSamples)
			protected.POST("/evaluations/preview", cfg.EvaluationHandler.Preview)
			protected.POST("/evaluations", cfg.EvaluationHandler.Submit)
			protected.DELETE("/evaluations/:id", cfg.EvaluationHandler.Delete)
		}

		if cfg.ProductionHandler != nil {
			protected.GET("/production/logs", cfg.ProductionHandler.ListLogs)
			protected.POST("/production/logs", cfg.ProductionHandler.SaveLog)
			protected.DELETE("/production/logs/:id", cfg.ProductionHandler.DeleteLog)
			protected.GET("/production/targets", cfg.ProductionHandler.ListTargets)
			protected.GET("/production/default-target", cfg.ProductionHandler.DefaultTarget)
		}

		if cfg.SummaryHandler != nil {
			protected.GET("/summary/dashboard", cfg.SummaryHandler.Dashboard)
			protected.GET("/summary/production", cfg.SummaryHandler.Production)
		}

		if cfg.ExportHandler != nil {
			protected.GET("/export/evaluations.csv", cfg.ExportHandler.Evaluations)
			protected.GET("/export/production.csv", cfg.ExportHandler.Production)
		}

		if cfg.VerificationHandler != nil {
			protected.POST("/verify/request", cfg.VerificationHandler.Request)
			protected.POST("/verify/confirm", cfg.VerificationHandler.Confirm)
		}
	}

	// Elevated-only surfaces.
	if cfg.AuthMiddleware != nil {
		if cfg.ProductionHandler != nil {
			elevated := protected.Group("/")
			elevated.Use(cfg.AuthMiddleware.RequireRoles(types.RoleAdmin, types.RoleManager))
			elevated.POST("/production/targets", cfg.ProductionHandler.SaveTarget)
		}
		if cfg.AccountHandler != nil {
			admin := protected.Group("/")
			admin.Use(cfg.AuthMiddleware.RequireRoles(types.RoleAdmin))
			admin.GET("/accounts", cfg.AccountHandler.List)
			admin.POST("/accounts", cfg.AccountHandler.Create)
			admin.PUT("/accounts/:id", cfg.AccountHandler.Update)
			admin.DELETE("/accounts/:id", cfg.AccountHandler.Delete)
		}
	}

	return r
}
