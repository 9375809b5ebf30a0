package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/gradecalc/internal/http/handlers"
	httpMW "github.com/yungbote/gradecalc/internal/http/middleware"
	"github.com/yungbote/gradecalc/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	ServiceName     string
	CORSOrigins     []string
	MaxRequestBytes int64

	StateHandler     *httpH.StateHandler
	SchemeHandler    *httpH.SchemeHandler
	ModuleHandler    *httpH.ModuleHandler
	ResultHandler    *httpH.ResultHandler
	StatementHandler *httpH.StatementHandler
	FeedbackHandler  *httpH.FeedbackHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.LimitBody(cfg.MaxRequestBytes))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// State and settings
		if cfg.StateHandler != nil {
			api.GET("/state", cfg.StateHandler.Get)
			api.DELETE("/state", cfg.StateHandler.Clear)
			api.PATCH("/settings", cfg.StateHandler.PatchSettings)
			api.PUT("/settings/debt-threshold", cfg.StateHandler.SetDebtThreshold)
		}

		// Weighting schemes
		if cfg.SchemeHandler != nil {
			api.GET("/schemes", cfg.SchemeHandler.List)
			api.PUT("/schemes/active", cfg.SchemeHandler.Select)
			api.POST("/schemes/custom", cfg.SchemeHandler.AddCustom)
			api.GET("/schemes/custom/preview", cfg.SchemeHandler.Preview)
			api.DELETE("/schemes/custom/:id", cfg.SchemeHandler.DeleteCustom)
		}

		// Modules
		if cfg.ModuleHandler != nil {
			api.GET("/modules", cfg.ModuleHandler.List)
			api.POST("/modules", cfg.ModuleHandler.Create)
			api.DELETE("/modules", cfg.ModuleHandler.Clear)
			api.PUT("/modules/:id", cfg.ModuleHandler.Update)
			api.DELETE("/modules/:id", cfg.ModuleHandler.Delete)
		}

		// Results
		if cfg.ResultHandler != nil {
			api.GET("/semester/result", cfg.ResultHandler.Semester)
			api.PUT("/annual/inputs", cfg.ResultHandler.SetAnnualInputs)
			api.DELETE("/annual/inputs", cfg.ResultHandler.ClearAnnualInputs)
			api.GET("/annual/result", cfg.ResultHandler.Annual)
		}

		if cfg.StatementHandler != nil {
			api.GET("/statement", cfg.StatementHandler.Download)
		}

		if cfg.FeedbackHandler != nil {
			api.POST("/feedback", cfg.FeedbackHandler.Submit)
		}
	}

	return r
}
