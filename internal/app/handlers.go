package app

import (
	"github.com/yungbote/gradecalc/internal/http/handlers"
	"github.com/yungbote/gradecalc/internal/platform/logger"
)

type Handlers struct {
	State     *handlers.StateHandler
	Scheme    *handlers.SchemeHandler
	Module    *handlers.ModuleHandler
	Result    *handlers.ResultHandler
	Statement *handlers.StatementHandler
	Feedback  *handlers.FeedbackHandler
	Health    *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	calc, cat := services.Calculator, services.Catalog
	return Handlers{
		State:     handlers.NewStateHandler(calc, cat),
		Scheme:    handlers.NewSchemeHandler(calc, cat),
		Module:    handlers.NewModuleHandler(calc, cat),
		Result:    handlers.NewResultHandler(calc, cat),
		Statement: handlers.NewStatementHandler(calc, cat, services.Statement),
		Feedback:  handlers.NewFeedbackHandler(calc, cat, services.Feedback),
		Health:    handlers.NewHealthHandler(),
	}
}
