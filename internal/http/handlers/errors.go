package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/gradecalc/internal/feedback"
	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/http/response"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/platform/apierr"
	"github.com/yungbote/gradecalc/internal/services"
	"github.com/yungbote/gradecalc/internal/state"
	"github.com/yungbote/gradecalc/internal/statement"
)

// toAPIError maps domain failures onto statuses. The code is always the
// translation key of the message the UI would show.
func toAPIError(err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	key := state.MessageKey(err)
	switch {
	case errors.Is(err, state.ErrConfirmationRequired):
		return apierr.Conflict(key, err)
	case errors.Is(err, state.ErrModuleNotFound), errors.Is(err, grading.ErrSchemeNotFound):
		return apierr.NotFound(key, err)
	case errors.Is(err, state.ErrInvalidLanguage), errors.Is(err, state.ErrInvalidTheme):
		return apierr.BadRequest("invalid_request", err)
	case errors.Is(err, statement.ErrNoStatementData):
		return apierr.Unprocessable("no_data_for_statement", err)
	case errors.Is(err, feedback.ErrEmptyFeedback):
		return apierr.Unprocessable("error_feedback_empty", err)
	case key != "":
		return apierr.Unprocessable(key, err)
	default:
		return apierr.Internal(err)
	}
}

func messageArgs(key string) []any {
	switch key {
	case "error_max_modules":
		return []any{grading.MaxModules}
	case "error_max_custom_methods":
		return []any{grading.MaxCustomSchemes}
	}
	return nil
}

// responder writes errors translated into the profile's language.
type responder struct {
	calc    services.CalculatorService
	catalog *i18n.Catalog
}

func (r responder) lang(c *gin.Context) i18n.Language {
	return r.calc.State(c.Request.Context()).Language
}

func (r responder) translate(c *gin.Context, key string, args ...any) string {
	if key == "" || r.catalog == nil {
		return ""
	}
	msg := r.catalog.T(r.lang(c), key, args...)
	if msg == key {
		return ""
	}
	return msg
}

func (r responder) fail(c *gin.Context, err error) {
	e := toAPIError(err)
	response.RespondAPIError(c, e, r.translate(c, e.Code, messageArgs(e.Code)...))
}

func (r responder) badRequest(c *gin.Context, err error) {
	response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
}
