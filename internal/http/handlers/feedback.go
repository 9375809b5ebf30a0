package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/gradecalc/internal/feedback"
	"github.com/yungbote/gradecalc/internal/http/response"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/platform/apierr"
	"github.com/yungbote/gradecalc/internal/services"
)

type FeedbackHandler struct {
	responder
	feedback services.FeedbackService
}

func NewFeedbackHandler(calc services.CalculatorService, catalog *i18n.Catalog, fb services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{responder: responder{calc: calc, catalog: catalog}, feedback: fb}
}

type feedbackRequest struct {
	Message string `json:"message"`
}

// POST /api/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.feedback.Submit(c.Request.Context(), req.Message); err != nil {
		if !errors.Is(err, feedback.ErrEmptyFeedback) {
			err = apierr.BadGateway("feedback_sent_error", err)
		}
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": h.translate(c, "feedback_success_message")})
}
