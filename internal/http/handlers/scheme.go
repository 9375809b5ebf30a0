package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/http/response"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/services"
	"github.com/yungbote/gradecalc/internal/state"
)

type SchemeHandler struct {
	responder
}

func NewSchemeHandler(calc services.CalculatorService, catalog *i18n.Catalog) *SchemeHandler {
	return &SchemeHandler{responder{calc: calc, catalog: catalog}}
}

// GET /api/schemes
func (h *SchemeHandler) List(c *gin.Context) {
	st := h.calc.State(c.Request.Context())
	response.RespondOK(c, gin.H{
		"schemes":   st.Schemes(),
		"active_id": st.ActiveScheme().ID,
	})
}

// PUT /api/schemes/active
func (h *SchemeHandler) Select(c *gin.Context) {
	var req state.SelectScheme
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	h.applyAll(c, req)
}

type customSchemeRequest struct {
	grading.CustomSchemeInput
	Confirmed bool `json:"confirm"`
}

// POST /api/schemes/custom
func (h *SchemeHandler) AddCustom(c *gin.Context) {
	var req customSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	st, err := h.calc.Apply(c.Request.Context(), state.AddCustomScheme{Input: req.CustomSchemeInput, Confirmed: req.Confirmed})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"scheme": st.ActiveScheme(), "state": st})
}

// DELETE /api/schemes/custom/:id
func (h *SchemeHandler) DeleteCustom(c *gin.Context) {
	h.applyAll(c, state.DeleteCustomScheme{ID: c.Param("id")})
}

type previewQuery struct {
	TDEnabled bool   `form:"td_enabled"`
	TD        string `form:"td"`
	TPEnabled bool   `form:"tp_enabled"`
	TP        string `form:"tp"`
}

// GET /api/schemes/custom/preview
func (h *SchemeHandler) Preview(c *gin.Context) {
	var q previewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	in := grading.CustomSchemeInput{TDEnabled: q.TDEnabled, TD: q.TD, TPEnabled: q.TPEnabled, TP: q.TP}
	exam := grading.ExamPercentPreview(in)
	out := gin.H{"exam_percent": exam}
	if _, err := grading.BuildCustomScheme(in); err != nil {
		e := toAPIError(err)
		out["error"] = response.APIError{Code: e.Code, Message: h.translate(c, e.Code)}
	}
	response.RespondOK(c, out)
}
