package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/gradecalc/internal/http/response"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/services"
	"github.com/yungbote/gradecalc/internal/state"
)

type ResultHandler struct {
	responder
}

func NewResultHandler(calc services.CalculatorService, catalog *i18n.Catalog) *ResultHandler {
	return &ResultHandler{responder{calc: calc, catalog: catalog}}
}

// GET /api/semester/result
func (h *ResultHandler) Semester(c *gin.Context) {
	res, err := h.calc.Semester(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"result": res,
		"remark": h.translate(c, res.RemarkKey),
	})
}

type annualInputsRequest struct {
	S1Avg     *string `json:"s1_avg"`
	S1Credits *string `json:"s1_credits"`
	S2Avg     *string `json:"s2_avg"`
	S2Credits *string `json:"s2_credits"`
}

// PUT /api/annual/inputs
//
// Fields are applied in form order, so an explicit credits value wins over
// the one filled in from a passing average.
func (h *ResultHandler) SetAnnualInputs(c *gin.Context) {
	var req annualInputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	var actions []state.Action
	for _, f := range []struct {
		field state.AnnualField
		value *string
	}{
		{state.FieldS1Avg, req.S1Avg},
		{state.FieldS1Credits, req.S1Credits},
		{state.FieldS2Avg, req.S2Avg},
		{state.FieldS2Credits, req.S2Credits},
	} {
		if f.value != nil {
			actions = append(actions, state.SetAnnualInput{Field: f.field, Value: *f.value})
		}
	}
	h.applyAll(c, actions...)
}

// DELETE /api/annual/inputs
func (h *ResultHandler) ClearAnnualInputs(c *gin.Context) {
	h.applyAll(c, state.ClearAnnualInputs{})
}

// GET /api/annual/result
func (h *ResultHandler) Annual(c *gin.Context) {
	res, err := h.calc.Annual(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"result":      res,
		"status_text": h.translate(c, res.Status.TextKey()),
	})
}
