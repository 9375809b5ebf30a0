package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/gradecalc/internal/http/response"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/services"
	"github.com/yungbote/gradecalc/internal/state"
)

type StateHandler struct {
	responder
}

func NewStateHandler(calc services.CalculatorService, catalog *i18n.Catalog) *StateHandler {
	return &StateHandler{responder{calc: calc, catalog: catalog}}
}

// GET /api/state
func (h *StateHandler) Get(c *gin.Context) {
	response.RespondOK(c, gin.H{"state": h.calc.State(c.Request.Context())})
}

// DELETE /api/state
func (h *StateHandler) Clear(c *gin.Context) {
	st, err := h.calc.ClearAllData(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"state": st})
}

type settingsPatch struct {
	Language    *i18n.Language `json:"language"`
	Theme       *state.Theme   `json:"theme"`
	SaveEnabled *bool          `json:"save_enabled"`
}

// PATCH /api/settings
func (h *StateHandler) PatchSettings(c *gin.Context) {
	var req settingsPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	var actions []state.Action
	if req.Language != nil {
		actions = append(actions, state.SetLanguage{Language: *req.Language})
	}
	if req.Theme != nil {
		actions = append(actions, state.SetTheme{Theme: *req.Theme})
	}
	if req.SaveEnabled != nil {
		actions = append(actions, state.SetSaveEnabled{Enabled: *req.SaveEnabled})
	}
	h.applyAll(c, actions...)
}

// PUT /api/settings/debt-threshold
func (h *StateHandler) SetDebtThreshold(c *gin.Context) {
	var req state.SetDebtThreshold
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	h.applyAll(c, req)
}

// applyAll applies actions as one transition: either all of them are
// persisted or none is.
func (r responder) applyAll(c *gin.Context, actions ...state.Action) {
	var a state.Action = state.Batch(actions)
	if len(actions) == 1 {
		a = actions[0]
	}
	st, err := r.calc.Apply(c.Request.Context(), a)
	if err != nil {
		r.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"state": st})
}
