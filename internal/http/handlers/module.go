package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/gradecalc/internal/http/response"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/services"
	"github.com/yungbote/gradecalc/internal/state"
)

type ModuleHandler struct {
	responder
}

func NewModuleHandler(calc services.CalculatorService, catalog *i18n.Catalog) *ModuleHandler {
	return &ModuleHandler{responder{calc: calc, catalog: catalog}}
}

// GET /api/modules
func (h *ModuleHandler) List(c *gin.Context) {
	response.RespondOK(c, gin.H{"modules": h.calc.State(c.Request.Context()).Modules})
}

// POST /api/modules
func (h *ModuleHandler) Create(c *gin.Context) {
	var form state.ModuleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		h.badRequest(c, err)
		return
	}
	st, err := h.calc.Apply(c.Request.Context(), state.AddModule{Form: form})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"module": st.Modules[len(st.Modules)-1], "state": st})
}

// PUT /api/modules/:id
func (h *ModuleHandler) Update(c *gin.Context) {
	var form state.ModuleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		h.badRequest(c, err)
		return
	}
	id := c.Param("id")
	st, err := h.calc.Apply(c.Request.Context(), state.EditModule{ID: id, Form: form})
	if err != nil {
		h.fail(c, err)
		return
	}
	m, _ := st.Module(id)
	response.RespondOK(c, gin.H{"module": m, "state": st})
}

// DELETE /api/modules/:id
func (h *ModuleHandler) Delete(c *gin.Context) {
	h.applyAll(c, state.DeleteModule{ID: c.Param("id")})
}

// DELETE /api/modules
func (h *ModuleHandler) Clear(c *gin.Context) {
	h.applyAll(c, state.ClearModules{})
}
