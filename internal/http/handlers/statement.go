package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/services"
)

type StatementHandler struct {
	responder
	statements services.StatementService
}

func NewStatementHandler(calc services.CalculatorService, catalog *i18n.Catalog, statements services.StatementService) *StatementHandler {
	return &StatementHandler{responder: responder{calc: calc, catalog: catalog}, statements: statements}
}

// GET /api/statement
func (h *StatementHandler) Download(c *gin.Context) {
	name, png, err := h.statements.Generate(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
