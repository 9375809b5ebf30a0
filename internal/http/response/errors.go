package response

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/gradecalc/internal/platform/apierr"
)

// RespondAPIError writes e with its own status and code. A non-empty message
// replaces the wrapped error text, e.g. with a translated one.
func RespondAPIError(c *gin.Context, e *apierr.Error, message string) {
	if e == nil {
		e = apierr.Internal(nil)
	}
	if e.Err != nil {
		_ = c.Error(e.Err)
	}
	if message == "" {
		message = e.Error()
	}
	c.JSON(e.Status, ErrorEnvelope{
		Error: APIError{
			Message: message,
			Code:    e.Code,
		},
	})
}
