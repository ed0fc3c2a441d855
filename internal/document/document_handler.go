package document

import (
	"fmt"
	"net/http"

	"github.com/VonnAirone/leave-management-system/internal/shared/apperror"
	"github.com/VonnAirone/leave-management-system/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, logger: l}
}

// DownloadLeaveForm streams the filled CS Form No. 6 as an HTML attachment.
func (h *Handler) DownloadLeaveForm(c *gin.Context) {
	requesterID := c.GetString("employee_id")
	canReadAll := c.GetString("role") == "hr_admin"

	doc, err := h.service.RenderLeaveForm(c.Request.Context(), c.Param("id"), requesterID, canReadAll)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("document request failed",
			zap.String("application_id", c.Param("id")),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
