package auditlog

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("auditlog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auditlog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	action := c.Query("action")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	logs, total, err := h.service.GetAll(ctx, action, page, pageSize)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("list audit logs failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, logs, &meta)
}
