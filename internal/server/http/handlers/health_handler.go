package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quickmart/internal/server/http/dto"
)

type HealthHandler struct {
	facade HealthFacade
	logger *slog.Logger
	now    func() time.Time
}

func NewHealthHandler(facade HealthFacade, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{facade: facade, logger: logger, now: time.Now}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Success: false, Message: "Database unavailable", Timestamp: h.now().UTC()})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Success: true, Message: "Quickmart API is running", Timestamp: h.now().UTC()})
}
