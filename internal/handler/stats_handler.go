package handler

import (
	"github.com/gin-gonic/gin"

	"pausepad/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Today(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	stats, apiErr := h.statsService.Today(c.Request.Context(), userID)
	ok(c, stats, apiErr)
}

func (h *StatsHandler) Summary(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	stats, apiErr := h.statsService.Summary(c.Request.Context(), userID)
	ok(c, stats, apiErr)
}
