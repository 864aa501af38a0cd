package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "pausepad/internal/errors"
	"pausepad/internal/model"
	"pausepad/internal/service"
)

type TimerHandler struct {
	timerService *service.TimerService
}

type setModeRequest struct {
	Mode model.TimerMode `json:"mode" binding:"required"`
}

type setTaskRequest struct {
	TaskID string `json:"taskId"`
}

func NewTimerHandler(timerService *service.TimerService) *TimerHandler {
	return &TimerHandler{timerService: timerService}
}

func (h *TimerHandler) Get(c *gin.Context) {
	h.control(c, h.timerService.Get)
}

func (h *TimerHandler) Start(c *gin.Context) {
	h.control(c, h.timerService.Start)
}

func (h *TimerHandler) Pause(c *gin.Context) {
	h.control(c, h.timerService.Pause)
}

func (h *TimerHandler) Resume(c *gin.Context) {
	h.control(c, h.timerService.Resume)
}

func (h *TimerHandler) Stop(c *gin.Context) {
	h.control(c, h.timerService.Stop)
}

func (h *TimerHandler) Skip(c *gin.Context) {
	h.control(c, h.timerService.Skip)
}

func (h *TimerHandler) Reset(c *gin.Context) {
	h.control(c, h.timerService.Reset)
}

func (h *TimerHandler) control(c *gin.Context, op func(context.Context, string) (*service.TimerView, *apperrors.APIError)) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	view, apiErr := op(c.Request.Context(), userID)
	ok(c, view, apiErr)
}

func (h *TimerHandler) SetMode(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	var req setModeRequest
	if !bindJSON(c, &req) {
		return
	}

	view, apiErr := h.timerService.SetMode(c.Request.Context(), userID, req.Mode)
	ok(c, view, apiErr)
}

func (h *TimerHandler) UpdateConfig(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	var patch model.TimerConfigPatch
	if !bindJSON(c, &patch) {
		return
	}

	view, apiErr := h.timerService.UpdateConfig(c.Request.Context(), userID, patch)
	ok(c, view, apiErr)
}

func (h *TimerHandler) SetTask(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	var req setTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	view, apiErr := h.timerService.SetTask(c.Request.Context(), userID, req.TaskID)
	ok(c, view, apiErr)
}

func (h *TimerHandler) Sessions(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}

	limit := service.DefaultHistoryLimit
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			writeError(c, apperrors.BadRequest("invalid_limit", "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	sessions, apiErr := h.timerService.History(c.Request.Context(), userID, limit)
	ok(c, gin.H{"sessions": sessions}, apiErr)
}
