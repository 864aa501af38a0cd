package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pausepad/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

type createTaskRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	tasks, apiErr := h.taskService.List(c.Request.Context(), userID)
	ok(c, gin.H{"tasks": tasks}, apiErr)
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	var req createTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, apiErr := h.taskService.Create(c.Request.Context(), userID, req.Text)
	respond(c, http.StatusCreated, task, apiErr)
}

func (h *TaskHandler) Toggle(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	task, apiErr := h.taskService.Toggle(c.Request.Context(), userID, c.Param("id"))
	ok(c, task, apiErr)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, authed := requireUser(c)
	if !authed {
		return
	}
	if apiErr := h.taskService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
