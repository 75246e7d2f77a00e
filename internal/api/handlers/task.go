package handlers

import (
	"net/http"

	"facility-cleaning-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles HTTP requests for cleaning task operations
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// GetStatus handles GET /tasks/:id/status
// @Summary Get the live status of a task
// @Description Get a task with its status derived from the deadline and completion flags at the current instant
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} service.TaskResponse "Task with status"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Router /tasks/{id}/status [get]
func (h *TaskHandler) GetStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.taskService.GetStatus(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MarkCleaned handles PUT /tasks/:id/clean
// @Summary Record a cleaning pass
// @Description Mark the task cleaned at the current instant; cleaning after the deadline requires the work order's override permission
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} service.TaskResponse "Updated task"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 422 {object} ErrorResponse "Task excluded, inactive or window elapsed"
// @Router /tasks/{id}/clean [put]
func (h *TaskHandler) MarkCleaned(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.taskService.MarkCleaned(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Approve handles PUT /tasks/:id/approve
// @Summary Approve a cleaning pass
// @Description Approve the recorded cleaning pass; requires the evidence image minimum when the work order carries an evidence level
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} service.TaskResponse "Updated task"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 422 {object} ErrorResponse "No cleaning pass or insufficient evidence"
// @Router /tasks/{id}/approve [put]
func (h *TaskHandler) Approve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.taskService.Approve(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
