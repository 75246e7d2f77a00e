package handlers

import (
	"net/http"

	"facility-cleaning-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkOrderHandler handles HTTP requests for work order operations
type WorkOrderHandler struct {
	workOrderService *service.WorkOrderService
	taskService      *service.TaskService
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(workOrderService *service.WorkOrderService, taskService *service.TaskService) *WorkOrderHandler {
	return &WorkOrderHandler{
		workOrderService: workOrderService,
		taskService:      taskService,
	}
}

// CreateWorkOrder handles POST /work-orders
// @Summary Create a work order
// @Description Create a fully configured work order with schedule, roster and generated task set
// @Tags work-orders
// @Accept json
// @Produce json
// @Param request body service.CreateWorkOrderRequest true "Work order configuration"
// @Success 201 {object} service.WorkOrderResponse "Work order created"
// @Failure 400 {object} ErrorResponse "Invalid request or recurrence configuration"
// @Failure 409 {object} ErrorResponse "Work order name already taken"
// @Failure 422 {object} ErrorResponse "Roster incomplete"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /work-orders [post]
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var req service.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.workOrderService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetWorkOrder handles GET /work-orders/:id
// @Summary Get a work order
// @Tags work-orders
// @Produce json
// @Param id path string true "Work order ID"
// @Success 200 {object} service.WorkOrderResponse "Work order"
// @Failure 404 {object} ErrorResponse "Work order not found"
// @Router /work-orders/{id} [get]
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.workOrderService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateSchedule handles PATCH /work-orders/:id/schedule
// @Summary Update a work order schedule
// @Description Apply a partial schedule edit; with regenerate set, end-date extensions and valid-period changes propagate to the task set
// @Tags work-orders
// @Accept json
// @Produce json
// @Param id path string true "Work order ID"
// @Param request body service.UpdateScheduleRequest true "Schedule fields to update"
// @Success 204 "Schedule updated"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Work order or schedule not found"
// @Failure 422 {object} ErrorResponse "Configuration incomplete for regeneration"
// @Router /work-orders/{id}/schedule [patch]
func (h *WorkOrderHandler) UpdateSchedule(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.workOrderService.UpdateSchedule(id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AssignStaff handles PUT /work-orders/:id/staff
// @Summary Replace the staff roster of a work order
// @Description Replace the team/cleaner and inspector sets; completing the roster triggers task generation when the rest of the configuration is in place
// @Tags work-orders
// @Accept json
// @Produce json
// @Param id path string true "Work order ID"
// @Param request body service.AssignStaffRequest true "Roster selection"
// @Success 204 "Roster replaced"
// @Failure 404 {object} ErrorResponse "Work order, team or member not found"
// @Router /work-orders/{id}/staff [put]
func (h *WorkOrderHandler) AssignStaff(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req service.AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.workOrderService.AssignStaff(id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// activeRequest carries the target state of an activation toggle
type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive handles PUT /work-orders/:id/active
// @Summary Activate or deactivate a work order
// @Description Propagates the active flag to the schedule, roster and every task of the work order
// @Tags work-orders
// @Accept json
// @Produce json
// @Param id path string true "Work order ID"
// @Param request body activeRequest true "Target state"
// @Success 204 "State updated"
// @Failure 404 {object} ErrorResponse "Work order not found"
// @Router /work-orders/{id}/active [put]
func (h *WorkOrderHandler) SetActive(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.workOrderService.SetActive(id, *req.Active); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// overrideRequest carries the target state of the override-permission toggle
type overrideRequest struct {
	Allowed *bool `json:"allowed" binding:"required"`
}

// SetOverridePermission handles PUT /work-orders/:id/override
// @Summary Allow or forbid cleaning outside the valid window
// @Tags work-orders
// @Accept json
// @Produce json
// @Param id path string true "Work order ID"
// @Param request body overrideRequest true "Target state"
// @Success 204 "State updated"
// @Failure 404 {object} ErrorResponse "Work order not found"
// @Router /work-orders/{id}/override [put]
func (h *WorkOrderHandler) SetOverridePermission(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.workOrderService.SetOverridePermission(id, *req.Allowed); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListTasks handles GET /work-orders/:id/tasks
// @Summary List the tasks of a work order
// @Description Get the materialized task set ordered by occurrence, each with its live status
// @Tags work-orders
// @Produce json
// @Param id path string true "Work order ID"
// @Success 200 {array} service.TaskResponse "Tasks"
// @Failure 404 {object} ErrorResponse "Work order not found"
// @Router /work-orders/{id}/tasks [get]
func (h *WorkOrderHandler) ListTasks(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByWorkOrder(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Reset handles DELETE /work-orders/reset
// @Summary Tear down work orders
// @Description Delete work orders with their schedules, rosters, tasks, evidence and notifications, releasing the covered asset task types. An empty body resets everything.
// @Tags work-orders
// @Accept json
// @Produce json
// @Param request body service.ResetScope false "Scope of the reset"
// @Success 200 {object} service.ResetResult "Reset result"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /work-orders/reset [delete]
func (h *WorkOrderHandler) Reset(c *gin.Context) {
	var scope service.ResetScope
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&scope); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
	}

	result, err := h.workOrderService.Reset(&scope)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseUUIDParam parses a uuid path parameter, answering 400 itself on failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return uuid.Nil, false
	}
	return id, true
}
