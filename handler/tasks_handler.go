package handler

import (
	"errors"
	"strings"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TasksHandler struct {
	service *usecase.TasksService
}

func NewTasksHandler(service *usecase.TasksService) *TasksHandler {
	return &TasksHandler{service: service}
}

// CreateTask handles POST /api/tasks
func (h *TasksHandler) CreateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Title          string           `json:"title" binding:"required"`
		Description    string           `json:"description"`
		Status         model.TaskStatus `json:"status"`
		Priority       model.Priority   `json:"priority"`
		Category       string           `json:"category"`
		DueDate        *time.Time       `json:"due_date"`
		RecurrenceRule string           `json:"recurrence_rule"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task := &model.Task{
		UserID:         userID.(string),
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		Category:       req.Category,
		DueDate:        req.DueDate,
		RecurrenceRule: req.RecurrenceRule,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.service.CreateTask(c.Request.Context(), task); err != nil {
		if isTaskValidationError(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Created(c, dto.ToTaskResponse(task))
}

// GetUserTasks handles GET /api/tasks
func (h *TasksHandler) GetUserTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetUserTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponses(tasks))
}

// GetTaskBuckets handles GET /api/tasks/buckets — the bucketed task-list view
// (overdue, due today, due this week, due later, no due date, completed
// recently), classified against the server clock.
func (h *TasksHandler) GetTaskBuckets(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	buckets, err := h.service.Classify(c.Request.Context(), userID.(string), time.Now())
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, buckets)
}

// UpdateTask handles PUT /api/tasks/:id
func (h *TasksHandler) UpdateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	var updates model.Task
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updatedTask, err := h.service.UpdateTask(c.Request.Context(), taskID, userID.(string), &updates)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		if isTaskValidationError(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponse(updatedTask))
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *TasksHandler) DeleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), taskID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Task deleted successfully"})
}

func isTaskValidationError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid priority level") ||
		strings.Contains(msg, "invalid status") ||
		strings.Contains(msg, "invalid recurrence rule") ||
		strings.Contains(msg, "is required")
}
