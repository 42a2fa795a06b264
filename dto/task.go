package dto

import (
	"time"

	"main/model"
)

type TaskResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Status         model.TaskStatus `json:"status"`
	Priority       model.Priority   `json:"priority,omitempty"`
	Category       string           `json:"category,omitempty"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
	RecurrenceRule string           `json:"recurrence_rule,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	TimeUntilDue   string           `json:"time_until_due,omitempty"` // Computed field
}

// Convert model.Task to TaskResponse
func ToTaskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:             task.TaskID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		Category:       task.Category,
		DueDate:        task.DueDate,
		RecurrenceRule: task.RecurrenceRule,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	if task.DueDate != nil && !task.IsCompleted() {
		if task.DueDate.Before(time.Now()) {
			response.TimeUntilDue = "Overdue"
		} else {
			response.TimeUntilDue = time.Until(*task.DueDate).Round(time.Hour).String()
		}
	}

	return response
}

// Convert slice of model.Task to slice of TaskResponse
func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}
