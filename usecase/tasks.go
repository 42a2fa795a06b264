package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

type TasksService struct {
	repo *repository.TasksRepo
}

func NewTasksService(repo *repository.TasksRepo) *TasksService {
	return &TasksService{repo: repo}
}

// Get the user's tasks, most urgent first
func (svc *TasksService) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sort.SliceStable(tasks, func(i, j int) bool {
		// Incomplete tasks first
		if tasks[i].IsCompleted() != tasks[j].IsCompleted() {
			return !tasks[i].IsCompleted()
		}

		// Then overdue before everything else
		if !tasks[i].IsCompleted() && !tasks[j].IsCompleted() {
			iOverdue := tasks[i].DueDate != nil && tasks[i].DueDate.Before(now)
			jOverdue := tasks[j].DueDate != nil && tasks[j].DueDate.Before(now)
			if iOverdue != jOverdue {
				return iOverdue
			}
		}

		// Then by priority
		iw, jw := getPriorityWeight(tasks[i].Priority), getPriorityWeight(tasks[j].Priority)
		if iw != jw {
			return iw > jw
		}

		// Then by due date (if both exist)
		if tasks[i].DueDate != nil && tasks[j].DueDate != nil {
			return tasks[i].DueDate.Before(*tasks[j].DueDate)
		}

		// Finally by creation date
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// Create Task
func (svc *TasksService) CreateTask(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}
	if task.Title == "" {
		return errors.New("task title is required")
	}

	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	if err := validateStatus(task.Status); err != nil {
		return err
	}
	if err := validatePriority(task.Priority); err != nil {
		return err
	}
	if err := validateRecurrenceRule(task.RecurrenceRule); err != nil {
		return err
	}

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}
	if task.TaskID == "" {
		task.TaskID = uuid.New().String()
	}

	return svc.repo.CreateTask(ctx, task)
}

// Update a task owned by the user and return its new state
func (svc *TasksService) UpdateTask(ctx context.Context, taskID, userID string, updates *model.Task) (*model.Task, error) {
	existing, err := svc.repo.GetTaskByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if updates.Title == "" {
		updates.Title = existing.Title
	}
	if updates.Status == "" {
		updates.Status = existing.Status
	}
	if err := validateStatus(updates.Status); err != nil {
		return nil, err
	}
	if err := validatePriority(updates.Priority); err != nil {
		return nil, err
	}
	if err := validateRecurrenceRule(updates.RecurrenceRule); err != nil {
		return nil, err
	}

	if err := svc.repo.UpdateTask(ctx, taskID, userID, updates); err != nil {
		return nil, err
	}
	return svc.repo.GetTaskByID(ctx, taskID, userID)
}

// Delete a task owned by the user
func (svc *TasksService) DeleteTask(ctx context.Context, taskID, userID string) error {
	return svc.repo.DeleteTask(ctx, taskID, userID)
}

// Classify fetches the user's tasks and buckets them relative to now.
func (svc *TasksService) Classify(ctx context.Context, userID string, now time.Time) (*TaskBuckets, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ClassifyTasks(now, tasks), nil
}

func validateStatus(status model.TaskStatus) error {
	switch status {
	case model.StatusTodo, model.StatusInProgress, model.StatusCompleted:
		return nil
	default:
		return errors.New("invalid status")
	}
}

// Priorities are compared case-insensitively; stored values have historically
// drifted between casings.
func validatePriority(priority model.Priority) error {
	switch strings.ToUpper(string(priority)) {
	case "", "LOW", "MEDIUM", "HIGH", "URGENT":
		return nil
	default:
		return errors.New("invalid priority level")
	}
}

// validateRecurrenceRule rejects unparsable rules at write time. Rows written
// before this check existed are still tolerated at aggregation time.
func validateRecurrenceRule(rule string) error {
	if rule == "" {
		return nil
	}
	if _, err := rrule.StrToRRule(rule); err != nil {
		return errors.New("invalid recurrence rule: " + err.Error())
	}
	return nil
}
