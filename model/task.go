package model

import "time"

type TaskStatus string
type Priority string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"

	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

type Task struct {
	TaskID         string     `bson:"_id,omitempty" json:"id"`
	UserID         string     `bson:"user_id" json:"user_id"`
	Title          string     `bson:"title" json:"title" binding:"required"`
	Description    string     `bson:"description,omitempty" json:"description,omitempty"`
	Status         TaskStatus `bson:"status" json:"status"`
	Priority       Priority   `bson:"priority,omitempty" json:"priority,omitempty"`
	Category       string     `bson:"category,omitempty" json:"category,omitempty"`
	DueDate        *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	RecurrenceRule string     `bson:"recurrence_rule,omitempty" json:"recurrence_rule,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

// IsCompleted reports whether the task has been marked done. Completed tasks
// are never treated as overdue regardless of their due date.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsRecurring reports whether the task carries a recurrence rule. A rule
// without a due date has no anchor and produces no calendar occurrences.
func (t *Task) IsRecurring() bool {
	return t.RecurrenceRule != ""
}
