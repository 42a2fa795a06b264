package model

import "time"

type EventType string

const (
	EventTypeTask    EventType = "task"
	EventTypeJournal EventType = "journal"
)

// TaskEventDuration is the fixed display span of a task on the calendar.
const TaskEventDuration = 30 * time.Minute

// CalendarEvent is the derived, per-request view merged from tasks and journal
// entries. Events are never persisted; each one maps back to exactly one
// underlying task or journal entry. Type discriminates which detail is set.
type CalendarEvent struct {
	ID      string              `json:"id"`
	UserID  string              `json:"user_id"`
	Title   string              `json:"title"`
	Start   time.Time           `json:"start"`
	End     time.Time           `json:"end"`
	Type    EventType           `json:"type"`
	Task    *TaskEventDetail    `json:"task,omitempty"`
	Journal *JournalEventDetail `json:"journal,omitempty"`
}

type TaskEventDetail struct {
	TaskID    string     `json:"task_id"`
	Status    TaskStatus `json:"status"`
	Priority  Priority   `json:"priority,omitempty"`
	Category  string     `json:"category,omitempty"`
	Completed bool       `json:"completed"`
	Recurring bool       `json:"recurring"`
}

type JournalEventDetail struct {
	EntryID string `json:"entry_id"`
	Content string `json:"content"`
	Mood    Mood   `json:"mood,omitempty"`
}
