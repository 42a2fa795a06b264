package usecase

import (
	"sort"
	"strings"
	"time"

	"main/model"
)

// completedRetention is how long a completed task stays visible in the
// "completed recently" bucket before dropping out of classification entirely.
const completedRetention = 30 * 24 * time.Hour

// dueSoonWindow is the horizon for the "due this week" bucket.
const dueSoonWindow = 7 * 24 * time.Hour

// TaskBuckets partitions a task list into mutually exclusive views. Every
// task lands in exactly one bucket, except completed tasks older than the
// retention window, which are dropped.
type TaskBuckets struct {
	Overdue           []*model.Task `json:"overdue"`
	DueToday          []*model.Task `json:"due_today"`
	DueThisWeek       []*model.Task `json:"due_this_week"`
	DueLater          []*model.Task `json:"due_later"`
	NoDueDate         []*model.Task `json:"no_due_date"`
	CompletedRecently []*model.Task `json:"completed_recently"`
}

// ClassifyTasks buckets tasks relative to the supplied instant. Callers pass
// the wall clock; tests pass fixed instants. All day arithmetic is UTC — the
// display timezone is a rendering concern, not a classification one.
//
// Completed status always wins over date-derived buckets: a completed task is
// never overdue, no matter how far past its due date sits.
func ClassifyTasks(now time.Time, tasks []*model.Task) *TaskBuckets {
	buckets := &TaskBuckets{
		Overdue:           make([]*model.Task, 0),
		DueToday:          make([]*model.Task, 0),
		DueThisWeek:       make([]*model.Task, 0),
		DueLater:          make([]*model.Task, 0),
		NoDueDate:         make([]*model.Task, 0),
		CompletedRecently: make([]*model.Task, 0),
	}

	now = now.UTC()
	today := dayOf(now)
	weekEnd := today.Add(dueSoonWindow)

	for _, task := range tasks {
		switch {
		case task.IsCompleted():
			if now.Sub(task.CreatedAt.UTC()) <= completedRetention {
				buckets.CompletedRecently = append(buckets.CompletedRecently, task)
			}
			// Older completed tasks fall out of every view.
		case task.DueDate == nil:
			buckets.NoDueDate = append(buckets.NoDueDate, task)
		default:
			dueDay := dayOf(task.DueDate.UTC())
			switch {
			case dueDay.Before(today):
				buckets.Overdue = append(buckets.Overdue, task)
			case dueDay.Equal(today):
				// A due date exactly at midnight belongs to that day.
				buckets.DueToday = append(buckets.DueToday, task)
			case !dueDay.After(weekEnd):
				buckets.DueThisWeek = append(buckets.DueThisWeek, task)
			default:
				buckets.DueLater = append(buckets.DueLater, task)
			}
		}
	}

	sortByPriority(buckets.Overdue)
	sortByPriority(buckets.DueToday)
	sortByPriority(buckets.DueThisWeek)
	sortByPriority(buckets.DueLater)
	sortByPriority(buckets.NoDueDate)
	sortByPriority(buckets.CompletedRecently)

	return buckets
}

// dayOf truncates an instant to the start of its UTC calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sortByPriority orders a bucket by priority weight descending, stable on ties.
func sortByPriority(tasks []*model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return getPriorityWeight(tasks[i].Priority) > getPriorityWeight(tasks[j].Priority)
	})
}

// getPriorityWeight maps priorities to comparable weights. Comparison is
// case-insensitive because stored values have drifted between casings;
// anything unrecognized weighs the same as medium.
func getPriorityWeight(p model.Priority) int {
	switch strings.ToUpper(string(p)) {
	case "URGENT":
		return 4
	case "HIGH":
		return 3
	case "LOW":
		return 1
	default: // MEDIUM, empty, or unrecognized
		return 2
	}
}
