package usecase

import (
	"testing"
	"time"

	"main/model"
)

// Fixed classification instant: 2025-07-24 15:00 UTC
var classifierNow = time.Date(2025, 7, 24, 15, 0, 0, 0, time.UTC)

func dueTask(id string, due time.Time, status model.TaskStatus) *model.Task {
	return &model.Task{
		TaskID:    id,
		UserID:    "user-1",
		Title:     id,
		Status:    status,
		DueDate:   &due,
		CreatedAt: classifierNow.Add(-24 * time.Hour),
	}
}

func TestClassifyTasksBuckets(t *testing.T) {
	tasks := []*model.Task{
		dueTask("overdue", classifierNow.Add(-48*time.Hour), model.StatusTodo),
		dueTask("due-today", time.Date(2025, 7, 24, 23, 0, 0, 0, time.UTC), model.StatusInProgress),
		dueTask("due-this-week", classifierNow.Add(3*24*time.Hour), model.StatusTodo),
		dueTask("due-later", classifierNow.Add(20*24*time.Hour), model.StatusTodo),
		{TaskID: "no-due-date", Status: model.StatusTodo, CreatedAt: classifierNow},
		dueTask("completed", classifierNow.Add(-48*time.Hour), model.StatusCompleted),
	}

	buckets := ClassifyTasks(classifierNow, tasks)

	expect := map[string][]*model.Task{
		"overdue":       buckets.Overdue,
		"due-today":     buckets.DueToday,
		"due-this-week": buckets.DueThisWeek,
		"due-later":     buckets.DueLater,
		"no-due-date":   buckets.NoDueDate,
		"completed":     buckets.CompletedRecently,
	}
	for id, bucket := range expect {
		if len(bucket) != 1 || bucket[0].TaskID != id {
			t.Errorf("Expected task %q alone in its bucket, got %d entries", id, len(bucket))
		}
	}
}

func TestClassifyTasksMutuallyExclusive(t *testing.T) {
	tasks := []*model.Task{
		dueTask("a", classifierNow.Add(-100*time.Hour), model.StatusTodo),
		dueTask("b", classifierNow, model.StatusTodo),
		dueTask("c", classifierNow.Add(4*24*time.Hour), model.StatusInProgress),
		dueTask("d", classifierNow.Add(40*24*time.Hour), model.StatusTodo),
		{TaskID: "e", Status: model.StatusTodo, CreatedAt: classifierNow},
		dueTask("f", classifierNow.Add(-300*time.Hour), model.StatusCompleted),
	}

	buckets := ClassifyTasks(classifierNow, tasks)

	seen := make(map[string]int)
	for _, bucket := range [][]*model.Task{
		buckets.Overdue, buckets.DueToday, buckets.DueThisWeek,
		buckets.DueLater, buckets.NoDueDate, buckets.CompletedRecently,
	} {
		for _, task := range bucket {
			seen[task.TaskID]++
		}
	}

	for _, task := range tasks {
		if seen[task.TaskID] != 1 {
			t.Errorf("Task %q appears in %d buckets, expected exactly 1", task.TaskID, seen[task.TaskID])
		}
	}
}

func TestClassifyCompletedNeverOverdue(t *testing.T) {
	// Long-overdue due date, but completed: must not land in overdue
	task := dueTask("done-late", classifierNow.Add(-90*24*time.Hour), model.StatusCompleted)
	task.CreatedAt = classifierNow.Add(-5 * 24 * time.Hour)

	buckets := ClassifyTasks(classifierNow, []*model.Task{task})

	if len(buckets.Overdue) != 0 {
		t.Error("Completed task classified as overdue")
	}
	if len(buckets.CompletedRecently) != 1 {
		t.Error("Completed task missing from completed_recently")
	}
}

func TestClassifyOldCompletedTaskDropped(t *testing.T) {
	// Completed, created 60 days ago: excluded from every bucket
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	task := dueTask("ancient", due, model.StatusCompleted)
	task.CreatedAt = classifierNow.Add(-60 * 24 * time.Hour)

	buckets := ClassifyTasks(classifierNow, []*model.Task{task})

	total := len(buckets.Overdue) + len(buckets.DueToday) + len(buckets.DueThisWeek) +
		len(buckets.DueLater) + len(buckets.NoDueDate) + len(buckets.CompletedRecently)
	if total != 0 {
		t.Errorf("Expected stale completed task in no bucket, found it in %d", total)
	}
}

func TestClassifyMidnightDueDate(t *testing.T) {
	// Due exactly at today's midnight: due today, not overdue
	midnight := time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC)
	task := dueTask("midnight", midnight, model.StatusTodo)

	buckets := ClassifyTasks(classifierNow, []*model.Task{task})

	if len(buckets.DueToday) != 1 {
		t.Fatalf("Expected midnight task in due_today, overdue=%d later=%d",
			len(buckets.Overdue), len(buckets.DueLater))
	}
}

func TestClassifyWeekBoundary(t *testing.T) {
	// Due exactly 7 days out is still "this week"; 8 days out is "later"
	seventh := dueTask("seventh", time.Date(2025, 7, 31, 10, 0, 0, 0, time.UTC), model.StatusTodo)
	eighth := dueTask("eighth", time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC), model.StatusTodo)

	buckets := ClassifyTasks(classifierNow, []*model.Task{seventh, eighth})

	if len(buckets.DueThisWeek) != 1 || buckets.DueThisWeek[0].TaskID != "seventh" {
		t.Error("Expected day-7 task in due_this_week")
	}
	if len(buckets.DueLater) != 1 || buckets.DueLater[0].TaskID != "eighth" {
		t.Error("Expected day-8 task in due_later")
	}
}

func TestClassifyPriorityOrdering(t *testing.T) {
	due := classifierNow.Add(2 * 24 * time.Hour)

	low := dueTask("low", due, model.StatusTodo)
	low.Priority = model.PriorityLow
	urgent := dueTask("urgent", due, model.StatusTodo)
	urgent.Priority = model.PriorityUrgent
	// Lower-case value from an older client: weighed case-insensitively
	high := dueTask("high", due, model.StatusTodo)
	high.Priority = model.Priority("high")
	unknown := dueTask("unknown", due, model.StatusTodo)
	unknown.Priority = model.Priority("whenever")

	buckets := ClassifyTasks(classifierNow, []*model.Task{low, unknown, high, urgent})

	got := make([]string, 0, 4)
	for _, task := range buckets.DueThisWeek {
		got = append(got, task.TaskID)
	}

	want := []string{"urgent", "high", "unknown", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Priority order mismatch: want %v, got %v", want, got)
		}
	}
}
