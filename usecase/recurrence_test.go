package usecase

import (
	"strings"
	"testing"
	"time"

	"main/model"
)

func taskWithRule(rule string, due time.Time) *model.Task {
	return &model.Task{
		TaskID:         "task-1",
		UserID:         "user-1",
		Title:          "Recurring task",
		Status:         model.StatusTodo,
		DueDate:        &due,
		RecurrenceRule: rule,
	}
}

func TestExpandTaskDailyRule(t *testing.T) {
	// Daily rule anchored at 09:00Z, three-day window
	anchor := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	task := taskWithRule("FREQ=DAILY;INTERVAL=1", anchor)

	start := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 7, 23, 59, 59, 0, time.UTC)

	occurrences, err := ExpandTask(task, start, end)
	if err != nil {
		t.Fatalf("ExpandTask failed: %v", err)
	}

	if len(occurrences) != 3 {
		t.Fatalf("Expected 3 occurrences, got %d: %v", len(occurrences), occurrences)
	}

	for i, expected := range []time.Time{
		time.Date(2025, 7, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 7, 9, 0, 0, 0, time.UTC),
	} {
		if !occurrences[i].Equal(expected) {
			t.Errorf("Occurrence %d: expected %v, got %v", i, expected, occurrences[i])
		}
	}
}

func TestExpandTaskOccurrencesStayInWindow(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	task := taskWithRule("FREQ=WEEKLY;INTERVAL=2", anchor)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)

	occurrences, err := ExpandTask(task, start, end)
	if err != nil {
		t.Fatalf("ExpandTask failed: %v", err)
	}
	if len(occurrences) == 0 {
		t.Fatal("Expected at least one occurrence")
	}

	for _, occ := range occurrences {
		if occ.Before(start) || occ.After(end) {
			t.Errorf("Occurrence %v outside window [%v, %v]", occ, start, end)
		}
	}
}

func TestExpandTaskWiderWindowIsSuperset(t *testing.T) {
	anchor := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	task := taskWithRule("FREQ=DAILY;INTERVAL=3", anchor)

	narrowStart := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	narrowEnd := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	wideStart := narrowStart.Add(-7 * 24 * time.Hour)
	wideEnd := narrowEnd.Add(7 * 24 * time.Hour)

	narrow, err := ExpandTask(task, narrowStart, narrowEnd)
	if err != nil {
		t.Fatalf("narrow expansion failed: %v", err)
	}
	wide, err := ExpandTask(task, wideStart, wideEnd)
	if err != nil {
		t.Fatalf("wide expansion failed: %v", err)
	}

	if len(wide) < len(narrow) {
		t.Fatalf("Wider window returned fewer occurrences: %d < %d", len(wide), len(narrow))
	}

	wideSet := make(map[time.Time]bool, len(wide))
	for _, occ := range wide {
		wideSet[occ] = true
	}
	for _, occ := range narrow {
		if !wideSet[occ] {
			t.Errorf("Occurrence %v in narrow window missing from wider window", occ)
		}
	}
}

func TestExpandTaskAnchorTruncatedToSeconds(t *testing.T) {
	// Fractional seconds on the anchor must not leak into occurrences
	anchor := time.Date(2025, 7, 1, 9, 0, 0, 123456789, time.UTC)
	task := taskWithRule("FREQ=DAILY", anchor)

	start := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 2, 23, 59, 59, 0, time.UTC)

	occurrences, err := ExpandTask(task, start, end)
	if err != nil {
		t.Fatalf("ExpandTask failed: %v", err)
	}
	if len(occurrences) != 1 {
		t.Fatalf("Expected 1 occurrence, got %d", len(occurrences))
	}
	if occurrences[0].Nanosecond() != 0 {
		t.Errorf("Expected whole-second occurrence, got %v", occurrences[0])
	}
}

func TestExpandTaskMalformedRule(t *testing.T) {
	anchor := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	task := taskWithRule("FREQ=SOMETIMES", anchor)

	_, err := ExpandTask(task,
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("Expected error for malformed rule")
	}
}

func TestExpandTaskNoDueDate(t *testing.T) {
	task := &model.Task{
		TaskID:         "task-2",
		RecurrenceRule: "FREQ=DAILY",
	}

	_, err := ExpandTask(task,
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("Expected error for recurring task without due date")
	}
}

func TestOccurrenceEventID(t *testing.T) {
	occ := time.Date(2025, 7, 5, 9, 30, 0, 0, time.UTC)
	id := OccurrenceEventID("abc-123", occ)

	if strings.ContainsAny(id, ":.") {
		t.Errorf("Occurrence ID contains unsanitized characters: %q", id)
	}
	if !strings.HasPrefix(id, "abc-123-") {
		t.Errorf("Occurrence ID missing task id prefix: %q", id)
	}

	// Distinct occurrences must produce distinct ids
	other := OccurrenceEventID("abc-123", occ.Add(24*time.Hour))
	if id == other {
		t.Errorf("Occurrence IDs collide: %q", id)
	}
}
