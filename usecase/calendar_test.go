package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"main/model"
)

type fakeTasksRepo struct {
	tasks []*model.Task
	err   error
}

func (f *fakeTasksRepo) GetCalendarCandidates(ctx context.Context, userID string, start, end time.Time) ([]*model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

type fakeJournalRepo struct {
	entries []*model.JournalEntry
	err     error
}

func (f *fakeJournalRepo) GetEntriesInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.JournalEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func newTestCalendarService(tasks []*model.Task, entries []*model.JournalEntry) *CalendarService {
	return NewCalendarService(
		&fakeTasksRepo{tasks: tasks},
		&fakeJournalRepo{entries: entries},
	)
}

func TestGetEventsSingleTask(t *testing.T) {
	// Non-recurring in-progress task appears once with a 30-minute span
	due := time.Date(2025, 7, 26, 0, 0, 0, 0, time.UTC)
	svc := newTestCalendarService([]*model.Task{
		{TaskID: "t1", UserID: "u1", Title: "Ship release", Status: model.StatusInProgress, DueDate: &due},
	}, nil)

	events, err := svc.GetEvents(context.Background(), "u1",
		time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	event := events[0]
	if event.ID != "t1" {
		t.Errorf("Expected bare task id, got %q", event.ID)
	}
	if !event.Start.Equal(due) {
		t.Errorf("Expected start %v, got %v", due, event.Start)
	}
	if !event.End.Equal(due.Add(30 * time.Minute)) {
		t.Errorf("Expected end %v, got %v", due.Add(30*time.Minute), event.End)
	}
	if event.Type != model.EventTypeTask || event.Task == nil || event.Journal != nil {
		t.Error("Expected a task-typed event with task detail only")
	}
}

func TestGetEventsRecurringTask(t *testing.T) {
	anchor := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestCalendarService([]*model.Task{
		{TaskID: "t1", UserID: "u1", Title: "Standup", Status: model.StatusTodo,
			DueDate: &anchor, RecurrenceRule: "FREQ=DAILY;INTERVAL=1"},
	}, nil)

	events, err := svc.GetEvents(context.Background(), "u1",
		time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 7, 23, 59, 59, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("Expected 3 occurrence events, got %d", len(events))
	}

	ids := make(map[string]bool)
	for i, event := range events {
		if ids[event.ID] {
			t.Errorf("Duplicate event id %q", event.ID)
		}
		ids[event.ID] = true

		expected := time.Date(2025, 7, 5+i, 9, 0, 0, 0, time.UTC)
		if !event.Start.Equal(expected) {
			t.Errorf("Event %d: expected start %v, got %v", i, expected, event.Start)
		}
		if event.Task == nil || !event.Task.Recurring {
			t.Errorf("Event %d: expected recurring task detail", i)
		}
	}
}

func TestGetEventsBoundaryInclusive(t *testing.T) {
	start := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)

	atStart := start
	atEnd := end
	before := start.Add(-time.Second)
	after := end.Add(time.Second)

	svc := newTestCalendarService([]*model.Task{
		{TaskID: "at-start", UserID: "u1", Title: "a", Status: model.StatusTodo, DueDate: &atStart},
		{TaskID: "at-end", UserID: "u1", Title: "b", Status: model.StatusTodo, DueDate: &atEnd},
		{TaskID: "before", UserID: "u1", Title: "c", Status: model.StatusTodo, DueDate: &before},
		{TaskID: "after", UserID: "u1", Title: "d", Status: model.StatusTodo, DueDate: &after},
	}, nil)

	events, err := svc.GetEvents(context.Background(), "u1", start, end)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events (both boundaries inclusive), got %d", len(events))
	}
	if events[0].ID != "at-start" || events[1].ID != "at-end" {
		t.Errorf("Unexpected events: %q, %q", events[0].ID, events[1].ID)
	}
}

func TestGetEventsMergesAndSortsJournal(t *testing.T) {
	// Task and journal entry on the same day sort by start instant
	due := time.Date(2025, 7, 24, 14, 0, 0, 0, time.UTC)
	entryDate := time.Date(2025, 7, 24, 9, 0, 0, 0, time.UTC)

	svc := newTestCalendarService(
		[]*model.Task{
			{TaskID: "t1", UserID: "u1", Title: "Afternoon task", Status: model.StatusTodo, DueDate: &due},
		},
		[]*model.JournalEntry{
			{EntryID: "j1", UserID: "u1", Title: "Morning pages", Content: "...", EntryDate: entryDate},
		},
	)

	events, err := svc.GetEvents(context.Background(), "u1",
		time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 24, 23, 59, 59, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].ID != "j1" || events[1].ID != "t1" {
		t.Errorf("Expected journal entry first, got %q then %q", events[0].ID, events[1].ID)
	}
	if events[0].Type != model.EventTypeJournal || events[0].Journal == nil {
		t.Error("Expected journal-typed event with journal detail")
	}
	if !events[0].Start.Equal(events[0].End) {
		t.Error("Journal events should be instantaneous (end == start)")
	}
}

func TestGetEventsInvalidRange(t *testing.T) {
	svc := newTestCalendarService(nil, nil)

	_, err := svc.GetEvents(context.Background(), "u1",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("Expected ErrInvalidRange, got %v", err)
	}
}

func TestGetEventsMalformedRuleFallsBack(t *testing.T) {
	// Broken rule inside the window: task degrades to a single event
	due := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestCalendarService([]*model.Task{
		{TaskID: "t1", UserID: "u1", Title: "Broken rule", Status: model.StatusTodo,
			DueDate: &due, RecurrenceRule: "FREQ=NONSENSE"},
	}, nil)

	events, err := svc.GetEvents(context.Background(), "u1",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Expected per-task recovery, request failed: %v", err)
	}

	if len(events) != 1 || events[0].ID != "t1" {
		t.Fatalf("Expected single fallback event with bare id, got %v", events)
	}
}

func TestGetEventsMalformedRuleOutOfWindow(t *testing.T) {
	// Broken rule with a due date outside the window: task omitted entirely
	due := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestCalendarService([]*model.Task{
		{TaskID: "t1", UserID: "u1", Title: "Broken rule", Status: model.StatusTodo,
			DueDate: &due, RecurrenceRule: "FREQ=NONSENSE"},
	}, nil)

	events, err := svc.GetEvents(context.Background(), "u1",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("Expected no events, got %d", len(events))
	}
}

func TestGetEventsRuleWithoutDueDate(t *testing.T) {
	// A recurrence rule with no anchor produces nothing
	svc := newTestCalendarService([]*model.Task{
		{TaskID: "t1", UserID: "u1", Title: "No anchor", Status: model.StatusTodo,
			RecurrenceRule: "FREQ=DAILY"},
	}, nil)

	events, err := svc.GetEvents(context.Background(), "u1",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("Expected no events, got %d", len(events))
	}
}

func TestGetEventsStableAcrossCalls(t *testing.T) {
	anchor := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	due := time.Date(2025, 7, 6, 9, 0, 0, 0, time.UTC)
	entryDate := time.Date(2025, 7, 6, 9, 0, 0, 0, time.UTC)

	svc := newTestCalendarService(
		[]*model.Task{
			{TaskID: "recurring", UserID: "u1", Title: "r", Status: model.StatusTodo,
				DueDate: &anchor, RecurrenceRule: "FREQ=DAILY"},
			{TaskID: "single", UserID: "u1", Title: "s", Status: model.StatusTodo, DueDate: &due},
		},
		[]*model.JournalEntry{
			{EntryID: "entry", UserID: "u1", Title: "e", Content: "...", EntryDate: entryDate},
		},
	)

	start := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 7, 23, 59, 59, 0, time.UTC)

	first, err := svc.GetEvents(context.Background(), "u1", start, end)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.GetEvents(context.Background(), "u1", start, end)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Event counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Event %d order differs: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

func TestGetEventsStoreFailure(t *testing.T) {
	svc := NewCalendarService(
		&fakeTasksRepo{err: errors.New("connection reset")},
		&fakeJournalRepo{},
	)

	_, err := svc.GetEvents(context.Background(), "u1",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("Expected store failure to surface")
	}
}
