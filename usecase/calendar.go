package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"main/model"
	"main/utils"
)

// ErrInvalidRange is returned when the requested window end precedes its start.
var ErrInvalidRange = errors.New("invalid date range: start must not be after end")

// TaskCandidateFetcher is the slice of the tasks repository the aggregator
// needs; tests substitute fakes.
type TaskCandidateFetcher interface {
	GetCalendarCandidates(ctx context.Context, userID string, start, end time.Time) ([]*model.Task, error)
}

// JournalRangeFetcher is the slice of the journal repository the aggregator needs.
type JournalRangeFetcher interface {
	GetEntriesInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.JournalEntry, error)
}

type CalendarService struct {
	TasksRepo   TaskCandidateFetcher
	JournalRepo JournalRangeFetcher
}

func NewCalendarService(tasks TaskCandidateFetcher, journal JournalRangeFetcher) *CalendarService {
	return &CalendarService{TasksRepo: tasks, JournalRepo: journal}
}

// GetEvents merges task occurrences and journal entries into one time-ordered
// event list for the window [start, end]. Read-only: events are derived per
// request and never stored. The two fetches are independent reads and run
// concurrently; results are re-sorted after the merge.
func (svc *CalendarService) GetEvents(ctx context.Context, userID string, start, end time.Time) ([]model.CalendarEvent, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	start = start.UTC()
	end = end.UTC()

	var (
		wg         sync.WaitGroup
		tasks      []*model.Task
		entries    []*model.JournalEntry
		taskErr    error
		journalErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tasks, taskErr = svc.TasksRepo.GetCalendarCandidates(ctx, userID, start, end)
	}()
	go func() {
		defer wg.Done()
		entries, journalErr = svc.JournalRepo.GetEntriesInRange(ctx, userID, start, end)
	}()
	wg.Wait()

	if taskErr != nil {
		return nil, taskErr
	}
	if journalErr != nil {
		return nil, journalErr
	}

	events := make([]model.CalendarEvent, 0, len(tasks)+len(entries))
	for _, task := range tasks {
		events = append(events, svc.taskEvents(task, start, end)...)
	}
	for _, entry := range entries {
		events = append(events, journalEvent(entry))
	}

	// Ascending by start; the stable sort keeps insertion order on ties.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	utils.CalendarEventsReturned.Observe(float64(len(events)))
	return events, nil
}

// taskEvents converts one candidate task into zero or more calendar events.
// Recurring tasks expand into one event per occurrence; a malformed rule is
// logged and the task degrades to its base due date. A task with no due date
// contributes nothing (a rule without an anchor cannot recur).
func (svc *CalendarService) taskEvents(task *model.Task, start, end time.Time) []model.CalendarEvent {
	if task.DueDate == nil {
		return nil
	}

	if task.IsRecurring() {
		occurrences, err := ExpandTask(task, start, end)
		if err == nil {
			events := make([]model.CalendarEvent, 0, len(occurrences))
			for _, occ := range occurrences {
				events = append(events, newTaskEvent(task, OccurrenceEventID(task.TaskID, occ), occ))
			}
			return events
		}
		log.Printf("calendar: skipping recurrence expansion task_id=%s rule=%q: %v",
			task.TaskID, task.RecurrenceRule, err)
	}

	due := task.DueDate.UTC()
	if due.Before(start) || due.After(end) {
		return nil
	}
	return []model.CalendarEvent{newTaskEvent(task, task.TaskID, due)}
}

func newTaskEvent(task *model.Task, eventID string, start time.Time) model.CalendarEvent {
	return model.CalendarEvent{
		ID:     eventID,
		UserID: task.UserID,
		Title:  task.Title,
		Start:  start,
		End:    start.Add(model.TaskEventDuration),
		Type:   model.EventTypeTask,
		Task: &model.TaskEventDetail{
			TaskID:    task.TaskID,
			Status:    task.Status,
			Priority:  task.Priority,
			Category:  task.Category,
			Completed: task.IsCompleted(),
			Recurring: task.IsRecurring(),
		},
	}
}

func journalEvent(entry *model.JournalEntry) model.CalendarEvent {
	at := entry.EntryDate.UTC()
	return model.CalendarEvent{
		ID:     entry.EntryID,
		UserID: entry.UserID,
		Title:  entry.Title,
		Start:  at,
		End:    at,
		Type:   model.EventTypeJournal,
		Journal: &model.JournalEventDetail{
			EntryID: entry.EntryID,
			Content: entry.Content,
			Mood:    entry.Mood,
		},
	}
}
