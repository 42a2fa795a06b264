package usecase

import (
	"errors"
	"strings"
	"time"

	"main/model"
	"main/utils"

	"github.com/teambition/rrule-go"
)

// maxOccurrencesPerTask caps expansion so a pathological rule (or a very old
// anchor) cannot blow up a single aggregation request.
const maxOccurrencesPerTask = 1000

var errNoAnchor = errors.New("recurring task has no due date to anchor the rule")

// ExpandTask materializes the occurrence instants of a recurring task inside
// the closed window [start, end]. The rule is anchored at the task's due date
// in UTC, truncated to whole seconds. A task whose rule fails to parse (or
// that has no due date) returns an error; the aggregator falls back to the
// non-recurring path.
func ExpandTask(task *model.Task, start, end time.Time) ([]time.Time, error) {
	if task.DueDate == nil {
		return nil, errNoAnchor
	}

	anchor := task.DueDate.UTC().Truncate(time.Second)

	r, err := rrule.StrToRRule(task.RecurrenceRule)
	if err != nil {
		utils.RecurrenceParseFailures.Inc()
		utils.TrackError("recurrence", "parse_failed")
		return nil, err
	}
	r.DTStart(anchor)

	occurrences := r.Between(start.UTC(), end.UTC(), true)
	if len(occurrences) > maxOccurrencesPerTask {
		occurrences = occurrences[:maxOccurrencesPerTask]
	}
	return occurrences, nil
}

var occurrenceIDSanitizer = strings.NewReplacer(":", "-", ".", "-")

// OccurrenceEventID derives a unique event id for one occurrence of a
// recurring task: the task id plus the occurrence's RFC3339 timestamp with
// ":" and "." replaced, so the id stays URL- and filename-safe.
func OccurrenceEventID(taskID string, occurrence time.Time) string {
	return taskID + "-" + occurrenceIDSanitizer.Replace(occurrence.UTC().Format(time.RFC3339))
}
