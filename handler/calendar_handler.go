package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"main/model"
	"main/usecase"
	"main/utils"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	service *usecase.CalendarService
}

func NewCalendarHandler(service *usecase.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// GetEvents serves the aggregated calendar feed for a window.
// GET /api/calendar/events?start=<ISO8601>&end=<ISO8601>
func (h *CalendarHandler) GetEvents(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	events, err := h.service.GetEvents(c.Request.Context(), userID.(string), start, end)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRange) {
			utils.BadRequest(c, "Invalid date format: start must not be after end")
			return
		}
		utils.InternalError(c, "Failed to load calendar events")
		return
	}

	utils.Success(c, events)
}

// ExportICS serves the same window as GetEvents rendered as an iCalendar file.
// GET /api/calendar/export?start=<ISO8601>&end=<ISO8601>
func (h *CalendarHandler) ExportICS(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	events, err := h.service.GetEvents(c.Request.Context(), userID.(string), start, end)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRange) {
			utils.BadRequest(c, "Invalid date format: start must not be after end")
			return
		}
		utils.InternalError(c, "Failed to load calendar events")
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//dayboard//calendar//EN")

	for _, event := range events {
		icsEvent := cal.AddEvent(event.ID)
		icsEvent.SetSummary(event.Title)
		icsEvent.SetStartAt(event.Start)
		icsEvent.SetEndAt(event.End)
		icsEvent.SetDtStampTime(time.Now().UTC())
		if event.Type == model.EventTypeJournal && event.Journal != nil {
			icsEvent.SetDescription(event.Journal.Content)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}

// RejectWrite answers any mutation attempt against the calendar path. The
// calendar is a read-only derived view; underlying records change through the
// tasks and journal endpoints.
func (h *CalendarHandler) RejectWrite(c *gin.Context) {
	utils.BadRequest(c, "Calendar events are derived from tasks and journal entries; use /api/tasks or /api/journal to make changes")
}

// parseWindow reads the start/end query params. Both RFC3339 instants and
// bare dates are accepted; a bare end date covers the whole day. Responds 400
// and returns ok=false on any parse failure.
func parseWindow(c *gin.Context) (start, end time.Time, ok bool) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		utils.BadRequest(c, "Missing start or end query parameter")
		return time.Time{}, time.Time{}, false
	}

	start, err := parseInstant(startStr, false)
	if err != nil {
		utils.BadRequest(c, fmt.Sprintf("Invalid date format: %q", startStr))
		return time.Time{}, time.Time{}, false
	}
	end, err = parseInstant(endStr, true)
	if err != nil {
		utils.BadRequest(c, fmt.Sprintf("Invalid date format: %q", endStr))
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func parseInstant(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		// A bare end date means "through the end of that day".
		t = t.Add(24*time.Hour - time.Second)
	}
	return t.UTC(), nil
}
