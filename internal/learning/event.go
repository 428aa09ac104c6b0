package learning

import (
	"strings"

	"lpg-management/internal/dates"
)

// EventStatus is the lifecycle state of a face-to-face event.
type EventStatus string

const (
	EventStatusActive    EventStatus = "Active"
	EventStatusCancelled EventStatus = "Cancelled"
)

// CancellationReason explains why an event was cancelled.
type CancellationReason string

const (
	CancellationReasonNone        CancellationReason = ""
	CancellationReasonUnavailable CancellationReason = "The event is no longer available"
	CancellationReasonVenue       CancellationReason = "The venue is no longer available"
)

var cancellationReasons = map[string]CancellationReason{
	"unavailable": CancellationReasonUnavailable,
	"venue":       CancellationReasonVenue,
}

// ParseEventStatus matches s case-insensitively and defaults to Active.
func ParseEventStatus(s string) EventStatus {
	if strings.EqualFold(strings.TrimSpace(s), string(EventStatusCancelled)) {
		return EventStatusCancelled
	}
	return EventStatusActive
}

// ParseCancellationReason accepts either the enum key ("VENUE") or its text, case-insensitively.
// Anything else is CancellationReasonNone.
func ParseCancellationReason(s string) CancellationReason {
	s = strings.ToLower(strings.TrimSpace(s))
	if r, ok := cancellationReasons[s]; ok {
		return r
	}
	for _, r := range cancellationReasons {
		if strings.ToLower(string(r)) == s {
			return r
		}
	}
	return CancellationReasonNone
}

// Event is a scheduled occurrence of a face-to-face module.
// DateRanges is kept sorted by date.
type Event struct {
	ID                 string             `json:"id,omitempty"`
	DateRanges         []DateRange        `json:"dateRanges"`
	Venue              Venue              `json:"venue"`
	Status             EventStatus        `json:"status"`
	CancellationReason CancellationReason `json:"cancellationReason,omitempty"`
}

// DateRange is one day of an event: a YYYY-MM-DD date and HH:mm start and end times.
type DateRange struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Venue struct {
	Location     string `json:"location,omitempty"`
	Address      string `json:"address,omitempty"`
	Capacity     int    `json:"capacity,omitempty"`
	MinCapacity  int    `json:"minCapacity,omitempty"`
	Availability *int   `json:"availability,omitempty"`
}

// SortDateRanges orders date ranges ascending by date.
func SortDateRanges(a, b DateRange) int {
	return dates.CompareDates(a.Date, b.Date)
}

// FirstDate returns the date of the event's first range.
func (e *Event) FirstDate() (string, bool) {
	if e == nil || len(e.DateRanges) == 0 {
		return "", false
	}
	return e.DateRanges[0].Date, true
}

// Cancel moves the event to Cancelled with the given reason.
func (e *Event) Cancel(reason CancellationReason) {
	e.Status = EventStatusCancelled
	e.CancellationReason = reason
}
