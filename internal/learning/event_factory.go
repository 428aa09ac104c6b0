package learning

import (
	"fmt"
	"slices"
	"strings"

	"lpg-management/internal/dates"
)

type EventFactory struct{}

func (f EventFactory) Create(data map[string]any) (*Event, error) {
	rawRanges, err := getList(data, "dateRanges")
	if err != nil {
		return nil, constructionError("event", "", data, err)
	}

	ranges := make([]DateRange, 0, len(rawRanges))
	for _, rr := range rawRanges {
		dr, err := DateRangeFactory{}.Create(rr)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, dr)
	}
	slices.SortStableFunc(ranges, SortDateRanges)

	rawVenue, err := getMap(data, "venue")
	if err != nil {
		return nil, constructionError("event", "", data, err)
	}
	venue, err := VenueFactory{}.Create(rawVenue)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:                 getString(data, "id"),
		DateRanges:         ranges,
		Venue:              venue,
		Status:             ParseEventStatus(getString(data, "status")),
		CancellationReason: ParseCancellationReason(getString(data, "cancellationReason")),
	}, nil
}

type DateRangeFactory struct{}

// Create reads "date" or, from the add/edit form, separate "day", "month" and "year"
// fragments. Fragments that are not a real date are kept as typed so validation can report them.
func (f DateRangeFactory) Create(data map[string]any) (DateRange, error) {
	date := getString(data, "date")
	if date == "" {
		year, month, day := getString(data, "year"), getString(data, "month"), getString(data, "day")
		if year != "" || month != "" || day != "" {
			if d, ok := dates.DateFromParts(year, month, day); ok {
				date = d
			} else {
				date = fmt.Sprintf("%s-%s-%s", year, month, day)
			}
		}
	}

	return DateRange{
		Date:      date,
		StartTime: clockTime(getString(data, "startTime")),
		EndTime:   clockTime(getString(data, "endTime")),
	}, nil
}

// clockTime trims the seconds the catalogue returns ("09:30:00") down to HH:mm.
func clockTime(s string) string {
	if len(s) == 8 && strings.Count(s, ":") == 2 {
		return s[:5]
	}
	return s
}

type VenueFactory struct{}

// Create tolerates nil input and returns an empty venue.
func (f VenueFactory) Create(data map[string]any) (Venue, error) {
	if data == nil {
		return Venue{}, nil
	}
	capacity, _ := getInt(data, "capacity")
	minCapacity, _ := getInt(data, "minCapacity")

	v := Venue{
		Location:    getString(data, "location"),
		Address:     getString(data, "address"),
		Capacity:    capacity,
		MinCapacity: minCapacity,
	}
	if n, ok := getInt(data, "availability"); ok {
		v.Availability = &n
	}
	return v, nil
}
