// Package dates holds the date and duration helpers shared by the learning model:
// ISO-8601 duration parsing, human duration strings and calendar date display.
package dates

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage format of calendar dates (zero padded, so it sorts lexically).
const DateLayout = "2006-01-02"

// TimeLayout is the storage format of wall clock times.
const TimeLayout = "15:04"

var isoDuration = regexp.MustCompile(
	`^(-)?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`,
)

// ParseDuration converts an ISO-8601 duration (days, hours, minutes, seconds) into seconds.
// Year, month and week components have no fixed length in seconds and are rejected.
// A leading "-" yields a negative count.
func ParseDuration(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "-P" || strings.HasSuffix(s, "T") {
		return 0, false
	}
	if m[2] != "" || m[3] != "" || m[4] != "" {
		return 0, false
	}

	units := []struct {
		group   string
		seconds int
	}{
		{m[5], 86400},
		{m[6], 3600},
		{m[7], 60},
		{m[8], 1},
	}

	total := 0
	for _, u := range units {
		if u.group == "" {
			continue
		}
		n, err := strconv.Atoi(u.group)
		if err != nil {
			return 0, false
		}
		total += n * u.seconds
	}
	if m[1] == "-" {
		total = -total
	}
	return total, true
}

// FormatDuration renders seconds as "N day(s) N hour(s) N minute(s)", omitting zero units.
// Anything shorter than a minute renders as "0 minutes".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0 minutes"
	}

	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60

	parts := make([]string, 0, 3)
	for _, p := range []struct {
		n    int
		unit string
	}{
		{days, "day"},
		{hours, "hour"},
		{minutes, "minute"},
	} {
		if p.n == 0 {
			continue
		}
		if p.n == 1 {
			parts = append(parts, fmt.Sprintf("1 %s", p.unit))
		} else {
			parts = append(parts, fmt.Sprintf("%d %ss", p.n, p.unit))
		}
	}
	if len(parts) == 0 {
		return "0 minutes"
	}
	return strings.Join(parts, " ")
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ConvertDate renders "2020-02-01" as "1 February 2020". Unparseable input is returned as is.
func ConvertDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("2 January 2006")
}

// CompareDates orders two stored calendar dates ascending.
func CompareDates(a, b string) int {
	return cmp.Compare(a, b)
}

// DateFromParts builds a stored calendar date from form fragments (day, month, year).
func DateFromParts(year, month, day string) (string, bool) {
	y, err1 := strconv.Atoi(strings.TrimSpace(year))
	mo, err2 := strconv.Atoi(strings.TrimSpace(month))
	d, err3 := strconv.Atoi(strings.TrimSpace(day))
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31 February into March; reject instead.
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return "", false
	}
	return t.Format(DateLayout), true
}

// ParseClock parses an HH:mm wall clock time.
func ParseClock(s string) (time.Time, error) {
	return time.Parse(TimeLayout, strings.TrimSpace(s))
}

// IsISODuration reports whether s is any well formed ISO-8601 duration, including
// calendar components such as "P1Y" that ParseDuration refuses to convert.
func IsISODuration(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	return isoDuration.MatchString(s) && s != "P" && s != "-P" && !strings.HasSuffix(s, "T")
}
