package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"lpg-management/internal/learning"
)

// Keep header order EXACT, downstream reporting reads columns by position.
var courseHeader = []string{
	"COURSE_ID",
	"TITLE",
	"TYPE",
	"STATUS",
	"COST",
	"DURATION",
	"NEXT_AVAILABLE_DATE",
	"GRADES",
	"AREAS_OF_WORK",
	"MODULES",
}

// WriteCourseCSV writes one summary row per course. now decides which event
// dates still count as available.
func WriteCourseCSV(w io.Writer, courses []*learning.Course, now time.Time) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(courseHeader); err != nil {
		return err
	}
	for _, c := range courses {
		if err := cw.Write(toCourseRow(c, now)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toCourseRow(c *learning.Course, now time.Time) []string {
	next, _ := c.NextAvailableDate(now)

	titles := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		titles = append(titles, m.Base().Title)
	}

	return []string{
		c.ID,                                       // COURSE_ID
		clean(c.Title),                             // TITLE
		c.Type(),                                   // TYPE
		string(c.Status),                           // STATUS
		strconv.FormatFloat(c.Cost(), 'f', -1, 64), // COST
		c.FormattedDuration(),                      // DURATION
		next,                                       // NEXT_AVAILABLE_DATE
		c.Grades(),                                 // GRADES
		c.AreasOfWork(),                            // AREAS_OF_WORK
		strings.Join(cleanStrings(titles), " | "),  // MODULES
	}
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
