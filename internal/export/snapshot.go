package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/andybalholm/brotli"

	"lpg-management/internal/learning"
)

type snapshot struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Courses     []*learning.Course `json:"courses"`
}

// WriteSnapshot writes the courses as brotli-compressed JSON.
func WriteSnapshot(w io.Writer, courses []*learning.Course, at time.Time) error {
	bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	if err := json.NewEncoder(bw).Encode(snapshot{GeneratedAt: at.UTC(), Courses: courses}); err != nil {
		_ = bw.Close()
		return fmt.Errorf("export: encode snapshot: %w", err)
	}
	return bw.Close()
}

// ReadSnapshot decodes a snapshot and rebuilds the courses through the course factory.
func ReadSnapshot(r io.Reader) (time.Time, []*learning.Course, error) {
	var raw struct {
		GeneratedAt time.Time        `json:"generatedAt"`
		Courses     []map[string]any `json:"courses"`
	}
	dec := json.NewDecoder(brotli.NewReader(r))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return time.Time{}, nil, fmt.Errorf("export: decode snapshot: %w", err)
	}

	courses := make([]*learning.Course, 0, len(raw.Courses))
	for i, rc := range raw.Courses {
		c, err := learning.CourseFactory{}.Create(rc)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("export: snapshot course %d: %w", i, err)
		}
		courses = append(courses, c)
	}
	return raw.GeneratedAt, courses, nil
}
