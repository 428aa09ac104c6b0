package sync

import (
	"strings"

	"lpg-management/internal/learning"
)

// Key identifies a course across the authored files and the catalogue. The id
// wins when the author set one, otherwise the normalized title is used.
func Key(c *learning.Course) string {
	if id := strings.TrimSpace(c.ID); id != "" {
		return "id:" + id
	}
	return "title:" + norm(c.Title)
}

// Diff compares authored courses with what the catalogue already holds.
// Returns:
// - create: authored but not in the catalogue
// - update: in both but changed; the catalogue id is copied onto the authored course
// Catalogue courses nobody authored are left alone.
func Diff(authored, remote []*learning.Course) (create, update []*learning.Course) {
	byKey := make(map[string]*learning.Course, 2*len(remote))
	for _, rc := range remote {
		byKey[Key(rc)] = rc
		byKey["title:"+norm(rc.Title)] = rc
	}

	for _, ac := range authored {
		rc, ok := byKey[Key(ac)]
		if !ok {
			create = append(create, ac)
			continue
		}
		ac.ID = rc.ID
		if needsUpdate(ac, rc) {
			update = append(update, ac)
		}
	}
	return create, update
}

func needsUpdate(a, r *learning.Course) bool {
	if norm(a.Title) != norm(r.Title) {
		return true
	}
	if norm(a.ShortDescription) != norm(r.ShortDescription) {
		return true
	}
	if norm(a.Description) != norm(r.Description) {
		return true
	}
	if norm(a.LearningOutcomes) != norm(r.LearningOutcomes) {
		return true
	}
	if !a.Price.Decimal().Equal(r.Price.Decimal()) {
		return true
	}
	// Status: a blank authored status parses as Draft, never demote a published course for it.
	if a.Status != learning.CourseStatusDraft && a.Status != r.Status {
		return true
	}
	return len(a.Audiences) != len(r.Audiences)
}

func norm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
