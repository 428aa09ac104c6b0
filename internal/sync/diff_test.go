package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lpg-management/internal/learning"
)

func TestDiff(t *testing.T) {
	remote := []*learning.Course{
		{ID: "r1", Title: "Budgets", Description: "Plan spend", Status: learning.CourseStatusPublished},
		{ID: "r2", Title: "Security  Basics", Description: "Old text", Status: learning.CourseStatusPublished},
		{ID: "r3", Title: "Orphan"},
	}
	authored := []*learning.Course{
		{Title: "budgets", Description: "plan spend"},
		{Title: "Security Basics", Description: "New text"},
		{Title: "Brand new"},
		{ID: "r3", Title: "Orphan renamed"},
	}

	create, update := Diff(authored, remote)

	assert.Equal(t, []*learning.Course{authored[2]}, create)
	assert.Equal(t, []*learning.Course{authored[1], authored[3]}, update)
	assert.Equal(t, "r1", authored[0].ID)
	assert.Equal(t, "r2", authored[1].ID)
}

func TestNeedsUpdate(t *testing.T) {
	base := func() *learning.Course {
		return &learning.Course{Title: "T", Description: "D", Status: learning.CourseStatusPublished, Price: learning.NewCost(10)}
	}

	tests := []struct {
		name   string
		change func(c *learning.Course)
		want   bool
	}{
		{"same", func(c *learning.Course) {}, false},
		{"draft does not demote", func(c *learning.Course) { c.Status = learning.CourseStatusDraft }, false},
		{"archived", func(c *learning.Course) { c.Status = learning.CourseStatusArchived }, true},
		{"price", func(c *learning.Course) { c.Price = learning.NewCost(12.5) }, true},
		{"no price", func(c *learning.Course) { c.Price = nil }, true},
		{"audience added", func(c *learning.Course) { c.Audiences = []*learning.Audience{{Name: "All"}} }, true},
		{"case only", func(c *learning.Course) { c.Title = "t" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base()
			tt.change(a)
			assert.Equal(t, tt.want, needsUpdate(a, base()))
		})
	}
}
