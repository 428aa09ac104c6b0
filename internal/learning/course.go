package learning

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lpg-management/internal/dates"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "Draft"
	CourseStatusPublished CourseStatus = "Published"
	CourseStatusArchived  CourseStatus = "Archived"
)

func parseCourseStatus(s string) CourseStatus {
	for _, st := range []CourseStatus{CourseStatusDraft, CourseStatusPublished, CourseStatusArchived} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st
		}
	}
	return CourseStatusDraft
}

type Course struct {
	ID               string            `json:"id,omitempty"`
	Title            string            `json:"title"`
	ShortDescription string            `json:"shortDescription"`
	Description      string            `json:"description"`
	Duration         int               `json:"duration,omitempty"`
	LearningOutcomes string            `json:"learningOutcomes,omitempty"`
	Price            *Cost             `json:"price,omitempty"`
	Modules          []Module          `json:"modules"`
	Audiences        []*Audience       `json:"audiences"`
	Status           CourseStatus      `json:"status"`
	LearningProvider *LearningProvider `json:"learningProvider,omitempty"`
}

// Cost sums the numeric module costs. Modules without a cost, or with one the
// author typed as text, contribute nothing.
func (c *Course) Cost() float64 {
	total := decimal.Zero
	for _, m := range c.Modules {
		total = total.Add(m.Base().Cost.Decimal())
	}
	return total.InexactFloat64()
}

// Type classifies the course: "course" when empty, "blended" for several modules,
// otherwise the single module's type.
func (c *Course) Type() string {
	switch len(c.Modules) {
	case 0:
		return "course"
	case 1:
		return string(c.Modules[0].Base().Type)
	default:
		return "blended"
	}
}

// NextAvailableDate returns the earliest event date strictly after now across all
// face-to-face modules. Only the first date range of each event is considered.
func (c *Course) NextAvailableDate(now time.Time) (string, bool) {
	next := ""
	var nextAt time.Time
	for _, m := range c.Modules {
		f2f, ok := m.(*FaceToFaceModule)
		if !ok {
			continue
		}
		for _, e := range f2f.Events {
			date, ok := e.FirstDate()
			if !ok {
				continue
			}
			at, err := dates.ParseDate(date)
			if err != nil || !at.After(now) {
				continue
			}
			if next == "" || at.Before(nextAt) {
				next, nextAt = date, at
			}
		}
	}
	return next, next != ""
}

// FormattedDuration is the total module duration as a human string.
func (c *Course) FormattedDuration() string {
	total := 0
	for _, m := range c.Modules {
		total += m.Base().Duration
	}
	return dates.FormatDuration(total)
}

// Grades joins the grades of every audience with commas.
func (c *Course) Grades() string {
	return c.joinAudiences(func(a *Audience) []string { return a.Grades })
}

// AreasOfWork joins the areas of work of every audience with commas.
func (c *Course) AreasOfWork() string {
	return c.joinAudiences(func(a *Audience) []string { return a.AreasOfWork })
}

func (c *Course) joinAudiences(field func(*Audience) []string) string {
	var all []string
	for _, a := range c.Audiences {
		for _, code := range field(a) {
			if code = strings.TrimSpace(code); code != "" {
				all = append(all, code)
			}
		}
	}
	return strings.Join(all, ",")
}

// ModuleByID returns the module with the given id, or nil.
func (c *Course) ModuleByID(id string) Module {
	for _, m := range c.Modules {
		if m.Base().ID == id {
			return m
		}
	}
	return nil
}

type CourseFactory struct{}

func (f CourseFactory) Create(data map[string]any) (*Course, error) {
	duration, _ := getInt(data, "duration")
	c := &Course{
		ID:               getString(data, "id"),
		Title:            getString(data, "title"),
		ShortDescription: getString(data, "shortDescription"),
		Description:      getString(data, "description"),
		Duration:         duration,
		LearningOutcomes: getString(data, "learningOutcomes"),
		Price:            parseCost(data["price"]),
		Modules:          []Module{},
		Audiences:        []*Audience{},
		Status:           parseCourseStatus(getString(data, "status")),
	}

	rawModules, err := getList(data, "modules")
	if err != nil {
		return nil, constructionError("course", "", data, err)
	}
	for _, rm := range rawModules {
		m, err := ModuleFactory{}.Create(rm)
		if err != nil {
			return nil, err
		}
		c.Modules = append(c.Modules, m)
	}

	rawAudiences, err := getList(data, "audiences")
	if err != nil {
		return nil, constructionError("course", "", data, err)
	}
	for _, ra := range rawAudiences {
		a, err := AudienceFactory{}.Create(ra)
		if err != nil {
			return nil, err
		}
		c.Audiences = append(c.Audiences, a)
	}

	rawProvider, err := getMap(data, "learningProvider")
	if err != nil {
		return nil, constructionError("course", "", data, err)
	}
	if rawProvider != nil {
		lp, err := LearningProviderFactory{}.Create(rawProvider)
		if err != nil {
			return nil, err
		}
		c.LearningProvider = lp
	}
	return c, nil
}
