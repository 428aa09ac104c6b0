package learning

import (
	"strings"
)

type AudienceType string

const (
	AudienceTypeOpen             AudienceType = "OPEN"
	AudienceTypeClosedCourse     AudienceType = "CLOSED_COURSE"
	AudienceTypePrivateCourse    AudienceType = "PRIVATE_COURSE"
	AudienceTypeRequiredLearning AudienceType = "REQUIRED_LEARNING"
)

var AudienceTypes = []AudienceType{
	AudienceTypeOpen,
	AudienceTypeClosedCourse,
	AudienceTypePrivateCourse,
	AudienceTypeRequiredLearning,
}

// ParseAudienceType accepts "CLOSED_COURSE", "closed-course" or "ClosedCourse" alike.
// Blank input is Open; an unrecognised value is kept so validation can reject it.
func ParseAudienceType(s string) AudienceType {
	s = strings.TrimSpace(s)
	if s == "" {
		return AudienceTypeOpen
	}
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	for _, t := range AudienceTypes {
		if strings.ReplaceAll(strings.ToLower(string(t)), "_", "") == key {
			return t
		}
	}
	return AudienceType(s)
}

// Audience is a targeting rule for a course.
type Audience struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name"`
	Type        AudienceType `json:"type"`
	AreasOfWork []string     `json:"areasOfWork,omitempty"`
	Departments []string     `json:"departments,omitempty"`
	Grades      []string     `json:"grades,omitempty"`
	Interests   []string     `json:"interests,omitempty"`
	RequiredBy  string       `json:"requiredBy,omitempty"`
	Frequency   string       `json:"frequency,omitempty"`
}

type AudienceFactory struct{}

func (f AudienceFactory) Create(data map[string]any) (*Audience, error) {
	a := &Audience{
		ID:         getString(data, "id"),
		Name:       getString(data, "name"),
		Type:       ParseAudienceType(getString(data, "type")),
		RequiredBy: getString(data, "requiredBy"),
		Frequency:  getString(data, "frequency"),
	}

	lists := []struct {
		key string
		dst *[]string
	}{
		{"areasOfWork", &a.AreasOfWork},
		{"departments", &a.Departments},
		{"grades", &a.Grades},
		{"interests", &a.Interests},
	}
	for _, l := range lists {
		v, err := getStrings(data, l.key)
		if err != nil {
			return nil, constructionError("audience", string(a.Type), data, err)
		}
		*l.dst = v
	}
	return a, nil
}
