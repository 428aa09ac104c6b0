package learning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCourse(t *testing.T, data map[string]any) *Course {
	t.Helper()
	c, err := CourseFactory{}.Create(data)
	require.NoError(t, err)
	return c
}

func TestCourseCost(t *testing.T) {
	c := mustCourse(t, map[string]any{
		"modules": []any{
			map[string]any{"type": "video"},
			map[string]any{"type": "link", "cost": 50},
			map[string]any{"type": "face-to-face", "cost": 25.25},
		},
	})
	assert.Equal(t, 75.25, c.Cost())

	assert.Equal(t, float64(0), mustCourse(t, map[string]any{}).Cost())
}

func TestCourseCostSkipsTextCost(t *testing.T) {
	c := mustCourse(t, map[string]any{
		"modules": []any{
			map[string]any{"type": "video", "cost": "0.1"},
			map[string]any{"type": "video", "cost": "0.2"},
			map[string]any{"type": "link", "cost": "free"},
		},
	})
	assert.Equal(t, 0.3, c.Cost())
}

func TestCourseType(t *testing.T) {
	assert.Equal(t, "course", mustCourse(t, map[string]any{}).Type())

	one := mustCourse(t, map[string]any{"modules": []any{map[string]any{"type": "video"}}})
	assert.Equal(t, "video", one.Type())

	three := mustCourse(t, map[string]any{"modules": []any{
		map[string]any{"type": "video"},
		map[string]any{"type": "link"},
		map[string]any{"type": "file"},
	}})
	assert.Equal(t, "blended", three.Type())
}

func TestCourseNextAvailableDate(t *testing.T) {
	c := mustCourse(t, map[string]any{"modules": []any{
		map[string]any{"type": "face-to-face", "events": []any{
			map[string]any{"dateRanges": []any{map[string]any{"date": "2021-02-01"}}},
			map[string]any{"dateRanges": []any{map[string]any{"date": "2020-02-01"}}},
		}},
		map[string]any{"type": "video"},
	}})

	got, ok := c.NextAvailableDate(time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2020-02-01", got)

	got, ok = c.NextAvailableDate(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2021-02-01", got)

	_, ok = c.NextAvailableDate(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestCourseNextAvailableDateUsesFirstRangeOnly(t *testing.T) {
	c := mustCourse(t, map[string]any{"modules": []any{
		map[string]any{"type": "face-to-face", "events": []any{
			map[string]any{"dateRanges": []any{
				map[string]any{"date": "2020-01-10"},
				map[string]any{"date": "2020-03-01"},
			}},
			map[string]any{"dateRanges": []any{map[string]any{"date": "2020-04-01"}}},
		}},
	}})

	got, ok := c.NextAvailableDate(time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2020-04-01", got)
}

func TestCourseFormattedDuration(t *testing.T) {
	c := mustCourse(t, map[string]any{"modules": []any{
		map[string]any{"type": "video", "duration": 3600},
		map[string]any{"type": "link", "duration": "PT1M"},
		map[string]any{"type": "file", "duration": 86400},
	}})
	assert.Equal(t, "1 day 1 hour 1 minute", c.FormattedDuration())
	assert.Equal(t, "0 minutes", mustCourse(t, map[string]any{}).FormattedDuration())
}

func TestCourseGradesAndAreasOfWork(t *testing.T) {
	c := mustCourse(t, map[string]any{"audiences": []any{
		map[string]any{"name": "a", "grades": []any{"G6", "G7"}, "areasOfWork": []any{"Analysis"}},
		map[string]any{"name": "b"},
		map[string]any{"name": "c", "grades": "SEO", "areasOfWork": []any{"Digital", "Finance"}},
	}})

	assert.Equal(t, "G6,G7,SEO", c.Grades())
	assert.Equal(t, "Analysis,Digital,Finance", c.AreasOfWork())

	empty := mustCourse(t, map[string]any{})
	assert.Equal(t, "", empty.Grades())
	assert.Equal(t, "", empty.AreasOfWork())
}

func TestCourseFactory(t *testing.T) {
	c := mustCourse(t, map[string]any{
		"id":               "c1",
		"title":            "Managing budgets",
		"shortDescription": "Short",
		"price":            "100",
		"learningProvider": map[string]any{
			"name":                 "Provider",
			"cancellationPolicies": []any{map[string]any{"name": "Standard"}},
		},
		"modules": []any{map[string]any{"id": "m1", "type": "elearning"}},
	})

	assert.Equal(t, CourseStatusDraft, c.Status)
	assert.Equal(t, "100", c.Price.String())
	require.NotNil(t, c.LearningProvider)
	assert.Equal(t, "Standard", c.LearningProvider.CancellationPolicies[0].Name)
	assert.NotNil(t, c.ModuleByID("m1"))
	assert.Nil(t, c.ModuleByID("m2"))

	published := mustCourse(t, map[string]any{"status": "published"})
	assert.Equal(t, CourseStatusPublished, published.Status)
}

func TestCourseFactoryPropagatesModuleError(t *testing.T) {
	_, err := CourseFactory{}.Create(map[string]any{"modules": []any{map[string]any{"type": "podcast"}}})
	assert.ErrorIs(t, err, ErrUnknownModuleType)
}

func TestCourseGradesSkipBlankCodes(t *testing.T) {
	c := mustCourse(t, map[string]any{"audiences": []any{
		map[string]any{"name": "a", "grades": []any{"G6", ""}, "areasOfWork": []any{" ", "Finance"}},
		map[string]any{"name": "b", "grades": []any{"G7"}},
	}})

	assert.Equal(t, "G6,G7", c.Grades())
	assert.Equal(t, "Finance", c.AreasOfWork())
}

func TestLearningProviderFactory(t *testing.T) {
	lp, err := LearningProviderFactory{}.Create(map[string]any{
		"name":                 "Provider",
		"cancellationPolicies": []any{map[string]any{"name": "Standard", "shortVersion": "s", "fullVersion": "f"}},
		"termsAndConditions":   []any{map[string]any{"name": "T&Cs", "content": "..."}},
	})
	require.NoError(t, err)
	require.Len(t, lp.CancellationPolicies, 1)
	require.Len(t, lp.TermsAndConditions, 1)
	assert.Equal(t, "f", lp.CancellationPolicies[0].FullVersion)
	assert.Equal(t, "...", lp.TermsAndConditions[0].Content)

	_, err = LearningProviderFactory{}.Create(map[string]any{"termsAndConditions": []any{"T&Cs"}})
	assert.ErrorIs(t, err, ErrMalformedInput)
}
