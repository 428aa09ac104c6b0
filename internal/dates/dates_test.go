package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"PT1H1M26S", 3686, true},
		{"PT10H1M26S", 36086, true},
		{"P1DT1H", 90000, true},
		{"PT45M", 2700, true},
		{"pt30s", 30, true},
		{"-PT1H", -3600, true},
		{"P1Y", 0, false},
		{"P2M", 0, false},
		{"P1W", 0, false},
		{"P1YT1H", 0, false},
		{"PT", 0, false},
		{"P", 0, false},
		{"", 0, false},
		{"1 hour", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDuration(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0 minutes", FormatDuration(0))
	assert.Equal(t, "0 minutes", FormatDuration(-60))
	assert.Equal(t, "0 minutes", FormatDuration(59))
	assert.Equal(t, "1 hour", FormatDuration(3600))
	assert.Equal(t, "2 hours 30 minutes", FormatDuration(9000))
	assert.Equal(t, "1 minute", FormatDuration(60))
	assert.Equal(t, "2 days", FormatDuration(172800))
	assert.Equal(t, "1 day 1 hour 1 minute", FormatDuration(90060))
}

func TestConvertDate(t *testing.T) {
	assert.Equal(t, "1 February 2020", ConvertDate("2020-02-01"))
	assert.Equal(t, "25 December 2031", ConvertDate("2031-12-25"))
	assert.Equal(t, "not a date", ConvertDate("not a date"))
}

func TestCompareDates(t *testing.T) {
	assert.Equal(t, 0, CompareDates("2020-02-01", "2020-02-01"))
	assert.Negative(t, CompareDates("2020-02-01", "2021-01-01"))
	assert.Positive(t, CompareDates("2021-01-01", "2020-12-31"))
}

func TestDateFromParts(t *testing.T) {
	got, ok := DateFromParts("2030", "3", "7")
	require.True(t, ok)
	assert.Equal(t, "2030-03-07", got)

	_, ok = DateFromParts("2030", "2", "31")
	assert.False(t, ok)

	_, ok = DateFromParts("year", "2", "1")
	assert.False(t, ok)
}

func TestIsISODuration(t *testing.T) {
	assert.True(t, IsISODuration("P1Y"))
	assert.True(t, IsISODuration("P3M"))
	assert.True(t, IsISODuration("PT30M"))
	assert.False(t, IsISODuration("P"))
	assert.False(t, IsISODuration("yearly"))
}
