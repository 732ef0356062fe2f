package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearLabel(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"april start of year", date(2024, time.April, 1), "2425"},
		{"mid year", date(2024, time.September, 15), "2425"},
		{"january belongs to previous label", date(2025, time.January, 10), "2425"},
		{"march end", date(2025, time.March, 31), "2425"},
		{"new fiscal year", date(2025, time.April, 1), "2526"},
		{"december", date(2023, time.December, 31), "2324"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearLabel(tt.date))
		})
	}
}

func TestYearLabel_Boundary(t *testing.T) {
	// March 31 and April 1 of the same calendar year must fall into
	// different buckets, with April belonging to the later one.
	before := YearLabel(date(2024, time.March, 31))
	after := YearLabel(date(2024, time.April, 1))

	assert.NotEqual(t, before, after)
	assert.Equal(t, "2324", before)
	assert.Equal(t, "2425", after)
	assert.Greater(t, after, before)
}

func TestCalendarLabel(t *testing.T) {
	// A January-start year never splits a calendar year.
	assert.Equal(t, "2425", CalendarLabel(date(2024, time.January, 1)))
	assert.Equal(t, "2425", CalendarLabel(date(2024, time.December, 31)))
	assert.Equal(t, "2526", CalendarLabel(date(2025, time.June, 15)))
}

func TestLabel_CenturyWrap(t *testing.T) {
	assert.Equal(t, "9900", Label(date(1999, time.April, 1), time.April))
	assert.Equal(t, "9900", Label(date(2000, time.February, 1), time.April))
	assert.Equal(t, "0001", Label(date(2000, time.April, 1), time.April))
}
