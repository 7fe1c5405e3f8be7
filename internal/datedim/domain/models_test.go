package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyFor(t *testing.T) {
	assert.Equal(t, int64(20240304), KeyFor(time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, int64(19991231), KeyFor(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestAttributesFor(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want Date
	}{
		{
			name: "weekday monday",
			date: time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC),
			want: Date{
				DateID:     20240304,
				FullDate:   "2024-03-04",
				Year:       2024,
				Quarter:    1,
				Month:      3,
				MonthName:  "March",
				WeekOfYear: 10,
				DayOfMonth: 4,
				DayOfWeek:  0,
				DayName:    "Monday",
				IsWeekend:  0,
			},
		},
		{
			name: "weekend sunday in q4",
			date: time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC),
			want: Date{
				DateID:     20231231,
				FullDate:   "2023-12-31",
				Year:       2023,
				Quarter:    4,
				Month:      12,
				MonthName:  "December",
				WeekOfYear: 52,
				DayOfMonth: 31,
				DayOfWeek:  6,
				DayName:    "Sunday",
				IsWeekend:  1,
			},
		},
		{
			name: "saturday is weekend",
			date: time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC),
			want: Date{
				DateID:     20240706,
				FullDate:   "2024-07-06",
				Year:       2024,
				Quarter:    3,
				Month:      7,
				MonthName:  "July",
				WeekOfYear: 27,
				DayOfMonth: 6,
				DayOfWeek:  5,
				DayName:    "Saturday",
				IsWeekend:  1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttributesFor(tt.date))
		})
	}
}

func TestAttributesForDeterministic(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	first := AttributesFor(day)
	// Same calendar day at a different wall-clock time yields the identical row.
	second := AttributesFor(day.Add(17 * time.Hour))
	assert.Equal(t, first, second)
}
