package leagues

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		cutover   time.Month
		startYear int
		start     time.Time
		end       time.Time
	}{
		{
			name:      "autumn belongs to the season starting this year",
			now:       date(2024, time.September, 1),
			cutover:   time.July,
			startYear: 2024,
			start:     date(2024, time.July, 1),
			end:       date(2025, time.June, 30),
		},
		{
			name:      "spring belongs to the season started last year",
			now:       date(2025, time.March, 15),
			cutover:   time.July,
			startYear: 2024,
			start:     date(2024, time.July, 1),
			end:       date(2025, time.June, 30),
		},
		{
			name:      "cutover month itself starts the new season",
			now:       time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			cutover:   time.July,
			startYear: 2024,
			start:     date(2024, time.July, 1),
			end:       date(2025, time.June, 30),
		},
		{
			name:      "calendar year leagues",
			now:       date(2024, time.May, 10),
			cutover:   time.January,
			startYear: 2024,
			start:     date(2024, time.January, 1),
			end:       date(2024, time.December, 31),
		},
		{
			name:      "invalid cutover falls back to July",
			now:       date(2024, time.May, 10),
			cutover:   time.Month(13),
			startYear: 2023,
			start:     date(2023, time.July, 1),
			end:       date(2024, time.June, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := SeasonFor(tt.now, tt.cutover)
			assert.Equal(t, tt.startYear, w.StartYear)
			assert.Equal(t, tt.start, w.StartDate)
			assert.Equal(t, tt.end, w.EndDate)
			assert.True(t, w.IsCurrent)
		})
	}
}

func TestSeasonStarting_IsCurrent(t *testing.T) {
	assert.False(t, SeasonStarting(2022, time.July, date(2024, time.September, 1)).IsCurrent)
	assert.True(t, SeasonStarting(2024, time.July, time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC)).IsCurrent)
	assert.False(t, SeasonStarting(2024, time.July, date(2025, time.July, 1)).IsCurrent)
}

func TestSeasonBetween(t *testing.T) {
	w := SeasonBetween(
		time.Date(2024, time.August, 16, 19, 0, 0, 0, time.UTC),
		date(2025, time.May, 25),
		date(2025, time.May, 25).Add(20*time.Hour),
	)

	assert.Equal(t, 2024, w.StartYear)
	assert.Equal(t, date(2024, time.August, 16), w.StartDate)
	assert.True(t, w.IsCurrent, "the end date is inclusive")
}
