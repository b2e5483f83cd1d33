package leagues

import (
	"time"

	"github.com/mcdev12/kickoff/go/internal/models"
)

// DefaultCutoverMonth is the month in which European seasons roll over
const DefaultCutoverMonth = time.July

// SeasonFor returns the season window containing now. A season starts on the
// first day of the cutover month and ends on the last day of the month before
// it, one year later.
func SeasonFor(now time.Time, cutover time.Month) models.SeasonWindow {
	if cutover < time.January || cutover > time.December {
		cutover = DefaultCutoverMonth
	}

	now = now.UTC()
	startYear := now.Year()
	if now.Month() < cutover {
		startYear--
	}
	return SeasonStarting(startYear, cutover, now)
}

// SeasonStarting returns the window for an explicit start year
func SeasonStarting(startYear int, cutover time.Month, now time.Time) models.SeasonWindow {
	if cutover < time.January || cutover > time.December {
		cutover = DefaultCutoverMonth
	}

	start := time.Date(startYear, cutover, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 normalizes to the last day of the previous month.
	end := time.Date(startYear+1, cutover, 0, 0, 0, 0, 0, time.UTC)
	return window(startYear, start, end, now)
}

// SeasonBetween returns a window with explicit bounds
func SeasonBetween(start, end, now time.Time) models.SeasonWindow {
	start = truncateDay(start)
	end = truncateDay(end)
	return window(start.Year(), start, end, now)
}

func window(startYear int, start, end, now time.Time) models.SeasonWindow {
	now = now.UTC()
	return models.SeasonWindow{
		StartYear: startYear,
		StartDate: start,
		EndDate:   end,
		IsCurrent: !now.Before(start) && now.Before(end.AddDate(0, 0, 1)),
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
