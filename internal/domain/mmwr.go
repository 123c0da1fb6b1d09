package domain

import "time"

// MMWR week bounds. Week 53 occurs only in some years but the converter
// accepts it unconditionally; a week-53 date in a 52-week year simply lands
// in the following year's week 1 range, matching how the feed reports it.
const (
	mmwrMinWeek = 1
	mmwrMaxWeek = 53
)

// MMWRWeekStart returns the Sunday beginning the given MMWR week, or the
// zero time when (year, week) is out of range. Invalid inputs must not
// fail the batch: the caller drops the row for want of a usable period.
//
// Week 1 begins on the first Sunday on or after January 1. When January 1
// falls on Thursday, Friday, or Saturday that Sunday opens the next
// calendar week, so the partial week containing January 1 carries no week
// number at all. That follows the CDC's rule that week 1 must hold at
// least four days of the new year.
func MMWRWeekStart(year, week int) time.Time {
	if year < 1 || year > 9999 || week < mmwrMinWeek || week > mmwrMaxWeek {
		return time.Time{}
	}

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	daysUntilSunday := (7 - int(jan1.Weekday())) % 7
	week1Start := jan1.AddDate(0, 0, daysUntilSunday)

	return week1Start.AddDate(0, 0, (week-1)*7)
}

// MMWRWeekEnd returns the Saturday ending the given MMWR week, or the zero
// time when (year, week) is out of range. Always exactly six days after
// the corresponding MMWRWeekStart.
func MMWRWeekEnd(year, week int) time.Time {
	start := MMWRWeekStart(year, week)
	if start.IsZero() {
		return time.Time{}
	}
	return start.AddDate(0, 0, 6)
}
