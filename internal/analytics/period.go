// Package analytics turns a user's mood and journal history into windowed
// statistics, period-over-period comparisons and rule-based insights.
//
// Everything here is a pure function of its inputs and the supplied clock.
// Calendar arithmetic uses the location of the supplied now.
package analytics

import "time"

// Range selects the reporting window.
type Range string

const (
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// ParseRange returns fallback for an empty value. Any other value is kept
// exactly as given; only the lower-case names are known windows.
func ParseRange(s string, fallback Range) Range {
	if s == "" {
		return fallback
	}
	return Range(s)
}

// Known reports whether r is one of day, week or month.
func (r Range) Known() bool {
	switch r {
	case RangeDay, RangeWeek, RangeMonth:
		return true
	}
	return false
}

// PreviousLabel names the preceding window in comparison text.
func (r Range) PreviousLabel() string {
	switch r {
	case RangeDay:
		return "yesterday"
	case RangeWeek:
		return "last week"
	default:
		return "last month"
	}
}

// PeriodLabel is the adjective used in report titles and filenames.
func (r Range) PeriodLabel() string {
	switch r {
	case RangeDay:
		return "Daily"
	case RangeWeek:
		return "Weekly"
	default:
		return "Monthly"
	}
}

// Days is the nominal window length used for consistency ratios.
func (r Range) Days() int {
	switch r {
	case RangeDay:
		return 1
	case RangeWeek:
		return 7
	default:
		return 30
	}
}

// Dated is implemented by anything that can be placed in a window.
type Dated interface {
	EntryDate() time.Time
}

// FilterByRange keeps the entries falling in the current window, or in the
// immediately preceding one when previous is set.
//
// day matches the local calendar day of now (or the day before). week keeps
// entries at most seven days old, or between seven and fourteen days old for
// the previous window; future-dated entries count as current. month matches
// the calendar month and year, rolling January back to December. Any other
// range returns every entry.
func FilterByRange[T Dated](entries []T, r Range, now time.Time, previous bool) []T {
	out := make([]T, 0, len(entries))
	if !r.Known() {
		return append(out, entries...)
	}
	loc := now.Location()
	for _, e := range entries {
		if inWindow(e.EntryDate().In(loc), r, now, previous) {
			out = append(out, e)
		}
	}
	return out
}

func inWindow(d time.Time, r Range, now time.Time, previous bool) bool {
	switch r {
	case RangeDay:
		target := now
		if previous {
			target = now.AddDate(0, 0, -1)
		}
		return sameDay(d, target)
	case RangeWeek:
		diff := now.Sub(d).Hours() / 24
		if previous {
			return diff > 7 && diff <= 14
		}
		return diff <= 7
	case RangeMonth:
		year, month := now.Year(), now.Month()
		if previous {
			month--
			if month < time.January {
				month = time.December
				year--
			}
		}
		return d.Year() == year && d.Month() == month
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
