package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
)

// Period is a symbolic time-window selector resolved to a concrete date
// interval by ResolvePeriod.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodThisWeek  Period = "this-week"
	PeriodLastWeek  Period = "last-week"
	PeriodThisMonth Period = "this-month"
	PeriodLastMonth Period = "last-month"
	PeriodThisYear  Period = "this-year"
	PeriodCustom    Period = "custom"
)

// KnownPeriods lists every period value ResolvePeriod recognizes, for
// request validation.
var KnownPeriods = []Period{
	PeriodAll, PeriodThisWeek, PeriodLastWeek,
	PeriodThisMonth, PeriodLastMonth, PeriodThisYear, PeriodCustom,
}

// DateRange is a concrete date interval. Both bounds are inclusive calendar
// days at UTC midnight.
type DateRange struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// epoch is the lower bound used for the "all" period.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateOf truncates t to its calendar date at UTC midnight. All transaction
// dates and resolved range bounds pass through here, so comparisons are
// day-granular regardless of the wall-clock time of "now".
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseWeekStart maps a configured weekday name to a time.Weekday,
// defaulting to Monday for empty or unrecognized values.
func ParseWeekStart(s string) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}

// ResolvePeriod converts a symbolic period into a concrete inclusive date
// range anchored to now and the configured week-start day.
//
// Conventions: weeks start on weekStart (Monday unless configured
// otherwise); every range ends at the literal end of its period (this-week
// runs through the coming week-end day, this-month through the last day of
// the month, this-year through Dec 31); "all" spans [1970-01-01, today].
// A custom period requires an explicit range; an unrecognized period falls
// back to this-month.
func ResolvePeriod(p Period, now time.Time, weekStart time.Weekday, custom *DateRange) (DateRange, error) {
	today := DateOf(now)

	switch p {
	case PeriodAll:
		return DateRange{Start: epoch, End: today}, nil

	case PeriodThisWeek:
		start := startOfWeek(today, weekStart)
		return DateRange{Start: start, End: start.AddDate(0, 0, 6)}, nil

	case PeriodLastWeek:
		start := startOfWeek(today, weekStart).AddDate(0, 0, -7)
		return DateRange{Start: start, End: start.AddDate(0, 0, 6)}, nil

	case PeriodLastMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: first.AddDate(0, -1, 0), End: first.AddDate(0, 0, -1)}, nil

	case PeriodThisYear:
		return DateRange{
			Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
		}, nil

	case PeriodCustom:
		if custom == nil {
			return DateRange{}, fmt.Errorf("%w: custom period requires a date range", apperrors.ErrValidation)
		}
		start, end := DateOf(custom.Start), DateOf(custom.End)
		if end.Before(start) {
			return DateRange{}, fmt.Errorf("%w: custom range end %s precedes start %s",
				apperrors.ErrValidation, end.Format(time.DateOnly), start.Format(time.DateOnly))
		}
		return DateRange{Start: start, End: end}, nil

	default:
		// PeriodThisMonth and the documented fallback for anything unrecognized.
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: first, End: first.AddDate(0, 1, -1)}, nil
	}
}

// startOfWeek returns the most recent weekStart weekday on or before day.
func startOfWeek(day time.Time, weekStart time.Weekday) time.Time {
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}
