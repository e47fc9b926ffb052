// AngelaMos | 2026
// interval.go

package task

import (
	"fmt"
	"time"
)

// Interval is a recurrence period. All components optional; a zero interval
// marks a one-off template that never generates a successor event.
type Interval struct {
	Years  int `db:"interval_years"  json:"years"`
	Months int `db:"interval_months" json:"months"`
	Weeks  int `db:"interval_weeks"  json:"weeks"`
	Days   int `db:"interval_days"   json:"days"`
}

func (i Interval) IsZero() bool {
	return i.Years == 0 && i.Months == 0 && i.Weeks == 0 && i.Days == 0
}

func (i Interval) Validate() error {
	if i.Years < 0 || i.Months < 0 || i.Weeks < 0 || i.Days < 0 {
		return fmt.Errorf("interval components must be non-negative")
	}
	return nil
}

// Next computes the occurrence after base: years are added first, then
// months, then weeks and days. Year and month arithmetic clamps to the last
// valid day of the target month (Jan 31 + 1 month = end of February,
// Feb 29 + 1 year = Feb 28). Returns false for a zero interval.
func (i Interval) Next(base time.Time) (time.Time, bool) {
	if i.IsZero() {
		return time.Time{}, false
	}

	next := addMonthsClamped(base, i.Years*12)
	next = addMonthsClamped(next, i.Months)
	next = next.AddDate(0, 0, i.Weeks*7+i.Days)

	return next, true
}

func (i Interval) String() string {
	if i.IsZero() {
		return "one-off"
	}
	return fmt.Sprintf(
		"%dy%dm%dw%dd",
		i.Years, i.Months, i.Weeks, i.Days,
	)
}

// addMonthsClamped is calendar-correct month addition: the day of month is
// clamped instead of overflowing into the next month the way AddDate does.
func addMonthsClamped(t time.Time, months int) time.Time {
	if months == 0 {
		return t
	}

	year, month, day := t.Date()

	total := int(month) - 1 + months
	year += total / 12
	rem := total % 12
	if rem < 0 {
		rem += 12
		year--
	}
	targetMonth := time.Month(rem + 1)

	if max := daysInMonth(year, targetMonth); day > max {
		day = max
	}

	hour, minute, sec := t.Clock()
	return time.Date(
		year, targetMonth, day,
		hour, minute, sec, t.Nanosecond(),
		t.Location(),
	)
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the following month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
