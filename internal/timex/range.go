package timex

import (
	"fmt"
	"time"
)

// Range is an inclusive [Start, End] span of calendar dates.
type Range struct {
	Start Date
	End   Date
}

// NewRange validates that start is not after end.
func NewRange(start, end Date) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("range bounds must be set")
	}
	if start.After(end) {
		return Range{}, fmt.Errorf("range start %s is after end %s", start, end)
	}
	return Range{Start: start, End: end}, nil
}

// MonthRange covers every day of the given month.
func MonthRange(year int, month time.Month) Range {
	start := NewDate(year, month, 1)
	return Range{Start: start, End: start.AddMonths(1).AddDays(-1)}
}

// MonthOf is the month range containing d.
func MonthOf(d Date) Range {
	return MonthRange(d.Year(), d.Month())
}

// WeekOf is the Sunday-to-Saturday week containing d.
func WeekOf(d Date) Range {
	start := d.AddDays(-int(d.Weekday()))
	return Range{Start: start, End: start.AddDays(6)}
}

// Len is the number of calendar days in r, 0 for an inverted range.
func (r Range) Len() int {
	if r.Start.After(r.End) {
		return 0
	}
	return int(r.End.Time().Sub(r.Start.Time()).Hours()/24) + 1
}

// Days lists every date of r in ascending order.
func (r Range) Days() []Date {
	n := r.Len()
	days := make([]Date, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, r.Start.AddDays(i))
	}
	return days
}

func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Next shifts r forward by its own length; used for month/week paging.
func (r Range) Next() Range {
	if r.isWholeMonth() {
		return MonthOf(r.Start.AddMonths(1))
	}
	n := r.Len()
	return Range{Start: r.Start.AddDays(n), End: r.End.AddDays(n)}
}

// Prev shifts r backward by its own length.
func (r Range) Prev() Range {
	if r.isWholeMonth() {
		return MonthOf(r.Start.AddMonths(-1))
	}
	n := r.Len()
	return Range{Start: r.Start.AddDays(-n), End: r.End.AddDays(-n)}
}

func (r Range) isWholeMonth() bool {
	return r.Start.Day() == 1 && r == MonthOf(r.Start)
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}
