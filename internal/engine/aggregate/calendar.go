package aggregate

import "github.com/dmitrijs2005/moodkeeper/internal/timex"

// Cell is one calendar day. Padding cells have a zero Date.
type Cell[T any] struct {
	Date   timex.Date
	Record *T
}

// Grid is a Sunday-first month calendar.
type Grid[T any] struct {
	Month   timex.Range
	Leading int
	Days    []Cell[T]
}

// MonthGrid builds the calendar of month, attaching to every day the first
// record (in input order) dated that day.
func MonthGrid[T Dated](records []T, month timex.Range) Grid[T] {
	first := make(map[timex.Date]int, len(records))
	for i := range records {
		d := records[i].LogicalDate()
		if _, seen := first[d]; !seen {
			first[d] = i
		}
	}

	days := month.Days()
	g := Grid[T]{
		Month:   month,
		Leading: int(month.Start.Weekday()),
		Days:    make([]Cell[T], len(days)),
	}
	for i, d := range days {
		g.Days[i].Date = d
		if idx, ok := first[d]; ok {
			rec := records[idx]
			g.Days[i].Record = &rec
		}
	}
	return g
}

// Weeks lays the grid out in rows of seven, padding the first and last row.
func (g Grid[T]) Weeks() [][]Cell[T] {
	cells := make([]Cell[T], g.Leading, g.Leading+len(g.Days)+6)
	cells = append(cells, g.Days...)
	for len(cells)%7 != 0 {
		cells = append(cells, Cell[T]{})
	}

	weeks := make([][]Cell[T], 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// Filled counts the days that carry a record.
func (g Grid[T]) Filled() int {
	n := 0
	for _, c := range g.Days {
		if c.Record != nil {
			n++
		}
	}
	return n
}
