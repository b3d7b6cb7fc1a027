package letter

import (
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// Timeframe is how far ahead the letter is written from.
type Timeframe string

const (
	OneMonth    Timeframe = "1month"
	ThreeMonths Timeframe = "3months"
	SixMonths   Timeframe = "6months"
	OneYear     Timeframe = "1year"
)

// Timeframes lists the choices in display order.
var Timeframes = []Timeframe{OneMonth, ThreeMonths, SixMonths, OneYear}

// DefaultTimeframe is used when none is chosen.
const DefaultTimeframe = ThreeMonths

// Months is the offset in months, 0 for an unknown timeframe.
func (t Timeframe) Months() int {
	switch t {
	case OneMonth:
		return 1
	case ThreeMonths:
		return 3
	case SixMonths:
		return 6
	case OneYear:
		return 12
	default:
		return 0
	}
}

// Label is the phrase used inside the letter; unknown timeframes read
// "future".
func (t Timeframe) Label() string {
	switch t {
	case OneMonth:
		return "1 month"
	case ThreeMonths:
		return "3 months"
	case SixMonths:
		return "6 months"
	case OneYear:
		return "1 year"
	default:
		return "future"
	}
}

// Target is the date the letter is written from. Unknown timeframes fall
// back to DefaultTimeframe.
func (t Timeframe) Target(from timex.Date) timex.Date {
	m := t.Months()
	if m == 0 {
		m = DefaultTimeframe.Months()
	}
	return from.AddMonths(m)
}

// RecipientFromEmail uses the local part of an address as the greeting
// name, "Friend" when there is none.
func RecipientFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local == "" {
		return "Friend"
	}
	return local
}

// FileName is the export name of a letter written on d.
func FileName(d timex.Date) string {
	return "FutureNote_" + d.String() + ".txt"
}
