package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())
	assert.Equal(t, "2024-02-29", d.String())

	for _, s := range []string{
		"02/01/2024",
		"2024-01-015",
		"2024-01-01xyz",
		"2024-03-1299",
		"2024-01-02T00:00:00Z",
		"2024-3-01",
		"",
	} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestParseStoredDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-01-02", NewDate(2024, 1, 2)},
		{"2024-01-02T00:00:00Z", NewDate(2024, 1, 2)},
		{"2024-01-02 00:00:00+00:00", NewDate(2024, 1, 2)},
	}
	for _, tt := range tests {
		got, err := ParseStoredDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, s := range []string{"2024-01-015", "2024-03-1299", "2024-01-01xyz"} {
		_, err := ParseStoredDate(s)
		assert.Error(t, err, s)
	}
}

func TestDate_TextRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2023-12-31")))
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", string(b))

	require.NoError(t, d.UnmarshalText(nil))
	assert.True(t, d.IsZero())
}

func TestRange_DaysAreDenseAndAscending(t *testing.T) {
	r, err := NewRange(MustDate("2024-02-27"), MustDate("2024-03-02"))
	require.NoError(t, err)

	days := r.Days()
	require.Len(t, days, 5)
	assert.Equal(t, r.Len(), len(days))
	assert.Equal(t, "2024-02-29", days[2].String())
	for i := 1; i < len(days); i++ {
		assert.True(t, days[i-1].Before(days[i]))
	}
}

func TestNewRange_RejectsInverted(t *testing.T) {
	_, err := NewRange(MustDate("2024-01-03"), MustDate("2024-01-01"))
	assert.Error(t, err)

	single, err := NewRange(MustDate("2024-01-01"), MustDate("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, single.Len())
}

func TestMonthAndWeek(t *testing.T) {
	m := MonthOf(MustDate("2024-02-14"))
	assert.Equal(t, "2024-02-01..2024-02-29", m.String())
	assert.Equal(t, "2024-03-01..2024-03-31", m.Next().String())
	assert.Equal(t, "2024-01-01..2024-01-31", m.Prev().String())

	// 2024-01-03 is a Wednesday.
	w := WeekOf(MustDate("2024-01-03"))
	assert.Equal(t, time.Sunday, w.Start.Weekday())
	assert.Equal(t, "2023-12-31..2024-01-06", w.String())
	assert.Equal(t, "2024-01-07..2024-01-13", w.Next().String())
	assert.True(t, w.Contains(MustDate("2024-01-01")))
	assert.False(t, w.Contains(MustDate("2024-01-07")))
}
