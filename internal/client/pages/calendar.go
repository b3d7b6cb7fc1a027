package pages

import (
	"context"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/aggregate"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/fetcher"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// CalendarPage is the mood calendar of one month.
type CalendarPage struct {
	env Env
	log logging.Logger

	Month    timex.Range
	Selected timex.Date
	Loading  bool
	entries  []models.JournalEntry
}

func NewCalendarPage(env Env, today timex.Date) *CalendarPage {
	return &CalendarPage{
		env:      env,
		log:      env.Log.With("page", "calendar"),
		Month:    timex.MonthOf(today),
		Selected: today,
	}
}

// Load fetches the month's journal entries in date order.
func (p *CalendarPage) Load(ctx context.Context) error {
	p.Loading = true
	res, err := fetcher.Fetch(ctx, p.env.Fetcher, p.env.User.UserID(), models.JournalEntries,
		fetcher.InRange(p.Month), fetcher.Chronological(), fetcher.Under("calendar"))
	if res.Token.Seq != 0 && !p.env.Fetcher.Latest(res.Token) {
		p.log.Debug(ctx, "dropping superseded fetch", "seq", res.Token.Seq)
		return nil
	}
	p.Loading = false
	if err != nil {
		return p.env.fail(ctx, p.log, "Failed to fetch mood data", err)
	}
	p.entries = res.Records
	return nil
}

func (p *CalendarPage) NextMonth(ctx context.Context) error {
	p.Month = p.Month.Next()
	return p.Load(ctx)
}

func (p *CalendarPage) PrevMonth(ctx context.Context) error {
	p.Month = p.Month.Prev()
	return p.Load(ctx)
}

// Grid shows the first entry of every day.
func (p *CalendarPage) Grid() aggregate.Grid[models.JournalEntry] {
	return aggregate.MonthGrid(p.entries, p.Month)
}

// Select picks the day shown by DayEntries.
func (p *CalendarPage) Select(d timex.Date) { p.Selected = d }

// DayEntries are all entries of the selected day.
func (p *CalendarPage) DayEntries() []models.JournalEntry {
	var out []models.JournalEntry
	for _, e := range p.entries {
		if e.Date == p.Selected {
			out = append(out, e)
		}
	}
	return out
}

// MoodCounts ranks the month's moods.
func (p *CalendarPage) MoodCounts() []aggregate.Count[string] {
	return aggregate.TopN(p.entries, func(e models.JournalEntry) string { return models.DefaultMoods.Canonical(e.Mood) }, len(p.entries))
}
