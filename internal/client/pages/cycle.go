package pages

import (
	"context"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/aggregate"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/fetcher"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// CyclePage shows the cycle entries of one month in date order.
type CyclePage struct {
	*Records[models.CycleEntry]
	Month timex.Range
}

func NewCyclePage(env Env, today timex.Date) *CyclePage {
	return &CyclePage{
		Records: newRecords(env, models.CycleEntries, messagesFor("Cycle data", "cycle data", "saved"),
			byDate[models.CycleEntry], fetcher.Chronological(), fetcher.Under("cycle")),
		Month: timex.MonthOf(today),
	}
}

// byDate orders records by logical date, then creation time.
func byDate[T interface {
	aggregate.Dated
	Created() time.Time
}](a, b T) bool {
	if c := a.LogicalDate().Compare(b.LogicalDate()); c != 0 {
		return c < 0
	}
	return a.Created().Before(b.Created())
}

func (p *CyclePage) Load(ctx context.Context) error {
	return p.Records.Load(ctx, fetcher.InRange(p.Month))
}

// NextMonth moves to the following month and reloads.
func (p *CyclePage) NextMonth(ctx context.Context) error {
	p.Month = p.Month.Next()
	return p.Load(ctx)
}

func (p *CyclePage) PrevMonth(ctx context.Context) error {
	p.Month = p.Month.Prev()
	return p.Load(ctx)
}

// EntryFor returns the form for d: the recorded entry when there is one,
// a blank one otherwise.
func (p *CyclePage) EntryFor(d timex.Date) models.CycleEntry {
	if e, ok := p.State.Records.Find(func(e models.CycleEntry) bool { return e.Date == d }); ok {
		return e
	}
	return models.NewCycleEntry(d)
}

// Grid lays the month out as a calendar.
func (p *CyclePage) Grid() aggregate.Grid[models.CycleEntry] {
	return aggregate.MonthGrid(p.Items(), p.Month)
}

// SymptomCounts ranks the symptoms recorded this month.
func (p *CyclePage) SymptomCounts() []aggregate.Count[string] {
	return aggregate.TopNEach(p.Items(), func(e models.CycleEntry) []string { return e.Symptoms }, len(models.CycleSymptoms))
}

// ToggleSymptom adds or removes symptom id on the form e.
func ToggleSymptom(e models.CycleEntry, id string) models.CycleEntry {
	e.Symptoms = ToggleTag(e.Symptoms, id)
	return e
}
