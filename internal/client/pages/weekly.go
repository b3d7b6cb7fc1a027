package pages

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/aggregate"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/fetcher"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// WeeklyPage summarizes one Sunday-to-Saturday week.
type WeeklyPage struct {
	env Env
	log logging.Logger

	Week    timex.Range
	Loading bool

	// AllTime is the number of entries the user ever wrote.
	AllTime int

	entries []models.JournalEntry
	catalog *models.MoodCatalog
}

func NewWeeklyPage(env Env, today timex.Date) *WeeklyPage {
	return &WeeklyPage{
		env:     env,
		log:     env.Log.With("page", "weekly"),
		Week:    timex.WeekOf(today),
		catalog: models.DefaultMoods,
	}
}

// Load fetches the week's entries, the all-time count and the mood
// catalog concurrently. An empty mood_types table keeps the built-in
// catalog.
func (p *WeeklyPage) Load(ctx context.Context) error {
	userID := p.env.User.UserID()
	p.Loading = true

	var (
		week  fetcher.Result[models.JournalEntry]
		total int
		moods fetcher.Result[models.MoodLabel]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		week, err = fetcher.Fetch(gctx, p.env.Fetcher, userID, models.JournalEntries,
			fetcher.InRange(p.Week), fetcher.Chronological(), fetcher.Under("weekly"))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = fetcher.Count(gctx, p.env.Fetcher, userID, models.JournalEntries)
		return err
	})
	g.Go(func() error {
		var err error
		moods, err = fetcher.Fetch(gctx, p.env.Fetcher, userID, models.MoodTypes)
		return err
	})
	err := g.Wait()

	if week.Token.Seq != 0 && !p.env.Fetcher.Latest(week.Token) {
		p.log.Debug(ctx, "dropping superseded fetch", "seq", week.Token.Seq)
		return nil
	}
	p.Loading = false
	if err != nil {
		return p.env.fail(ctx, p.log, "Failed to fetch weekly data", err)
	}

	p.entries = week.Records
	p.AllTime = total
	if len(moods.Records) > 0 {
		p.catalog = models.NewMoodCatalog(moods.Records)
	}
	return nil
}

func (p *WeeklyPage) NextWeek(ctx context.Context) error {
	p.Week = p.Week.Next()
	return p.Load(ctx)
}

func (p *WeeklyPage) PrevWeek(ctx context.Context) error {
	p.Week = p.Week.Prev()
	return p.Load(ctx)
}

func (p *WeeklyPage) Summary() aggregate.WeeklySummary {
	return aggregate.Weekly(p.entries, p.Week, p.catalog)
}

// Catalog resolves mood colors for rendering.
func (p *WeeklyPage) Catalog() *models.MoodCatalog { return p.catalog }
