package pages

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/aggregate"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/fetcher"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
)

// DashboardPage is the landing view.
type DashboardPage struct {
	env Env
	log logging.Logger

	Loading bool
	summary aggregate.DashboardSummary
}

func NewDashboardPage(env Env) *DashboardPage {
	return &DashboardPage{env: env, log: env.Log.With("page", "dashboard")}
}

// Load fetches the recent entries, the entry count and the mood history
// concurrently.
func (p *DashboardPage) Load(ctx context.Context) error {
	userID := p.env.User.UserID()
	p.Loading = true

	var (
		recent fetcher.Result[models.JournalEntry]
		total  int
		moods  fetcher.Result[models.JournalEntry]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recent, err = fetcher.Fetch(gctx, p.env.Fetcher, userID, models.JournalEntries,
			fetcher.Limit(aggregate.RecentEntries), fetcher.Under("dashboard"))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = fetcher.Count(gctx, p.env.Fetcher, userID, models.JournalEntries)
		return err
	})
	g.Go(func() error {
		var err error
		moods, err = fetcher.Fetch(gctx, p.env.Fetcher, userID, models.JournalEntries, fetcher.Under("dashboard-moods"))
		return err
	})
	err := g.Wait()

	if recent.Token.Seq != 0 && !p.env.Fetcher.Latest(recent.Token) {
		p.log.Debug(ctx, "dropping superseded fetch", "seq", recent.Token.Seq)
		return nil
	}
	p.Loading = false
	if err != nil {
		return p.env.fail(ctx, p.log, "Failed to fetch dashboard data", err)
	}

	p.summary = aggregate.Dashboard(recent.Records, total, moods.Records)
	return nil
}

func (p *DashboardPage) Summary() aggregate.DashboardSummary { return p.summary }
