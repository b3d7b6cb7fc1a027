package pages

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/aggregate"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/fetcher"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/letter"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

const (
	// NoteMoodHistory is how many recent entries the mood ranking uses.
	NoteMoodHistory = 30
	// NoteTopMoods is how many moods are shown.
	NoteTopMoods = 5
	// NoteGoals is how many recent goals are considered.
	NoteGoals = 5
)

// LetterStore keeps a composed letter and answers where it went.
type LetterStore interface {
	Save(ctx context.Context, userID, name, body string) (string, error)
}

// NotePage composes the letter from the user's future self.
type NotePage struct {
	env      Env
	log      logging.Logger
	composer letter.Composer
	store    LetterStore
	today    timex.Date

	Recipient  string
	Kind       letter.Kind
	Timeframe  letter.Timeframe
	CustomText string

	Loading    bool
	TopMoods   []aggregate.Count[string]
	Goals      []string
	EntryCount int

	// Text is the last composed letter.
	Text string
}

func NewNotePage(env Env, composer letter.Composer, store LetterStore, recipient string, today timex.Date) *NotePage {
	return &NotePage{
		env:       env,
		log:       env.Log.With("page", "note"),
		composer:  composer,
		store:     store,
		today:     today,
		Recipient: recipient,
		Kind:      letter.Motivational,
		Timeframe: letter.DefaultTimeframe,
	}
}

// Load gathers the aggregates the letter is built from.
func (p *NotePage) Load(ctx context.Context) error {
	userID := p.env.User.UserID()
	p.Loading = true

	var (
		history fetcher.Result[models.JournalEntry]
		total   int
		goals   fetcher.Result[models.Goal]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, err = fetcher.Fetch(gctx, p.env.Fetcher, userID, models.JournalEntries,
			fetcher.Limit(NoteMoodHistory), fetcher.Under("note"))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = fetcher.Count(gctx, p.env.Fetcher, userID, models.JournalEntries)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = fetcher.Fetch(gctx, p.env.Fetcher, userID, models.Goals,
			fetcher.Limit(NoteGoals), fetcher.Under("note-goals"))
		return err
	})
	err := g.Wait()

	if history.Token.Seq != 0 && !p.env.Fetcher.Latest(history.Token) {
		p.log.Debug(ctx, "dropping superseded fetch", "seq", history.Token.Seq)
		return nil
	}
	p.Loading = false
	if err != nil {
		return p.env.fail(ctx, p.log, "Failed to fetch user data", err)
	}

	p.TopMoods = aggregate.TopN(history.Records, func(e models.JournalEntry) string {
		return models.DefaultMoods.Canonical(e.Mood)
	}, NoteTopMoods)
	p.EntryCount = total
	p.Goals = make([]string, 0, len(goals.Records))
	for _, goal := range goals.Records {
		p.Goals = append(p.Goals, goal.Title)
	}
	return nil
}

// Input is what the composer receives for the current choices.
func (p *NotePage) Input() letter.Input {
	in := letter.Input{
		Kind:           p.Kind,
		TimeframeLabel: p.Timeframe.Label(),
		TargetDate:     p.Timeframe.Target(p.today),
		EntryCount:     p.EntryCount,
		CustomText:     p.CustomText,
		Recipient:      p.Recipient,
	}
	if len(p.TopMoods) > 0 {
		in.TopMood = p.TopMoods[0].Key
	}
	if len(p.Goals) > 0 {
		in.TopGoal = p.Goals[0]
	}
	return in
}

// Generate composes the letter into Text.
func (p *NotePage) Generate() string {
	p.Text = p.composer.Compose(p.Input())
	p.env.succeed("Your future note has been generated")
	return p.Text
}

// Save hands the composed letter to the store.
func (p *NotePage) Save(ctx context.Context) (string, error) {
	userID := p.env.User.UserID()
	if userID == "" {
		return "", common.ErrAuthorizationMissing
	}
	if strings.TrimSpace(p.Text) == "" {
		return "", p.env.fail(ctx, p.log, "Failed to save note",
			fmt.Errorf("%w: generate a note first", common.ErrValidationFailed))
	}

	where, err := p.store.Save(ctx, userID, letter.FileName(p.today), p.Text)
	if err != nil {
		return "", p.env.fail(ctx, p.log, "Failed to save note", err)
	}
	p.log.Info(ctx, "note saved", "location", where)
	p.env.succeed("Note saved to " + where)
	return where, nil
}
