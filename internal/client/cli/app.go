package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/moodkeeper/internal/client/backend"
	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/client/export"
	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/pages"
	sessionrepo "github.com/dmitrijs2005/moodkeeper/internal/client/repositories/session"
	"github.com/dmitrijs2005/moodkeeper/internal/client/session"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// App is the running client: one backend, one session and the page
// controllers that share them.
type App struct {
	config  *config.Config
	log     logging.Logger
	backend gateway.Backend
	session *session.Provider
	env     pages.Env
	letters pages.LetterStore
	closers []io.Closer

	reader *bufio.Reader
	out    io.Writer
	today  func() timex.Date

	journal   *pages.JournalPage
	goals     *pages.GoalsPage
	lockbox   *pages.LockboxPage
	dashboard *pages.DashboardPage
}

// NewApp opens the configured record store and the local session database
// and resumes the previous session, if any.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	b, err := backend.Open(ctx, c, log)
	if err != nil {
		log.Error(ctx, "opening record store", "error", err)
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	db, err := sessionrepo.Open(ctx, c.SessionDB)
	if err != nil {
		_ = b.Close()
		log.Error(ctx, "opening session database", "error", err)
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	provider := session.NewProvider(b, sessionrepo.NewSQLiteRepository(db), log)
	if err := provider.Restore(ctx); err != nil {
		// the user can still sign in again
		log.Warn(ctx, "restoring session", "error", err)
	}

	var archive export.Archive
	if c.S3.Enabled() {
		archive = export.NewS3Archive(c.S3, nil)
	}
	letters := export.NewLetters(c.LettersDir, archive, log)

	a := newApp(c, log, b, provider, letters, in, out)
	a.closers = append(a.closers, db)
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, b gateway.Backend, provider *session.Provider, letters pages.LetterStore, in io.Reader, out io.Writer) *App {
	env := pages.NewEnv(b, provider, newPrinter(out), log)
	return &App{
		config:    c,
		log:       log.With("module", "cli"),
		backend:   b,
		session:   provider,
		env:       env,
		letters:   letters,
		closers:   []io.Closer{b},
		reader:    bufio.NewReader(in),
		out:       out,
		today:     timex.Today,
		journal:   pages.NewJournalPage(env),
		goals:     pages.NewGoalsPage(env),
		lockbox:   pages.NewLockboxPage(env, b),
		dashboard: pages.NewDashboardPage(env),
	}
}

// Close releases the backend and the session database.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Execute runs one command line. Failures the pages already reported are
// not printed a second time.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := NewRootCmd(a)
	root.SetArgs(args)
	root.SetIn(a.reader)
	root.SetOut(a.out)
	root.SetErr(a.out)

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.As(err, new(reported)) {
		a.env.Notifier.Error("Error", err.Error())
	}
	return err
}

func (a *App) isLoggedIn() bool {
	return a.session.UserID() != ""
}

func (a *App) status() string {
	u, ok := a.session.CurrentUser()
	if !ok {
		return ""
	}
	s := u.Email
	if a.lockbox.Unlocked() {
		s += " unlocked"
	}
	return fmt.Sprintf("(%s)", s)
}

// timeout bounds one round of store calls.
func (a *App) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

var errNotSignedIn = errors.New("not signed in: run signin or signup first")

// reported wraps an error the user has already been notified about.
type reported struct{ err error }

func (r reported) Error() string { return r.err.Error() }
func (r reported) Unwrap() error { return r.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return reported{err: err}
}
