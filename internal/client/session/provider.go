// Package session is the authentication provider of the CLI. It tracks the
// signed-in user, persists the session in the local database and resumes
// it on the next run.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	sessionrepo "github.com/dmitrijs2005/moodkeeper/internal/client/repositories/session"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
)

// User is the signed-in account.
type User struct {
	ID    string
	Email string
}

// Provider is safe for concurrent use.
type Provider struct {
	auth  gateway.Authenticator
	store sessionrepo.Repository
	log   logging.Logger

	mu      sync.RWMutex
	user    *User
	loading bool
}

func NewProvider(auth gateway.Authenticator, store sessionrepo.Repository, log logging.Logger) *Provider {
	p := &Provider{auth: auth, store: store, log: log.With("module", "session")}
	auth.OnRotate(p.persist)
	return p
}

// CurrentUser returns the signed-in user; ok is false when nobody is.
func (p *Provider) CurrentUser() (User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.user == nil {
		return User{}, false
	}
	return *p.user, true
}

// UserID is the current user's id, or "" when signed out.
func (p *Provider) UserID() string {
	u, _ := p.CurrentUser()
	return u.ID
}

// Loading reports whether a sign-in, sign-up or restore is in flight.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *Provider) begin() func() {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
	}
}

func (p *Provider) set(s *models.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s == nil {
		p.user = nil
		return
	}
	p.user = &User{ID: s.UserID, Email: s.Email}
}

// persist runs when the backend rotates tokens on its own. An invalid
// session signs the user out locally.
func (p *Provider) persist(s models.Session) {
	ctx := context.Background()
	if !s.Valid() {
		p.log.Info(ctx, "session expired")
		p.set(nil)
		if err := p.store.Clear(ctx); err != nil {
			p.log.Error(ctx, "clearing expired session", "error", err)
		}
		return
	}
	if err := p.store.Save(ctx, s); err != nil {
		p.log.Error(ctx, "saving rotated session", "error", err)
	}
}

// Restore resumes the persisted session. A session the store no longer
// accepts is discarded and Restore returns with nobody signed in.
func (p *Provider) Restore(ctx context.Context) error {
	defer p.begin()()

	saved, err := p.store.Load(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	next, err := p.auth.Resume(ctx, *saved)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			p.log.Info(ctx, "stored session rejected", "user", saved.UserID)
			p.set(nil)
			return p.store.Clear(ctx)
		}
		return fmt.Errorf("resuming session: %w", err)
	}

	return p.adopt(ctx, next)
}

// SignUp creates an account. Blank fields and a confirmation that does
// not match fail with common.ErrValidationFailed before any network call.
func (p *Provider) SignUp(ctx context.Context, email, password, confirm string) error {
	if err := credentials(email, password); err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", common.ErrValidationFailed)
	}

	defer p.begin()()

	s, err := p.auth.SignUp(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	return p.adopt(ctx, s)
}

func (p *Provider) SignIn(ctx context.Context, email, password string) error {
	if err := credentials(email, password); err != nil {
		return err
	}

	defer p.begin()()

	s, err := p.auth.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	return p.adopt(ctx, s)
}

// SignOut forgets the session locally even when the store cannot be told.
func (p *Provider) SignOut(ctx context.Context) error {
	if err := p.auth.SignOut(ctx); err != nil {
		p.log.Warn(ctx, "sign out", "error", err)
	}
	p.set(nil)
	return p.store.Clear(ctx)
}

func (p *Provider) adopt(ctx context.Context, s *models.Session) error {
	if err := p.store.Save(ctx, *s); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	p.set(s)
	return nil
}

func credentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidationFailed)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidationFailed)
	}
	return nil
}
