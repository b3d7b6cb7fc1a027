package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
)

// LockboxPage holds the private entries. They are reachable only after
// Unlock, and only for as long as the capability it obtained is accepted.
type LockboxPage struct {
	env     Env
	log     logging.Logger
	locker  gateway.Locker
	entries *Records[models.PrivateEntry]

	token  string
	search string
}

func NewLockboxPage(env Env, locker gateway.Locker) *LockboxPage {
	return &LockboxPage{
		env:     env,
		log:     env.Log.With("page", "lockbox"),
		locker:  locker,
		entries: newRecords(env, models.PrivateEntries, messagesFor("Private entry", "private entries", "saved"), nil),
	}
}

func (p *LockboxPage) Unlocked() bool { return p.token != "" }

// State exposes the list state for rendering.
func (p *LockboxPage) State() *ListState[models.PrivateEntry] { return &p.entries.State }

// reject notifies message verbatim.
func (p *LockboxPage) reject(ctx context.Context, message string, err error) error {
	p.env.Notifier.Error(titleError, message)
	p.log.Warn(ctx, message, "error", err)
	return err
}

// SetPassphrase stores next as the lockbox passphrase. current is required
// once a passphrase exists.
func (p *LockboxPage) SetPassphrase(ctx context.Context, current, next, confirm string) error {
	if p.env.User.UserID() == "" {
		return common.ErrAuthorizationMissing
	}
	if next == "" {
		return p.reject(ctx, "Passphrase is required", fmt.Errorf("%w: passphrase is required", common.ErrValidationFailed))
	}
	if next != confirm {
		return p.reject(ctx, "Passphrases do not match", fmt.Errorf("%w: passphrases do not match", common.ErrValidationFailed))
	}

	err := p.locker.SetPassphrase(ctx, current, next)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrIncorrectPassword):
		return p.reject(ctx, "Incorrect password", err)
	default:
		return p.env.fail(ctx, p.log, "Failed to set lockbox passphrase", err)
	}

	p.Lock()
	p.env.succeed("Lockbox passphrase saved")
	return nil
}

// Unlock verifies passphrase and loads the private entries.
func (p *LockboxPage) Unlock(ctx context.Context, passphrase string) error {
	if p.env.User.UserID() == "" {
		return common.ErrAuthorizationMissing
	}
	if passphrase == "" {
		return p.reject(ctx, "Password is required", fmt.Errorf("%w: password is required", common.ErrValidationFailed))
	}

	token, err := p.locker.Unlock(ctx, passphrase)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrIncorrectPassword):
		return p.reject(ctx, "Incorrect password", err)
	case errors.Is(err, common.ErrLockboxNotSet):
		return p.reject(ctx, "Set a lockbox passphrase first", err)
	default:
		return p.env.fail(ctx, p.log, "Failed to unlock lockbox", err)
	}

	p.token = token
	p.env.Notifier.Success("Authorized", "You now have access to your private thoughts")
	return p.Load(ctx)
}

// Lock forgets the capability and the decrypted view of the entries.
func (p *LockboxPage) Lock() {
	p.token = ""
	p.entries.CancelDelete()
	_ = Reduce(&p.entries.State, Loaded[models.PrivateEntry]{})
}

// scope attaches the capability, failing while locked.
func (p *LockboxPage) scope(ctx context.Context) (context.Context, error) {
	if !p.Unlocked() {
		return ctx, p.reject(ctx, "Unlock the lockbox first", common.ErrLockboxLocked)
	}
	return gateway.WithCapability(ctx, p.token), nil
}

// settle locks the page again when the store stopped accepting the
// capability.
func (p *LockboxPage) settle(err error) error {
	if errors.Is(err, common.ErrLockboxLocked) {
		p.Lock()
	}
	return err
}

func (p *LockboxPage) Load(ctx context.Context) error {
	sctx, err := p.scope(ctx)
	if err != nil {
		return err
	}
	return p.settle(p.entries.Load(sctx))
}

func (p *LockboxPage) Save(ctx context.Context, e models.PrivateEntry) (models.PrivateEntry, error) {
	sctx, err := p.scope(ctx)
	if err != nil {
		return models.PrivateEntry{}, err
	}
	saved, err := p.entries.Save(sctx, e)
	return saved, p.settle(err)
}

func (p *LockboxPage) RequestDelete(id string) error { return p.entries.RequestDelete(id) }

func (p *LockboxPage) CancelDelete() { p.entries.CancelDelete() }

func (p *LockboxPage) ConfirmDelete(ctx context.Context) error {
	sctx, err := p.scope(ctx)
	if err != nil {
		return err
	}
	return p.settle(p.entries.ConfirmDelete(sctx))
}

func (p *LockboxPage) Get(id string) (models.PrivateEntry, bool) { return p.entries.Get(id) }

func (p *LockboxPage) SetSearch(q string) { p.search = q }

// Visible returns the entries whose title or content contains the search.
func (p *LockboxPage) Visible() []models.PrivateEntry {
	all := p.entries.Items()
	q := strings.ToLower(strings.TrimSpace(p.search))
	if q == "" {
		return all
	}
	out := make([]models.PrivateEntry, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
			out = append(out, e)
		}
	}
	return out
}
