// Package sqlgw implements the record store gateway directly on a Postgres
// or SQLite database. Accounts, token rotation and the lockbox run in
// process through the services package; every statement is scoped to the
// user proven by the current access token.
package sqlgw

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/records"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/moodkeeper/internal/client/services"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
)

type Backend struct {
	db      *sql.DB
	records records.Repository
	users   *services.UserService
	lockbox *services.LockboxService
	log     logging.Logger

	mu       sync.Mutex
	session  models.Session
	onRotate func(models.Session)
}

var _ gateway.Backend = (*Backend)(nil)

// Open connects to dsn, applies the record store migrations and returns a
// signed-out backend.
func Open(ctx context.Context, dsn string, cfg *config.Config, log logging.Logger) (*Backend, error) {
	db, dialect, err := dbx.Open(dsn)
	if err != nil {
		return nil, err
	}

	m := repomanager.NewSQLRepositoryManager(dialect)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return New(db, m, cfg, log), nil
}

func New(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *Backend {
	return &Backend{
		db:      db,
		records: m.Records(db),
		users:   services.NewUserService(db, m, cfg),
		lockbox: services.NewLockboxService(db, m, cfg),
		log:     log.With("module", "sqlgw"),
	}
}

// authorize resolves the calling user, refreshing an expired access token
// once. Tables behind the lockbox also need a capability in ctx.
func (b *Backend) authorize(ctx context.Context, table string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session.AccessToken == "" {
		return "", common.ErrorUnauthorized
	}

	var userID string
	claims, err := b.users.Authenticate(b.session.AccessToken)
	switch {
	case err == nil:
		userID = claims.UserID
	case errors.Is(err, common.ErrTokenExpired):
		if err := b.rotate(ctx); err != nil {
			return "", err
		}
		userID = b.session.UserID
	default:
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	if table != "" && records.Locked(table) {
		if err := b.lockbox.Authorize(gateway.CapabilityFrom(ctx), userID); err != nil {
			return "", err
		}
	}
	return userID, nil
}

// rotate exchanges the refresh token; b.mu must be held.
func (b *Backend) rotate(ctx context.Context) error {
	next, err := b.users.Refresh(ctx, b.session.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			b.session = models.Session{}
			b.log.Info(ctx, "refresh token rejected, session dropped")
			if b.onRotate != nil {
				b.onRotate(models.Session{})
			}
		}
		return fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	b.session = *next
	b.log.Debug(ctx, "access token refreshed", "user", next.UserID)

	if b.onRotate != nil {
		b.onRotate(*next)
	}
	return nil
}

func (b *Backend) Select(ctx context.Context, table string, q gateway.Query) (*gateway.Result, error) {
	userID, err := b.authorize(ctx, table)
	if err != nil {
		return nil, err
	}
	return b.records.Select(ctx, userID, table, q)
}

func (b *Backend) Insert(ctx context.Context, table string, row models.Row) (models.Row, error) {
	userID, err := b.authorize(ctx, table)
	if err != nil {
		return nil, err
	}
	return b.records.Insert(ctx, userID, table, row)
}

func (b *Backend) Update(ctx context.Context, table, id string, patch models.Row) error {
	userID, err := b.authorize(ctx, table)
	if err != nil {
		return err
	}
	return b.records.Update(ctx, userID, table, id, patch)
}

func (b *Backend) Delete(ctx context.Context, table, id string) error {
	userID, err := b.authorize(ctx, table)
	if err != nil {
		return err
	}
	return b.records.Delete(ctx, userID, table, id)
}

func (b *Backend) Close() error {
	return b.db.Close()
}
