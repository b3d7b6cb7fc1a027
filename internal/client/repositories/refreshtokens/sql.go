package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
)

// SQLRepository keeps expiry as unix seconds so both dialects compare it
// the same way.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
	now     func() time.Time
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect, now: time.Now}
}

func (r *SQLRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	query := r.dialect.Rebind(`
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES (?, ?, ?)
	`)
	if _, err := r.db.ExecContext(ctx, query, userID, token, r.now().Add(validity).Unix()); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *SQLRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := r.dialect.Rebind(`
		SELECT user_id, expires_at
		FROM refresh_tokens
		WHERE token = ?
	`)
	rt := &models.RefreshToken{Token: token}
	var expires int64
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&rt.UserID, &expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rt.Expires = time.Unix(expires, 0)
	return rt, nil
}

func (r *SQLRepository) Delete(ctx context.Context, token string) error {
	query := r.dialect.Rebind(`DELETE FROM refresh_tokens WHERE token = ?`)
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
