package lockbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Get(ctx context.Context, userID string) (*models.LockboxCredential, error) {
	query := r.dialect.Rebind(`SELECT user_id, hash FROM lockbox_credentials WHERE user_id = ?`)

	cred := &models.LockboxCredential{}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&cred.UserID, &cred.Hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cred, nil
}

func (r *SQLRepository) Put(ctx context.Context, cred models.LockboxCredential) error {
	query := r.dialect.Rebind(`
		INSERT INTO lockbox_credentials (user_id, hash) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET hash = excluded.hash
	`)
	if _, err := r.db.ExecContext(ctx, query, cred.UserID, cred.Hash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
