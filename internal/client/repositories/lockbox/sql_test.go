package lockbox

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, d dbx.Dialect) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db, d), mock
}

func TestGet(t *testing.T) {
	repo, mock := newRepo(t, dbx.Postgres)

	mock.ExpectQuery(`SELECT\s+user_id,\s*hash\s+FROM\s+lockbox_credentials\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "hash"}).AddRow("u-1", "argon2id$x"))

	got, err := repo.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, &models.LockboxCredential{UserID: "u-1", Hash: "argon2id$x"}, got)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepo(t, dbx.SQLite)

	mock.ExpectQuery(`FROM\s+lockbox_credentials\s+WHERE\s+user_id\s*=\s*\?`).
		WithArgs("u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u-2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPut_Upserts(t *testing.T) {
	repo, mock := newRepo(t, dbx.SQLite)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+lockbox_credentials.*ON\s+CONFLICT\s*\(user_id\)\s*DO\s+UPDATE`).
		WithArgs("u-1", "h2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), models.LockboxCredential{UserID: "u-1", Hash: "h2"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_Error(t *testing.T) {
	repo, mock := newRepo(t, dbx.SQLite)

	mock.ExpectExec(`INSERT\s+INTO\s+lockbox_credentials`).WillReturnError(errors.New("disk full"))

	err := repo.Put(context.Background(), models.LockboxCredential{UserID: "u-1", Hash: "h"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
