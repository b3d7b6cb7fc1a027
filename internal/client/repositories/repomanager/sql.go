package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/lockbox"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/records"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/refreshtokens"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
	"github.com/dmitrijs2005/moodkeeper/internal/migrations"
)

// SQLRepositoryManager serves both dialects.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Lockbox(db dbx.DBTX) lockbox.Repository {
	return lockbox.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return records.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db, m.dialect)
}
