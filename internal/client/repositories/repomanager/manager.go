// Package repomanager hands out the SQL repositories of the record store
// bound to a connection or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/lockbox"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/records"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/refreshtokens"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Lockbox(db dbx.DBTX) lockbox.Repository
	Records(db dbx.DBTX) records.Repository
}
