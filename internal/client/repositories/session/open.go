package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
	schema "github.com/dmitrijs2005/moodkeeper/internal/migrations"
)

// Open opens (creating if needed) the local session database at path and
// migrates it.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, dialect, err := dbx.Open("sqlite:" + path)
	if err != nil {
		return nil, err
	}
	if dialect != dbx.SQLite {
		_ = db.Close()
		return nil, fmt.Errorf("session database must be sqlite, got %s", dialect)
	}
	if err := schema.Apply(ctx, db, migrations.Migrations, ".", dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
