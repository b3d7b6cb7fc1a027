// Package migrations embeds the record store schema, one goose migration
// set per SQL dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// Up applies the migrations of dialect to db.
func Up(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	return Apply(ctx, db, Migrations, string(dialect), dialect)
}

// Apply runs the goose migrations found in dir of fsys.
func Apply(ctx context.Context, db *sql.DB, fsys fs.FS, dir string, dialect dbx.Dialect) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}
