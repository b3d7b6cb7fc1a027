package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/moodkeeper/internal/cryptox"
	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
	"github.com/stretchr/testify/require"
)

// fastParams keeps argon2 cheap in tests.
var fastParams = cryptox.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		LockboxTokenValidityDuration: time.Minute,
	}
}

func setupStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, dialect, err := dbx.Open(fmt.Sprintf("sqlite:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLRepositoryManager(dialect)
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db, m
}

func newUsers(t *testing.T) (*UserService, *sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, m := setupStore(t)
	s := NewUserService(db, m, testConfig())
	s.params = fastParams
	return s, db, m
}
