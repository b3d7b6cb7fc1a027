package session

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(context.Background(), fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db)
}

func TestLoad_Empty(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSaveLoadClear(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := models.Session{UserID: "u-1", Email: "a@example.com", AccessToken: "a1", RefreshToken: "r1"}
	require.NoError(t, repo.Save(ctx, first))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, *got)

	second := models.Session{UserID: "u-2", Email: "b@example.com", AccessToken: "a2", RefreshToken: "r2"}
	require.NoError(t, repo.Save(ctx, second))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, *got, "a new sign-in replaces the old session")

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
