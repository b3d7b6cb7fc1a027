package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedJournal(t *testing.T) (harness, *JournalPage) {
	t.Helper()
	h := newHarness("u1")
	h.gw.seed(models.TableJournal,
		journalRow("e2", "2024-01-02", "Sad", "work"),
		journalRow("e1", "2024-01-01", "Happy", "family"),
	)
	p := NewJournalPage(h.env)
	require.NoError(t, p.Load(context.Background()))
	return h, p
}

func TestJournal_Load(t *testing.T) {
	h, p := loadedJournal(t)

	assert.Equal(t, []string{"e2", "e1"}, ids(p.Items()))
	assert.False(t, p.State.Loading)
	assert.Empty(t, h.notes.errors)
}

func TestJournal_LoadFailureKeepsCache(t *testing.T) {
	h, p := loadedJournal(t)
	h.gw.selectErr = errors.New("connection refused")

	err := p.Load(context.Background())

	require.ErrorIs(t, err, common.ErrFetchFailed)
	assert.Equal(t, []string{"e2", "e1"}, ids(p.Items()))
	assert.False(t, p.State.Loading)
	h.assertOneFailure(t, "Failed to fetch journal entries: fetch failed: connection refused")
}

func TestJournal_SignedOutIsSilent(t *testing.T) {
	h := newHarness("")
	p := NewJournalPage(h.env)

	assert.ErrorIs(t, p.Load(context.Background()), common.ErrAuthorizationMissing)
	_, err := p.Create(context.Background(), NewJournalEntry(timex.MustDate("2024-01-01")))
	assert.ErrorIs(t, err, common.ErrAuthorizationMissing)

	assert.Zero(t, h.gw.selectCount())
	assert.Zero(t, h.gw.writes)
	assert.Empty(t, h.notes.errors)
	assert.Zero(t, *h.errLog)
}

func TestJournal_SupersededLoadIsDropped(t *testing.T) {
	h := newHarness("u1")
	h.gw.seed(models.TableJournal, journalRow("old", "2024-01-01", "Happy"))
	p := NewJournalPage(h.env)

	ctx := context.Background()
	first := true
	h.gw.before = func(string) {
		if !first {
			return
		}
		first = false
		// a newer load starts and finishes while the first one is in flight
		h.gw.rows[models.TableJournal] = nil
		h.gw.seed(models.TableJournal, journalRow("new", "2024-01-02", "Sad"))
		require.NoError(t, p.Load(ctx))
	}

	require.NoError(t, p.Load(ctx))
	assert.Equal(t, []string{"new"}, ids(p.Items()))
}

func TestJournal_CreateValidatesFirst(t *testing.T) {
	h, p := loadedJournal(t)

	draft := NewJournalEntry(timex.MustDate("2024-01-03"))
	_, err := p.Create(context.Background(), draft)

	require.ErrorIs(t, err, common.ErrValidationFailed)
	assert.Zero(t, h.gw.writes)
	assert.Len(t, p.Items(), 2)
	h.assertOneFailure(t, "Content is required")
}

func TestJournal_Create(t *testing.T) {
	h, p := loadedJournal(t)

	draft := NewJournalEntry(timex.MustDate("2024-01-03"))
	draft.Content = "walked in the rain"
	draft.Tags = ToggleTag(draft.Tags, "Calm")

	stored, err := p.Create(context.Background(), draft)
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, []string{"Calm"}, stored.Tags)
	assert.Equal(t, stored.ID, p.Items()[0].ID)
	assert.Len(t, p.Items(), 3)
	assert.False(t, p.State.Saving)
	assert.Equal(t, []note{{"Success", "Journal entry created successfully"}}, h.notes.successes)
}

func TestJournal_CreateFailureKeepsCache(t *testing.T) {
	h, p := loadedJournal(t)
	h.gw.writeErr = errors.New("permission denied")

	draft := NewJournalEntry(timex.MustDate("2024-01-03"))
	draft.Content = "x"
	_, err := p.Create(context.Background(), draft)

	require.ErrorIs(t, err, common.ErrWriteFailed)
	assert.Equal(t, []string{"e2", "e1"}, ids(p.Items()))
	assert.False(t, p.State.Saving)
	h.assertOneFailure(t, "Failed to save journal entry")
}

func TestJournal_BusyRejectsSecondSubmit(t *testing.T) {
	h, p := loadedJournal(t)
	p.State.Saving = true

	draft := NewJournalEntry(timex.MustDate("2024-01-03"))
	draft.Content = "x"
	_, err := p.Create(context.Background(), draft)

	assert.ErrorIs(t, err, common.ErrBusy)
	assert.Zero(t, h.gw.writes)
	assert.Empty(t, h.notes.errors)
}

func TestJournal_Update(t *testing.T) {
	h, p := loadedJournal(t)
	ctx := context.Background()

	require.NoError(t, p.Update(ctx, "e1", models.Row{"mood": "Grateful"}))
	got, _ := p.Get("e1")
	assert.Equal(t, "Grateful", got.Mood)
	assert.Equal(t, []string{"e2", "e1"}, ids(p.Items()), "position is kept")
	assert.Equal(t, "Journal entry updated successfully", h.notes.successes[0].Message)

	err := p.Update(ctx, "e1", models.Row{"content": ""})
	require.ErrorIs(t, err, common.ErrValidationFailed)
	got, _ = p.Get("e1")
	assert.Equal(t, "content e1", got.Content)
	assert.Equal(t, 1, h.gw.writes)
}

func TestJournal_SaveDispatches(t *testing.T) {
	h, p := loadedJournal(t)
	ctx := context.Background()

	existing, _ := p.Get("e2")
	existing.Title = "renamed"
	saved, err := p.Save(ctx, existing)
	require.NoError(t, err)
	assert.Equal(t, "renamed", saved.Title)
	assert.Len(t, p.Items(), 2)

	fresh := NewJournalEntry(timex.MustDate("2024-01-05"))
	fresh.Content = "new"
	saved, err = p.Save(ctx, fresh)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Len(t, p.Items(), 3)
	assert.Equal(t, 2, h.gw.writes)
}

func TestJournal_DeleteNeedsConfirmation(t *testing.T) {
	h, p := loadedJournal(t)
	ctx := context.Background()

	assert.ErrorIs(t, p.ConfirmDelete(ctx), common.ErrValidationFailed)
	assert.ErrorIs(t, p.RequestDelete("missing"), common.ErrorNotFound)

	require.NoError(t, p.RequestDelete("e1"))
	p.CancelDelete()
	assert.ErrorIs(t, p.ConfirmDelete(ctx), common.ErrValidationFailed)
	assert.Zero(t, h.gw.writes)

	require.NoError(t, p.RequestDelete("e1"))
	require.NoError(t, p.ConfirmDelete(ctx))
	assert.Equal(t, []string{"e2"}, ids(p.Items()))
	assert.Equal(t, "Journal entry deleted successfully", h.notes.successes[0].Message)
}

func TestJournal_DeleteFailureKeepsRecord(t *testing.T) {
	h, p := loadedJournal(t)
	h.gw.writeErr = errors.New("timeout")

	require.NoError(t, p.RequestDelete("e1"))
	require.ErrorIs(t, p.ConfirmDelete(context.Background()), common.ErrWriteFailed)

	assert.Len(t, p.Items(), 2)
	assert.Equal(t, "e1", p.State.PendingDelete)
	h.assertOneFailure(t, "Failed to delete journal entry")
}

func TestSearchJournal(t *testing.T) {
	entries := []models.JournalEntry{
		{Meta: models.Meta{ID: "1"}, Title: "Morning run", Content: "felt strong", Mood: "Happy"},
		{Meta: models.Meta{ID: "2"}, Title: "Office", Content: "deadline", Mood: "Anxious", Tags: []string{"Work"}},
		{Meta: models.Meta{ID: "3"}, Title: "Evening", Content: "RAIN outside", Mood: "Calm"},
	}

	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"1", "2", "3"}},
		{"   ", []string{"1", "2", "3"}},
		{"RUN", []string{"1"}},
		{"rain", []string{"3"}},
		{"anx", []string{"2"}},
		{"work", []string{"2"}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SearchJournal(entries, tt.q)))
		})
	}
}

func TestToggleTag(t *testing.T) {
	tags := ToggleTag(nil, "Calm")
	assert.Equal(t, []string{"Calm"}, tags)
	tags = ToggleTag(tags, "Proud")
	assert.Equal(t, []string{"Calm", "Proud"}, tags)
	assert.Equal(t, []string{"Proud"}, ToggleTag(tags, "Calm"))
}

func TestGoals(t *testing.T) {
	h := newHarness("u1")
	h.gw.seed(models.TableGoals,
		goalRow("g2", "Read more", models.StatusInProgress),
		goalRow("g1", "Sleep early", models.StatusNotStarted),
	)
	p := NewGoalsPage(h.env)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	assert.Len(t, p.ByStatus(""), 2)
	assert.Equal(t, []string{"g2"}, ids(p.ByStatus(models.StatusInProgress)))

	require.NoError(t, p.SetStatus(ctx, "g2", models.StatusCompleted))
	assert.Equal(t, []string{"g2"}, ids(p.ByStatus(models.StatusCompleted)))

	err := p.SetStatus(ctx, "g1", "paused")
	require.ErrorIs(t, err, common.ErrValidationFailed)
	h.assertOneFailure(t, "Status must be one of")

	_, err = p.Create(ctx, NewGoal())
	require.ErrorIs(t, err, common.ErrValidationFailed)
	assert.Equal(t, "Title is required", h.notes.errors[1].Message)
	assert.Equal(t, 1, h.gw.writes)
}

func TestJournal_CreateUnreadableReplyReloads(t *testing.T) {
	h, p := loadedJournal(t)
	h.gw.reply = func(r models.Row) { r[models.ColDate] = 42 }

	draft := NewJournalEntry(timex.MustDate("2024-01-03"))
	draft.Content = "stored anyway"
	stored, err := p.Create(context.Background(), draft)

	require.NoError(t, err)
	assert.Empty(t, stored.ID)
	assert.Equal(t, 1, h.gw.writes)
	assert.Equal(t, []string{"id-1", "e2", "e1"}, ids(p.Items()))
	assert.Empty(t, h.notes.errors, "the write went through")
	assert.Equal(t, []note{{"Success", "Journal entry created successfully"}}, h.notes.successes)
	assert.False(t, p.State.Saving)
}
