package models

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJournalEntry_AcceptsWireShapes(t *testing.T) {
	created := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

	// structpb delivers numbers as float64 and lists as []any
	fromRPC := Row{
		"id": "e1", "user_id": "u1", "created_at": created.Format(time.RFC3339Nano),
		"date": "2024-01-02", "title": nil, "content": "rain all day",
		"mood": "Sad", "mood_intensity": float64(7), "tags": []any{"weather", "home"},
		"is_private": false,
	}
	// the SQL backend delivers int64 and []string
	fromSQL := Row{
		"id": "e1", "user_id": "u1", "created_at": created,
		"date": "2024-01-02", "title": nil, "content": "rain all day",
		"mood": "Sad", "mood_intensity": int64(7), "tags": []string{"weather", "home"},
		"is_private": int64(0),
	}

	a, err := DecodeJournalEntry(fromRPC)
	require.NoError(t, err)
	b, err := DecodeJournalEntry(fromSQL)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("decoders disagree (-rpc +sql):\n%s", diff)
	}
	assert.Equal(t, timex.MustDate("2024-01-02"), a.Date)
	assert.Equal(t, 7, a.MoodIntensity)
	assert.Equal(t, "e1", a.RecordID())
}

func TestDecode_RejectsWrongTypes(t *testing.T) {
	_, err := DecodeJournalEntry(Row{"mood_intensity": 7.5})
	assert.Error(t, err)

	_, err = DecodeCycleEntry(Row{"symptoms": "period"})
	assert.Error(t, err)

	_, err = DecodeGoal(Row{"target_date": "next week"})
	assert.Error(t, err)
}

func TestFields_OmitMetaAndNullOptionalText(t *testing.T) {
	g := Goal{
		Meta:   Meta{ID: "g1", UserID: "u1"},
		Title:  "Run a 10k",
		Status: StatusInProgress,
	}
	f := g.Fields()
	assert.NotContains(t, f, ColID)
	assert.NotContains(t, f, ColUserID)
	assert.Nil(t, f["description"])
	assert.Nil(t, f["target_date"])
	assert.Equal(t, []string{}, f["related_emotions"])

	r := g.Row()
	assert.Equal(t, "g1", r[ColID])
}

func TestMerge_IsShallowAndKeepsIdentity(t *testing.T) {
	orig := CycleEntry{
		Meta:     Meta{ID: "c1", UserID: "u1", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		Date:     timex.MustDate("2024-03-01"),
		CycleDay: 3,
		Symptoms: []string{"cramps"},
		Mood:     "Tired",
	}

	got, err := orig.Merge(Row{"mood": "Calm", "id": "hijack", "user_id": "other"})
	require.NoError(t, err)

	want := orig
	want.Mood = "Calm"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected merge result (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	valid := JournalEntry{
		Date: timex.MustDate("2024-01-01"), Content: "ok", Mood: "Happy", MoodIntensity: 5,
	}
	require.NoError(t, Validate(valid))

	tests := []struct {
		name   string
		record any
		msg    string
	}{
		{"goal title", Goal{Status: StatusNotStarted}, "title is required"},
		{"goal status", Goal{Title: "x", Status: "paused"}, "status must be one of"},
		{"intensity", func() JournalEntry { e := valid; e.MoodIntensity = 11; return e }(), "mood_intensity must be at most 10"},
		{"intensity zero", func() JournalEntry { e := valid; e.MoodIntensity = 0; return e }(), "mood_intensity must be at least 1"},
		{"journal date", func() JournalEntry { e := valid; e.Date = timex.Date{}; return e }(), "date is required"},
		{"cycle day", CycleEntry{Date: timex.MustDate("2024-01-01"), Mood: "Calm"}, "cycle_day must be at least 1"},
		{"cycle symptom", CycleEntry{Date: timex.MustDate("2024-01-01"), CycleDay: 1, Mood: "Calm", Symptoms: []string{"sneezing"}}, `unknown symptom "sneezing"`},
		{"private title", PrivateEntry{Content: "secret"}, "title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.record)
			require.ErrorIs(t, err, common.ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestMoodCatalog(t *testing.T) {
	assert.Equal(t, "😊", DefaultMoods.Lookup("happy").Emoji)
	assert.Equal(t, "#f43f5e", DefaultMoods.Lookup(" Overwhelmed ").Color)
	assert.Equal(t, "Grateful", DefaultMoods.Canonical("GRATEFUL"))

	unknown := DefaultMoods.Lookup("Meh")
	assert.Equal(t, "Meh", unknown.Name)
	assert.Equal(t, "📝", unknown.Emoji)
	assert.False(t, DefaultMoods.Known("Meh"))

	c := NewMoodCatalog([]MoodLabel{{Name: "Calm"}, {Name: "calm", Emoji: "x"}, {Name: ""}})
	assert.Len(t, c.Labels(), 1)
}

func TestNewCycleEntry_Defaults(t *testing.T) {
	c := NewCycleEntry(timex.MustDate("2024-05-05"))
	assert.Equal(t, 1, c.CycleDay)
	assert.Equal(t, DefaultMood, c.Mood)
	assert.Empty(t, c.Symptoms)
	assert.NoError(t, Validate(c))
}
