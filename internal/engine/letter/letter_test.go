package letter

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/moodkeeper/internal/timex"
	"github.com/stretchr/testify/assert"
)

func base(kind Kind) Input {
	return Input{
		Kind:           kind,
		TimeframeLabel: ThreeMonths.Label(),
		TargetDate:     timex.MustDate("2024-07-04"),
		Recipient:      "mira",
	}
}

func TestCompose_CustomFallback(t *testing.T) {
	for _, text := range []string{"", "   \n"} {
		in := base(Custom)
		in.CustomText = text
		assert.Equal(t, CustomFallback, Compose(in))
	}
}

func TestCompose_CustomTextVerbatim(t *testing.T) {
	in := base(Custom)
	in.CustomText = "Remember the lake.\n"
	assert.Equal(t, "Remember the lake.\n", Compose(in))

	in.Kind = "poem"
	assert.Equal(t, "Remember the lake.\n", Compose(in), "unknown kinds behave as custom")
}

func TestCompose_Header(t *testing.T) {
	got := Compose(base(Motivational))
	assert.True(t, strings.HasPrefix(got, "Dear mira,\n\nI'm writing to you from July 4, 2024, 3 months into your future. "))
	assert.True(t, strings.HasSuffix(got, "With love and belief in you,\nYour Future Self"))

	anon := base(Reflective)
	anon.Recipient = ""
	anon.TimeframeLabel = ""
	assert.True(t, strings.HasPrefix(Compose(anon), "Dear Friend,\n\nI'm writing to you from July 4, 2024, future into your future. "))
}

func TestCompose_MoodBranches(t *testing.T) {
	tests := []struct {
		kind     Kind
		mood     string
		contains string
	}{
		{Motivational, "Grateful", "feeling grateful a lot lately, and that brightness"},
		{Motivational, "ANXIOUS", "feeling anxious a lot lately. Those hard days"},
		{Motivational, "", "Your feelings have covered a wide range lately"},
		{Motivational, "Tired", "Your feelings have covered a wide range lately"},
		{Reflective, "Happy", "how often we felt happy. Hold on"},
		{Reflective, "Sad", "how often we felt sad. That feeling was pointing"},
		{Reflective, "", "every feeling, even the difficult ones"},
		{Practical, "Overwhelmed", "2. For the overwhelmed days: try 4-7-8 breathing"},
		{Practical, "Excited", "2. Write down what made you feel excited."},
		{Practical, "", "2. Small transition rituals."},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.mood, func(t *testing.T) {
			in := base(tt.kind)
			in.TopMood = tt.mood
			assert.Contains(t, Compose(in), tt.contains)
		})
	}
}

func TestCompose_GoalAndCountFallbacks(t *testing.T) {
	none := base(Reflective)
	got := Compose(none)
	assert.Contains(t, got, "The journaling practice you are about to begin")
	assert.Contains(t, got, "even before we could name our goals")
	assert.True(t, strings.HasSuffix(got, "With loving awareness,\nYour Future Self"))

	full := base(Reflective)
	full.EntryCount = 42
	full.TopGoal = "learn piano"
	got = Compose(full)
	assert.Contains(t, got, "Those 42 journal entries became a map")
	assert.Contains(t, got, "That goal of yours, learn piano,")

	few := base(Reflective)
	few.EntryCount = 4
	assert.Contains(t, Compose(few), "The journaling habit you started")

	p := base(Practical)
	p.EntryCount = 1
	p.TopGoal = "sleep by 11"
	got = Compose(p)
	assert.Contains(t, got, "3. Split sleep by 11 into weekly mini-goals.")
	assert.Contains(t, got, "You already have 1 entry to learn from")
	assert.True(t, strings.HasSuffix(got, "With practical support,\nYour Future Self"))

	m := base(Motivational)
	assert.Contains(t, Compose(m), "Give yourself a goal that matters to you.")
	assert.Contains(t, Compose(m), "Your first journal entry is waiting for you")
}

func TestCompose_NeverEmpty(t *testing.T) {
	for _, k := range append(Kinds, "") {
		assert.NotEmpty(t, Compose(Input{Kind: k}))
	}
	assert.Contains(t, Compose(Input{Kind: Practical}), "from the future, future into your future")
}

func TestTimeframes(t *testing.T) {
	from := timex.MustDate("2024-01-31")
	assert.Equal(t, "1 month", OneMonth.Label())
	assert.Equal(t, "1 year", OneYear.Label())
	assert.Equal(t, "future", Timeframe("2weeks").Label())
	assert.Equal(t, timex.MustDate("2024-07-31"), SixMonths.Target(from))
	assert.Equal(t, timex.MustDate("2025-01-31"), OneYear.Target(from))
	assert.Equal(t, ThreeMonths.Target(from), Timeframe("").Target(from))
}

func TestRecipientAndFileName(t *testing.T) {
	assert.Equal(t, "mira", RecipientFromEmail("mira@example.com"))
	assert.Equal(t, "Friend", RecipientFromEmail(""))
	assert.Equal(t, "Friend", RecipientFromEmail("@example.com"))
	assert.Equal(t, "FutureNote_2024-04-01.txt", FileName(timex.MustDate("2024-04-01")))

	var c Composer = Templates{}
	assert.Equal(t, Compose(base(Practical)), c.Compose(base(Practical)))
}
