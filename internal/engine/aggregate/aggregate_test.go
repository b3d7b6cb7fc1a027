package aggregate

import (
	"math/rand"
	"testing"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(date, mood string, tags ...string) models.JournalEntry {
	return models.JournalEntry{Date: timex.MustDate(date), Mood: mood, MoodIntensity: 5, Content: "x", Tags: tags}
}

func byMood(e models.JournalEntry) string { return e.Mood }

func TestScenario_ThreeEntries(t *testing.T) {
	entries := []models.JournalEntry{
		entry("2024-01-01", "Happy"),
		entry("2024-01-02", "Sad"),
		entry("2024-01-03", "Happy"),
	}

	assert.Equal(t, map[string]int{"Happy": 2, "Sad": 1}, GroupCount(entries, byMood))

	p := MoodPolarity(entries)
	assert.Equal(t, Polarity{Positive: 2, Negative: 1, Neutral: 0}, p)
	assert.Equal(t, 67, PositiveScore(p))
}

func TestScenario_DailyBucketIsDense(t *testing.T) {
	r, err := timex.NewRange(timex.MustDate("2024-01-01"), timex.MustDate("2024-01-03"))
	require.NoError(t, err)

	got := DailyBucket([]models.JournalEntry{entry("2024-01-02", "Calm")}, r)
	assert.Equal(t, []DayCount{
		{Date: timex.MustDate("2024-01-01"), Count: 0},
		{Date: timex.MustDate("2024-01-02"), Count: 1},
		{Date: timex.MustDate("2024-01-03"), Count: 0},
	}, got)
}

func randomEntries(rng *rand.Rand, n int) []models.JournalEntry {
	moods := []string{"Happy", "Sad", "Tired", "happy", "Angry", "Meh"}
	out := make([]models.JournalEntry, n)
	for i := range out {
		d := timex.MustDate("2024-01-01").AddDays(rng.Intn(20))
		out[i] = models.JournalEntry{Date: d, Mood: moods[rng.Intn(len(moods))]}
	}
	return out
}

func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r, err := timex.NewRange(timex.MustDate("2024-01-05"), timex.MustDate("2024-01-14"))
	require.NoError(t, err)

	for iter := 0; iter < 200; iter++ {
		recs := randomEntries(rng, rng.Intn(30))

		// groupCount sums to the input size
		sum := 0
		counts := GroupCount(recs, byMood)
		for _, c := range counts {
			sum += c
		}
		require.Equal(t, len(recs), sum)

		// topN length and ordering
		n := rng.Intn(8)
		top := TopN(recs, byMood, n)
		require.Len(t, top, min(n, len(counts)))
		firstSeen := map[string]int{}
		for i, rec := range recs {
			if _, ok := firstSeen[rec.Mood]; !ok {
				firstSeen[rec.Mood] = i
			}
		}
		for i := 1; i < len(top); i++ {
			prev, cur := top[i-1], top[i]
			require.GreaterOrEqual(t, prev.Count, cur.Count)
			if prev.Count == cur.Count {
				require.Less(t, firstSeen[prev.Key], firstSeen[cur.Key], "ties keep first occurrence order")
			}
		}

		// dailyBucket density and mass
		buckets := DailyBucket(recs, r)
		require.Len(t, buckets, r.Len())
		inRange, total := 0, 0
		for _, rec := range recs {
			if r.Contains(rec.Date) {
				inRange++
			}
		}
		for _, b := range buckets {
			total += b.Count
		}
		require.Equal(t, inRange, total)

		// positiveScore is stable under recomputation
		p := MoodPolarity(recs)
		require.Equal(t, len(recs), p.Total())
		require.Equal(t, PositiveScore(p), PositiveScore(p))
	}
}

func TestEmptyInputs(t *testing.T) {
	var none []models.JournalEntry
	assert.Empty(t, GroupCount(none, byMood))
	assert.Empty(t, TopN(none, byMood, 5))
	assert.Equal(t, Polarity{}, MoodPolarity(none))
	assert.Equal(t, 0, PositiveScore(Polarity{}))
	assert.Empty(t, TopN([]models.JournalEntry{entry("2024-01-01", "Happy")}, byMood, 0))
	assert.Empty(t, TopN([]models.JournalEntry{entry("2024-01-01", "Happy")}, byMood, -3))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Positive, Classify("happy"))
	assert.Equal(t, Positive, Classify(" PEACEFUL "))
	assert.Equal(t, Negative, Classify("Overwhelmed"))
	assert.Equal(t, Neutral, Classify("Tired"))
	assert.Equal(t, Neutral, Classify("Stressed"))
	assert.Equal(t, Neutral, Classify(""))
	assert.Equal(t, "negative", Negative.String())
}

func TestTopNEach_Tags(t *testing.T) {
	entries := []models.JournalEntry{
		entry("2024-01-01", "Happy", "work", "gym"),
		entry("2024-01-02", "Sad", "family", "work"),
		entry("2024-01-03", "Happy", "gym", "work"),
	}
	top := TopNEach(entries, func(e models.JournalEntry) []string { return e.Tags }, 2)
	assert.Equal(t, []Count[string]{{Key: "work", Count: 3}, {Key: "gym", Count: 2}}, top)
	assert.Equal(t, []string{"work", "gym"}, Keys(top))
	assert.Equal(t, map[string]int{"work": 3, "gym": 2, "family": 1},
		GroupCountEach(entries, func(e models.JournalEntry) []string { return e.Tags }))
}
