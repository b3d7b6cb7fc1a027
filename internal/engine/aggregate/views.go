package aggregate

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// TopTags is how many tags the weekly summary keeps.
const TopTags = 10

// RecentEntries is how many entries the dashboard shows.
const RecentEntries = 3

// MoodCount is a ranked mood with its display attributes.
type MoodCount struct {
	Mood  models.MoodLabel
	Count int
}

// WeeklySummary is the weekly view over journal entries.
type WeeklySummary struct {
	Week     timex.Range
	Total    int
	Moods    []MoodCount
	Tags     []Count[string]
	Daily    []DayCount
	TopMood  string
	Polarity Polarity
	Score    int
}

// Weekly summarizes the entries of week. Entries outside week are ignored.
func Weekly(entries []models.JournalEntry, week timex.Range, catalog *models.MoodCatalog) WeeklySummary {
	in := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if week.Contains(e.Date) {
			in = append(in, e)
		}
	}

	moodKey := func(e models.JournalEntry) string { return catalog.Canonical(e.Mood) }
	ranked := TopN(in, moodKey, len(in))

	s := WeeklySummary{
		Week:     week,
		Total:    len(in),
		Moods:    make([]MoodCount, len(ranked)),
		Tags:     TopNEach(in, func(e models.JournalEntry) []string { return normalizeTags(e.Tags) }, TopTags),
		Daily:    DailyBucket(in, week),
		Polarity: MoodPolarity(in),
	}
	for i, c := range ranked {
		s.Moods[i] = MoodCount{Mood: catalog.Lookup(c.Key), Count: c.Count}
	}
	if len(ranked) > 0 {
		s.TopMood = ranked[0].Key
	}
	s.Score = PositiveScore(s.Polarity)
	return s
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DashboardSummary is the landing view.
type DashboardSummary struct {
	Recent   []models.JournalEntry
	Total    int
	Polarity Polarity
	Score    int
}

// Dashboard combines the most recent entries, the exact entry count and
// the mood history.
func Dashboard(recent []models.JournalEntry, total int, moods []models.JournalEntry) DashboardSummary {
	if len(recent) > RecentEntries {
		recent = recent[:RecentEntries]
	}
	p := MoodPolarity(moods)
	return DashboardSummary{
		Recent:   append([]models.JournalEntry{}, recent...),
		Total:    total,
		Polarity: p,
		Score:    PositiveScore(p),
	}
}

// Headline is the dashboard greeting for the entry count.
func (d DashboardSummary) Headline() string {
	switch d.Total {
	case 0:
		return "Start your journaling journey today!"
	case 1:
		return "You've written 1 journal entry so far."
	default:
		return fmt.Sprintf("You've written %d journal entries so far.", d.Total)
	}
}
