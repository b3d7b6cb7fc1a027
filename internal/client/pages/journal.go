package pages

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// ExtraEmotionTags are offered as tags next to the mood picker.
var ExtraEmotionTags = []string{
	"Proud", "Inspired", "Loved", "Motivated", "Creative",
	"Calm", "Hopeful", "Confident", "Focused", "Vulnerable",
	"Stressed", "Disappointed", "Confused", "Lonely", "Insecure",
}

// JournalPage lists the user's journal entries, newest first.
type JournalPage struct {
	*Records[models.JournalEntry]
	search string
}

func NewJournalPage(env Env) *JournalPage {
	return &JournalPage{
		Records: newRecords(env, models.JournalEntries, messagesFor("Journal entry", "journal entries", "created"), nil),
	}
}

// NewJournalEntry is the blank form: today, neutral mood at intensity 5.
func NewJournalEntry(today timex.Date) models.JournalEntry {
	return models.JournalEntry{
		Date:          today,
		Mood:          models.DefaultMood,
		MoodIntensity: models.DefaultMoodIntensity,
		Tags:          []string{},
	}
}

func (p *JournalPage) Load(ctx context.Context) error {
	return p.Records.Load(ctx)
}

// SetSearch sets the filter applied by Visible.
func (p *JournalPage) SetSearch(q string) { p.search = q }

// Visible returns the entries matching the search, case-insensitively, in
// title, content, mood or tags.
func (p *JournalPage) Visible() []models.JournalEntry {
	return SearchJournal(p.Items(), p.search)
}

// SearchJournal filters entries by q. A blank q keeps everything.
func SearchJournal(entries []models.JournalEntry, q string) []models.JournalEntry {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return entries
	}

	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if matchesJournal(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matchesJournal(e models.JournalEntry, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Content), q) ||
		strings.Contains(strings.ToLower(e.Mood), q) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// ToggleTag adds tag to tags, or removes it when present.
func ToggleTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags)+1)
	found := false
	for _, t := range tags {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}
