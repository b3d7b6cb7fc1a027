package models

import "github.com/dmitrijs2005/moodkeeper/internal/timex"

// Journal entry defaults for a fresh form.
const (
	DefaultMood          = "Neutral"
	DefaultMoodIntensity = 5
)

type JournalEntry struct {
	Meta
	Date          timex.Date `json:"date" validate:"required"`
	Title         string     `json:"title" validate:"max=200"`
	Content       string     `json:"content" validate:"required"`
	Mood          string     `json:"mood" validate:"required"`
	MoodIntensity int        `json:"mood_intensity" validate:"min=1,max=10"`
	Tags          []string   `json:"tags" validate:"dive,required"`
	IsPrivate     bool       `json:"is_private"`
}

func (e JournalEntry) LogicalDate() timex.Date { return e.Date }
func (e JournalEntry) MoodName() string        { return e.Mood }

// Fields is the writable part of the entry, as sent on insert or update.
func (e JournalEntry) Fields() Row {
	return Row{
		ColDate:          e.Date.String(),
		"title":          optionalText(e.Title),
		"content":        e.Content,
		"mood":           e.Mood,
		"mood_intensity": e.MoodIntensity,
		"tags":           labels(e.Tags),
		"is_private":     e.IsPrivate,
	}
}

func (e JournalEntry) Row() Row { return e.Meta.encode(e.Fields()) }

func (e JournalEntry) Merge(patch Row) (JournalEntry, error) {
	return merge(e.Row(), patch, DecodeJournalEntry)
}

func DecodeJournalEntry(r Row) (JournalEntry, error) {
	rr := rowReader{row: r}
	e := JournalEntry{
		Meta:          rr.meta(),
		Date:          rr.date(ColDate),
		Title:         rr.text("title"),
		Content:       rr.text("content"),
		Mood:          rr.text("mood"),
		MoodIntensity: rr.int("mood_intensity"),
		Tags:          rr.labels("tags"),
		IsPrivate:     rr.bool("is_private"),
	}
	return e, rr.err
}
