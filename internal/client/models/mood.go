package models

import "strings"

// MoodLabel is one entry of the static mood reference table.
type MoodLabel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

func (m MoodLabel) RecordID() string { return m.ID }

func DecodeMoodLabel(r Row) (MoodLabel, error) {
	rr := rowReader{row: r}
	m := MoodLabel{
		ID:    rr.text(ColID),
		Name:  rr.text("name"),
		Emoji: rr.text("emoji"),
		Color: rr.text("color"),
	}
	return m, rr.err
}

// UnknownMood is what LookupMood answers for labels outside the catalog.
var UnknownMood = MoodLabel{Emoji: "📝", Color: "#9ca3af"}

// JournalMoods is the built-in mood catalog in picker order. The
// mood_types table is seeded with the same rows.
var JournalMoods = []MoodLabel{
	{Name: "Happy", Emoji: "😊", Color: "#4ade80"},
	{Name: "Excited", Emoji: "🤩", Color: "#facc15"},
	{Name: "Grateful", Emoji: "🙏", Color: "#c084fc"},
	{Name: "Content", Emoji: "😌", Color: "#60a5fa"},
	{Name: "Peaceful", Emoji: "😇", Color: "#22d3ee"},
	{Name: "Neutral", Emoji: "😐", Color: "#9ca3af"},
	{Name: "Tired", Emoji: "😴", Color: "#818cf8"},
	{Name: "Bored", Emoji: "🥱", Color: "#94a3b8"},
	{Name: "Sad", Emoji: "😢", Color: "#3b82f6"},
	{Name: "Angry", Emoji: "😠", Color: "#ef4444"},
	{Name: "Anxious", Emoji: "😰", Color: "#f59e0b"},
	{Name: "Frustrated", Emoji: "😤", Color: "#f97316"},
	{Name: "Overwhelmed", Emoji: "😩", Color: "#f43f5e"},
}

// MoodCatalog resolves labels to emoji and color.
type MoodCatalog struct {
	byName map[string]MoodLabel
	order  []MoodLabel
}

// NewMoodCatalog indexes labels case-insensitively. Later duplicates are
// ignored.
func NewMoodCatalog(labels []MoodLabel) *MoodCatalog {
	c := &MoodCatalog{byName: make(map[string]MoodLabel, len(labels))}
	for _, l := range labels {
		key := strings.ToLower(l.Name)
		if _, dup := c.byName[key]; dup || key == "" {
			continue
		}
		c.byName[key] = l
		c.order = append(c.order, l)
	}
	return c
}

// DefaultMoods is the catalog built from JournalMoods.
var DefaultMoods = NewMoodCatalog(JournalMoods)

// Lookup returns the label for name, or UnknownMood carrying name.
func (c *MoodCatalog) Lookup(name string) MoodLabel {
	if l, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l
	}
	u := UnknownMood
	u.Name = name
	return u
}

// Known reports whether name is in the catalog.
func (c *MoodCatalog) Known(name string) bool {
	_, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Labels lists the catalog in its original order.
func (c *MoodCatalog) Labels() []MoodLabel {
	return append([]MoodLabel(nil), c.order...)
}

// Canonical returns the catalog spelling of name ("happy" -> "Happy"), or
// name unchanged when unknown.
func (c *MoodCatalog) Canonical(name string) string {
	if l, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l.Name
	}
	return strings.TrimSpace(name)
}

// GoalEmotions are the emotions a goal can be linked to.
var GoalEmotions = []string{
	"Happy", "Excited", "Grateful", "Content", "Peaceful",
	"Proud", "Motivated", "Inspired", "Hopeful", "Loved",
	"Neutral", "Bored", "Tired", "Sad", "Anxious",
	"Frustrated", "Overwhelmed", "Disappointed", "Lonely", "Insecure",
}

// Symptom is a trackable cycle symptom.
type Symptom struct {
	ID    string
	Label string
}

var CycleSymptoms = []Symptom{
	{ID: "period", Label: "Period"},
	{ID: "cramps", Label: "Cramps"},
	{ID: "headache", Label: "Headache"},
	{ID: "bloating", Label: "Bloating"},
	{ID: "fatigue", Label: "Fatigue"},
	{ID: "tender-breasts", Label: "Tender Breasts"},
	{ID: "mood-swings", Label: "Mood Swings"},
}

// CycleMoods are the moods offered on the cycle tracker.
var CycleMoods = []string{"Happy", "Calm", "Neutral", "Tired", "Sad", "Irritable", "Anxious"}

func isSymptom(id string) bool {
	for _, s := range CycleSymptoms {
		if s.ID == id {
			return true
		}
	}
	return false
}
