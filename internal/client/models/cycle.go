package models

import "github.com/dmitrijs2005/moodkeeper/internal/timex"

type CycleEntry struct {
	Meta
	Date     timex.Date `json:"date" validate:"required"`
	CycleDay int        `json:"cycle_day" validate:"min=1"`
	Symptoms []string   `json:"symptoms" validate:"dive,symptom"`
	Mood     string     `json:"mood" validate:"required"`
	Notes    string     `json:"notes"`
}

// NewCycleEntry is the blank form for a date without a record.
func NewCycleEntry(d timex.Date) CycleEntry {
	return CycleEntry{Date: d, CycleDay: 1, Symptoms: []string{}, Mood: DefaultMood}
}

func (c CycleEntry) LogicalDate() timex.Date { return c.Date }
func (c CycleEntry) MoodName() string        { return c.Mood }

// HasSymptom reports whether id is among the recorded symptoms.
func (c CycleEntry) HasSymptom(id string) bool {
	for _, s := range c.Symptoms {
		if s == id {
			return true
		}
	}
	return false
}

func (c CycleEntry) Fields() Row {
	return Row{
		ColDate:     c.Date.String(),
		"cycle_day": c.CycleDay,
		"symptoms":  labels(c.Symptoms),
		"mood":      c.Mood,
		"notes":     optionalText(c.Notes),
	}
}

func (c CycleEntry) Row() Row { return c.Meta.encode(c.Fields()) }

func (c CycleEntry) Merge(patch Row) (CycleEntry, error) {
	return merge(c.Row(), patch, DecodeCycleEntry)
}

func DecodeCycleEntry(r Row) (CycleEntry, error) {
	rr := rowReader{row: r}
	c := CycleEntry{
		Meta:     rr.meta(),
		Date:     rr.date(ColDate),
		CycleDay: rr.int("cycle_day"),
		Symptoms: rr.labels("symptoms"),
		Mood:     rr.text("mood"),
		Notes:    rr.text("notes"),
	}
	return c, rr.err
}
