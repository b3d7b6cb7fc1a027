package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/aggregate"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

var (
	accent      = lipgloss.Color("#c084fc")
	muted       = lipgloss.Color("#9ca3af")
	positive    = lipgloss.Color("#4ade80")
	negative    = lipgloss.Color("#ef4444")
	periodColor = lipgloss.Color("#f43f5e")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(positive)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(negative)
	cellStyle    = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	labelStyle   = lipgloss.NewStyle().Width(14)
)

const maxBar = 30

var weekdays = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func moodStyle(l models.MoodLabel) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color))
}

func firstLine(s string, max int) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	if r := []rune(s); len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}

func renderJournal(entries []models.JournalEntry, catalog *models.MoodCatalog) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No journal entries yet.")
	}
	var b strings.Builder
	for _, e := range entries {
		l := catalog.Lookup(e.Mood)
		title := e.Title
		if title == "" {
			title = firstLine(e.Content, 40)
		}
		fmt.Fprintf(&b, "%s  %s %s  %s",
			e.Date,
			l.Emoji,
			moodStyle(l).Render(fmt.Sprintf("%-11s %2d/10", catalog.Canonical(e.Mood), e.MoodIntensity)),
			title,
		)
		if len(e.Tags) > 0 {
			b.WriteString("  " + mutedStyle.Render("#"+strings.Join(e.Tags, " #")))
		}
		b.WriteString("  " + mutedStyle.Render(e.ID) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderJournalEntry(e models.JournalEntry, catalog *models.MoodCatalog) string {
	l := catalog.Lookup(e.Mood)
	var b strings.Builder
	if e.Title != "" {
		b.WriteString(titleStyle.Render(e.Title) + "\n")
	}
	fmt.Fprintf(&b, "%s  %s %s (%d/10)\n", e.Date, l.Emoji, moodStyle(l).Render(catalog.Canonical(e.Mood)), e.MoodIntensity)
	if len(e.Tags) > 0 {
		b.WriteString(mutedStyle.Render("#"+strings.Join(e.Tags, " #")) + "\n")
	}
	if e.IsPrivate {
		b.WriteString(mutedStyle.Render("private") + "\n")
	}
	b.WriteString("\n" + e.Content)
	return b.String()
}

func renderGoals(goals []models.Goal) string {
	if len(goals) == 0 {
		return mutedStyle.Render("No goals yet.")
	}
	var b strings.Builder
	for _, status := range models.GoalStatuses {
		var group []models.Goal
		for _, g := range goals {
			if g.Status == status {
				group = append(group, g)
			}
		}
		if len(group) == 0 {
			continue
		}
		b.WriteString(titleStyle.Render(status.Label()) + "\n")
		for _, g := range group {
			fmt.Fprintf(&b, "  %s", g.Title)
			if !g.TargetDate.IsZero() {
				b.WriteString(mutedStyle.Render("  by " + g.TargetDate.String()))
			}
			if len(g.RelatedEmotions) > 0 {
				b.WriteString(mutedStyle.Render("  (" + strings.Join(g.RelatedEmotions, ", ") + ")"))
			}
			b.WriteString("  " + mutedStyle.Render(g.ID) + "\n")
			if g.Description != "" {
				b.WriteString("    " + firstLine(g.Description, 60) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPrivate(entries []models.PrivateEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("The lockbox is empty.")
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s  %s\n", titleStyle.Render(e.Title), firstLine(e.Content, 50), mutedStyle.Render(e.ID))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderGrid draws a Sunday-first month. mark styles the days holding a
// record; selected is underlined.
func renderGrid[T any](g aggregate.Grid[T], selected timex.Date, mark func(T) lipgloss.Style) string {
	var b strings.Builder
	start := g.Month.Start
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", start.Month(), start.Year())) + "\n")

	for _, d := range weekdays {
		b.WriteString(cellStyle.Render(d))
	}
	b.WriteString("\n")

	for _, week := range g.Weeks() {
		for _, c := range week {
			if c.Date.IsZero() {
				b.WriteString(cellStyle.Render(""))
				continue
			}
			st := cellStyle
			if c.Record != nil {
				st = st.Inherit(mark(*c.Record)).Bold(true)
			}
			if c.Date == selected {
				st = st.Underline(true)
			}
			b.WriteString(st.Render(fmt.Sprint(c.Date.Day())))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCalendar(g aggregate.Grid[models.JournalEntry], selected timex.Date, catalog *models.MoodCatalog) string {
	return renderGrid(g, selected, func(e models.JournalEntry) lipgloss.Style {
		return moodStyle(catalog.Lookup(e.Mood))
	})
}

func renderCycle(g aggregate.Grid[models.CycleEntry]) string {
	return renderGrid(g, timex.Date{}, func(e models.CycleEntry) lipgloss.Style {
		if e.HasSymptom("period") {
			return lipgloss.NewStyle().Foreground(periodColor)
		}
		return lipgloss.NewStyle().Foreground(accent)
	})
}

func bar(n, max int) string {
	if max <= 0 || n <= 0 {
		return ""
	}
	w := n * maxBar / max
	if w == 0 {
		w = 1
	}
	return strings.Repeat("█", w)
}

func renderMoodCounts(counts []aggregate.Count[string], catalog *models.MoodCatalog) string {
	if len(counts) == 0 {
		return mutedStyle.Render("No moods recorded.")
	}
	var b strings.Builder
	for _, c := range counts {
		l := catalog.Lookup(c.Key)
		fmt.Fprintf(&b, "%s %s %s %d\n", l.Emoji, labelStyle.Render(c.Key), moodStyle(l).Render(bar(c.Count, counts[0].Count)), c.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSymptoms(counts []aggregate.Count[string]) string {
	if len(counts) == 0 {
		return mutedStyle.Render("No symptoms recorded.")
	}
	labels := make(map[string]string, len(models.CycleSymptoms))
	for _, s := range models.CycleSymptoms {
		labels[s.ID] = s.Label
	}
	var b strings.Builder
	for _, c := range counts {
		fmt.Fprintf(&b, "%s %s %d\n", labelStyle.Render(labels[c.Key]), bar(c.Count, counts[0].Count), c.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderWeekly(s aggregate.WeeklySummary, allTime int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Week of "+s.Week.String()) + "\n")
	fmt.Fprintf(&b, "%d entries this week, %d in total\n\n", s.Total, allTime)

	if s.Total == 0 {
		b.WriteString(mutedStyle.Render("No entries this week."))
		return b.String()
	}

	top := s.Moods[0].Count
	for _, m := range s.Moods {
		fmt.Fprintf(&b, "%s %s %s %d\n", m.Mood.Emoji, labelStyle.Render(m.Mood.Name), moodStyle(m.Mood).Render(bar(m.Count, top)), m.Count)
	}

	b.WriteString("\n")
	busiest := 0
	for _, d := range s.Daily {
		busiest = max(busiest, d.Count)
	}
	for _, d := range s.Daily {
		fmt.Fprintf(&b, "%s %s %s %d\n", d.Date.Weekday().String()[:3], d.Date, bar(d.Count, busiest), d.Count)
	}

	if len(s.Tags) > 0 {
		tags := make([]string, len(s.Tags))
		for i, t := range s.Tags {
			tags[i] = fmt.Sprintf("#%s (%d)", t.Key, t.Count)
		}
		b.WriteString("\n" + mutedStyle.Render(strings.Join(tags, "  ")) + "\n")
	}

	fmt.Fprintf(&b, "\nTop mood: %s. Positive score: %d%%", s.TopMood, s.Score)
	return b.String()
}

func renderDashboard(s aggregate.DashboardSummary, catalog *models.MoodCatalog) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard") + "\n")
	b.WriteString(s.Headline() + "\n")
	if s.Total == 0 {
		return strings.TrimRight(b.String(), "\n")
	}

	fmt.Fprintf(&b, "\nPositive score: %s\n", successStyle.Render(fmt.Sprintf("%d%%", s.Score)))
	fmt.Fprintf(&b, "%s %d  %s %d  %s %d\n",
		successStyle.Render("positive"), s.Polarity.Positive,
		mutedStyle.Render("neutral"), s.Polarity.Neutral,
		errorStyle.Render("negative"), s.Polarity.Negative,
	)

	b.WriteString("\n" + titleStyle.Render("Recent entries") + "\n")
	b.WriteString(renderJournal(s.Recent, catalog))
	return b.String()
}
