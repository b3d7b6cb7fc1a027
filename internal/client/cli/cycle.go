package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/client/pages"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

// parseMonth reads YYYY-MM; empty means the month of today.
func parseMonth(s string, today timex.Date) (timex.Range, error) {
	if s == "" {
		return timex.MonthOf(today), nil
	}
	d, err := timex.ParseDate(s + "-01")
	if err != nil {
		return timex.Range{}, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return timex.MonthOf(d), nil
}

func parseDay(s string, today timex.Date) (timex.Date, error) {
	if s == "" {
		return today, nil
	}
	d, err := timex.ParseDate(s)
	if err != nil {
		return timex.Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

func (a *App) cycleCommand() *cobra.Command {
	cycle := &cobra.Command{
		Use:               "cycle",
		Short:             "Track your cycle",
		PersistentPreRunE: a.requireUser,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _ := cmd.Flags().GetString("month")
			month, err := parseMonth(s, a.today())
			if err != nil {
				return err
			}
			p, err := a.loadCycle(cmd.Context(), month)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, renderCycle(p.Grid()))
			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, renderSymptoms(p.SymptomCounts()))
			return nil
		},
	}
	cycle.Flags().String("month", "", "month to show, YYYY-MM (default this month)")

	log := &cobra.Command{
		Use:   "log",
		Short: "Record or update the entry of a day",
		Long:  "Symptoms: " + strings.Join(symptomIDs(), ", ") + "\nMoods: " + strings.Join(models.CycleMoods, ", "),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _ := cmd.Flags().GetString("date")
			day, err := parseDay(s, a.today())
			if err != nil {
				return err
			}
			p, err := a.loadCycle(cmd.Context(), timex.MonthOf(day))
			if err != nil {
				return err
			}

			e := p.EntryFor(day)
			f := cmd.Flags()
			if f.Changed("day") {
				e.CycleDay, _ = f.GetInt("day")
			}
			if f.Changed("symptoms") {
				e.Symptoms, _ = f.GetStringSlice("symptoms")
			}
			if f.Changed("toggle") {
				toggled, _ := f.GetStringSlice("toggle")
				for _, id := range toggled {
					e = pages.ToggleSymptom(e, id)
				}
			}
			if f.Changed("mood") {
				e.Mood, _ = f.GetString("mood")
			}
			if f.Changed("notes") {
				e.Notes, _ = f.GetString("notes")
			}

			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()
			if _, err := p.Save(ctx, e); err != nil {
				return shown(err)
			}
			return nil
		},
	}
	f := log.Flags()
	f.StringP("date", "d", "", "day, YYYY-MM-DD (default today)")
	f.Int("day", 1, "cycle day")
	f.StringSlice("symptoms", nil, "replace the symptoms")
	f.StringSlice("toggle", nil, "add the symptom, or remove it when present")
	f.StringP("mood", "m", "", "mood")
	f.String("notes", "", "free notes")

	cycle.AddCommand(log)
	return cycle
}

func symptomIDs() []string {
	ids := make([]string, len(models.CycleSymptoms))
	for i, s := range models.CycleSymptoms {
		ids[i] = s.ID
	}
	return ids
}

func (a *App) loadCycle(ctx context.Context, month timex.Range) (*pages.CyclePage, error) {
	p := pages.NewCyclePage(a.env, month.Start)
	ctx, cancel := a.timeout(ctx)
	defer cancel()
	if err := p.Load(ctx); err != nil {
		return nil, shown(err)
	}
	return p, nil
}
