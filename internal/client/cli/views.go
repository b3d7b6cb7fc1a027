package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/client/pages"
	"github.com/dmitrijs2005/moodkeeper/internal/timex"
)

func (a *App) calendarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendar",
		Short:   "Mood calendar of a month",
		Args:    cobra.NoArgs,
		PreRunE: a.requireUser,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, _ := cmd.Flags().GetString("month")
			month, err := parseMonth(m, a.today())
			if err != nil {
				return err
			}
			day := month.Start
			if month.Contains(a.today()) {
				day = a.today()
			}
			if s, _ := cmd.Flags().GetString("day"); s != "" {
				if day, err = parseDay(s, a.today()); err != nil {
					return err
				}
				if !cmd.Flags().Changed("month") {
					month = timex.MonthOf(day)
				}
			}

			p := pages.NewCalendarPage(a.env, day)
			p.Month = month
			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()
			if err := p.Load(ctx); err != nil {
				return shown(err)
			}

			fmt.Fprintln(a.out, renderCalendar(p.Grid(), p.Selected, models.DefaultMoods))
			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, renderMoodCounts(p.MoodCounts(), models.DefaultMoods))
			if entries := p.DayEntries(); len(entries) > 0 {
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, titleStyle.Render(p.Selected.String()))
				fmt.Fprintln(a.out, renderJournal(entries, models.DefaultMoods))
			}
			return nil
		},
	}
	cmd.Flags().String("month", "", "month to show, YYYY-MM (default this month)")
	cmd.Flags().String("day", "", "day whose entries to list, YYYY-MM-DD")
	return cmd
}

func (a *App) weeklyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "weekly",
		Short:   "Summary of a Sunday-to-Saturday week",
		Args:    cobra.NoArgs,
		PreRunE: a.requireUser,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _ := cmd.Flags().GetString("week")
			day, err := parseDay(s, a.today())
			if err != nil {
				return err
			}
			p := pages.NewWeeklyPage(a.env, day)
			if back, _ := cmd.Flags().GetInt("back"); back > 0 {
				for range back {
					p.Week = p.Week.Prev()
				}
			}

			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()
			if err := p.Load(ctx); err != nil {
				return shown(err)
			}
			fmt.Fprintln(a.out, renderWeekly(p.Summary(), p.AllTime))
			return nil
		},
	}
	cmd.Flags().String("week", "", "any day of the week, YYYY-MM-DD (default today)")
	cmd.Flags().Int("back", 0, "go this many weeks back")
	return cmd
}

func (a *App) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Short:   "Recent entries and mood balance",
		Args:    cobra.NoArgs,
		PreRunE: a.requireUser,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()
			if err := a.dashboard.Load(ctx); err != nil {
				return shown(err)
			}
			fmt.Fprintln(a.out, renderDashboard(a.dashboard.Summary(), models.DefaultMoods))
			return nil
		},
	}
}
