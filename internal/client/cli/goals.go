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

func (a *App) goalsCommand() *cobra.Command {
	goals := &cobra.Command{
		Use:               "goals",
		Short:             "Track personal goals",
		PersistentPreRunE: a.requireUser,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List goals grouped by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadGoals(cmd.Context()); err != nil {
				return err
			}
			if s, _ := cmd.Flags().GetString("status"); s != "" {
				fmt.Fprintln(a.out, renderGoals(a.goals.ByStatus(models.GoalStatus(s))))
				return nil
			}
			fmt.Fprintln(a.out, renderGoals(a.goals.Items()))
			return nil
		},
	}
	list.Flags().String("status", "", "only goals with this status")

	add := &cobra.Command{
		Use:   "add",
		Short: "Set a new goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := pages.NewGoal()
			if err := applyGoalFlags(cmd, &g); err != nil {
				return err
			}
			if g.Title == "" {
				title, err := getSimpleText(a.reader, "What do you want to achieve?", a.out)
				if err != nil {
					return err
				}
				g.Title = title
			}
			return a.saveGoal(cmd.Context(), g)
		},
	}
	goalFlags(add)

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.goal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := applyGoalFlags(cmd, &g); err != nil {
				return err
			}
			return a.saveGoal(cmd.Context(), g)
		},
	}
	goalFlags(edit)

	status := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a goal to another status",
		Long:  "Statuses: " + strings.Join(statusNames(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadGoals(cmd.Context()); err != nil {
				return err
			}
			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()
			return shown(a.goals.SetStatus(ctx, args[0], models.GoalStatus(args[1])))
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.goal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.goals.RequestDelete(g.ID); err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			return a.confirmDelete(cmd.Context(), "Delete goal "+g.Title+"?", yes, a.goals.ConfirmDelete, a.goals.CancelDelete)
		},
	}
	del.Flags().BoolP("yes", "y", false, "skip the confirmation")

	goals.AddCommand(list, add, edit, status, del)
	return goals
}

func statusNames() []string {
	names := make([]string, len(models.GoalStatuses))
	for i, s := range models.GoalStatuses {
		names[i] = string(s)
	}
	return names
}

func goalFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("title", "t", "", "goal title")
	f.String("description", "", "what it takes")
	f.String("target", "", "target date, YYYY-MM-DD")
	f.String("status", "", strings.Join(statusNames(), "|"))
	f.StringSlice("emotions", nil, "related emotions, e.g. Proud,Motivated")
}

func applyGoalFlags(cmd *cobra.Command, g *models.Goal) error {
	f := cmd.Flags()
	if f.Changed("title") {
		g.Title, _ = f.GetString("title")
	}
	if f.Changed("description") {
		g.Description, _ = f.GetString("description")
	}
	if f.Changed("target") {
		s, _ := f.GetString("target")
		g.TargetDate = timex.Date{}
		if s != "" {
			d, err := timex.ParseDate(s)
			if err != nil {
				return fmt.Errorf("invalid --target: %w", err)
			}
			g.TargetDate = d
		}
	}
	if f.Changed("status") {
		s, _ := f.GetString("status")
		g.Status = models.GoalStatus(s)
	}
	if f.Changed("emotions") {
		g.RelatedEmotions, _ = f.GetStringSlice("emotions")
	}
	return nil
}

func (a *App) loadGoals(ctx context.Context) error {
	ctx, cancel := a.timeout(ctx)
	defer cancel()
	return shown(a.goals.Load(ctx))
}

func (a *App) goal(ctx context.Context, id string) (models.Goal, error) {
	if err := a.loadGoals(ctx); err != nil {
		return models.Goal{}, err
	}
	g, ok := a.goals.Get(id)
	if !ok {
		return models.Goal{}, fmt.Errorf("no goal %q", id)
	}
	return g, nil
}

func (a *App) saveGoal(ctx context.Context, g models.Goal) error {
	ctx, cancel := a.timeout(ctx)
	defer cancel()

	saved, err := a.goals.Save(ctx, g)
	if err != nil {
		return shown(err)
	}
	if saved.ID != "" {
		fmt.Fprintln(a.out, mutedStyle.Render("id "+saved.ID))
	}
	return nil
}
