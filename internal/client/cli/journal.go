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

func (a *App) journalCommand() *cobra.Command {
	journal := &cobra.Command{
		Use:               "journal",
		Short:             "Write and browse journal entries",
		PersistentPreRunE: a.requireUser,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			return a.listJournal(cmd.Context(), search)
		},
	}
	list.Flags().StringP("search", "q", "", "match title, content, mood or tags")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.journalEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, renderJournalEntry(e, models.DefaultMoods))
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Write a new journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := pages.NewJournalEntry(a.today())
			if err := applyJournalFlags(cmd, &e); err != nil {
				return err
			}
			if e.Content == "" {
				content, err := getMultiline(a.reader, "How was your day?", a.out)
				if err != nil {
					return err
				}
				e.Content = content
			}
			return a.saveJournal(cmd.Context(), e)
		},
	}
	journalFlags(add)

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.journalEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := applyJournalFlags(cmd, &e); err != nil {
				return err
			}
			return a.saveJournal(cmd.Context(), e)
		},
	}
	journalFlags(edit)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return a.deleteJournal(cmd.Context(), args[0], yes)
		},
	}
	del.Flags().BoolP("yes", "y", false, "skip the confirmation")

	moods := &cobra.Command{
		Use:   "moods",
		Short: "List the moods and emotion tags on offer",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			for _, l := range models.DefaultMoods.Labels() {
				fmt.Fprintf(a.out, "%s %s\n", l.Emoji, moodStyle(l).Render(l.Name))
			}
			fmt.Fprintln(a.out, mutedStyle.Render("tags: "+strings.Join(pages.ExtraEmotionTags, ", ")))
		},
	}

	journal.AddCommand(list, show, add, edit, del, moods)
	return journal
}

func journalFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("date", "d", "", "entry date, YYYY-MM-DD (default today)")
	f.StringP("title", "t", "", "optional title")
	f.StringP("content", "c", "", "entry text (prompted when empty)")
	f.StringP("mood", "m", "", "mood, e.g. Happy or Anxious")
	f.IntP("intensity", "i", 0, "mood intensity 1..10")
	f.StringSlice("tags", nil, "comma separated tags")
	f.StringSlice("toggle-tag", nil, "add the tag, or remove it when present")
	f.Bool("private", false, "mark the entry private")
}

// applyJournalFlags copies the flags the user set onto e.
func applyJournalFlags(cmd *cobra.Command, e *models.JournalEntry) error {
	f := cmd.Flags()
	if f.Changed("date") {
		s, _ := f.GetString("date")
		d, err := timex.ParseDate(s)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		e.Date = d
	}
	if f.Changed("title") {
		e.Title, _ = f.GetString("title")
	}
	if f.Changed("content") {
		e.Content, _ = f.GetString("content")
	}
	if f.Changed("mood") {
		mood, _ := f.GetString("mood")
		e.Mood = models.DefaultMoods.Canonical(mood)
	}
	if f.Changed("intensity") {
		e.MoodIntensity, _ = f.GetInt("intensity")
	}
	if f.Changed("tags") {
		e.Tags, _ = f.GetStringSlice("tags")
	}
	if f.Changed("toggle-tag") {
		toggled, _ := f.GetStringSlice("toggle-tag")
		for _, t := range toggled {
			e.Tags = pages.ToggleTag(e.Tags, t)
		}
	}
	if f.Changed("private") {
		e.IsPrivate, _ = f.GetBool("private")
	}
	return nil
}

func (a *App) loadJournal(ctx context.Context) error {
	ctx, cancel := a.timeout(ctx)
	defer cancel()
	return shown(a.journal.Load(ctx))
}

func (a *App) listJournal(ctx context.Context, search string) error {
	if err := a.loadJournal(ctx); err != nil {
		return err
	}
	a.journal.SetSearch(search)
	fmt.Fprintln(a.out, renderJournal(a.journal.Visible(), models.DefaultMoods))
	return nil
}

func (a *App) journalEntry(ctx context.Context, id string) (models.JournalEntry, error) {
	if err := a.loadJournal(ctx); err != nil {
		return models.JournalEntry{}, err
	}
	e, ok := a.journal.Get(id)
	if !ok {
		return models.JournalEntry{}, fmt.Errorf("no journal entry %q", id)
	}
	return e, nil
}

func (a *App) saveJournal(ctx context.Context, e models.JournalEntry) error {
	ctx, cancel := a.timeout(ctx)
	defer cancel()

	saved, err := a.journal.Save(ctx, e)
	if err != nil {
		return shown(err)
	}
	if saved.ID != "" {
		fmt.Fprintln(a.out, mutedStyle.Render("id "+saved.ID))
	}
	return nil
}

func (a *App) deleteJournal(ctx context.Context, id string, yes bool) error {
	e, err := a.journalEntry(ctx, id)
	if err != nil {
		return err
	}
	if err := a.journal.RequestDelete(id); err != nil {
		return err
	}

	label := e.Title
	if label == "" {
		label = e.Date.String()
	}
	return a.confirmDelete(ctx, "Delete journal entry "+label+"?", yes, a.journal.ConfirmDelete, a.journal.CancelDelete)
}

// confirmDelete is the second step of every delete: ask, then confirm or
// cancel the pending request.
func (a *App) confirmDelete(ctx context.Context, question string, yes bool, confirm func(context.Context) error, cancel func()) error {
	if !yes {
		ok, err := Confirm(a.reader, question, a.out)
		if err != nil || !ok {
			cancel()
			if err == nil {
				fmt.Fprintln(a.out, mutedStyle.Render("Cancelled"))
			}
			return err
		}
	}

	ctx, stop := a.timeout(ctx)
	defer stop()
	return shown(confirm(ctx))
}
