package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
)

func (a *App) lockboxCommand() *cobra.Command {
	lockbox := &cobra.Command{
		Use:               "lockbox",
		Short:             "Private thoughts behind a passphrase",
		PersistentPreRunE: a.requireUser,
	}

	passphrase := &cobra.Command{
		Use:   "passphrase",
		Short: "Set or change the lockbox passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.setPassphrase(cmd.Context())
		},
	}

	unlock := &cobra.Command{
		Use:   "unlock",
		Short: "Unlock the lockbox for this session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.unlock(cmd.Context())
		},
	}

	lock := &cobra.Command{
		Use:   "lock",
		Short: "Lock the lockbox again",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			a.lockbox.Lock()
			fmt.Fprintln(a.out, mutedStyle.Render("Locked"))
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List private entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureUnlocked(cmd.Context()); err != nil {
				return err
			}
			search, _ := cmd.Flags().GetString("search")
			a.lockbox.SetSearch(search)
			fmt.Fprintln(a.out, renderPrivate(a.lockbox.Visible()))
			return nil
		},
	}
	list.Flags().StringP("search", "q", "", "match title or content")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one private entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.privateEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s\n\n%s\n", titleStyle.Render(e.Title), e.Content)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Write a private entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := models.PrivateEntry{}
			e.Title, _ = cmd.Flags().GetString("title")
			e.Content, _ = cmd.Flags().GetString("content")
			return a.savePrivate(cmd.Context(), e)
		},
	}
	add.Flags().StringP("title", "t", "", "title")
	add.Flags().StringP("content", "c", "", "text (prompted when empty)")

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a private entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.privateEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				e.Title, _ = cmd.Flags().GetString("title")
			}
			if cmd.Flags().Changed("content") {
				e.Content, _ = cmd.Flags().GetString("content")
			}
			return a.savePrivate(cmd.Context(), e)
		},
	}
	edit.Flags().StringP("title", "t", "", "title")
	edit.Flags().StringP("content", "c", "", "text")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a private entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.privateEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.lockbox.RequestDelete(e.ID); err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			return a.confirmDelete(cmd.Context(), "Delete private entry "+e.Title+"?", yes, a.lockbox.ConfirmDelete, a.lockbox.CancelDelete)
		},
	}
	del.Flags().BoolP("yes", "y", false, "skip the confirmation")

	lockbox.AddCommand(passphrase, unlock, lock, list, show, add, edit, del)
	return lockbox
}

func (a *App) setPassphrase(ctx context.Context) error {
	current, err := getSecret(a.out, "Current passphrase (empty if none)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getSecret(a.out, "New passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getSecret(a.out, "Confirm passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	ctx, cancel := a.timeout(ctx)
	defer cancel()
	return shown(a.lockbox.SetPassphrase(ctx, string(current), string(next), string(confirm)))
}

func (a *App) unlock(ctx context.Context) error {
	pass, err := getSecret(a.out, "Lockbox passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	ctx, cancel := a.timeout(ctx)
	defer cancel()
	return shown(a.lockbox.Unlock(ctx, string(pass)))
}

// ensureUnlocked asks for the passphrase when needed; an unlocked box is
// reloaded so the list is current.
func (a *App) ensureUnlocked(ctx context.Context) error {
	if !a.lockbox.Unlocked() {
		return a.unlock(ctx)
	}
	ctx, cancel := a.timeout(ctx)
	defer cancel()
	return shown(a.lockbox.Load(ctx))
}

func (a *App) privateEntry(ctx context.Context, id string) (models.PrivateEntry, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return models.PrivateEntry{}, err
	}
	e, ok := a.lockbox.Get(id)
	if !ok {
		return models.PrivateEntry{}, fmt.Errorf("no private entry %q", id)
	}
	return e, nil
}

func (a *App) savePrivate(ctx context.Context, e models.PrivateEntry) error {
	if err := a.ensureUnlocked(ctx); err != nil {
		return err
	}
	if e.Content == "" && e.ID == "" {
		content, err := getMultiline(a.reader, "What is on your mind?", a.out)
		if err != nil {
			return err
		}
		e.Content = content
	}

	ctx, cancel := a.timeout(ctx)
	defer cancel()
	saved, err := a.lockbox.Save(ctx, e)
	if err != nil {
		return shown(err)
	}
	if saved.ID != "" {
		fmt.Fprintln(a.out, mutedStyle.Render("id "+saved.ID))
	}
	return nil
}
