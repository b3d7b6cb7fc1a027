package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/moodkeeper/internal/client/pages"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
)

func (a *App) authCommands() []*cobra.Command {
	signUp := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			return a.SignUp(cmd.Context(), email)
		},
	}
	signUp.Flags().String("email", "", "account email")

	signIn := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			return a.SignIn(cmd.Context(), email)
		},
	}
	signIn.Flags().String("email", "", "account email")

	signOut := &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.SignOut(cmd.Context())
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, ok := a.session.CurrentUser()
			if !ok {
				fmt.Fprintln(a.out, mutedStyle.Render("Not signed in"))
				return nil
			}
			fmt.Fprintf(a.out, "%s %s\n", u.Email, mutedStyle.Render(u.ID))
			return nil
		},
	}

	return []*cobra.Command{signUp, signIn, signOut, whoami}
}

func (a *App) askEmail(email string) (string, error) {
	if email != "" {
		return email, nil
	}
	return getSimpleText(a.reader, "Enter email", a.out)
}

// SignUp prompts for the missing credentials and creates the account.
//
// The password byte slices are wiped before returning.
func (a *App) SignUp(ctx context.Context, email string) error {
	email, err := a.askEmail(email)
	if err != nil {
		return err
	}

	password, err := getSecret(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getSecret(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	ctx, cancel := a.timeout(ctx)
	defer cancel()

	if err := a.session.SignUp(ctx, email, string(password), string(confirm)); err != nil {
		return a.authFailed(ctx, "Failed to sign up", err)
	}
	a.lockbox.Lock()
	a.env.Notifier.Success("Success", "Account created, you are signed in as "+email)
	return nil
}

// SignIn prompts for the missing credentials and opens a session.
func (a *App) SignIn(ctx context.Context, email string) error {
	email, err := a.askEmail(email)
	if err != nil {
		return err
	}

	password, err := getSecret(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.timeout(ctx)
	defer cancel()

	if err := a.session.SignIn(ctx, email, string(password)); err != nil {
		return a.authFailed(ctx, "Failed to sign in", err)
	}
	a.lockbox.Lock()
	a.env.Notifier.Success("Success", "Signed in as "+email)
	return nil
}

// SignOut locks the lockbox and forgets the session.
func (a *App) SignOut(ctx context.Context) error {
	a.lockbox.Lock()
	if err := a.session.SignOut(ctx); err != nil {
		a.log.Error(ctx, "sign out", "error", err)
		return err
	}
	a.env.Notifier.Success("Success", "Signed out")
	return nil
}

func (a *App) authFailed(ctx context.Context, fallback string, err error) error {
	msg := pages.Describe(err, fallback)
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		msg = "Invalid email or password"
	case errors.Is(err, common.ErrorAlreadyExists):
		msg = "An account with this email already exists"
	}
	a.log.Error(ctx, fallback, "error", err)
	a.env.Notifier.Error("Error", msg)
	return shown(err)
}

// requireUser fails commands that need a session.
func (a *App) requireUser(*cobra.Command, []string) error {
	if !a.isLoggedIn() {
		return errNotSignedIn
	}
	return nil
}
