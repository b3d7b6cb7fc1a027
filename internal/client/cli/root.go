package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree over a. A fresh tree is built for
// every shell line so flag values never leak between lines.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "moodkeeper",
		Short: "Mood journal, goals and cycle tracking in your terminal",
		Long: `moodkeeper keeps a personal mood journal.

Write journal entries, track goals and your cycle, keep private thoughts
in a passphrase-protected lockbox, and look back through the mood
calendar, the weekly summary and the dashboard. The letter command writes
you a note from your future self.

Run "moodkeeper shell" for an interactive session.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(a.authCommands()...)
	root.AddCommand(
		a.journalCommand(),
		a.goalsCommand(),
		a.cycleCommand(),
		a.lockboxCommand(),
		a.calendarCommand(),
		a.weeklyCommand(),
		a.dashboardCommand(),
		a.letterCommand(),
		a.shellCommand(),
	)
	return root
}
