package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the shell needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Execute(ctx context.Context, args []string) error
}

// lineReader is what the shell reads commands from. It is the same reader
// the prompts use, so both see the input in order.
type lineReader interface {
	ReadString(delim byte) (string, error)
}

func (a *App) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printlnFn("moodkeeper shell (type 'help' for commands)")
			runShell(cmd.Context(), a, a.status, a.reader)
			return nil
		},
	}
}

// runShell starts a read–eval–print loop over the command tree.
//
// It reads a line, splits it into words and runs it as if it had been
// given on the command line. The loop exits on EOF, on "exit" or "quit",
// or when ctx is done. Page controllers live on the App, so the lockbox
// stays unlocked between lines until "lockbox lock" or signout.
//
// Errors returned by commands are ignored here; they have already been
// printed.
func runShell(ctx context.Context, a execIface, statusFn func() string, in lineReader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("mk %s> ", statusFn()))
		line, err := in.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: journal, goals, cycle, lockbox, calendar, weekly, dashboard, letter, whoami, signout, exit")
			} else {
				printlnFn("Available commands: signup, signin, exit")
			}
			printlnFn("Add --help to any command for its options.")

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "shell":
			printlnFn("Already in the shell")

		default:
			_ = a.Execute(ctx, parts)
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}
