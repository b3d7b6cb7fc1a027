package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/moodkeeper/internal/client/pages"
	"github.com/dmitrijs2005/moodkeeper/internal/engine/letter"
)

func kindNames() []string {
	out := make([]string, len(letter.Kinds))
	for i, k := range letter.Kinds {
		out[i] = string(k)
	}
	return out
}

func timeframeNames() []string {
	out := make([]string, len(letter.Timeframes))
	for i, t := range letter.Timeframes {
		out[i] = string(t)
	}
	return out
}

func (a *App) letterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "letter",
		Short:   "A note from your future self",
		Args:    cobra.NoArgs,
		PreRunE: a.requireUser,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			kind, _ := f.GetString("type")
			timeframe, _ := f.GetString("timeframe")
			text, _ := f.GetString("text")
			save, _ := f.GetBool("save")

			u, _ := a.session.CurrentUser()
			p := pages.NewNotePage(a.env, letter.Templates{}, a.letters, letter.RecipientFromEmail(u.Email), a.today())
			p.Kind = letter.Kind(kind)
			p.Timeframe = letter.Timeframe(timeframe)
			p.CustomText = text

			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()
			if p.Kind != letter.Custom {
				if err := p.Load(ctx); err != nil {
					return shown(err)
				}
			}

			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, p.Generate())
			fmt.Fprintln(a.out)

			if !save {
				return nil
			}
			_, err := p.Save(ctx)
			return shown(err)
		},
	}
	f := cmd.Flags()
	f.String("type", string(letter.Motivational), strings.Join(kindNames(), "|"))
	f.String("timeframe", string(letter.DefaultTimeframe), strings.Join(timeframeNames(), "|"))
	f.String("text", "", "your own words, for --type custom")
	f.Bool("save", false, "save the note to the letters directory")
	return cmd
}
