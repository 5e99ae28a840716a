package cmd

import (
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"retrograde/config"
)

func Root() *cobra.Command {
	s := &session{}
	root := &cobra.Command{
		Use:   "retro",
		Short: "Solve finite two-player games exhaustively",
		Long: heredoc.Doc(`retro labels every position reachable in a game with its value for the
			player to move (win, draw or loss) and the number of plies to that result under
			optimal play. Positions that can repeat forever without a forced result are draws.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := s.open(cmd); err != nil {
				return errors.Join(err, s.close())
			}
			return nil
		},
	}

	// global flags
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(Stones(s))
	root.AddCommand(Wordchain(s))
	root.AddCommand(Graph(s))
	root.AddCommand(TicTacToe(s))
	root.AddCommand(Gridwalk(s))
	root.AddCommand(Cache(s))

	return root
}
