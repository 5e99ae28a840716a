package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"retrograde/fingerprint"
	"retrograde/games/tictactoe"
)

func TicTacToe(s *session) *cobra.Command {
	var noSymmetry bool
	cmd := &cobra.Command{
		Use:   "tictactoe [BOARD]",
		Short: "Solve noughts and crosses and print the value of a board",
		Long:  `BOARD lists rows top to bottom, e.g. "X.O/.X./..O"; it defaults to the empty board.`,
		Args:  cobra.MaximumNArgs(1),

		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			board := tictactoe.Board{}
			if len(args) == 1 {
				var ok bool
				if board, ok = tictactoe.Parse(args[0]); !ok {
					return fmt.Errorf("invalid board %q", args[0])
				}
			}

			var options []tictactoe.Option
			name := fmt.Sprintf("tictactoe-seed%d", s.cfg.Seed())
			if noSymmetry {
				options = append(options, tictactoe.WithoutSymmetry())
				name += "-plain"
			}
			var keys []fingerprint.Option
			if seed := s.cfg.Seed(); seed != 0 {
				keys = append(keys, fingerprint.WithSeed(seed))
			}
			g := tictactoe.New(options...)

			// random zobrist keys differ on every run, so only seeded results are stored
			res, err := solve[tictactoe.Board](cmd.Context(), s, name, s.cfg.Seed() != 0, g, tictactoe.NewHasher(keys...))
			if err != nil {
				return err
			}
			v, ok := res.Lookup(board)
			if !ok {
				return fmt.Errorf("board %s cannot arise in play", board)
			}
			mark := "X"
			if board.ToMove() == tictactoe.O {
				mark = "O"
			}
			fmt.Fprintf(s.out, "%s, %s to move: %s\n", board, mark, v)
			return printLine(s, g, res, tictactoe.Board.String)
		}),
	}
	cmd.Flags().BoolVar(&noSymmetry, "no-symmetry", false, "treat rotated and mirrored boards as distinct")
	return cmd
}
