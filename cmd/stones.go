package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"retrograde/games/stones"
)

func Stones(s *session) *cobra.Command {
	var (
		moves  []int
		misere bool
		table  bool
	)
	cmd := &cobra.Command{
		Use:   "stones PILE",
		Short: "Solve the subtraction game",
		Long: heredoc.Doc(`stones solves the game where players alternately remove one of the
			allowed amounts from a pile. The player who cannot move loses, or wins with --misere.`),
		Args: cobra.ExactArgs(1),

		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			pile, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid pile %q: %w", args[0], err)
			}
			var options []stones.Option
			if misere {
				options = append(options, stones.Misere())
			}
			g, err := stones.New(pile, moves, options...)
			if err != nil {
				return err
			}

			name := fmt.Sprintf("stones-%d-%s", pile,
				strings.Join(lo.Map(moves, func(m int, _ int) string { return strconv.Itoa(m) }), "."))
			if misere {
				name += "-misere"
			}
			res, err := solve[int](cmd.Context(), s, name, true, g, stones.Hasher)
			if err != nil {
				return err
			}

			first := pile
			if table {
				first = 0
			}
			for p := first; p <= pile; p++ {
				if v, ok := res.Lookup(p); ok {
					fmt.Fprintf(s.out, "pile %d: %s\n", p, v)
				}
			}
			return printLine(s, g, res, strconv.Itoa)
		}),
	}
	cmd.Flags().IntSliceVar(&moves, "moves", []int{1, 2, 3}, "amounts a player may remove")
	cmd.Flags().BoolVar(&misere, "misere", false, "the player who cannot move wins")
	cmd.Flags().BoolVar(&table, "table", false, "print every reachable pile")
	return cmd
}
