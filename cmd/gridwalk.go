package cmd

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"retrograde/game"
	"retrograde/games/gridwalk"
)

func Gridwalk(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "gridwalk H W ROW COL S T",
		Short: "Solve the LRUD game",
		Long: heredoc.Doc(`gridwalk puts a piece on cell (ROW, COL) of an H x W grid. On step i the
			first player may move it in direction S[i] or leave it, then the second player may
			move it in direction T[i] or leave it. Directions are L, R, U and D. The first
			player wins if the piece leaves the grid.`),
		Args: cobra.ExactArgs(6),

		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			var dims [4]int
			for i := range dims {
				n, err := strconv.Atoi(args[i])
				if err != nil {
					return fmt.Errorf("invalid number %q: %w", args[i], err)
				}
				dims[i] = n
			}
			g, err := gridwalk.New(dims[0], dims[1], dims[2], dims[3], args[4], args[5])
			if err != nil {
				return err
			}

			name := fmt.Sprintf("gridwalk-%dx%d-%d-%d-%s-%s", dims[0], dims[1], dims[2], dims[3], args[4], args[5])
			res, err := solve[gridwalk.Position](cmd.Context(), s, name, true, g, gridwalk.Hasher)
			if err != nil {
				return err
			}
			v, _ := res.Lookup(g.Initial())
			stays := "NO"
			if v.Outcome == game.Loss {
				stays = "YES"
			}
			fmt.Fprintf(s.out, "first player: %s\npiece stays on the grid: %s\n", v, stays)
			return printLine(s, g, res, func(p gridwalk.Position) string {
				return fmt.Sprintf("(%d,%d) step %d player %d", p.Row, p.Col, p.Step, p.Turn+1)
			})
		}),
	}
}
