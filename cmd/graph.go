package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"retrograde/fingerprint"
	"retrograde/games/tokengraph"
)

func Graph(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "graph FILE",
		Short: "Solve a token game on a directed graph",
		Long: heredoc.Doc(`graph moves a token along the edges of the graph described in FILE and
			prints the value of every vertex for the player to move:

			  start: a
			  default: loss
			  vertices:
			    - name: a
			      edges: [b]
			    - name: b
			      terminal: win`),
		Args: cobra.ExactArgs(1),

		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read graph: %w", err)
			}
			g, err := tokengraph.Load(bytes.NewReader(data))
			if err != nil {
				return err
			}

			name := fmt.Sprintf("graph-%016x", uint64(fingerprint.String(string(data))))
			res, err := solve[int](cmd.Context(), s, name, true, g, tokengraph.Hasher)
			if err != nil {
				return err
			}
			for _, vertex := range g.Names() {
				p, _ := g.Vertex(vertex)
				if v, ok := res.Lookup(p); ok {
					fmt.Fprintf(s.out, "%s: %s\n", vertex, v)
				} else {
					fmt.Fprintf(s.out, "%s: unreachable\n", vertex)
				}
			}
			return printLine(s, g, res, g.Name)
		}),
	}
}
