package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"retrograde/fingerprint"
	"retrograde/game"
	"retrograde/games/wordchain"
	"retrograde/solver"
)

// verdictNames names the winner when Takahashi says the word first.
var verdictNames = map[game.Outcome]string{
	game.Win:  "Takahashi",
	game.Draw: "Draw",
	game.Loss: "Aoki",
}

func Wordchain(s *session) *cobra.Command {
	var (
		words   []string
		overlap int
	)
	cmd := &cobra.Command{
		Use:   "wordchain [CASES]",
		Short: "Decide every opening word of a word chain game",
		Long: heredoc.Doc(`wordchain plays shiritori: each word must start with the last letters of
			the previous one and the player who cannot continue loses. For every word it prints
			who wins when Takahashi opens with it and both play perfectly.

			CASES is a YAML list of vocabularies:

			  - name: sample
			    words: [abcd, bcda, ada]

			A single vocabulary may be given with --words instead.`),
		Args: cobra.MaximumNArgs(1),

		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			var cases []wordchain.Case
			switch {
			case len(args) == 1:
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open cases: %w", err)
				}
				defer f.Close()
				cases, err = wordchain.LoadCases(f)
				if err != nil {
					return err
				}
			case len(words) > 0:
				cases = []wordchain.Case{{Name: "words", Words: words}}
			default:
				return fmt.Errorf("no vocabulary: pass a cases file or --words")
			}

			// identical vocabularies are solved once
			names := lo.Map(cases, func(c wordchain.Case, _ int) string {
				return fmt.Sprintf("wordchain-%d-%016x", overlap,
					uint64(fingerprint.String(strings.Join(c.Words, "\n"))))
			})
			unique := lo.Uniq(names)
			first := lo.Map(unique, func(name string, _ int) int { return lo.IndexOf(names, name) })

			solved := make([][]game.Outcome, len(unique))
			jobs := make([]func(context.Context) error, len(unique))
			for u, i := range first {
				c := cases[i]
				jobs[u] = func(ctx context.Context) error {
					g, err := wordchain.New(c.Words, wordchain.WithOverlap(overlap))
					if err != nil {
						return fmt.Errorf("case %s: %w", c.Name, err)
					}
					res, err := solve[wordchain.Position](ctx, s, unique[u], true, g, wordchain.Hasher)
					if err != nil {
						return fmt.Errorf("case %s: %w", c.Name, err)
					}
					solved[u] = make([]game.Outcome, len(c.Words))
					for j, w := range c.Words {
						v, _ := res.Lookup(g.After(w))
						solved[u][j] = v.Outcome.Negate()
					}
					return nil
				}
			}
			if err := solver.SolveAll(cmd.Context(), s.cfg.Workers(), jobs...); err != nil {
				return err
			}
			verdicts := lo.Map(names, func(name string, _ int) []game.Outcome {
				return solved[lo.IndexOf(unique, name)]
			})

			for i, c := range cases {
				if len(cases) > 1 {
					fmt.Fprintf(s.out, "== %s\n", c.Name)
				}
				for _, o := range verdicts[i] {
					fmt.Fprintln(s.out, verdictNames[o])
				}
			}
			return nil
		}),
	}
	cmd.Flags().StringSliceVar(&words, "words", nil, "vocabulary of a single game")
	cmd.Flags().IntVar(&overlap, "overlap", wordchain.DefaultOverlap, "letters shared by consecutive words")
	return cmd
}
