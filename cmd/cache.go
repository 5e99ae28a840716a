package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNoStore = errors.New("no result cache: pass --db")

func Cache(s *session) *cobra.Command {
	cache := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the stored results of --db",
		Args:  cobra.NoArgs,
	}

	cache.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored results",
		Args:  cobra.NoArgs,

		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			if s.store == nil {
				return errNoStore
			}
			keys, err := s.store.Games(cmd.Context())
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(s.out, key)
			}
			return nil
		}),
	})

	cache.AddCommand(&cobra.Command{
		Use:   "clear [NAME...]",
		Short: "Delete the named stored results, or all of them",

		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			if s.store == nil {
				return errNoStore
			}
			keys := args
			if len(keys) == 0 {
				var err error
				if keys, err = s.store.Games(cmd.Context()); err != nil {
					return err
				}
			}
			for _, key := range keys {
				if err := s.store.Delete(cmd.Context(), key); err != nil {
					return err
				}
			}
			log.Info().Msgf("deleted %d stored results", len(keys))
			return nil
		}),
	})
	return cache
}
