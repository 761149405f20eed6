package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinescout/internal/config"
	"cinescout/internal/logging"
	"cinescout/internal/media"
	"cinescout/internal/resolve"
)

func newRecommendCommand(configFlag *string) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "recommend TITLE",
		Short: "Show recommendations for a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			kind, err := media.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			lookup, images, err := newCatalogLookup(cfg)
			if err != nil {
				return err
			}
			recommender := resolve.NewRecommender(lookup, images, logging.NewNop())

			title := strings.Join(args, " ")
			rec, err := recommender.ForTitle(cmd.Context(), title, kind)
			if errors.Is(err, resolve.ErrNoMatch) {
				return fmt.Errorf("no %s found for %q", kind, title)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sectionHeader(out, rec.Searched.Title)
			fmt.Fprintln(out, rec.Searched.Link)
			if len(rec.Related) == 0 {
				fmt.Fprintln(out, "No recommendations available")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Title", "Link"}, recordRows(rec.Related)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "movie", "Media kind (movie or tv)")
	return cmd
}
