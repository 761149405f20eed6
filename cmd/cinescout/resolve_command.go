package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cinescout/internal/catalog"
	"cinescout/internal/config"
	"cinescout/internal/logging"
	"cinescout/internal/media"
	"cinescout/internal/resolve"
)

// newCatalogLookup builds a paced catalog lookup from configuration, shared
// by the one-shot resolve and recommend commands.
func newCatalogLookup(cfg *config.Config) (*catalog.Lookup, resolve.Images, error) {
	client, err := catalog.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		catalog.WithTimeout(time.Duration(cfg.TMDB.TimeoutSeconds)*time.Second))
	if err != nil {
		return nil, resolve.Images{}, fmt.Errorf("catalog client: %w", err)
	}
	lookup := catalog.NewLookup(client, catalog.LookupConfig{
		Pace:          time.Duration(cfg.TMDB.PaceMillis) * time.Millisecond,
		RetryAttempts: cfg.TMDB.RetryAttempts,
		RetryDelay:    time.Duration(cfg.TMDB.RetryDelaySecs) * time.Second,
		MaxResults:    cfg.TMDB.MaxResults,
	})
	images := resolve.Images{
		BaseURL:        cfg.TMDB.ImageBaseURL,
		PlaceholderURL: cfg.TMDB.PlaceholderURL,
	}
	return lookup, images, nil
}

func recordRows(records []media.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{record.Title, record.Link})
	}
	return rows
}

func newResolveCommand(configFlag *string) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "resolve TITLE [TITLE...]",
		Short: "Resolve titles against the catalog",
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
			resolver := resolve.NewResolver(lookup, images, logging.NewNop())

			records := resolver.Resolve(cmd.Context(), args, kind)
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No titles resolved")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Title", "Link"}, recordRows(records)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "movie", "Media kind (movie or tv)")
	return cmd
}
