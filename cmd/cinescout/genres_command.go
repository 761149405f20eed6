package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cinescout/internal/genres"
	"cinescout/internal/media"
)

func newGenresCommand() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List browsable genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := media.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			rows := make([][]string, 0)
			for _, genre := range genres.All(kind) {
				rows = append(rows, []string{genre.Slug, strconv.FormatInt(genre.ID, 10), genre.DisplayName})
			}

			out := cmd.OutOrStdout()
			sectionHeader(out, fmt.Sprintf("%s genres", kind))
			fmt.Fprintln(out, renderTable([]string{"Slug", "ID", "Name"}, rows, 1))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "movie", "Media kind (movie or tv)")
	return cmd
}
