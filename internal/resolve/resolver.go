package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cinescout/internal/catalog"
	"cinescout/internal/logging"
	"cinescout/internal/media"
)

const linkBase = "https://www.themoviedb.org"

// Catalog is the paced lookup surface the resolver consumes.
type Catalog interface {
	Search(ctx context.Context, query string, kind media.Kind) ([]catalog.Hit, catalog.Outcome)
	Poster(ctx context.Context, id int64, kind media.Kind) (string, catalog.Outcome)
	Recommendations(ctx context.Context, id int64, kind media.Kind) ([]catalog.Hit, catalog.Outcome)
}

// Images holds the poster URL construction settings.
type Images struct {
	BaseURL        string
	PlaceholderURL string
}

// PosterURL builds a display URL from a catalog poster path, falling back to
// the placeholder when the path is absent.
func (i Images) PosterURL(path string) string {
	if strings.TrimSpace(path) == "" {
		return i.PlaceholderURL
	}
	return i.BaseURL + path
}

// Link builds the external catalog page URL for an id.
func Link(id int64, kind media.Kind) string {
	return fmt.Sprintf("%s/%s/%d", linkBase, kind, id)
}

// Records converts catalog hits into display records, preserving order.
func Records(hits []catalog.Hit, kind media.Kind, images Images) []media.Record {
	records := make([]media.Record, 0, len(hits))
	for _, hit := range hits {
		records = append(records, media.Record{
			Title:     hit.DisplayTitle(),
			PosterURL: images.PosterURL(hit.PosterPath),
			Link:      Link(hit.ID, kind),
		})
	}
	return records
}

// Resolver maps titles to display records via catalog search.
type Resolver struct {
	catalog Catalog
	images  Images
	logger  *slog.Logger
}

// NewResolver builds a Resolver. A nil logger disables diagnostics.
func NewResolver(cat Catalog, images Images, logger *slog.Logger) *Resolver {
	return &Resolver{
		catalog: cat,
		images:  images,
		logger:  logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve searches each title in input order and builds a record from the top
// hit. Titles with no match are skipped; the batch always completes.
func (r *Resolver) Resolve(ctx context.Context, titles []string, kind media.Kind) []media.Record {
	records := make([]media.Record, 0, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		hits, outcome := r.catalog.Search(ctx, title, kind)
		if len(hits) == 0 {
			r.logger.Info("no catalog match, skipping title",
				logging.String("title", title),
				logging.String(logging.FieldMediaKind, kind.String()),
				logging.String("outcome", outcome.String()))
			continue
		}
		top := hits[0]
		records = append(records, media.Record{
			Title:     top.DisplayTitle(),
			PosterURL: r.images.PosterURL(top.PosterPath),
			Link:      Link(top.ID, kind),
		})
	}
	return records
}
