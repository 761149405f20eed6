package resolve

import (
	"context"
	"errors"
	"log/slog"

	"cinescout/internal/logging"
	"cinescout/internal/media"
)

// ErrNoMatch indicates the catalog has no entry for the searched title.
var ErrNoMatch = errors.New("no catalog match for title")

// Recommendation is the result of a title-based recommendation request.
type Recommendation struct {
	Searched media.Record   `json:"searched"`
	Related  []media.Record `json:"related"`
}

// Recommender resolves a searched title and lists related entries for it.
type Recommender struct {
	catalog Catalog
	images  Images
	logger  *slog.Logger
}

// NewRecommender builds a Recommender. A nil logger disables diagnostics.
func NewRecommender(cat Catalog, images Images, logger *slog.Logger) *Recommender {
	return &Recommender{
		catalog: cat,
		images:  images,
		logger:  logging.NewComponentLogger(logger, "recommender"),
	}
}

// ForTitle searches the catalog for the given title and returns the top match
// together with its related entries. The searched record's poster comes from
// the detail endpoint; related posters come from the listing itself. An empty
// related list is a valid result.
func (r *Recommender) ForTitle(ctx context.Context, title string, kind media.Kind) (Recommendation, error) {
	hits, _ := r.catalog.Search(ctx, title, kind)
	if len(hits) == 0 {
		return Recommendation{}, ErrNoMatch
	}
	top := hits[0]

	posterPath, outcome := r.catalog.Poster(ctx, top.ID, kind)
	if outcome.Degraded() {
		r.logger.Warn("poster detail degraded, using placeholder",
			logging.String("title", top.DisplayTitle()),
			logging.Int64("id", top.ID),
			logging.String("outcome", outcome.String()))
	}

	rec := Recommendation{
		Searched: media.Record{
			Title:     top.DisplayTitle(),
			PosterURL: r.images.PosterURL(posterPath),
			Link:      Link(top.ID, kind),
		},
		Related: []media.Record{},
	}

	related, outcome := r.catalog.Recommendations(ctx, top.ID, kind)
	if outcome.Degraded() {
		r.logger.Warn("related listing degraded",
			logging.Int64("id", top.ID),
			logging.String("outcome", outcome.String()))
	}
	if len(related) > 0 {
		rec.Related = Records(related, kind, r.images)
	}
	return rec, nil
}
