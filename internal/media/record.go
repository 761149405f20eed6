package media

// Record is a display-ready media entry: resolved title, a poster URL that is
// always populated (placeholder when TMDB has no poster), and a TMDB link.
// Records are immutable once constructed.
type Record struct {
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
	Link      string `json:"tmdb_link"`
}
