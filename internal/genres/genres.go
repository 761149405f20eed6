package genres

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cinescout/internal/media"
)

// Genre pairs a URL slug with its TMDB genre ID and human-readable name.
type Genre struct {
	Slug        string
	ID          int64
	DisplayName string
}

var movieGenres = map[string]int64{
	"action":          28,
	"adventure":       12,
	"animation":       16,
	"comedy":          35,
	"crime":           80,
	"documentary":     99,
	"drama":           18,
	"family":          10751,
	"fantasy":         14,
	"history":         36,
	"horror":          27,
	"music":           10402,
	"mystery":         9648,
	"romance":         10749,
	"science_fiction": 878,
	"thriller":        53,
	"tv_movie":        10770,
	"war":             10752,
	"western":         37,
}

var tvGenres = map[string]int64{
	"action_adventure": 10759,
	"animation":        16,
	"comedy":           35,
	"crime":            80,
	"documentary":      99,
	"drama":            18,
	"family":           10751,
	"kids":             10762,
	"mystery":          9648,
	"news":             10763,
	"reality":          10764,
	"sci_fi_fantasy":   10765,
	"soap":             10766,
	"talk":             10767,
	"war_politics":     10768,
	"western":          37,
}

var titleCaser = cases.Title(language.AmericanEnglish)

// Lookup resolves a genre slug for the given media kind. The second return
// reports whether the slug is known.
func Lookup(slug string, kind media.Kind) (Genre, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	table := tableFor(kind)
	id, ok := table[slug]
	if !ok {
		return Genre{}, false
	}
	return Genre{Slug: slug, ID: id, DisplayName: DisplayName(slug)}, true
}

// All returns the known genres for a media kind, sorted by slug.
func All(kind media.Kind) []Genre {
	table := tableFor(kind)
	out := make([]Genre, 0, len(table))
	for slug, id := range table {
		out = append(out, Genre{Slug: slug, ID: id, DisplayName: DisplayName(slug)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// DisplayName converts a slug like "sci_fi_fantasy" into "Sci Fi Fantasy".
func DisplayName(slug string) string {
	return titleCaser.String(strings.ReplaceAll(strings.TrimSpace(slug), "_", " "))
}

func tableFor(kind media.Kind) map[string]int64 {
	if kind == media.KindTV {
		return tvGenres
	}
	return movieGenres
}
