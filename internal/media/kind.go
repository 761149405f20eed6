package media

import (
	"fmt"
	"strings"
)

// Kind identifies whether a title is a movie or a TV/anime series. Its string
// form matches the TMDB URL path segment for the kind.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

func (k Kind) String() string { return string(k) }

// ParseKind converts user-supplied text into a Kind.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movie", "movies":
		return KindMovie, nil
	case "tv", "tv_show", "tv_shows", "show", "series":
		return KindTV, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", value)
	}
}
