package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cinescout/internal/catalog"
	"cinescout/internal/completion"
	"cinescout/internal/extraction"
	"cinescout/internal/logging"
	"cinescout/internal/media"
	"cinescout/internal/resolve"
	"cinescout/internal/session"
)

// ErrEmptyMessage indicates the incoming chat message was blank.
var ErrEmptyMessage = errors.New("chat: empty message")

// Completion is the conversational backend the service drives.
type Completion interface {
	Converse(ctx context.Context, history []completion.Turn, userText string) (string, error)
	ExtractTitles(ctx context.Context, assistantText string) (string, error)
}

// TitleResolver maps extracted titles to display records.
type TitleResolver interface {
	Resolve(ctx context.Context, titles []string, kind media.Kind) []media.Record
}

// Listing is the catalog surface used for the now-playing short-circuit.
type Listing interface {
	NowPlaying(ctx context.Context) ([]catalog.Hit, catalog.Outcome)
}

// Response is the assembled answer for one chat turn. Movies and TVShows are
// present only when resolution produced records; Error carries a degradation
// notice when the reply could not be mined for titles.
type Response struct {
	Reply   string         `json:"reply"`
	Movies  []media.Record `json:"movies,omitempty"`
	TVShows []media.Record `json:"tv_shows,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Service orchestrates a chat turn: conversation, history persistence, title
// extraction, and media resolution.
type Service struct {
	completion Completion
	parser     extraction.Parser
	resolver   TitleResolver
	listing    Listing
	sessions   session.Store
	images     resolve.Images
	logger     *slog.Logger
}

// NewService wires a chat service from its collaborators. A nil logger
// disables diagnostics.
func NewService(
	comp Completion,
	parser extraction.Parser,
	resolver TitleResolver,
	listing Listing,
	sessions session.Store,
	images resolve.Images,
	logger *slog.Logger,
) *Service {
	return &Service{
		completion: comp,
		parser:     parser,
		resolver:   resolver,
		listing:    listing,
		sessions:   sessions,
		images:     images,
		logger:     logging.NewComponentLogger(logger, "chat"),
	}
}

// Message runs one chat turn for the caller identified by callerKey.
func (s *Service) Message(ctx context.Context, callerKey, text string) (Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Response{}, ErrEmptyMessage
	}

	if isLatestTrigger(text) {
		return s.latestMovies(ctx)
	}

	history, err := s.sessions.Get(ctx, callerKey)
	if err != nil {
		return Response{}, fmt.Errorf("load session: %w", err)
	}

	reply, err := s.completion.Converse(ctx, transcript(history), text)
	if err != nil {
		return Response{}, fmt.Errorf("converse: %w", err)
	}

	updated := append(history,
		session.Turn{Role: session.RoleHuman, Text: text},
		session.Turn{Role: session.RoleAssistant, Text: reply},
	)
	if err := s.sessions.Put(ctx, callerKey, updated); err != nil {
		return Response{}, fmt.Errorf("store session: %w", err)
	}

	result, extractErr := s.extract(ctx, reply)
	if extractErr != nil {
		s.logger.Warn("title extraction failed, returning reply without media",
			logging.Error(extractErr))
		return Response{Reply: reply, Error: extractErr.Error()}, nil
	}

	resp := Response{Reply: reply}
	if movies := s.resolver.Resolve(ctx, result.Movies, media.KindMovie); len(movies) > 0 {
		resp.Movies = movies
	}
	if shows := s.resolver.Resolve(ctx, result.TVShows, media.KindTV); len(shows) > 0 {
		resp.TVShows = shows
	}
	return resp, nil
}

func (s *Service) extract(ctx context.Context, reply string) (extraction.Result, error) {
	raw, err := s.completion.ExtractTitles(ctx, reply)
	if err != nil {
		return extraction.Result{}, fmt.Errorf("extract titles: %w", err)
	}
	return s.parser.Parse(raw, reply)
}

func (s *Service) latestMovies(ctx context.Context) (Response, error) {
	hits, outcome := s.listing.NowPlaying(ctx)
	if outcome.Degraded() {
		s.logger.Warn("now-playing listing degraded",
			logging.String("outcome", outcome.String()))
	}
	resp := Response{Reply: latestReply}
	if len(hits) > 0 {
		resp.Movies = resolve.Records(hits, media.KindMovie, s.images)
	}
	return resp, nil
}

func transcript(history []session.Turn) []completion.Turn {
	turns := make([]completion.Turn, 0, len(history))
	for _, turn := range history {
		turns = append(turns, completion.Turn{Role: completion.Role(turn.Role), Text: turn.Text})
	}
	return turns
}
