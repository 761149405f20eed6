package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cinescout/internal/chat"
	"cinescout/internal/completion"
	"cinescout/internal/genres"
	"cinescout/internal/logging"
	"cinescout/internal/media"
	"cinescout/internal/resolve"
)

type chatRequest struct {
	Message string `json:"message"`
}

type recommendRequest struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
}

type genreEntry struct {
	Slug string `json:"slug"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type genreListResponse struct {
	Kind   string       `json:"kind"`
	Genres []genreEntry `json:"genres"`
}

type browseResponse struct {
	Kind    string         `json:"kind"`
	Genre   string         `json:"genre"`
	Results []media.Record `json:"results"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller := callerKey(r)
	resp, err := s.chat.Message(r.Context(), caller, req.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		s.writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	case errors.Is(err, completion.ErrEmptyReply):
		s.writeError(w, http.StatusInternalServerError, "assistant returned an empty reply")
		return
	case err != nil:
		s.logger.Error("chat turn failed",
			logging.String(logging.FieldCaller, caller),
			logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "chat request failed")
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	kind := media.KindMovie
	if value := strings.TrimSpace(r.URL.Query().Get("kind")); value != "" {
		parsed, err := media.ParseKind(value)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = parsed
	}

	all := genres.All(kind)
	entries := make([]genreEntry, 0, len(all))
	for _, genre := range all {
		entries = append(entries, genreEntry{Slug: genre.Slug, ID: genre.ID, Name: genre.DisplayName})
	}
	s.writeJSON(w, http.StatusOK, genreListResponse{Kind: kind.String(), Genres: entries})
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/browse/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		s.writeError(w, http.StatusNotFound, "expected /api/browse/{kind}/{genre}")
		return
	}
	kind, err := media.ParseKind(parts[0])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	genre, ok := genres.Lookup(parts[1], kind)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown genre "+parts[1])
		return
	}

	hits, outcome := s.browser.DiscoverByGenre(r.Context(), genre.ID, kind)
	if outcome.Degraded() {
		s.logger.Warn("genre discovery degraded",
			logging.String("genre", genre.Slug),
			logging.String("outcome", outcome.String()))
	}
	s.writeJSON(w, http.StatusOK, browseResponse{
		Kind:    kind.String(),
		Genre:   genre.Slug,
		Results: resolve.Records(hits, kind, s.images),
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		s.writeError(w, http.StatusBadRequest, "title must not be empty")
		return
	}
	kind := media.KindMovie
	if strings.TrimSpace(req.Kind) != "" {
		parsed, err := media.ParseKind(req.Kind)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = parsed
	}

	rec, err := s.recommender.ForTitle(r.Context(), req.Title, kind)
	switch {
	case errors.Is(err, resolve.ErrNoMatch):
		s.writeError(w, http.StatusNotFound, "no match for title "+req.Title)
		return
	case err != nil:
		s.logger.Error("recommendation failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "recommendation request failed")
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
