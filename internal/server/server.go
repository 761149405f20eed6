package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"cinescout/internal/catalog"
	"cinescout/internal/chat"
	"cinescout/internal/logging"
	"cinescout/internal/media"
	"cinescout/internal/resolve"
)

// ChatService runs one assistant turn for a caller.
type ChatService interface {
	Message(ctx context.Context, callerKey, text string) (chat.Response, error)
}

// Recommender serves title-based recommendation requests.
type Recommender interface {
	ForTitle(ctx context.Context, title string, kind media.Kind) (resolve.Recommendation, error)
}

// Browser lists catalog entries for a genre.
type Browser interface {
	DiscoverByGenre(ctx context.Context, genreID int64, kind media.Kind) ([]catalog.Hit, catalog.Outcome)
}

// Server exposes the JSON API over HTTP.
type Server struct {
	bind        string
	logger      *slog.Logger
	chat        ChatService
	recommender Recommender
	browser     Browser
	images      resolve.Images

	listener net.Listener
	server   *http.Server
}

// New builds a Server bound to the given address.
func New(bind string, chatSvc ChatService, recommender Recommender, browser Browser, images resolve.Images, logger *slog.Logger) *Server {
	srv := &Server{
		bind:        bind,
		logger:      logging.NewComponentLogger(logger, "api-server"),
		chat:        chatSvc,
		recommender: recommender,
		browser:     browser,
		images:      images,
	}
	srv.server = &http.Server{
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/genres", s.handleGenres)
	mux.HandleFunc("/api/browse/", s.handleBrowse)
	mux.HandleFunc("/api/recommend", s.handleRecommend)
	mux.HandleFunc("/api/health", s.handleHealth)
	return s.withRequestID(s.withCORS(s.withLogging(mux)))
}

// Handler returns the fully wrapped HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving and shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down outside of context cancellation.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound listener address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}
