// Package web serves the reelscout UI: a search page, a details page per
// title and a favorites list, all rendered on the server.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/s0up4200/reelscout/config"
	"github.com/s0up4200/reelscout/favorites"
	"github.com/s0up4200/reelscout/filter"
	"github.com/s0up4200/reelscout/omdb"
)

// Server is the web UI
type Server struct {
	cfg       config.ServerConfig
	app       *fiber.App
	api       omdb.API
	favorites *favorites.Store
	compiler  filter.Compiler
	templates *template.Template
	logger    zerolog.Logger
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer wires routes and middleware around the shared favorites store
func NewServer(cfg config.ServerConfig, api omdb.API, store *favorites.Store, compiler filter.Compiler, logger zerolog.Logger) (*Server, error) {
	if api == nil {
		return nil, errors.New("omdb client is required")
	}
	if store == nil {
		return nil, errors.New("favorites store is required")
	}
	if compiler == nil {
		compiler = filter.NewCompiler()
	}
	if cfg.FavoritesConcurrency < 1 {
		cfg.FavoritesConcurrency = 1
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		api:       api,
		favorites: store,
		compiler:  compiler,
		templates: templates,
		logger:    logger.With().Str("component", "web").Logger(),
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "reelscout",
		ErrorHandler: s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(requestLogger(s.logger))

	s.routes()

	return s, nil
}

func (s *Server) routes() {
	s.app.Get("/", s.handleSearch)
	s.app.Get("/movie/:id", s.handleDetails)
	s.app.Get("/favorites", s.handleFavorites)
	s.app.Post("/favorites/:id", s.handleToggle)
	s.app.Get("/static/placeholder.svg", s.handlePlaceholder)
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api")
	api.Get("/search", s.handleAPISearch)
	api.Get("/movie/:id", s.handleAPIDetails)
	api.Get("/favorites", s.handleAPIFavorites)
	api.Post("/favorites/:id", s.handleAPIToggle)
}

// App exposes the fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("Starting web server")
		errCh <- s.app.Listen(s.cfg.Addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down web server")

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	return <-errCh
}

// handleError renders unhandled errors; API routes get JSON
func (s *Server) handleError(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", c.Path()).Int("status", code).Msg("Unhandled error")
	}

	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

// requestLogger logs one line per request
func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("Request")

		return err
	}
}
