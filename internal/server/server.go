package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/handiism/album-grid/internal/cache"
	"github.com/handiism/album-grid/internal/catalog"
	"github.com/handiism/album-grid/internal/collage"
	"github.com/handiism/album-grid/internal/config"
	"github.com/handiism/album-grid/internal/generate"
	ioutils "github.com/handiism/album-grid/internal/io"
)

// MaxCellSize bounds the cell_size query parameter.
const MaxCellSize = 400

// Response headers set on every generated grid.
const (
	HeaderGridID        = "X-Grid-Id"
	HeaderGridDimension = "X-Grid-Dimension"
	HeaderGridPlaced    = "X-Grid-Placed"
)

// Server renders grids over HTTP.
//
// Routes:
//
//	GET /healthcheck  "OK"
//	GET /grid         ?source=URL&pattern=&dedupe=&cell_size=&format=png|jpeg
type Server struct {
	settings *config.Settings
	cache    cache.Cache
	logger   *log.Logger
	opts     []generate.Option
	images   *ioutils.ImageService
	router   chi.Router
}

// New creates a Server. c is shared by every request and stays owned by the
// caller. opts are passed to each generate.Manager.
func New(settings *config.Settings, c cache.Cache, logger *log.Logger, opts ...generate.Option) *Server {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		settings: settings,
		cache:    c,
		logger:   logger,
		opts:     opts,
		images:   ioutils.NewImageService(settings.JPEGQuality),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/healthcheck", s.handleHealthcheck)
	r.Get("/grid", s.handleGrid)
	s.router = r

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("album-grid server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("OK")); err != nil {
		s.logger.Error("Unable to write healthcheck", "err", err)
	}
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	settings, format, err := s.requestSettings(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("grid", id)
	source := r.URL.Query().Get("source")

	opts := append([]generate.Option{generate.WithCache(s.cache)}, s.opts...)
	manager := generate.NewManager(settings, func(e generate.ProgressEvent) {
		switch e.Level {
		case generate.LevelError:
			logger.Error(e.Message)
		case generate.LevelWarning:
			logger.Warn(e.Message)
		default:
			logger.Debug(e.Message)
		}
	}, opts...)
	defer manager.Close()

	ctx := r.Context()
	if err := manager.Initialize(ctx, source); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	result, err := manager.Generate(ctx)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	data, err := s.images.EncodeBytes(ctx, result.Image(), format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Info("Grid generated", "source", source, "dimension", result.Dimension, "placed", result.Placed, "failed", result.Failed)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set(HeaderGridID, id)
	w.Header().Set(HeaderGridDimension, strconv.Itoa(result.Dimension))
	w.Header().Set(HeaderGridPlaced, strconv.Itoa(result.Placed))
	if _, err := w.Write(data); err != nil {
		logger.Error("Unable to write grid", "err", err)
	}
}

// requestSettings applies the query parameters to a copy of the server
// settings.
func (s *Server) requestSettings(q url.Values) (*config.Settings, ioutils.Format, error) {
	settings := *s.settings

	source := q.Get("source")
	if source == "" {
		return nil, "", errors.New("missing source parameter")
	}
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, "", fmt.Errorf("source must be an http(s) URL: %q", source)
	}

	if v := q.Get("pattern"); v != "" {
		p, err := collage.ParsePattern(v)
		if err != nil {
			return nil, "", err
		}
		settings.Pattern = p.String()
	}
	if v := q.Get("dedupe"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, "", fmt.Errorf("dedupe: %w", err)
		}
		settings.RemoveDuplicates = b
	}
	if v := q.Get("cell_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > MaxCellSize {
			return nil, "", fmt.Errorf("cell_size must be between 1 and %d", MaxCellSize)
		}
		settings.CellSize = n
	}

	format := ioutils.FormatPNG
	if v := q.Get("format"); v != "" {
		f, err := ioutils.ParseFormat(v)
		if err != nil {
			return nil, "", err
		}
		format = f
	}

	return &settings, format, nil
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrUnsupportedSource):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNoArtwork),
		errors.Is(err, collage.ErrEmptyInput),
		errors.Is(err, collage.ErrDegenerateGrid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
