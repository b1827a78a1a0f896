package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/user/pagesmith/internal/export"
	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/render"
	"github.com/user/pagesmith/internal/rendercache"
	"github.com/user/pagesmith/internal/store"
	"github.com/user/pagesmith/internal/validation"
)

const (
	// DefaultAddr keeps the preview on the loopback interface
	DefaultAddr = "127.0.0.1:4321"
	// WatchDebounce collapses the burst of events an editor save produces
	WatchDebounce = 150 * time.Millisecond

	requestTimeout = 30 * time.Second
	maxBodyBytes   = 4 << 20
)

// Config holds preview server configuration
type Config struct {
	Addr              string
	AllowedOrigins    []string
	PagePath          string // page file to load and watch, optional
	Watch             bool
	CacheSize         int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	Locale            string // message locale when a request sends no Accept-Language
	NarrativeMarkdown bool
}

// Server is the local live-preview host for one page
type Server struct {
	cfg      Config
	store    *store.Store
	renderer *render.Renderer
	exporter *export.Exporter
	cache    *rendercache.LRUCache
	hub      *Hub
	logger   *logging.Logger

	router     chi.Router
	httpServer *http.Server
}

// New creates a preview server around st
func New(cfg Config, st *store.Store, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	renderer := render.New(render.WithNarrativeMarkdown(cfg.NarrativeMarkdown))
	exporter, err := export.NewExporter(export.WithRenderer(renderer))
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		renderer: renderer,
		exporter: exporter,
		cache:    rendercache.NewLRUCache(cfg.CacheSize),
		hub:      NewHub(logger.Named("hub")),
		logger:   logger,
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
		MaxAge:         300,
	}))

	// The websocket outlives any request timeout
	r.Get("/ws", s.hub.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/healthz", s.handleHealth)
		r.Get("/", s.handlePage)
		r.Get("/fragment", s.handleFragment)
		r.Get("/export", s.handleExport)

		r.Route("/api", func(r chi.Router) {
			r.Get("/config", s.handleGetConfig)
			r.Put("/config", s.handlePutConfig)
			r.Post("/validate", s.handleValidate)
			r.Get("/nav", s.handleNav)
			r.Get("/tree", s.handleTree)
			r.Get("/schema", s.handleSchema)
		})
	})

	return r
}

// Handler returns the HTTP handler serving every preview route
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the reload hub
func (s *Server) Hub() *Hub { return s.hub }

// Cache returns the rendered document cache
func (s *Server) Cache() *rendercache.LRUCache { return s.cache }

// LoadPage reads the page file into the store. A missing path is not an error.
func (s *Server) LoadPage() error {
	if s.cfg.PagePath == "" {
		return nil
	}
	input, err := validation.DecodeFile(s.cfg.PagePath)
	if err != nil {
		return err
	}
	if _, err := s.store.ReplaceFromInput(input); err != nil {
		return err
	}
	s.logger.Info("Loaded page", logging.String("path", s.cfg.PagePath))
	return nil
}

// reloadFromFile applies a changed page file. Invalid content keeps the
// current configuration.
func (s *Server) reloadFromFile() {
	if err := s.LoadPage(); err != nil {
		s.logger.Warn("Ignored page change",
			logging.String("path", s.cfg.PagePath),
			logging.Error(err),
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully. Committed
// store changes are pushed to websocket clients; the page file is watched
// when configured.
func (s *Server) Run(ctx context.Context) error {
	events, unsubscribe := s.store.Subscribe()
	defer unsubscribe()

	var watcher *Watcher
	if s.cfg.Watch && s.cfg.PagePath != "" {
		w, err := NewWatcher(s.cfg.PagePath, WatchDebounce, s.reloadFromFile, s.logger.Named("watcher"))
		if err != nil {
			return fmt.Errorf("failed to watch page file: %w", err)
		}
		defer w.Close()
		watcher = w
	}

	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.forwardEvents(gctx, events)
		return nil
	})
	if watcher != nil {
		g.Go(func() error {
			watcher.Run(gctx)
			return nil
		})
	}
	g.Go(func() error {
		s.logger.Info("Preview listening", logging.String("addr", s.cfg.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()

		s.hub.Close()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down preview: %w", err)
		}
		s.logger.Info("Preview stopped")
		return nil
	})
	return g.Wait()
}

// forwardEvents turns store commits into reload messages
func (s *Server) forwardEvents(ctx context.Context, events <-chan store.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.hub.Broadcast(Message{Type: MessageReload, Version: ev.Version})
		}
	}
}
