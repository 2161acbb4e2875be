package preview

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ardnew/includer/log"
	"github.com/ardnew/includer/render"
)

// DefaultAddr is the default listen address of the preview server.
const DefaultAddr = "localhost:8080"

// IndexFile is rendered for requests naming a directory.
const IndexFile = "index.html"

const shutdownTimeout = 5 * time.Second

// Server renders source documents under a root directory on request.
type Server struct {
	router chi.Router
	engine *render.Engine
	root   string
	log    log.Logger
}

// NewServer returns a Server rendering documents below root with engine.
func NewServer(engine *render.Engine, root string, logger log.Logger) *Server {
	s := &Server{
		engine: engine,
		root:   root,
		log:    logger,
	}
	s.setupRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/_health", s.handleHealth)
	r.Get("/_stats", s.handleStats)
	r.Get("/*", s.handleDocument)

	s.router = r
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)

	go func() { errc <- srv.ListenAndServe() }()

	s.log.InfoContext(ctx, "preview server listening",
		slog.String("addr", addr),
		slog.String("root", s.root),
	)

	select {
	case err := <-errc:
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.engine.Stats()) //nolint:errcheck
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	fs := s.engine.FS()

	// Clean against "/" so the request cannot leave root.
	rel := path.Clean("/" + chi.URLParam(r, "*"))
	file := filepath.Join(s.root, filepath.FromSlash(rel))

	if fs.Exists(file) && !fs.IsFile(file) {
		file = filepath.Join(file, IndexFile)
	}

	if !fs.IsFile(file) {
		http.NotFound(w, r)

		return
	}

	text, err := fs.Read(file)
	if err != nil {
		s.fail(w, r, err)

		return
	}

	out, err := s.engine.Process(r.Context(), text, file)
	if err != nil {
		s.fail(w, r, err)

		return
	}

	if ct := mime.TypeByExtension(filepath.Ext(file)); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}

	w.Write([]byte(out)) //nolint:errcheck
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "render failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
