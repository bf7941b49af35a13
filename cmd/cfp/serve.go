package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-cfp"
	"github.com/alnah/go-cfp/internal/config"
	"github.com/alnah/go-cfp/internal/hints"
)

// Server timeouts not taken from the config file.
const (
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// pageService is the part of cfp.Service the HTTP surface needs.
type pageService interface {
	Load(ctx context.Context, lang cfp.Lang) (*cfp.Document, error)
	Render(ctx context.Context, lang cfp.Lang) (*cfp.Result, error)
}

// Compile-time interface implementation check.
var _ pageService = (*cfp.Service)(nil)

// pageServer serves rendered pages and extracted documents.
type pageServer struct {
	router      chi.Router
	svc         pageService
	defaultLang cfp.Lang
	log         *slog.Logger
}

// newPageServer creates the HTTP handler.
func newPageServer(svc pageService, defaultLang cfp.Lang, log *slog.Logger) *pageServer {
	s := &pageServer{svc: svc, defaultLang: defaultLang, log: log}
	s.setupRoutes()
	return s
}

func (s *pageServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *pageServer) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleNegotiated)
	r.Get("/{lang}", s.handlePage)
	r.Get("/{lang}/sections.json", s.handleSections)

	s.router = r
}

func (s *pageServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleNegotiated picks the language from ?lang=, then Accept-Language,
// then the configured default.
func (s *pageServer) handleNegotiated(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Vary", "Accept-Language")

	if q := r.URL.Query().Get("lang"); q != "" {
		if lang, err := cfp.ParseLang(q); err == nil {
			s.writePage(w, r, lang)
			return
		}
	}
	s.writePage(w, r, cfp.MatchLang(r.Header.Get("Accept-Language"), s.defaultLang))
}

func (s *pageServer) handlePage(w http.ResponseWriter, r *http.Request) {
	lang, ok := s.pathLang(w, r)
	if !ok {
		return
	}
	s.writePage(w, r, lang)
}

func (s *pageServer) handleSections(w http.ResponseWriter, r *http.Request) {
	lang, ok := s.pathLang(w, r)
	if !ok {
		return
	}

	doc, err := s.svc.Load(r.Context(), lang)
	if err != nil {
		if errors.Is(err, cfp.ErrContentUnavailable) {
			s.log.Error("content unavailable", "lang", lang.String(), "error", err)
			jsonError(w, cfp.ErrorMessage(lang), http.StatusServiceUnavailable)
			return
		}
		s.log.Error("load failed", "lang", lang.String(), "error", err)
		jsonError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Language", lang.String())
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(doc)
}

// pathLang reads {lang} and answers 404 for unsupported languages.
func (s *pageServer) pathLang(w http.ResponseWriter, r *http.Request) (cfp.Lang, bool) {
	lang, err := cfp.ParseLang(chi.URLParam(r, "lang"))
	if err != nil {
		http.NotFound(w, r)
		return "", false
	}
	return lang, true
}

// writePage renders lang. Unavailable content yields 503 with the error page.
func (s *pageServer) writePage(w http.ResponseWriter, r *http.Request, lang cfp.Lang) {
	res, err := s.svc.Render(r.Context(), lang)

	status := http.StatusOK
	if err != nil {
		if !errors.Is(err, cfp.ErrContentUnavailable) || res == nil {
			s.log.Error("render failed", "lang", lang.String(), "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", lang.String())
	w.WriteHeader(status)
	_, _ = w.Write([]byte(res.HTML))
}

// jsonError writes {"error": msg} with status.
func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// requestLogger logs one record per request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// runServe serves pages until ctx is canceled, then shuts down gracefully.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := prepare(flags.common, func(cfg *config.Config) error {
		mergeAssetFlags(flags.assets, cfg)
		if flags.addr != "" {
			cfg.Server.Addr = flags.addr
		}
		return nil
	})
	if err != nil {
		return err
	}

	defaultLang, err := cfp.ParseLang(cfg.DefaultLang)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	for _, lang := range cfp.Languages() {
		if cfg.Source(lang.String()) == "" {
			logger.Warn("no source configured, pages will show the error page", "lang", lang.String())
		}
	}

	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrListen, err, hints.ForListen(cfg.Server.Addr))
	}

	return serve(ctx, ln, newPageServer(svc, defaultLang, logger), cfg.Server.ReadTimeoutDuration(), logger)
}

// serve runs handler on ln until ctx is canceled.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, readTimeout time.Duration, logger *slog.Logger) error {
	httpServer := &http.Server{
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting cfp server", "addr", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
