package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"weathercard/controller"
	"weathercard/datasource"
	"weathercard/memory"
	"weathercard/observability"
	"weathercard/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ConsentCookie records that the cookie banner was dismissed
const ConsentCookie = "cookie_consent"

// Server represents the web front end
type Server struct {
	provider datasource.WeatherProvider
	location *time.Location
	logger   *slog.Logger
	server   *http.Server
}

// NewServer creates a new web server; sunrise and sunset are shown in loc
func NewServer(provider datasource.WeatherProvider, loc *time.Location, logger *slog.Logger, port int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		provider: provider,
		location: loc,
		logger:   logger,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(countRequests)

	r.Get("/", s.handlePage)
	r.Get("/search", s.handleSearch)
	r.Post("/remember", s.handleRemember)
	r.Post("/consent", s.handleConsent)
	r.Get("/static/alert.wav", handleAlertSound)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/weather", s.handleWeatherJSON)
	})

	r.Get("/health", handleHealthCheck)
	r.Handle("/metrics", observability.Handler())

	return r
}

// Start begins the web server
func (s *Server) Start() error {
	s.logger.Info("starting web server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the server, waiting for active requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// feedback collects what the controller wants the user to see and hear
// while a single request is being served
type feedback struct {
	mu    sync.Mutex
	toast *view.Toast
	alert bool
}

func (f *feedback) Notify(n controller.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toast = view.NewToast(n.Message, n.Level, n.Position, n.Duration)
}

func (f *feedback) Play() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alert = true
}

// session mounts a controller whose memory is the request's cookie jar
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*controller.Controller, *feedback) {
	fb := &feedback{}
	ctrl := controller.New(s.provider, memory.NewCookieMemory(w, r), fb, fb, s.logger)
	ctrl.Mount(r.Context())
	return ctrl, fb
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctrl, fb := s.session(w, r)
	defer ctrl.Close()
	s.render(w, r, ctrl.Snapshot(), fb)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctrl, fb := s.session(w, r)
	defer ctrl.Close()

	ctrl.Type(r.URL.Query().Get("q"))
	if pending, ok := ctrl.Commit(r.Context()); ok {
		if _, err := pending.Wait(r.Context()); err != nil {
			// client went away
			return
		}
	}
	s.render(w, r, ctrl.Snapshot(), fb)
}

func (s *Server) handleRemember(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	ctrl, fb := s.session(w, r)
	defer ctrl.Close()

	ctrl.Type(r.PostForm.Get("q"))
	ctrl.ToggleRemember(r.Context(), r.PostForm.Get("remember") == "on")
	s.render(w, r, ctrl.Snapshot(), fb)
}

func (s *Server) handleConsent(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     ConsentCookie,
		Value:    "true",
		Path:     "/",
		MaxAge:   int(memory.Expiry.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, snap controller.Snapshot, fb *feedback) {
	page := view.Page{
		Query:       snap.Query,
		Remember:    snap.Remember,
		ShowConsent: !consented(r),
	}
	if card, ok := view.NewCard(snap.Record, s.location); ok {
		page.Card = &card
	}
	fb.mu.Lock()
	page.Toast = fb.toast
	page.PlayAlert = fb.alert
	fb.mu.Unlock()

	var buf bytes.Buffer
	if err := view.RenderPage(&buf, page); err != nil {
		s.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// handleWeatherJSON returns the provider payload for q unmodified
func (s *Server) handleWeatherJSON(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	record, err := s.provider.GetWeather(r.Context(), query)
	if err != nil {
		kind := datasource.KindOf(err)
		s.logger.Warn("lookup failed", "query", query, "kind", kind, "error", err)
		writeJSON(w, statusFor(kind), map[string]string{
			"error": controller.FailureMessage,
			"kind":  kind.String(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if len(record.Raw) > 0 {
		_, _ = w.Write(record.Raw)
		return
	}
	_ = json.NewEncoder(w).Encode(record)
}

func statusFor(kind datasource.Kind) int {
	switch kind {
	case datasource.KindEmptyQuery:
		return http.StatusBadRequest
	case datasource.KindNotFound:
		return http.StatusNotFound
	case datasource.KindNetwork:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func handleAlertSound(w http.ResponseWriter, _ *http.Request) {
	wav := view.AlertWAV()
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(wav)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(wav)
}

// handleHealthCheck provides a simple health check endpoint
func handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func consented(r *http.Request) bool {
	c, err := r.Cookie(ConsentCookie)
	return err == nil && strings.EqualFold(c.Value, "true")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// countRequests records every request against its route pattern
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		observability.RequestCounter.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
