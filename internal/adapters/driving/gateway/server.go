package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/mukesh2006/medic/internal/logger"
)

// Config holds gateway options.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:5988".
	Addr string

	// RatePerSecond limits accepted requests. Zero disables limiting.
	RatePerSecond float64

	// Burst is the limiter bucket size. Values below one are raised to one.
	Burst int

	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
}

// Server is the inbound HTTP gateway.
type Server struct {
	ports    *Ports
	cfg      Config
	validate *validator.Validate
	limiter  *rate.Limiter
	router   chi.Router
}

// NewServer creates a gateway over ports.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:    ports,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	if cfg.RatePerSecond > 0 {
		burst := max(cfg.Burst, 1)
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)

		r.Post("/sms", s.handleReceiveSMS)
		r.Get("/records/{id}", s.handleGetRecord)

		if s.ports.Contacts != nil {
			r.Post("/contacts", s.handleSaveContact)
			r.Get("/contacts", s.handleListContacts)
			r.Get("/contacts/{id}", s.handleGetContact)
		}
	})
	return r
}

// Handler returns the gateway's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the gateway on the configured address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("gateway listening on %s", s.cfg.Addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// rateLimit rejects requests above the configured rate.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start),
			middleware.GetReqID(r.Context()))
	})
}
