package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mukesh2006/medic/internal/logger"
)

// DefaultVersion is reported to clients when no build version is set.
const DefaultVersion = "dev"

// Endpoint is the path the streamable HTTP transport is mounted on.
const Endpoint = "/mcp"

const shutdownTimeout = 5 * time.Second

const instructions = `medic stores structured SMS reports from community health workers.
Use submit_sms with the sender phone and the raw message (e.g. 1!MSBB!2012#1#24#...)
and set preview to check parsing without storing. Contacts form a hierarchy of
district hospitals, health centers, clinics and people; save_contact accepts NEW
for a relation created in the same call and PARENT inside a sibling to refer back.`

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version advertised during initialisation.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// Server exposes the intake and contact services to MCP clients.
type Server struct {
	ports   *Ports
	version string
	server  *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports, version: DefaultVersion}
	for _, opt := range opts {
		opt(s)
	}

	impl := &mcp.Implementation{Name: "medic", Version: s.version}
	s.server = mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions})

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until the context is cancelled or the client leaves.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP routes: the streamable transport on Endpoint and
// a /healthz probe.
func (s *Server) Handler() http.Handler {
	stream := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle(Endpoint, stream)
	return r
}

// RunHTTP serves Handler on addr until the context is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("mcp server listening on %s%s", addr, Endpoint)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
