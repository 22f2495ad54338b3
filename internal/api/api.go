// Package api implements the FRAME HTTP API using chi.
//
// Routes:
//
//	GET    /healthz                      liveness and build info
//	POST   /v1/graph                     build a graph from a YAML netlist body
//	POST   /v1/netlists                  build and store a YAML netlist
//	GET    /v1/netlists                  list stored netlists, newest first
//	GET    /v1/netlists/{id}             fetch a stored netlist
//	DELETE /v1/netlists/{id}             delete a stored netlist
//	GET    /v1/netlists/{id}/graph       export the derived graph of a stored netlist
//
// Graph endpoints accept ?format=json|yaml|dot|svg|pdf|png (default json),
// ?squares=true and ?detailed=true. Errors are JSON bodies of the form
// {"error": "...", "code": "..."}; validation failures map to 422, unknown
// ids to 404 and malformed requests to 400.
package api

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/frame/pkg/pipeline"
	"github.com/matzehuels/frame/pkg/store"
)

// DefaultMaxBodyBytes limits request bodies when no option overrides it.
const DefaultMaxBodyBytes = 10 << 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	maxBody int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBodyBytes limits the size of posted netlists.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a server that builds netlists with runner and persists them
// in st.
func New(runner *pipeline.Runner, st store.Store, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		store:   st,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the chi router with all routes and middleware mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/graph", s.buildGraph)

		r.Route("/netlists", func(r chi.Router) {
			r.Post("/", s.createNetlist)
			r.Get("/", s.listNetlists)
			r.Get("/{id}", s.getNetlist)
			r.Delete("/{id}", s.deleteNetlist)
			r.Get("/{id}/graph", s.netlistGraph)
		})
	})

	return r
}
