package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/frame/pkg/buildinfo"
	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/pipeline"
	"github.com/matzehuels/frame/pkg/store"
)

// CacheHeader reports whether an export was served from the cache.
const CacheHeader = "X-Cache"

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json; charset=utf-8",
	pipeline.FormatYAML: "application/yaml; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// health handles GET /healthz.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// buildGraph handles POST /v1/graph.
func (s *Server) buildGraph(w http.ResponseWriter, r *http.Request) {
	src, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := exportOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Source = src
	opts.Name = r.URL.Query().Get("name")
	s.export(w, r, opts)
}

// netlistGraph handles GET /v1/netlists/{id}/graph.
func (s *Server) netlistGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := exportOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Source = []byte(rec.Source)
	opts.Name = rec.Name
	s.export(w, r, opts)
}

// export runs the pipeline for a single format and writes the artifact.
func (s *Server) export(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	cacheStatus := "miss"
	if result.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(CacheHeader, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// exportOptions reads format, squares and detailed from the query string.
func exportOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}
	squares, err := boolParam(q.Get("squares"), "squares")
	if err != nil {
		return pipeline.Options{}, err
	}
	detailed, err := boolParam(q.Get("detailed"), "detailed")
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Formats:  []string{format},
		Squares:  squares,
		Detailed: detailed,
	}, nil
}

func boolParam(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
	}
	return b, nil
}

// createNetlist handles POST /v1/netlists.
func (s *Server) createNetlist(w http.ResponseWriter, r *http.Request) {
	src, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := s.runner.Build(r.Context(), pipeline.Options{Source: src})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "netlist-" + time.Now().UTC().Format("20060102-150405")
	}
	rec := store.NewRecord(name, src, n)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Debug("stored netlist", "id", rec.ID, "name", rec.Name, "modules", rec.Modules)
	w.Header().Set("Location", "/v1/netlists/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

type listResponse struct {
	Netlists []*store.Record `json:"netlists"`
}

// listNetlists handles GET /v1/netlists.
func (s *Server) listNetlists(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Netlists: recs})
}

// getNetlist handles GET /v1/netlists/{id}.
func (s *Server) getNetlist(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// deleteNetlist handles DELETE /v1/netlists/{id}.
func (s *Server) deleteNetlist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// record loads the record named by the {id} URL parameter.
func (s *Server) record(r *http.Request) (*store.Record, error) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

// readBody reads the request body up to the configured limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return data, nil
}
