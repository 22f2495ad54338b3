// Package observability lets callers watch the pipeline, its cache lookups
// and the HTTP API without those packages knowing about any metrics or
// tracing backend.
//
// Hooks are process-wide. Install a value implementing any of
// [PipelineHooks], [CacheHooks] and [HTTPHooks] once at startup:
//
//	observability.Install(observability.NewLogHooks(logger))
//
// Events without an installed hook go to [Noop].
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the netlist pipeline.
type PipelineHooks interface {
	// Build events: parsing the YAML source and deriving the graph.
	OnBuildStart(ctx context.Context, name string, sourceBytes int)
	OnBuildComplete(ctx context.Context, name string, nodeCount int, duration time.Duration, err error)

	// Export events: producing artifacts for the requested formats.
	OnExportStart(ctx context.Context, formats []string)
	OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is "graph" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest is called when a request arrives, before routing.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse is called after the handler returns. route is the matched
	// pattern such as /v1/netlists/{id}, not the raw path.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// Noop implements every hook interface and ignores all events. Embed it to
// handle only some events.
type Noop struct{}

func (Noop) OnBuildStart(context.Context, string, int)                          {}
func (Noop) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (Noop) OnExportStart(context.Context, []string)                            {}
func (Noop) OnExportComplete(context.Context, []string, time.Duration, error)   {}
func (Noop) OnCacheHit(context.Context, string)                                 {}
func (Noop) OnCacheMiss(context.Context, string)                                {}
func (Noop) OnCacheSet(context.Context, string, int)                            {}
func (Noop) OnRequest(context.Context, string, string)                          {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration)     {}

// slot holds the installed hooks of one kind.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
}

func (s *slot[T]) load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) store(h T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = h
}

var (
	pipelineSlot = &slot[PipelineHooks]{cur: Noop{}}
	cacheSlot    = &slot[CacheHooks]{cur: Noop{}}
	httpSlot     = &slot[HTTPHooks]{cur: Noop{}}
)

// Install registers h for every hook interface it implements and reports
// whether it implemented any.
func Install(h any) bool {
	ok := false
	if p, is := h.(PipelineHooks); is {
		SetPipelineHooks(p)
		ok = true
	}
	if c, is := h.(CacheHooks); is {
		SetCacheHooks(c)
		ok = true
	}
	if x, is := h.(HTTPHooks); is {
		SetHTTPHooks(x)
		ok = true
	}
	return ok
}

// SetPipelineHooks installs pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.store(h)
	}
}

// SetCacheHooks installs cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.store(h)
	}
}

// SetHTTPHooks installs HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.store(h)
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load() }

// Reset uninstalls all hooks.
func Reset() {
	pipelineSlot.store(Noop{})
	cacheSlot.store(Noop{})
	httpSlot.store(Noop{})
}
