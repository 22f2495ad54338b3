// Package store persists netlists together with their derived graphs.
//
// A [Record] keeps the YAML source verbatim, so a stored netlist can be
// rebuilt or re-exported later, plus the graph document computed when it
// was stored. Backends:
//
//   - [MemoryStore]: process-local, for tests and single-instance servers
//   - [FileStore]: one JSON file per record, for the CLI
//   - [MongoStore]: MongoDB collection, for shared deployments
//
// All backends report a missing record with an error carrying
// [errors.ErrCodeNotFound].
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/frame/pkg/cache"
	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/graph"
	"github.com/matzehuels/frame/pkg/netlist"
)

// Record is a stored netlist.
type Record struct {
	ID         string         `json:"id" bson:"_id"`
	Name       string         `json:"name" bson:"name"`
	Source     string         `json:"source" bson:"source"`
	SourceHash string         `json:"source_hash" bson:"source_hash"`
	Modules    int            `json:"modules" bson:"modules"`
	Nets       int            `json:"nets" bson:"nets"`
	Graph      graph.Document `json:"graph" bson:"graph"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// NewRecord creates a record with a fresh UUID for a netlist built from src.
func NewRecord(name string, src []byte, n *netlist.Netlist) *Record {
	return &Record{
		ID:         uuid.NewString(),
		Name:       name,
		Source:     string(src),
		SourceHash: cache.Hash(src),
		Modules:    n.NumModules(),
		Nets:       len(n.Edges()),
		Graph:      graph.FromGraph(n.Graph()),
		CreatedAt:  time.Now().UTC(),
	}
}

// Store is the interface for netlist storage backends.
type Store interface {
	// Put inserts or replaces a record.
	Put(ctx context.Context, r *Record) error

	// Get returns the record with the given id.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first. A limit <= 0 means
	// no limit.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// Close releases the backend.
	Close(ctx context.Context) error
}

// ValidateID checks that id is a UUID, which every backend requires.
func ValidateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid netlist id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "netlist %s not found", id)
}
