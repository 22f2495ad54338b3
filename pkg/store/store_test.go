package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/netlist"
)

const src = `
Modules:
  A: {area: 4}
  B: {area: 2}
  C: {area: 1}
Nets:
  - [A, B, C]
`

func testRecord(t *testing.T, name string, created time.Time) *Record {
	t.Helper()
	n, err := netlist.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := NewRecord(name, []byte(src), n)
	r.CreatedAt = created
	return r
}

// testStore runs the behavior every backend must share.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first := testRecord(t, "first", base)
	second := testRecord(t, "second", base.Add(time.Minute))

	for _, r := range []*Record{first, second} {
		if err := s.Put(ctx, r); err != nil {
			t.Fatalf("Put(%s): %v", r.Name, err)
		}
	}

	got, err := s.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "first" || got.Source != src || got.Modules != 3 || got.Nets != 1 {
		t.Errorf("Get = %+v", got)
	}
	if len(got.Graph.Nodes) != 4 || got.Graph.Nodes[3].Kind != "hypernode" {
		t.Errorf("stored graph nodes = %+v", got.Graph.Nodes)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base)
	}

	// Replace
	first.Name = "renamed"
	if err := s.Put(ctx, first); err != nil {
		t.Fatalf("Put(replace): %v", err)
	}
	if got, _ := s.Get(ctx, first.ID); got == nil || got.Name != "renamed" {
		t.Errorf("replaced record = %+v", got)
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("List should return newest first, got %d records", len(list))
	}
	if list, _ := s.List(ctx, 1); len(list) != 1 {
		t.Errorf("List(1) returned %d records", len(list))
	}

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, first.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after Delete = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, first.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete(missing) = %v, want NOT_FOUND", err)
	}
	if _, err := s.Get(ctx, uuid.NewString()); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(unknown) = %v, want NOT_FOUND", err)
	}

	bad := testRecord(t, "bad", base)
	bad.ID = "../escape"
	if err := s.Put(ctx, bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Put(bad id) = %v, want INVALID_INPUT", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	testStore(t, s)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r := testRecord(t, "orig", time.Now())
	if err := s.Put(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.Name = "mutated"
	got, _ := s.Get(ctx, r.ID)
	if got.Name != "orig" {
		t.Errorf("store kept a reference to the caller's record")
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(context.Background())
	testStore(t, s)
}

func TestFileStoreIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir+"/notes.txt", []byte("hi"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir+"/broken.json", []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List returned %d records, want 0", len(list))
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FRAME_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("FRAME_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "frame_test", Collection: "netlists_" + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	t.Cleanup(func() {
		_ = s.coll.Drop(context.Background())
		_ = s.Close(context.Background())
	})
	testStore(t, s)
}
