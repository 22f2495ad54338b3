package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion is bumped whenever the cached document formats change.
const keyVersion = 1

// ArtifactKeyOpts are the export options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Squares  bool    `json:"squares,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// GraphKey is the key of the graph derived from a netlist source.
	GraphKey(sourceHash string) string

	// ArtifactKey is the key of an export of a derived graph.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// Hash returns the hex SHA-256 digest of a netlist source.
func Hash(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// digestKey is "<namespace>:<sha256 of the JSON-encoded parts>".
func digestKey(namespace string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return namespace + ":" + hex.EncodeToString(h.Sum(nil))
}

// DefaultKeyer namespaces keys by kind and versions them with keyVersion.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey returns "graph:<digest>".
func (DefaultKeyer) GraphKey(sourceHash string) string {
	return digestKey("graph", keyVersion, sourceHash)
}

// ArtifactKey returns "artifact:<digest>".
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return digestKey("artifact", keyVersion, sourceHash, opts)
}

// WithPrefix returns a Keyer that prepends prefix to every key of inner, or
// of the default keyer when inner is nil. The API server uses it so that its
// entries stay apart from CLI runs sharing one Redis database.
func WithPrefix(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return prefixKeyer{inner: inner, prefix: prefix}
}

type prefixKeyer struct {
	inner  Keyer
	prefix string
}

func (k prefixKeyer) GraphKey(sourceHash string) string {
	return k.prefix + k.inner.GraphKey(sourceHash)
}

func (k prefixKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
