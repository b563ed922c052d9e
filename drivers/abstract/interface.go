package abstract

import (
	"context"
	"net/url"

	"github.com/datazip-inc/tap-clockify/types"
)

type Config interface {
	Validate() error
}

// Client is the api handle shared by every stream of a run
type Client interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Paginate(ctx context.Context, path string, query url.Values, fn func(page []types.Record) error) error
}

// StreamDefinition describes one replicable entity; the runner matches
// catalog entries against definitions and instantiates the matching one.
type StreamDefinition interface {
	Name() string
	Requires() []string
	MatchesCatalog(entry *types.CatalogEntry) bool
	RequirementsMet(catalog *types.Catalog) bool
	// New binds the definition to a run; during discovery state, entry and
	// client are nil.
	New(config Config, state types.State, entry *types.CatalogEntry, client Client) (Stream, error)
}

// Stream is an instantiated stream definition.
//
// Sync receives the shared run state and returns it after recording its own
// bookmarks. Streams must only touch their own bookmark; this is a
// convention, the runner does not isolate entries.
type Stream interface {
	Name() string
	GenerateCatalog() ([]*types.CatalogEntry, error)
	Sync(ctx context.Context, state types.State) (types.State, error)
}

// StateWriter persists the final state of a run
type StateWriter interface {
	WriteState(state types.State) error
}

// RecordWriter receives the schema and records of a stream
type RecordWriter interface {
	WriteSchema(stream string, schema *types.Schema, keyProperties []string, bookmarkProperties ...string) error
	WriteRecord(stream string, record types.Record) error
}

// DriverInterface is implemented by a connector and consumed by the cli
type DriverInterface interface {
	Type() string
	// GetConfigRef returns the pointer the config file is decoded into
	GetConfigRef() Config
	Spec() any
	// Setup validates the config and builds the api client
	Setup(ctx context.Context) error
	// Check verifies the credentials against the api
	Check(ctx context.Context) error
	Client() Client
	Streams(output RecordWriter) []StreamDefinition
}
