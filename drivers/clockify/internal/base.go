package driver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/datazip-inc/tap-clockify/drivers/abstract"
	"github.com/datazip-inc/tap-clockify/pkg/clockify"
	"github.com/datazip-inc/tap-clockify/types"
	"github.com/datazip-inc/tap-clockify/utils/logger"
)

const (
	FullTable   = "FULL_TABLE"
	Incremental = "INCREMENTAL"
)

type emitFn func(record types.Record) error

// fetchFn pages through the upstream resource calling emit for each record
type fetchFn func(ctx context.Context, s *baseStream, emit emitFn) error

// baseStream carries what every clockify stream shares; concrete streams
// only provide the fetch logic.
type baseStream struct {
	table          string
	keyProperties  []string
	replicationKey string

	config   *Config
	state    types.State
	entry    *types.CatalogEntry
	client   abstract.Client
	output   abstract.RecordWriter
	excluded map[string]bool
	fetch    fetchFn
}

// streamSpec is the static description of a stream used by the registry
type streamSpec struct {
	table          string
	keyProperties  []string
	replicationKey string
	requires       []string
	fetch          fetchFn
}

func (spec streamSpec) definition(output abstract.RecordWriter) *abstract.Definition {
	return abstract.NewDefinition(spec.table, func(config abstract.Config, state types.State, entry *types.CatalogEntry, client abstract.Client) (abstract.Stream, error) {
		cfg, ok := config.(*Config)
		if !ok {
			return nil, fmt.Errorf("unexpected config type %T for stream %s", config, spec.table)
		}

		return &baseStream{
			table:          spec.table,
			keyProperties:  spec.keyProperties,
			replicationKey: spec.replicationKey,
			config:         cfg,
			state:          state,
			entry:          entry,
			client:         client,
			output:         output,
			excluded:       excludedFields(entry),
			fetch:          spec.fetch,
		}, nil
	}, spec.requires...)
}

func (s *baseStream) Name() string {
	return s.table
}

// replicationProperty is the top level property holding the replication key;
// nested keys such as timeInterval.start resolve to their first segment.
func (s *baseStream) replicationProperty() string {
	return strings.SplitN(s.replicationKey, ".", 2)[0]
}

func (s *baseStream) replicationMethod() string {
	if s.replicationKey != "" {
		return Incremental
	}

	return FullTable
}

// GenerateCatalog builds the catalog entry with standard metadata: key and
// replication properties are automatic, everything else available.
func (s *baseStream) GenerateCatalog() ([]*types.CatalogEntry, error) {
	schema, err := loadSchema(s.table)
	if err != nil {
		return nil, err
	}

	automatic := map[string]bool{}
	for _, key := range s.keyProperties {
		automatic[key] = true
	}
	if s.replicationKey != "" {
		automatic[s.replicationProperty()] = true
	}

	streamMetadata := map[string]any{
		types.MetadataInclusion:               string(types.Available),
		types.MetadataTableKeyProperties:      s.keyProperties,
		types.MetadataForcedReplicationMethod: s.replicationMethod(),
	}
	if s.replicationKey != "" {
		streamMetadata[types.MetadataValidReplicationKeys] = []string{s.replicationKey}
	}

	metadata := types.MetadataMap{}
	metadata.Write(types.Breadcrumb{}, streamMetadata)
	for _, field := range schema.PropertyNames() {
		inclusion := types.Available
		if automatic[field] {
			inclusion = types.Automatic
		}
		metadata.Write(types.FieldBreadcrumb(field), map[string]any{
			types.MetadataInclusion: string(inclusion),
		})
	}

	return []*types.CatalogEntry{{
		Stream:            s.table,
		TapStreamID:       s.table,
		KeyProperties:     s.keyProperties,
		Schema:            schema,
		Metadata:          metadata.ToList(),
		ReplicationKey:    s.replicationKey,
		ReplicationMethod: s.replicationMethod(),
	}}, nil
}

// Sync writes the stream schema followed by every fetched record
func (s *baseStream) Sync(ctx context.Context, state types.State) (types.State, error) {
	if state != nil {
		s.state = state
	}
	if s.state == nil {
		s.state = types.NewState()
	}

	var schema *types.Schema
	if s.entry != nil {
		schema = s.entry.Schema
	}
	if schema == nil {
		loaded, err := loadSchema(s.table)
		if err != nil {
			return nil, err
		}
		schema = loaded
	}

	bookmarkProperties := []string{}
	if s.replicationKey != "" {
		bookmarkProperties = append(bookmarkProperties, s.replicationProperty())
	}
	if err := s.output.WriteSchema(s.table, schema, s.keyProperties, bookmarkProperties...); err != nil {
		return nil, err
	}

	count := 0
	err := s.fetch(ctx, s, func(record types.Record) error {
		count++
		return s.output.WriteRecord(s.table, s.filter(record))
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Synced %d records for stream %s", count, s.table)
	return s.state, nil
}

// filter drops the fields deselected in the catalog
func (s *baseStream) filter(record types.Record) types.Record {
	if len(s.excluded) == 0 {
		return record
	}

	filtered := make(types.Record, len(record))
	for key, value := range record {
		if !s.excluded[key] {
			filtered[key] = value
		}
	}

	return filtered
}

// excludedFields returns the fields explicitly deselected or unsupported;
// fields without metadata are kept.
func excludedFields(entry *types.CatalogEntry) map[string]bool {
	excluded := map[string]bool{}
	if entry == nil {
		return excluded
	}

	for _, metadataEntry := range entry.Metadata {
		if metadataEntry == nil || len(metadataEntry.Breadcrumb) != 2 || metadataEntry.Breadcrumb[0] != "properties" {
			continue
		}
		field := metadataEntry.Breadcrumb[1]
		if types.LookupInclusion(metadataEntry.Metadata) == types.Automatic {
			continue
		}
		selected, defined := types.LookupBool(metadataEntry.Metadata, types.MetadataSelected)
		if types.LookupInclusion(metadataEntry.Metadata) == types.Unsupported || (defined && !selected) {
			excluded[field] = true
		}
	}

	return excluded
}

func (s *baseStream) workspacePath(elems ...string) string {
	return clockify.WorkspacePath(s.config.WorkspaceID, elems...)
}

// paginate emits every record of a paginated workspace resource
func (s *baseStream) paginate(ctx context.Context, path string, query url.Values, emit emitFn) error {
	return s.client.Paginate(ctx, path, query, func(page []types.Record) error {
		for _, record := range page {
			if err := emit(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// collectIDs lists the ids of a paginated workspace resource
func (s *baseStream) collectIDs(ctx context.Context, path string) ([]string, error) {
	ids := []string{}
	err := s.client.Paginate(ctx, path, nil, func(page []types.Record) error {
		for _, record := range page {
			if id, ok := record["id"].(string); ok && id != "" {
				ids = append(ids, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	return ids, nil
}
