package abstract

import (
	"bytes"
	"context"
	"net/url"

	"github.com/datazip-inc/tap-clockify/types"
	"github.com/rs/zerolog"
)

// Mock implementations for testing

type MockConfig struct{}

func (c *MockConfig) Validate() error {
	return nil
}

type MockClient struct{}

func (c *MockClient) Get(_ context.Context, _ string, _ url.Values, _ any) error {
	return nil
}

func (c *MockClient) Paginate(_ context.Context, _ string, _ url.Values, _ func(page []types.Record) error) error {
	return nil
}

type MockStream struct {
	name                string
	generateCatalogFunc func() ([]*types.CatalogEntry, error)
	syncFunc            func(ctx context.Context, state types.State) (types.State, error)
}

func (m *MockStream) Name() string {
	return m.name
}

func (m *MockStream) GenerateCatalog() ([]*types.CatalogEntry, error) {
	if m.generateCatalogFunc != nil {
		return m.generateCatalogFunc()
	}
	return []*types.CatalogEntry{newEntry(m.name, nil)}, nil
}

func (m *MockStream) Sync(ctx context.Context, state types.State) (types.State, error) {
	if m.syncFunc != nil {
		return m.syncFunc(ctx, state)
	}
	return state, nil
}

// MockStateWriter records every state written
type MockStateWriter struct {
	states []types.State
	err    error
}

func (m *MockStateWriter) WriteState(state types.State) error {
	if m.err != nil {
		return m.err
	}
	m.states = append(m.states, state)
	return nil
}

// mockDefinition builds a registry definition around a MockStream
func mockDefinition(name string, stream *MockStream, requires ...string) *Definition {
	if stream == nil {
		stream = &MockStream{}
	}
	stream.name = name
	return NewDefinition(name, func(_ Config, _ types.State, _ *types.CatalogEntry, _ Client) (Stream, error) {
		return stream, nil
	}, requires...)
}

func newEntry(name string, streamMetadata map[string]any) *types.CatalogEntry {
	entry := &types.CatalogEntry{
		Stream:      name,
		TapStreamID: name,
		Schema:      &types.Schema{Type: types.SchemaType{"object"}},
	}
	if streamMetadata != nil {
		entry.Metadata = types.Metadata{{Breadcrumb: types.Breadcrumb{}, Metadata: streamMetadata}}
	}
	return entry
}

func selectedEntry(name string) *types.CatalogEntry {
	return newEntry(name, map[string]any{"selected": true})
}

func newTestRunner(catalog *types.Catalog, state types.State, definitions ...StreamDefinition) (*Runner, *MockStateWriter, *bytes.Buffer) {
	logs := &bytes.Buffer{}
	log := zerolog.New(logs)
	output := &MockStateWriter{}
	runner := NewRunner(&MockConfig{}, state, catalog, &MockClient{}, definitions, WithLogger(&log), WithOutput(output))
	return runner, output, logs
}
