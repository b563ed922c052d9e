package abstract

import (
	"bytes"
	"errors"
	"testing"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/types"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests for stream resolution and discovery

func TestNewRunner_DefaultsEmptyState(t *testing.T) {
	runner := NewRunner(&MockConfig{}, nil, nil, &MockClient{}, nil)

	require.NotNil(t, runner)
	assert.NotNil(t, runner.State())
	assert.True(t, runner.State().IsZero())
	assert.NotNil(t, runner.logger)
	assert.NotNil(t, runner.output)
}

func TestGetStreamsToReplicate_NoCatalog(t *testing.T) {
	runner, _, _ := newTestRunner(nil, nil, mockDefinition("users", nil))

	streams, err := runner.GetStreamsToReplicate()

	require.NoError(t, err)
	assert.Empty(t, streams)
}

func TestGetStreamsToReplicate_CatalogOrder(t *testing.T) {
	catalog := types.NewCatalog(selectedEntry("y"), selectedEntry("x"))
	// registry order differs from catalog order on purpose
	runner, _, _ := newTestRunner(catalog, nil, mockDefinition("x", nil), mockDefinition("y", nil))

	streams, err := runner.GetStreamsToReplicate()

	require.NoError(t, err)
	require.Len(t, streams, 2)
	assert.Equal(t, "y", streams[0].Name())
	assert.Equal(t, "x", streams[1].Name())
}

func TestGetStreamsToReplicate_NullCatalogEntry(t *testing.T) {
	catalog := &types.Catalog{}
	require.NoError(t, json.Unmarshal([]byte(`{"streams": [null, {"stream": "x", "metadata": [{"breadcrumb": [], "metadata": {"selected": true}}]}]}`), catalog))
	runner, _, _ := newTestRunner(catalog, nil, mockDefinition("x", nil))

	var (
		streams []Stream
		err     error
	)
	assert.NotPanics(t, func() {
		streams, err = runner.GetStreamsToReplicate()
	})

	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, "x", streams[0].Name())
	assert.Equal(t, []string{"x"}, catalog.StreamNames())
}

func TestGetStreamsToReplicate_SkipsUnselected(t *testing.T) {
	catalog := types.NewCatalog(
		newEntry("x", map[string]any{"inclusion": "available"}),
		selectedEntry("y"),
	)
	runner, _, logs := newTestRunner(catalog, nil, mockDefinition("x", nil), mockDefinition("y", nil))

	streams, err := runner.GetStreamsToReplicate()

	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, "y", streams[0].Name())
	assert.Contains(t, logs.String(), "'x' is not marked selected, skipping.")
}

func TestGetStreamsToReplicate_SkipsUnknownStreams(t *testing.T) {
	catalog := types.NewCatalog(selectedEntry("unknown"), selectedEntry("x"))
	runner, _, _ := newTestRunner(catalog, nil, mockDefinition("x", nil))

	streams, err := runner.GetStreamsToReplicate()

	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, "x", streams[0].Name())
}

func TestGetStreamsToReplicate_FirstMatchWins(t *testing.T) {
	first := &MockStream{}
	second := &MockStream{}
	catalog := types.NewCatalog(selectedEntry("x"))
	runner, _, _ := newTestRunner(catalog, nil, mockDefinition("x", first), mockDefinition("x", second))

	streams, err := runner.GetStreamsToReplicate()

	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Same(t, first, streams[0])
}

func TestGetStreamsToReplicate_MissingDependency(t *testing.T) {
	tests := []struct {
		name    string
		catalog *types.Catalog
	}{
		{
			name:    "dependency absent",
			catalog: types.NewCatalog(selectedEntry("b")),
		},
		{
			name:    "dependency not selected",
			catalog: types.NewCatalog(newEntry("a", map[string]any{"selected": false}), selectedEntry("b")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, _, logs := newTestRunner(tt.catalog, nil, mockDefinition("a", nil), mockDefinition("b", nil, "a"))

			streams, err := runner.GetStreamsToReplicate()

			require.Error(t, err)
			assert.Nil(t, streams)
			assert.True(t, errors.Is(err, constants.ErrRequirementsNotMet))
			assert.Contains(t, err.Error(), "b requires that the following are selected: a")
			assert.Contains(t, logs.String(), "b requires that the following are selected: a")
		})
	}
}

func TestGetStreamsToReplicate_ListsEveryMissingDependency(t *testing.T) {
	catalog := types.NewCatalog(selectedEntry("a"), selectedEntry("d"))
	runner, _, _ := newTestRunner(catalog, nil,
		mockDefinition("a", nil),
		mockDefinition("d", nil, "a", "b", "c"),
	)

	_, err := runner.GetStreamsToReplicate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "d requires that the following are selected: b, c")
}

func TestGetStreamsToReplicate_AbortsOnFirstViolation(t *testing.T) {
	instantiated := []string{}
	definition := func(name string, requires ...string) *Definition {
		return NewDefinition(name, func(_ Config, _ types.State, _ *types.CatalogEntry, _ Client) (Stream, error) {
			instantiated = append(instantiated, name)
			return &MockStream{name: name}, nil
		}, requires...)
	}
	catalog := types.NewCatalog(selectedEntry("x"), selectedEntry("b"), selectedEntry("y"))
	runner, _, _ := newTestRunner(catalog, nil, definition("x"), definition("b", "a"), definition("y"))

	_, err := runner.GetStreamsToReplicate()

	require.Error(t, err)
	assert.Equal(t, []string{"x"}, instantiated, "entries after the violation must not be processed")
}

func TestGetStreamsToReplicate_DependencySatisfied(t *testing.T) {
	catalog := types.NewCatalog(selectedEntry("a"), selectedEntry("b"))
	runner, _, _ := newTestRunner(catalog, nil, mockDefinition("a", nil), mockDefinition("b", nil, "a"))

	streams, err := runner.GetStreamsToReplicate()

	require.NoError(t, err)
	assert.Len(t, streams, 2)
}

func TestGetStreamsToReplicate_BindsRunContext(t *testing.T) {
	entry := selectedEntry("x")
	catalog := types.NewCatalog(entry)
	state := types.State{"bookmarks": map[string]any{}}
	var gotConfig Config
	var gotState types.State
	var gotEntry *types.CatalogEntry
	var gotClient Client
	definition := NewDefinition("x", func(config Config, state types.State, entry *types.CatalogEntry, client Client) (Stream, error) {
		gotConfig, gotState, gotEntry, gotClient = config, state, entry, client
		return &MockStream{name: "x"}, nil
	})
	runner, _, _ := newTestRunner(catalog, state, definition)

	_, err := runner.GetStreamsToReplicate()

	require.NoError(t, err)
	assert.Equal(t, runner.config, gotConfig)
	assert.Equal(t, state, gotState)
	assert.Same(t, entry, gotEntry)
	assert.Equal(t, runner.client, gotClient)
}

func TestDiscover_EmptyRegistry(t *testing.T) {
	runner, _, _ := newTestRunner(nil, nil)
	out := &bytes.Buffer{}

	catalog, err := runner.DoDiscover(out)

	require.NoError(t, err)
	assert.Empty(t, catalog.Streams)
	assert.JSONEq(t, `{"streams": []}`, out.String())
}

func TestDiscover_RegistryOrderAndExpansion(t *testing.T) {
	expanding := &MockStream{
		generateCatalogFunc: func() ([]*types.CatalogEntry, error) {
			return []*types.CatalogEntry{newEntry("b_1", nil), newEntry("b_2", nil)}, nil
		},
	}
	runner, _, _ := newTestRunner(nil, nil, mockDefinition("c", nil), mockDefinition("b", expanding), mockDefinition("a", nil))
	out := &bytes.Buffer{}

	catalog, err := runner.DoDiscover(out)

	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b_1", "b_2", "a"}, catalog.StreamNames())

	decoded := &types.Catalog{}
	require.NoError(t, json.Unmarshal(out.Bytes(), decoded))
	assert.Equal(t, []string{"c", "b_1", "b_2", "a"}, decoded.StreamNames())
	assert.Contains(t, out.String(), "\n    \"streams\"", "catalog should be indented")
}

func TestDiscover_NoRunContext(t *testing.T) {
	definition := NewDefinition("x", func(config Config, state types.State, entry *types.CatalogEntry, client Client) (Stream, error) {
		assert.NotNil(t, config)
		assert.Nil(t, state)
		assert.Nil(t, entry)
		assert.Nil(t, client)
		return &MockStream{name: "x"}, nil
	})
	runner, _, _ := newTestRunner(nil, types.State{"a": 1}, definition)

	_, err := runner.Discover()

	require.NoError(t, err)
}

func TestDiscover_PropagatesErrors(t *testing.T) {
	failing := &MockStream{
		generateCatalogFunc: func() ([]*types.CatalogEntry, error) {
			return nil, errors.New("schema missing")
		},
	}
	runner, _, _ := newTestRunner(nil, nil, mockDefinition("x", failing))

	_, err := runner.Discover()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema missing")
}
