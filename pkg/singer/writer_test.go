package singer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/tap-clockify/types"
)

func TestWriterMessages(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := NewWriter(buf)
	writer.now = func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}

	schema := &types.Schema{Type: types.SchemaType{"object"}, Properties: map[string]*types.Schema{
		"id": {Type: types.SchemaType{"string"}},
	}}
	require.NoError(t, writer.WriteSchema("users", schema, []string{"id"}))
	require.NoError(t, writer.WriteRecord("users", types.Record{"id": "u1"}))
	state := types.NewState()
	state.SetBookmark("users", "last_record", "x")
	require.NoError(t, writer.WriteState(state))
	require.NoError(t, writer.WriteConnectionStatus(&types.StatusRow{Status: types.ConnectionSucceed}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"type": "SCHEMA", "stream": "users", "key_properties": ["id"], "schema": {"type": "object", "properties": {"id": {"type": "string"}}}}`, lines[0])
	assert.JSONEq(t, `{"type": "RECORD", "stream": "users", "record": {"id": "u1"}, "time_extracted": "2024-01-02T03:04:05Z"}`, lines[1])
	assert.JSONEq(t, `{"type": "STATE", "value": {"bookmarks": {"users": {"last_record": "x"}}}}`, lines[2])
	assert.JSONEq(t, `{"type": "CONNECTION_STATUS", "connectionStatus": {"status": "SUCCEEDED"}}`, lines[3])

	assert.Equal(t, int64(1), writer.TotalRecords())
}

func TestWriterBookmarkProperties(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewWriter(buf).WriteSchema("time_entries", &types.Schema{}, []string{"id"}, "timeInterval"))
	assert.JSONEq(t, `{"type": "SCHEMA", "stream": "time_entries", "schema": {}, "key_properties": ["id"], "bookmark_properties": ["timeInterval"]}`, buf.String())
}
