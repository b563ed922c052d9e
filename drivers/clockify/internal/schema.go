package driver

import (
	"embed"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/datazip-inc/tap-clockify/types"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// loadSchema reads the bundled json schema of a stream
func loadSchema(table string) (*types.Schema, error) {
	data, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.json", table))
	if err != nil {
		return nil, fmt.Errorf("no schema bundled for stream %s: %s", table, err)
	}

	schema := &types.Schema{}
	if err := json.Unmarshal(data, schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema of stream %s: %s", table, err)
	}

	return schema, nil
}
