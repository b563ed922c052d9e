package driver

import (
	"github.com/datazip-inc/tap-clockify/drivers/abstract"
)

var streamSpecs = []streamSpec{
	{table: Workspaces, keyProperties: idKey, fetch: fetchWorkspaces},
	{table: Clients, keyProperties: idKey, fetch: fetchWorkspaceResource(Clients)},
	{table: Projects, keyProperties: idKey, fetch: fetchWorkspaceResource(Projects)},
	{table: Tags, keyProperties: idKey, fetch: fetchWorkspaceResource(Tags)},
	{table: Users, keyProperties: idKey, fetch: fetchWorkspaceResource(Users)},
	{table: Tasks, keyProperties: idKey, requires: []string{Projects}, fetch: fetchTasks},
	{
		table:          TimeEntries,
		keyProperties:  idKey,
		replicationKey: timeEntriesReplicationKey,
		requires:       []string{Users},
		fetch:          fetchTimeEntries,
	},
}

// Streams returns the stream registry in resolution order; records of every
// stream are written to output.
func Streams(output abstract.RecordWriter) []abstract.StreamDefinition {
	definitions := make([]abstract.StreamDefinition, 0, len(streamSpecs))
	for _, spec := range streamSpecs {
		definitions = append(definitions, spec.definition(output))
	}

	return definitions
}
