package driver

import (
	"context"
	"fmt"
	"net/url"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/types"
	"github.com/datazip-inc/tap-clockify/utils/logger"
	"github.com/datazip-inc/tap-clockify/utils/typeutils"
)

const (
	Workspaces  = "workspaces"
	Clients     = "clients"
	Projects    = "projects"
	Tags        = "tags"
	Users       = "users"
	Tasks       = "tasks"
	TimeEntries = "time_entries"

	timeEntriesReplicationKey = "timeInterval.start"
)

var idKey = []string{"id"}

// fetchWorkspaces emits the configured workspace only; the endpoint lists
// every workspace of the api key owner and is not paginated.
func fetchWorkspaces(ctx context.Context, s *baseStream, emit emitFn) error {
	var workspaces []types.Record
	if err := s.client.Get(ctx, "/workspaces", nil, &workspaces); err != nil {
		return err
	}

	for _, workspace := range workspaces {
		if workspace["id"] != s.config.WorkspaceID {
			continue
		}
		if err := emit(workspace); err != nil {
			return err
		}
	}

	return nil
}

// fetchWorkspaceResource returns a fetcher for a flat paginated resource below the workspace
func fetchWorkspaceResource(resource string) fetchFn {
	return func(ctx context.Context, s *baseStream, emit emitFn) error {
		return s.paginate(ctx, s.workspacePath(resource), nil, emit)
	}
}

// fetchTasks walks the tasks of every project in the workspace
func fetchTasks(ctx context.Context, s *baseStream, emit emitFn) error {
	projectIDs, err := s.collectIDs(ctx, s.workspacePath(Projects))
	if err != nil {
		return err
	}

	for _, projectID := range projectIDs {
		if err := s.paginate(ctx, s.workspacePath(Projects, projectID, "tasks"), nil, emit); err != nil {
			return fmt.Errorf("failed to sync tasks of project %s: %w", projectID, err)
		}
	}

	return nil
}

// fetchTimeEntries walks the time entries of every workspace user starting at
// the bookmark (or start_date) and advances the bookmark to the latest start seen.
func fetchTimeEntries(ctx context.Context, s *baseStream, emit emitFn) error {
	start, startTime := s.config.StartDate, s.config.Start()
	if bookmark := s.state.GetBookmark(TimeEntries, constants.LastRecordKey); bookmark != nil {
		value, _ := bookmark.(string)
		parsed, err := typeutils.ParseTimestamp(value)
		if err != nil {
			logger.Warnf("discarding invalid %s bookmark [%v], restarting from start_date", TimeEntries, bookmark)
			s.state.ClearBookmark(TimeEntries)
		} else {
			start, startTime = value, parsed
		}
	}

	query := url.Values{}
	query.Set("start", typeutils.FormatAPI(startTime))
	if end, ok := s.config.End(); ok {
		query.Set("end", typeutils.FormatAPI(end))
	}

	userIDs, err := s.collectIDs(ctx, s.workspacePath(Users))
	if err != nil {
		return err
	}

	logger.Debugf("syncing time entries of %d users starting at %s", len(userIDs), query.Get("start"))

	maxStart := start
	for _, userID := range userIDs {
		err := s.paginate(ctx, s.workspacePath("user", userID, "time-entries"), query, func(record types.Record) error {
			if interval, ok := record["timeInterval"].(map[string]any); ok {
				if entryStart, ok := interval["start"].(string); ok {
					maxStart = typeutils.MaxTimestamp(maxStart, entryStart)
				}
			}
			return emit(record)
		})
		if err != nil {
			return fmt.Errorf("failed to sync time entries of user %s: %w", userID, err)
		}
	}

	s.state.SetBookmark(TimeEntries, constants.LastRecordKey, maxStart)
	return nil
}
