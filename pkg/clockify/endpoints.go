package clockify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/datazip-inc/tap-clockify/types"
)

// User is the subset of the user resource the connector needs for checks
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	ActiveWorkspace  string `json:"activeWorkspace"`
	DefaultWorkspace string `json:"defaultWorkspace"`
}

// CurrentUser returns the owner of the api key
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	user := &User{}
	if err := c.Get(ctx, "/user", nil, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Workspaces lists the workspaces visible to the api key; the endpoint is not paginated
func (c *Client) Workspaces(ctx context.Context) ([]types.Record, error) {
	var workspaces []types.Record
	if err := c.Get(ctx, "/workspaces", nil, &workspaces); err != nil {
		return nil, err
	}

	return workspaces, nil
}

// WorkspacePath builds a path below /workspaces/{workspaceID}
func WorkspacePath(workspaceID string, elems ...string) string {
	path := fmt.Sprintf("/workspaces/%s", url.PathEscape(workspaceID))
	for _, elem := range elems {
		path += "/" + url.PathEscape(elem)
	}

	return path
}
