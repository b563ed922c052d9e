package driver

import (
	"context"
	"fmt"

	"github.com/datazip-inc/tap-clockify/drivers/abstract"
	"github.com/datazip-inc/tap-clockify/pkg/clockify"
	"github.com/datazip-inc/tap-clockify/types"
	"github.com/datazip-inc/tap-clockify/utils"
	"github.com/datazip-inc/tap-clockify/utils/logger"
)

// Clockify is the connector driver
type Clockify struct {
	config *Config
	client *clockify.Client
}

func (c *Clockify) Type() string {
	return "clockify"
}

func (c *Clockify) GetConfigRef() abstract.Config {
	if c.config == nil {
		c.config = &Config{}
	}

	return c.config
}

func (c *Clockify) Spec() any {
	return Config{}
}

func (c *Clockify) Setup(_ context.Context) error {
	if c.config == nil {
		return fmt.Errorf("config not loaded")
	}
	if err := c.config.Validate(); err != nil {
		return fmt.Errorf("failed to validate config: %s", err)
	}

	c.client = clockify.NewClient(c.config.ClientConfig())
	return nil
}

// Check resolves the api key owner and makes sure the configured workspace is visible
func (c *Clockify) Check(ctx context.Context) error {
	user, err := c.client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	logger.Infof("authenticated as %s", user.Email)

	workspaces, err := c.client.Workspaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}
	_, found := utils.ArrayContains(workspaces, func(workspace types.Record) bool {
		return workspace["id"] == c.config.WorkspaceID
	})
	if found {
		return nil
	}

	return fmt.Errorf("workspace %s not accessible with the given api key", c.config.WorkspaceID)
}

func (c *Clockify) Client() abstract.Client {
	if c.client == nil {
		return nil
	}

	return c.client
}

func (c *Clockify) Streams(output abstract.RecordWriter) []abstract.StreamDefinition {
	return Streams(output)
}
