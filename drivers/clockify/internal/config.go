package driver

import (
	"fmt"
	"strings"
	"time"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/pkg/clockify"
	"github.com/datazip-inc/tap-clockify/utils"
	"github.com/datazip-inc/tap-clockify/utils/typeutils"
)

type Config struct {
	// APIKey
	//
	// Personal api key generated from the clockify profile settings
	APIKey string `json:"api_key" validate:"required" jsonschema:"required,title=API Key,description=Clockify API key,format=password"`

	// WorkspaceID
	//
	// Workspace whose data is replicated
	WorkspaceID string `json:"workspace_id" validate:"required" jsonschema:"required,title=Workspace ID,description=ID of the workspace to replicate"`

	// StartDate
	//
	// Earliest time entry start replicated on the first run
	StartDate string `json:"start_date" validate:"required,timestamp" jsonschema:"required,title=Start Date,description=Replicate time entries starting at this timestamp,format=date-time"`

	// EndDate
	//
	// Optional upper bound for time entries
	EndDate string `json:"end_date,omitempty" validate:"omitempty,timestamp" jsonschema:"title=End Date,description=Replicate time entries starting before this timestamp,format=date-time"`

	APIURL            string  `json:"api_url,omitempty" validate:"omitempty,url" jsonschema:"title=API URL,default=https://api.clockify.me/api/v1"`
	UserAgent         string  `json:"user_agent,omitempty" jsonschema:"title=User Agent,default=tap-clockify"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" validate:"gte=0" jsonschema:"title=Requests Per Second,default=10"`
	PageSize          int     `json:"page_size,omitempty" validate:"gte=0,lte=5000" jsonschema:"title=Page Size,default=50"`
	MaxRetries        *int    `json:"max_retries,omitempty" validate:"omitempty,gte=0" jsonschema:"title=Max Retries,default=3"`
}

// Validate checks field constraints and the date range
func (c *Config) Validate() error {
	return utils.ErrExecSequential(
		func() error {
			return utils.Validate(c)
		},
		utils.ErrExecFormat("invalid date range: %w", func() error {
			if c.EndDate == "" {
				return nil
			}
			start, errStart := typeutils.ParseTimestamp(c.StartDate)
			end, errEnd := typeutils.ParseTimestamp(c.EndDate)
			if errStart == nil && errEnd == nil && !end.After(start) {
				return fmt.Errorf("end_date [%s] must be after start_date [%s]", c.EndDate, c.StartDate)
			}
			return nil
		}),
	)
}

// Start returns the parsed start date
func (c *Config) Start() time.Time {
	start, _ := typeutils.ParseTimestamp(c.StartDate)
	return start
}

// End returns the parsed end date and whether one is configured
func (c *Config) End() (time.Time, bool) {
	if strings.TrimSpace(c.EndDate) == "" {
		return time.Time{}, false
	}
	end, err := typeutils.ParseTimestamp(c.EndDate)
	return end, err == nil
}

// ClientConfig maps the connector config to api client settings
func (c *Config) ClientConfig() clockify.ClientConfig {
	return clockify.ClientConfig{
		BaseURL:           utils.Ternary(c.APIURL == "", constants.DefaultAPIURL, c.APIURL).(string),
		APIKey:            c.APIKey,
		UserAgent:         c.UserAgent,
		RequestsPerSecond: c.RequestsPerSecond,
		PageSize:          c.PageSize,
		MaxRetries:        c.maxRetries(),
	}
}

// maxRetries returns the configured retries; an explicit 0 disables retrying
func (c *Config) maxRetries() int {
	if c.MaxRetries == nil {
		return constants.DefaultMaxRetries
	}

	return *c.MaxRetries
}
