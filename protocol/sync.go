package protocol

import (
	"fmt"
	"strings"

	"github.com/datazip-inc/tap-clockify/drivers/abstract"
	"github.com/datazip-inc/tap-clockify/pkg/singer"
	"github.com/datazip-inc/tap-clockify/types"
	"github.com/datazip-inc/tap-clockify/utils"
	"github.com/datazip-inc/tap-clockify/utils/logger"
	"github.com/spf13/cobra"
)

var (
	catalog *types.Catalog
	state   types.State
)

// syncCmd replicates the streams selected in the catalog
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Tap sync command",
	Long:  `Sync command replicates the streams selected in the catalog and emits singer messages on stdout`,
	Example: `
// Base command:
tap-clockify sync --config path/to/config --catalog path/to/catalog

// With State:
tap-clockify sync --config path/to/config --catalog path/to/catalog --state path/to/state
`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "" {
			return fmt.Errorf("--config not passed")
		}
		if err := utils.UnmarshalFile(configPath, connector.GetConfigRef(), true); err != nil {
			return err
		}

		// no catalog means nothing is selected
		if streamsPath != "" {
			catalog = &types.Catalog{}
			if err := utils.UnmarshalFile(streamsPath, catalog); err != nil {
				return err
			}
			logger.Debugf("catalog lists streams: %s", strings.Join(catalog.StreamNames(), ", "))
		}

		var err error
		state, err = abstract.LoadState(statePath)
		return err
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := connector.Setup(cmd.Context()); err != nil {
			return err
		}

		runner := abstract.NewRunner(connector.GetConfigRef(), state, catalog, connector.Client(), connector.Streams(output),
			abstract.WithLogger(logger.Get()),
			abstract.WithOutput(&stateOutput{writer: output}),
		)

		if _, err := runner.Sync(cmd.Context()); err != nil {
			return err
		}

		logger.Infof("Total records emitted: %d", output.TotalRecords())
		return nil
	},
}

// stateOutput emits the state on stdout and mirrors it to the state file
type stateOutput struct {
	writer *singer.Writer
}

func (s *stateOutput) WriteState(state types.State) error {
	if err := s.writer.WriteState(state); err != nil {
		return err
	}
	logger.LogState(state)

	return nil
}
