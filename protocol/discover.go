package protocol

import (
	"fmt"
	"os"
	"strings"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/drivers/abstract"
	"github.com/datazip-inc/tap-clockify/types"
	"github.com/datazip-inc/tap-clockify/utils"
	"github.com/datazip-inc/tap-clockify/utils/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// discoverCmd prints the catalog of every stream the connector offers
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "discover command",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "" {
			return fmt.Errorf("--config not passed")
		}

		return utils.UnmarshalFile(configPath, connector.GetConfigRef())
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		runner := abstract.NewRunner(connector.GetConfigRef(), nil, nil, nil, connector.Streams(output),
			abstract.WithLogger(logger.Get()))

		catalog, err := runner.DoDiscover(os.Stdout)
		if err != nil {
			return err
		}

		logger.Infof("Discovered streams: %s", strings.Join(catalog.StreamNames(), ", "))

		if path := viper.GetString(constants.StreamsPath); path != "" {
			logger.FileLoggerWithPath(catalog, path)
		}

		if differencePath != "" {
			return logDifference(catalog, differencePath, viper.GetString(constants.DifferencePath))
		}

		return nil
	},
}

// logDifference writes the streams of catalog that are new or changed
// compared to the catalog stored at oldPath
func logDifference(catalog *types.Catalog, oldPath, outPath string) error {
	old := &types.Catalog{}
	if err := utils.UnmarshalFile(oldPath, old); err != nil {
		return fmt.Errorf("failed to read old catalog: %s", err)
	}

	difference, err := catalog.Difference(old)
	if err != nil {
		return fmt.Errorf("failed to compare catalogs: %s", err)
	}

	logger.Infof("%d streams changed since %s", len(difference.Streams), oldPath)
	if outPath == "" {
		return nil
	}

	return utils.WriteJSONFile(outPath, difference)
}
