package protocol

import (
	"fmt"
	"path/filepath"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/drivers/abstract"
	"github.com/datazip-inc/tap-clockify/pkg/singer"
	"github.com/datazip-inc/tap-clockify/utils"
	"github.com/datazip-inc/tap-clockify/utils/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath      string
	statePath       string
	stateOutputPath string
	streamsPath     string
	differencePath  string
	encryptionKey   string
	logLevel        string
	noSave          bool

	commands  = []*cobra.Command{}
	connector abstract.DriverInterface
	output    = singer.Stdout()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tap-clockify",
	Short: "root command",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		setGlobals()

		// logger uses CONFIG_FOLDER and SYNC_ID
		logger.Init()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		if ok := utils.IsValidSubcommand(commands, args[0]); !ok {
			return fmt.Errorf("'%s' is an invalid command. Use 'tap-clockify --help' to display usage guide", args[0])
		}

		return nil
	},
}

// setGlobals publishes the flags as viper settings; environment variables
// take over for anything not passed on the command line.
func setGlobals() {
	viper.AutomaticEnv()

	if configPath != "" {
		configFolder := filepath.Dir(configPath)
		viper.SetDefault(constants.ConfigFolder, configFolder)
		viper.SetDefault(constants.StreamsPath, filepath.Join(configFolder, "streams.json"))
		viper.SetDefault(constants.DifferencePath, filepath.Join(configFolder, "difference_streams.json"))
	}
	if noSave {
		viper.Set(constants.ConfigFolder, "")
		viper.Set(constants.StreamsPath, "")
	}
	if stateOutputPath != "" {
		viper.Set(constants.StatePath, stateOutputPath)
	}
	if encryptionKey != "" {
		viper.Set(constants.EncryptionKey, encryptionKey)
	}
	if logLevel != "" {
		viper.Set(constants.LogLevel, logLevel)
	}
	if viper.GetString(constants.SyncID) == "" {
		viper.Set(constants.SyncID, utils.ULID())
	}
}

func CreateRootCommand(_ bool, driver abstract.DriverInterface) *cobra.Command {
	connector = driver

	return RootCmd
}

func init() {
	commands = append(commands, specCmd, checkCmd, discoverCmd, syncCmd, encryptCmd)
	RootCmd.AddCommand(commands...)

	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "", "", "(Required) Config for connector")
	RootCmd.PersistentFlags().StringVarP(&streamsPath, "catalog", "", "", "Path to the catalog file selecting the streams to sync")
	RootCmd.PersistentFlags().StringVarP(&streamsPath, "properties", "", "", "Alias of --catalog")
	RootCmd.PersistentFlags().StringVarP(&statePath, "state", "", "", "(Optional) State to resume from")
	RootCmd.PersistentFlags().StringVarP(&stateOutputPath, "state-output", "", "", "(Optional) File the final state is also written to")
	RootCmd.PersistentFlags().StringVarP(&encryptionKey, "encryption-key", "", "", "(Optional) Decryption key. Provide the ARN of a KMS key or a custom string based on your encryption configuration.")
	RootCmd.PersistentFlags().StringVarP(&differencePath, "difference", "", "", "old catalog file path to compare. Generates a difference_streams.json file.")
	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "", "(Optional) Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().BoolVarP(&noSave, "no-save", "", false, "(Optional) Flag to skip logging artifacts in file")
	// Disable Cobra CLI's built-in usage and error handling
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true
}
