package protocol

import (
	"fmt"
	"os"
	"strings"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// encryptCmd turns a plain config file into an encrypted envelope usable with --config
var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "encrypt command",
	Long:  `Encrypt prints the config file passed with --config encrypted with --encryption-key`,
	Example: `
tap-clockify encrypt --config path/to/config --encryption-key arn:aws:kms:...
`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "" {
			return fmt.Errorf("--config not passed")
		}
		if strings.TrimSpace(viper.GetString(constants.EncryptionKey)) == "" {
			return fmt.Errorf("--encryption-key not passed")
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		envelope, err := encryptFile(configPath)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(envelope))
		return err
	},
}

func encryptFile(path string) ([]byte, error) {
	if err := utils.CheckIfFilesExists(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %s", path, err)
	}

	envelope, err := utils.EncryptConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt %s: %s", path, err)
	}

	return envelope, nil
}
