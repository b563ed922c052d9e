package protocol

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/utils/logger"
)

// specCmd prints the json schema of the connector config
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "spec command",
	RunE: func(cmd *cobra.Command, _ []string) error {
		spec, err := reflectSpec(connector.Spec())
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(spec, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to marshal spec: %s", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

		if viper.GetString(constants.ConfigFolder) != "" {
			logger.FileLogger(spec, "spec", ".json")
		}

		return nil
	},
}

// reflectSpec builds the config schema wrapped as {"spec": <schema>}
func reflectSpec(config any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}

	schema := reflector.Reflect(config)
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to reflect config: %v", err)
	}

	generic := map[string]any{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal spec: %v", err)
	}

	return map[string]any{"spec": generic}, nil
}
