/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package protocol

import (
	"fmt"

	"github.com/datazip-inc/tap-clockify/types"
	"github.com/datazip-inc/tap-clockify/utils"
	"github.com/datazip-inc/tap-clockify/utils/logger"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "check command",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "" {
			return fmt.Errorf("--config not passed")
		}

		return utils.UnmarshalFile(configPath, connector.GetConfigRef(), true)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := func() error {
			if err := connector.Setup(cmd.Context()); err != nil {
				return err
			}

			return connector.Check(cmd.Context())
		}()

		status := connectionStatus(err)
		logger.Info(status)

		return output.WriteConnectionStatus(status)
	},
}

func connectionStatus(err error) *types.StatusRow {
	status := &types.StatusRow{
		Status: types.ConnectionSucceed,
	}
	if err != nil {
		status.Message = err.Error()
		status.Status = types.ConnectionFailed
	}

	return status
}
