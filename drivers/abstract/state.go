package abstract

import (
	"fmt"
	"os"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/types"
	"github.com/datazip-inc/tap-clockify/utils/logger"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// LoadState reads the state file at path; an empty path yields an empty state
func LoadState(path string) (types.State, error) {
	return loadState(logger.Get(), path)
}

func loadState(log *zerolog.Logger, path string) (types.State, error) {
	if path == "" {
		return types.NewState(), nil
	}

	state := types.NewState()
	data, err := os.ReadFile(path)
	if err == nil {
		err = json.Unmarshal(data, &state)
	}
	if err != nil {
		log.WithLevel(zerolog.FatalLevel).Err(err).Msg("Failed to decode state file. Is it valid json?")
		return nil, fmt.Errorf("%w[%s]: %s", constants.ErrStateDecode, path, err)
	}

	// a literal null document decodes to a nil map
	if state == nil {
		state = types.NewState()
	}

	return state, nil
}

// SaveState emits state once through the runner output; empty state is not persisted
func (r *Runner) SaveState(state types.State) error {
	if state.IsZero() {
		return nil
	}

	r.logger.Info().Msg("Updating state.")

	return r.output.WriteState(state)
}
