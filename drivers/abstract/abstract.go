package abstract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/pkg/singer"
	"github.com/datazip-inc/tap-clockify/types"
	"github.com/datazip-inc/tap-clockify/utils/logger"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Runner drives discovery and sync over an ordered set of stream definitions
type Runner struct {
	config  Config
	state   types.State
	catalog *types.Catalog
	client  Client
	streams []StreamDefinition
	output  StateWriter
	logger  *zerolog.Logger
}

type Option func(r *Runner)

func WithLogger(log *zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = log
	}
}

// WithOutput replaces the default stdout state channel
func WithOutput(output StateWriter) Option {
	return func(r *Runner) {
		r.output = output
	}
}

// NewRunner creates a runner; a nil catalog means no stream will be synced
// and a nil state starts from scratch.
func NewRunner(config Config, state types.State, catalog *types.Catalog, client Client, streams []StreamDefinition, opts ...Option) *Runner {
	if state == nil {
		state = types.NewState()
	}

	runner := &Runner{
		config:  config,
		state:   state,
		catalog: catalog,
		client:  client,
		streams: streams,
		output:  singer.Stdout(),
		logger:  logger.Get(),
	}
	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// State returns the current run state
func (r *Runner) State() types.State {
	return r.state
}

// GetStreamsToReplicate instantiates the selected catalog entries in catalog
// order. Unknown entries are skipped; a selected entry whose dependencies are
// not selected aborts the resolution.
func (r *Runner) GetStreamsToReplicate() ([]Stream, error) {
	streams := []Stream{}
	if r.catalog == nil {
		return streams, nil
	}

	for _, entry := range r.catalog.Streams {
		// a null entry in the streams list carries nothing to select
		if entry == nil {
			continue
		}
		if !IsSelected(entry) {
			r.logger.Info().Msgf("'%s' is not marked selected, skipping.", entry.Stream)
			continue
		}

		for _, definition := range r.streams {
			if !definition.MatchesCatalog(entry) {
				continue
			}

			if !definition.RequirementsMet(r.catalog) {
				missing := MissingRequirements(definition.Requires(), r.catalog)
				err := fmt.Errorf("%w: %s requires that the following are selected: %s",
					constants.ErrRequirementsNotMet, entry.Stream, strings.Join(missing, ", "))
				r.logger.Error().Msg(err.Error())
				return nil, err
			}

			stream, err := definition.New(r.config, r.state, entry, r.client)
			if err != nil {
				return nil, fmt.Errorf("failed to instantiate stream %s: %w", entry.Stream, err)
			}
			streams = append(streams, stream)
			break
		}
	}

	return streams, nil
}

// Discover builds the catalog of every registered definition in registry order
func (r *Runner) Discover() (*types.Catalog, error) {
	r.logger.Info().Msg("Starting discovery.")

	catalog := types.NewCatalog()
	for _, definition := range r.streams {
		stream, err := definition.New(r.config, nil, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to instantiate stream %s: %w", definition.Name(), err)
		}

		entries, err := stream.GenerateCatalog()
		if err != nil {
			return nil, fmt.Errorf("failed to generate catalog for stream %s: %w", definition.Name(), err)
		}
		catalog.Streams = append(catalog.Streams, entries...)
	}

	return catalog, nil
}

// DoDiscover writes the discovered catalog as one pretty printed document
func (r *Runner) DoDiscover(out io.Writer) (*types.Catalog, error) {
	catalog, err := r.Discover()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(catalog, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %s", err)
	}
	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return nil, fmt.Errorf("failed to write catalog: %w", err)
	}

	return catalog, nil
}

// Sync runs the selected streams one after another and saves the state once
// all of them succeeded. Any failure stops the run without saving state; os
// errors are reported as *ExitError, everything else as *SyncError.
func (r *Runner) Sync(ctx context.Context) (types.State, error) {
	r.logger.Info().Msg("Starting sync.")

	streams, err := r.GetStreamsToReplicate()
	if err != nil {
		return nil, err
	}

	for _, stream := range streams {
		startTime := time.Now()
		r.logger.Info().Msgf("Syncing stream %s", stream.Name())

		state, err := stream.Sync(ctx, r.state)
		if err != nil {
			r.logger.Error().Msg(err.Error())

			if code, isOSError := osErrorCode(err); isOSError {
				return nil, &ExitError{Code: code, Stream: stream.Name(), Err: err}
			}

			r.logger.Error().Msgf("Failed to sync stream %s", stream.Name())
			return nil, &SyncError{Stream: stream.Name(), Err: err}
		}
		if state != nil {
			r.state = state
		}

		r.logger.Info().Msgf("Finished syncing stream %s in %s", stream.Name(), time.Since(startTime).String())
	}

	if err := r.SaveState(r.state); err != nil {
		return nil, fmt.Errorf("failed to save state: %w", err)
	}

	return r.state, nil
}

// IsExitError reports whether err asks for a specific process exit code
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}

	return nil, false
}
