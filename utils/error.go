package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/hashicorp/go-multierror"
)

// ErrExecSequential executes a list of functions sequentially, accumulating errors if any occur.
func ErrExecSequential(functions ...func() error) error {
	var multErr error

	for _, one := range functions {
		if err := one(); err != nil {
			multErr = multierror.Append(multErr, err)
		}
	}

	return multErr
}

// RetryExec retries function up to retries extra attempts, doubling delay
// after each failure. Errors wrapping constants.ErrNonRetryable or rejected by
// retryable are returned immediately.
func RetryExec(ctx context.Context, retries int, delay time.Duration, retryable func(error) bool, function func() error) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		err = function()
		if err == nil {
			return nil
		}

		if errors.Is(err, constants.ErrNonRetryable) || (retryable != nil && !retryable(err)) {
			return err
		}

		if attempt == retries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay << attempt):
		}
	}

	return fmt.Errorf("failed after %d retries: %w", retries, err)
}

// ErrExecFormat formats the error returned from a function according to the provided format string.
func ErrExecFormat(format string, function func() error) func() error {
	return func() error {
		if err := function(); err != nil {
			return fmt.Errorf(format, err)
		}
		return nil
	}
}
