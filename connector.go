package tapclockify

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/drivers/abstract"
	"github.com/datazip-inc/tap-clockify/protocol"
	"github.com/datazip-inc/tap-clockify/utils/logger"
	"github.com/datazip-inc/tap-clockify/utils/safego"
)

func RegisterDriver(driver abstract.DriverInterface) {
	defer safego.Recovery(true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Execute the root command
	err := protocol.CreateRootCommand(true, driver).ExecuteContext(ctx)
	stop()
	if err != nil {
		code, logged := exitCode(err)
		if !logged {
			logger.Error(err)
		}
		os.Exit(code)
	}

	os.Exit(0)
}

// exitCode maps a command error to the process exit status and reports
// whether the runner already logged it
func exitCode(err error) (int, bool) {
	if exitErr, ok := abstract.IsExitError(err); ok {
		return exitErr.Code, true
	}

	var syncErr *abstract.SyncError
	if errors.As(err, &syncErr) || errors.Is(err, constants.ErrRequirementsNotMet) {
		return 1, true
	}

	return 1, false
}
