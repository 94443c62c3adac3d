package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// reportRefError prints a task reference error and returns the exit code.
func reportRefError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskRefRequired) {
		fmt.Fprintln(errOut, "error: task reference required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}

// reportLookupError prints a lookupTask error and returns the exit code.
// Unknown references are user errors; anything else came from the backend.
func reportLookupError(logger *log.Logger, errOut io.Writer, err error) int {
	if errors.Is(err, errOutOfRange) || errors.Is(err, errTaskNotFound) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return reportBackendError(logger, errOut, err)
}

// reportBackendError prints a backend error and returns the exit code.
// A 404 from the server means the task vanished and is a user error.
func reportBackendError(logger *log.Logger, errOut io.Writer, err error) int {
	logger.Debug("backend call failed", "err", err)
	if service.IsNotFound(err) {
		fmt.Fprintf(errOut, "error: %v\n", errTaskNotFound)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
