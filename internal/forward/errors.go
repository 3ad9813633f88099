package forward

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget indicates the configured destination string could not be
// parsed, so no SSH process was spawned.
var ErrInvalidTarget = errors.New("no valid forwarding target configured")

// LaunchFailedError indicates the SSH client itself could not be started.
type LaunchFailedError struct {
	Reason string
}

func (e *LaunchFailedError) Error() string {
	return "could not start ssh client: " + e.Reason
}

// RemoteExitError indicates the SSH client ran but exited non-zero: the
// destination was unreachable, authentication was rejected, or the remote
// command failed. Output carries up to 240 characters of diagnostics.
type RemoteExitError struct {
	ExitCode int
	Output   string
}

func (e *RemoteExitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("connection check failed with exit code %d", e.ExitCode)
	}
	return fmt.Sprintf("connection check failed with exit code %d: %s", e.ExitCode, e.Output)
}

// maxErrOutput caps the diagnostic output carried inside a RemoteExitError.
const maxErrOutput = 240

func truncateOutput(s string) string {
	r := []rune(s)
	if len(r) <= maxErrOutput {
		return s
	}
	return string(r[:maxErrOutput])
}
