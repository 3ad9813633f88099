// Package proc runs external processes with bounded waits and output capture.
package proc

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"
)

// minTimeout is the floor applied to every run so a zero or negative
// configured timeout cannot kill a process before it starts doing work.
const minTimeout = 100 * time.Millisecond

// Result holds the outcome of a completed run.
type Result struct {
	// ExitCode is the process exit status. -1 when the process was killed
	// by the timeout or terminated by a signal.
	ExitCode int

	// Output is the combined stdout and stderr, trimmed of surrounding
	// whitespace. Empty when capture was off or the bytes were not valid
	// UTF-8.
	Output string

	// TimedOut reports whether the timeout fired and the process was killed.
	TimedOut bool
}

// LaunchError indicates the process could not be started at all: missing
// executable, permission denied, fork failure. Distinct from a non-zero
// exit, which is reported through Result.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Options configures a single run.
type Options struct {
	// Stdin, when non-empty, is written to the child's standard input,
	// which is then closed so commands reading stdin see end-of-input.
	Stdin string

	// Timeout bounds the wait for the process. Values below 100ms are
	// raised to 100ms.
	Timeout time.Duration

	// Capture merges the child's stdout and stderr into Result.Output.
	Capture bool
}

// Run launches executable with args and waits for it to finish, racing the
// wait against the timeout. If the timeout fires first the process is
// killed; either way exactly one of the two pending activities completes
// the call and the other is torn down, so no child outlives the caller.
func Run(executable string, args []string, opts Options) (*Result, error) {
	cmd := exec.Command(executable, args...)

	var capture bytes.Buffer
	if opts.Capture {
		// Identical writers make os/exec share one pipe, so interleaved
		// output needs no extra synchronization.
		cmd.Stdout = &capture
		cmd.Stderr = cmd.Stdout
	}
	if opts.Stdin != "" {
		cmd.Stdin = strings.NewReader(opts.Stdin)
	}

	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Path: executable, Err: err}
	}

	timeout := opts.Timeout
	if timeout < minTimeout {
		timeout = minTimeout
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	res := &Result{}
	var waitErr error
	select {
	case waitErr = <-done:
		// Natural exit; the timer is stopped by the deferred Stop.
	case <-timer.C:
		res.TimedOut = true
		_ = cmd.Process.Kill()
		// Reap the child; Wait also drains the capture pipe.
		waitErr = <-done
	}

	switch err := waitErr.(type) {
	case nil:
		res.ExitCode = 0
	case *exec.ExitError:
		res.ExitCode = err.ExitCode()
	default:
		// I/O failure while feeding stdin or draining output. The process
		// ran, so this is not a launch failure.
		res.ExitCode = -1
	}

	if opts.Capture {
		if b := capture.Bytes(); utf8.Valid(b) {
			res.Output = strings.TrimSpace(string(b))
		}
	}

	return res, nil
}
