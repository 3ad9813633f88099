// Package forward relays voice-command transcripts to a remote machine by
// spawning the platform SSH client, and probes whether the configured
// destination is reachable.
package forward

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/voxrelay/voxrelay/internal/proc"
	"github.com/voxrelay/voxrelay/internal/target"
)

// defaultSSHPath is where the platform SSH client lives.
const defaultSSHPath = "/usr/bin/ssh"

// Connection check knobs, independent of the configured relay timeout.
const (
	checkConnectTimeout = 4 // seconds, passed to ssh -o ConnectTimeout
	checkWaitTimeout    = 6 * time.Second
)

// Config holds the relay settings. It is immutable after creation and safe
// to share across concurrent Forward and CheckConnection calls.
type Config struct {
	// Enabled gates the relay; Forward is a no-op when false.
	Enabled bool

	// Target is the raw destination string, parsed on every call.
	Target string

	// IdentityFile is an optional private key path passed via -i.
	IdentityFile string

	// CommandTemplate is the remote command with an optional Placeholder
	// marker for the quoted transcript.
	CommandTemplate string

	// Timeout bounds each relay attempt.
	Timeout time.Duration
}

// Logger is the injected logging collaborator. Implementations must not
// fail the caller.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// nopLogger discards everything; used when no logger is injected.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Errorf(string, ...any) {}

// Forwarder relays transcripts and checks destination reachability.
type Forwarder struct {
	cfg     *Config
	log     Logger
	sshPath string
}

// Option configures a Forwarder.
type Option func(*Forwarder)

// WithSSHPath overrides the SSH client path.
func WithSSHPath(path string) Option {
	return func(f *Forwarder) {
		f.sshPath = path
	}
}

// New creates a Forwarder. A nil logger is replaced with a no-op one.
func New(cfg *Config, log Logger, opts ...Option) *Forwarder {
	if log == nil {
		log = nopLogger{}
	}
	f := &Forwarder{
		cfg:     cfg,
		log:     log,
		sshPath: defaultSSHPath,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Forward relays the transcript to the configured destination, fire and
// forget. Every failure is logged and absorbed: this path is a best-effort
// side channel and must never disrupt the caller.
func (f *Forwarder) Forward(transcript string) {
	if !f.cfg.Enabled {
		return
	}

	tgt, err := target.Parse(f.cfg.Target)
	if err != nil {
		f.log.Errorf("forward: %v: %q", ErrInvalidTarget, f.cfg.Target)
		return
	}

	remoteCmd := Render(f.cfg.CommandTemplate, transcript)
	args := f.buildArgs(tgt, 0, "sh", "-c", remoteCmd)

	f.log.Debugf("forward: relaying %d bytes to %s", len(transcript), tgt)

	res, err := proc.Run(f.sshPath, args, proc.Options{
		Stdin:   transcript,
		Timeout: f.cfg.Timeout,
		Capture: true,
	})
	if err != nil {
		f.log.Errorf("forward: %v", err)
		return
	}
	if res.TimedOut {
		f.log.Errorf("forward: relay to %s timed out after %s", tgt, f.cfg.Timeout)
		return
	}
	if res.ExitCode != 0 {
		f.log.Errorf("forward: relay to %s exited %d: %s", tgt, res.ExitCode, res.Output)
		return
	}

	f.log.Debugf("forward: relay to %s succeeded", tgt)
}

// CheckConnection probes whether the configured destination is reachable by
// running a no-op remote command. It never executes user-controlled content
// and uses fixed timeouts rather than the relay timeout. The result is
// classified: ErrInvalidTarget, *LaunchFailedError, *RemoteExitError, or
// nil on success.
func (f *Forwarder) CheckConnection() error {
	tgt, err := target.Parse(f.cfg.Target)
	if err != nil {
		return ErrInvalidTarget
	}

	args := f.buildArgs(tgt, checkConnectTimeout, "true")

	res, err := proc.Run(f.sshPath, args, proc.Options{
		Timeout: checkWaitTimeout,
		Capture: true,
	})
	if err != nil {
		var launchErr *proc.LaunchError
		if errors.As(err, &launchErr) {
			return &LaunchFailedError{Reason: launchErr.Err.Error()}
		}
		return &LaunchFailedError{Reason: err.Error()}
	}
	if res.ExitCode != 0 {
		return &RemoteExitError{
			ExitCode: res.ExitCode,
			Output:   truncateOutput(res.Output),
		}
	}

	return nil
}

// buildArgs assembles the SSH client argument list. connectTimeout is in
// seconds; zero omits the flag. remoteCmd is appended verbatim after the
// destination.
func (f *Forwarder) buildArgs(tgt *target.Target, connectTimeout int, remoteCmd ...string) []string {
	args := []string{
		"-o", "BatchMode=yes",
		"-o", "IdentitiesOnly=yes",
	}
	if connectTimeout > 0 {
		args = append(args, "-o", "ConnectTimeout="+strconv.Itoa(connectTimeout))
	}
	if tgt.Port > 0 {
		args = append(args, "-p", strconv.Itoa(tgt.Port))
	}
	if identity := strings.TrimSpace(f.cfg.IdentityFile); identity != "" {
		args = append(args, "-i", identity)
	}
	args = append(args, tgt.Destination())
	args = append(args, remoteCmd...)
	return args
}
