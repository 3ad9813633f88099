// Package main is the entrypoint for the voxrelay CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxrelay/voxrelay/internal/config"
	"github.com/voxrelay/voxrelay/internal/forward"
	"github.com/voxrelay/voxrelay/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	debug      bool
	configPath string
	targetFlag string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voxrelay",
	Short: "Voxrelay - relay voice-command transcripts to a remote machine",
	Long: `Voxrelay sends locally captured voice-command transcripts to a remote
machine over SSH and runs a configured command there with the transcript
substituted in. The relay is best-effort: failures are logged, never fatal.

Configuration lives in ` + "`~/.config/voxrelay/config.yaml`" + `.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "Override the configured destination (user@host:port)")

	rootCmd.AddCommand(forwardCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*forward.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if targetFlag != "" {
		cfg.Target = targetFlag
		cfg.Enabled = true
	}

	return cfg, nil
}

// forwardCmd relays a transcript
var forwardCmd = &cobra.Command{
	Use:   "forward [transcript...]",
	Short: "Relay a transcript to the configured remote machine",
	Long: `Relay a transcript to the remote machine configured in the config file.

The transcript is taken from the arguments, or read from stdin when no
arguments are given. The relay is fire-and-forget: the command always
exits 0, and failures are only logged.

Examples:
  voxrelay forward "open the dashboard"
  some-recognizer | voxrelay forward`,
	RunE: runForward,
}

func runForward(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	transcript := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read transcript from stdin: %w", err)
		}
		transcript = string(data)
	}
	transcript = strings.TrimSpace(transcript)

	log := logging.New(cmd.ErrOrStderr(), debug)
	forward.New(cfg, log).Forward(transcript)
	return nil
}

// checkCmd probes the configured destination
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the configured destination is reachable",
	Long: `Probe the configured destination by running a no-op remote command.

The probe distinguishes three failures: no valid destination configured,
the SSH client could not be started, and the remote end rejected the
connection or the command failed.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logging.New(cmd.ErrOrStderr(), debug)
	err = forward.New(cfg, log).CheckConnection()
	if err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s is reachable\n", strings.TrimSpace(cfg.Target))
		return nil
	}

	var launchErr *forward.LaunchFailedError
	var exitErr *forward.RemoteExitError
	switch {
	case errors.Is(err, forward.ErrInvalidTarget):
		return fmt.Errorf("no valid destination configured (target: %q)", cfg.Target)
	case errors.As(err, &launchErr):
		return fmt.Errorf("ssh client could not be started: %s", launchErr.Reason)
	case errors.As(err, &exitErr):
		return fmt.Errorf("destination rejected the connection: %v", exitErr)
	default:
		return err
	}
}
