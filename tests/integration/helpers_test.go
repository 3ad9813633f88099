package integration

import (
	"bytes"
	"context"
	"testing"

	"github.com/docker/docker/pkg/stdcopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

// execInContainer runs a command in the container and returns stdout
func execInContainer(ctx context.Context, container testcontainers.Container, cmd []string) (int, string, error) {
	exitCode, reader, err := container.Exec(ctx, cmd)
	if err != nil {
		return exitCode, "", err
	}

	// Demux the Docker stream (stdout/stderr are multiplexed)
	var stdout, stderr bytes.Buffer
	_, _ = stdcopy.StdCopy(&stdout, &stderr, reader)

	return exitCode, stdout.String(), nil
}

// assertSSHDRunning checks that sshd is up inside the container
func assertSSHDRunning(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()
	exitCode, _, err := execInContainer(ctx, container, []string{"pgrep", "sshd"})
	require.NoError(t, err)
	assert.Equal(t, 0, exitCode, "sshd should be running in the container")
}

// remoteFileExists reports whether a path exists inside the container
func remoteFileExists(ctx context.Context, container testcontainers.Container, path string) bool {
	exitCode, _, err := execInContainer(ctx, container, []string{"test", "-e", path})
	return err == nil && exitCode == 0
}
