package taskcli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/task-cli/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "task-cli"
	}

	// go test changes the CWD to the test package directory, relative paths are ambiguous.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("TASK_CLI_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("task-cli binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "TASK_CLI_INTEGRATION"
		envBinary     = "TASK_CLI_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary: os.Getenv(envBinary),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// RunCmd runs a task-cli command against a specific store.
// It suppresses logging output for cleaner test output.
func RunCmd(ctx context.Context, config Config, storage, storePath string, args ...string) (stdout, stderr []byte, err error) {
	base := []string{
		"--store-path", storePath,
		"--storage", storage,
		"--config", filepath.Join(filepath.Dir(storePath), "config.yaml"),
	}
	return testutils.RunTaskCLIArgs(ctx, nil, config.Binary, append(base, args...), true)
}

// RunAdd adds a task.
func RunAdd(ctx context.Context, config Config, storage, storePath, description string) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, storage, storePath, "add", description)
}

// RunList lists tasks in JSON format.
func RunList(ctx context.Context, config Config, storage, storePath string, status string) (stdout, stderr []byte, err error) {
	args := []string{"list", "--format", "json"}
	if status != "" {
		args = append(args, status)
	}
	return RunCmd(ctx, config, storage, storePath, args...)
}
