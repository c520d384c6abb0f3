// Package compose runs docker compose commands for the managed stack.
//
// The provisioner never talks to the container runtime directly: the
// nginx and certbot services are reached through compose exec/run so
// that the stack definition stays the single source of truth for how
// those processes are wired.
package compose

import (
	"fmt"

	"github.com/zionladder/frontweb/internal/errors"
	"github.com/zionladder/frontweb/internal/executor"
	"github.com/zionladder/frontweb/internal/logger"
)

// Compose invokes docker compose in a fixed project directory.
type Compose struct {
	dir  string
	exec executor.CommandExecutor
}

// New creates a Compose runner for the given project directory.
func New(dir string) *Compose {
	return NewWithExecutor(dir, executor.NewSystemExecutor())
}

// NewWithExecutor creates a Compose runner with a custom executor (for testing).
func NewWithExecutor(dir string, exec executor.CommandExecutor) *Compose {
	return &Compose{dir: dir, exec: exec}
}

// IsInstalled checks if the docker binary is available.
func (c *Compose) IsInstalled() bool {
	_, err := c.exec.LookPath("docker")
	return err == nil
}

// Up brings the stack up in detached mode.
func (c *Compose) Up() error {
	return c.run("up", "-d")
}

// RunRM runs a one-off container for service with the given
// entrypoint and arguments, removing it afterwards.
func (c *Compose) RunRM(service, entrypoint string, args ...string) error {
	cmdArgs := append([]string{"run", "--rm", "--entrypoint", entrypoint, service}, args...)
	return c.run(cmdArgs...)
}

// Exec executes a command inside the running service container.
func (c *Compose) Exec(service string, args ...string) error {
	cmdArgs := append([]string{"exec", service}, args...)
	return c.run(cmdArgs...)
}

// run invokes docker compose with the given arguments. The failure
// error wraps the command's exit error so callers can propagate the
// exit status, with the combined output in the message.
func (c *Compose) run(args ...string) error {
	full := append([]string{"compose"}, args...)
	logger.Command("docker", full...)

	output, err := c.exec.ExecuteIn(c.dir, "docker", full...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCompose,
			fmt.Sprintf("docker compose %s failed: %s", args[0], string(output)), err)
	}
	return nil
}
