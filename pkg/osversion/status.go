package osversion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/x1thexxx-lgtm/pinger/pkg/inventory"
)

// DefaultStatusCommand queries the booted deployment.
var DefaultStatusCommand = []string{"rpm-ostree", "status", "--json"}

// StatusQuerier returns the raw JSON status of installed deployments.
type StatusQuerier interface {
	Status(ctx context.Context) ([]byte, error)
}

// StatusFunc adapts a function to StatusQuerier.
type StatusFunc func(ctx context.Context) ([]byte, error)

// Status implements StatusQuerier.
func (f StatusFunc) Status(ctx context.Context) ([]byte, error) { return f(ctx) }

// CommandQuerier runs an external command that prints the status as JSON.
type CommandQuerier struct {
	Command []string
}

// NewCommandQuerier builds a querier; an empty command uses DefaultStatusCommand.
func NewCommandQuerier(command ...string) *CommandQuerier {
	if len(command) == 0 {
		command = DefaultStatusCommand
	}
	return &CommandQuerier{Command: command}
}

// Status runs the command and returns its stdout.
func (q *CommandQuerier) Status(ctx context.Context) ([]byte, error) {
	if len(q.Command) == 0 {
		return nil, fmt.Errorf("%w: status command not configured", inventory.ErrExternalQuery)
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, q.Command[0], q.Command[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s exited with %d: %s", inventory.ErrExternalQuery,
				q.Command[0], exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: run %s: %w", inventory.ErrExternalQuery, q.Command[0], err)
	}
	return stdout.Bytes(), nil
}

// Deployment is one OS deployment entry of the status output.
type Deployment struct {
	Version  string
	Checksum string
	Origin   string
	Booted   bool
}

// Booted queries q and returns the deployment the system is running.
func Booted(ctx context.Context, q StatusQuerier) (Deployment, error) {
	data, err := q.Status(ctx)
	if err != nil {
		if errors.Is(err, inventory.ErrExternalQuery) {
			return Deployment{}, err
		}
		return Deployment{}, fmt.Errorf("%w: %w", inventory.ErrExternalQuery, err)
	}
	return parseBooted(data)
}

func parseBooted(data []byte) (Deployment, error) {
	if !gjson.ValidBytes(data) {
		return Deployment{}, fmt.Errorf("%w: deployment status: invalid json", inventory.ErrParse)
	}
	deployments := gjson.GetBytes(data, "deployments")
	if !deployments.IsArray() || len(deployments.Array()) == 0 {
		return Deployment{}, fmt.Errorf("%w: deployment status: no deployments", inventory.ErrParse)
	}
	booted := deployments.Get("#(booted==true)")
	if !booted.Exists() {
		return Deployment{}, fmt.Errorf("%w: deployment status: no booted deployment", inventory.ErrParse)
	}
	version := booted.Get("version")
	if version.Type != gjson.String || version.Str == "" {
		return Deployment{}, fmt.Errorf("%w: deployment status: booted deployment has no version", inventory.ErrParse)
	}
	return Deployment{
		Version:  version.Str,
		Checksum: booted.Get("checksum").String(),
		Origin:   booted.Get("origin").String(),
		Booted:   true,
	}, nil
}
