package sysdict

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// RawDefiner is the platform capability behind the system dictionary: it
// returns the raw definition text for word, or an error matching
// domain.ErrNotFound.
type RawDefiner interface {
	RawDefinition(ctx context.Context, word string) (string, error)
}

// Null is the RawDefiner for platforms without a system dictionary. It never
// finds anything.
type Null struct{}

func (Null) RawDefinition(_ context.Context, word string) (string, error) {
	return "", fmt.Errorf("sysdict: %q: %w", word, domain.ErrNotFound)
}

// DefaultCommandTimeout bounds a single external dictionary invocation.
const DefaultCommandTimeout = 5 * time.Second

// Command asks an external program for definitions. The word is appended as
// the last argument; the program's standard output is the raw definition.
// A non-zero exit status or empty output means not found.
type Command struct {
	path    string
	args    []string
	timeout time.Duration
}

// NewCommand parses a command line such as "dict -d wn" into a Command.
func NewCommand(commandLine string, timeout time.Duration) (*Command, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, domain.NewValidationError("sources.system_dict_command", "empty command")
	}
	return NewCommandArgs(fields[0], fields[1:], timeout)
}

// NewCommandArgs creates a Command from an explicit program and arguments.
func NewCommandArgs(name string, args []string, timeout time.Duration) (*Command, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("sysdict: command %q: %w", name, err)
	}
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &Command{path: path, args: args, timeout: timeout}, nil
}

func (c *Command) RawDefinition(ctx context.Context, word string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(append([]string(nil), c.args...), word)
	cmd := exec.CommandContext(ctx, c.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("sysdict: command timed out after %v", c.timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("sysdict: %q: exit status %d: %w", word, exitErr.ExitCode(), domain.ErrNotFound)
		}
		return "", fmt.Errorf("sysdict: run command: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", fmt.Errorf("sysdict: %q: empty output: %w", word, domain.ErrNotFound)
	}
	return out, nil
}
